package domain

import "time"

type Genre struct {
	Id   GenreId `json:"id"`
	Name string  `json:"name"`
}

type Movie struct {
	Id              MovieId   `json:"id"`
	Title           string    `json:"title"`
	Genres          []Genre   `json:"genres"`
	Rate            float64   `json:"rate"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	TrailerLink     string    `json:"trailer_link"`
	LengthMinutes   int       `json:"length_minutes"`
	ImageUrl        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasGenre reports whether any of the movie's genre references is named name.
func (m Movie) HasGenre(name string) bool {
	for _, g := range m.Genres {
		if g.Name == name {
			return true
		}
	}
	return false
}

// to iterate thru layers: handler -> service -> storage
type MovieCreationData struct {
	Title         string
	GenreIds      []GenreId
	Rate          float64
	Description   string
	TrailerLink   string
	LengthMinutes int
	ImageUrl      string
}

type MovieUpdateData struct {
	Title         *string
	GenreIds      *[]GenreId
	Rate          *float64
	Description   *string
	TrailerLink   *string
	LengthMinutes *int
	ImageUrl      *string
}
