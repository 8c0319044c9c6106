package api

import "github.com/mathewgeejo/cinemabase/shared/domain"

type CreateMovieRequest struct {
	Title         string           `json:"title" validate:"required,max=200"`
	GenreIds      []domain.GenreId `json:"genre_ids" validate:"required,min=1"`
	Rate          float64          `json:"rate" validate:"gte=0,lte=10"`
	Description   string           `json:"description" validate:"required"`
	TrailerLink   string           `json:"trailer_link" validate:"omitempty,url"`
	LengthMinutes int              `json:"length_minutes" validate:"required,gt=0"`
	ImageUrl      string           `json:"image_url" validate:"omitempty,url"`
}

func (r CreateMovieRequest) CreationData() domain.MovieCreationData {
	return domain.MovieCreationData{
		Title:         r.Title,
		GenreIds:      r.GenreIds,
		Rate:          r.Rate,
		Description:   r.Description,
		TrailerLink:   r.TrailerLink,
		LengthMinutes: r.LengthMinutes,
		ImageUrl:      r.ImageUrl,
	}
}

type UpdateMovieRequest struct {
	Title         *string           `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	GenreIds      *[]domain.GenreId `json:"genre_ids,omitempty" validate:"omitempty,min=1"`
	Rate          *float64          `json:"rate,omitempty" validate:"omitempty,gte=0,lte=10"`
	Description   *string           `json:"description,omitempty" validate:"omitempty,min=1"`
	TrailerLink   *string           `json:"trailer_link,omitempty" validate:"omitempty,url"`
	LengthMinutes *int              `json:"length_minutes,omitempty" validate:"omitempty,gt=0"`
	ImageUrl      *string           `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (r UpdateMovieRequest) UpdateData() domain.MovieUpdateData {
	return domain.MovieUpdateData{
		Title:         r.Title,
		GenreIds:      r.GenreIds,
		Rate:          r.Rate,
		Description:   r.Description,
		TrailerLink:   r.TrailerLink,
		LengthMinutes: r.LengthMinutes,
		ImageUrl:      r.ImageUrl,
	}
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type MoviesResponse struct {
	Movies []domain.Movie `json:"movies"`
}

type GenresResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type CreatedResponse struct {
	Id string `json:"id"`
}
