package domain

import "fmt"

// ListKind names one of the four per-user movie collections.
type ListKind string

const (
	Wishlist  ListKind = "wishlist"
	Bookmarks ListKind = "bookmarks"
	Ongoing   ListKind = "ongoing"
	Completed ListKind = "completed"
)

var ListKinds = []ListKind{Wishlist, Bookmarks, Ongoing, Completed}

func ParseListKind(s string) (ListKind, error) {
	for _, k := range ListKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown list %q", s)
}

// WatchStatus is the single tagged field kept per (user, movie) pair for the
// ongoing/completed lists. A movie cannot be in both because it has one status.
type WatchStatus string

const (
	Unwatched       WatchStatus = "unwatched"
	StatusOngoing   WatchStatus = "ongoing"
	StatusCompleted WatchStatus = "completed"
)

// WatchStatus maps ongoing/completed to their status tag. ok is false for
// the independent sets (wishlist, bookmarks).
func (k ListKind) WatchStatus() (status WatchStatus, ok bool) {
	switch k {
	case Ongoing:
		return StatusOngoing, true
	case Completed:
		return StatusCompleted, true
	}
	return Unwatched, false
}

type Library struct {
	Wishlist  []Movie `json:"wishlist"`
	Bookmarks []Movie `json:"bookmarks"`
	Ongoing   []Movie `json:"ongoing"`
	Completed []Movie `json:"completed"`
}

// NewLibrary returns a library with four empty, non-nil lists.
func NewLibrary() Library {
	return Library{
		Wishlist:  []Movie{},
		Bookmarks: []Movie{},
		Ongoing:   []Movie{},
		Completed: []Movie{},
	}
}

// List returns the slice backing kind.
func (l *Library) List(kind ListKind) []Movie {
	switch kind {
	case Wishlist:
		return l.Wishlist
	case Bookmarks:
		return l.Bookmarks
	case Ongoing:
		return l.Ongoing
	case Completed:
		return l.Completed
	}
	return nil
}

// Append adds m to the slice backing kind.
func (l *Library) Append(kind ListKind, m Movie) {
	switch kind {
	case Wishlist:
		l.Wishlist = append(l.Wishlist, m)
	case Bookmarks:
		l.Bookmarks = append(l.Bookmarks, m)
	case Ongoing:
		l.Ongoing = append(l.Ongoing, m)
	case Completed:
		l.Completed = append(l.Completed, m)
	}
}
