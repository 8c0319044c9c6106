package api

import "github.com/mathewgeejo/cinemabase/shared/domain"

// LibraryResponse resolves all four lists to full movie records.
type LibraryResponse = domain.Library
