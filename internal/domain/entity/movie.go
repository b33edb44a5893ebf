package entity

import (
	"time"
)

// Movie belongs to the user who created it. The (Title, ReleaseDate)
// pair is unique across the catalog.
type Movie struct {
	ID          string
	Title       string
	Description string
	Duration    int // minutes, > 0
	ReleaseDate time.Time
	PosterURL   string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
