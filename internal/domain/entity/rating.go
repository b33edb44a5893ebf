package entity

import (
	"time"
)

// Rating is a per-user score for a movie. At most one rating exists for a
// (UserID, MovieID) pair; a second submission overwrites the first.
type Rating struct {
	ID        string
	Score     int // 1-5
	Review    string
	MovieID   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
