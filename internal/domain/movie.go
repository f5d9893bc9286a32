package domain

import "time"

// Movie is the catalog entry.
type Movie struct {
	ID        string
	Title     string
	Genre     string
	Rating    float64
	Link      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovieUpdate carries partial changes for an existing movie.
// Nil fields are left untouched.
type MovieUpdate struct {
	Title  *string
	Genre  *string
	Rating *float64
	Link   *string
}
