package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMovieCreated EventType = "movie_created"
	EventMovieUpdated EventType = "movie_updated"
	EventMovieDeleted EventType = "movie_deleted"
)

// Event represents a catalog mutation emitted by services.
type Event struct {
	Type      EventType `json:"type"`
	MovieID   string    `json:"movie_id"`
	Timestamp time.Time `json:"timestamp"`
}
