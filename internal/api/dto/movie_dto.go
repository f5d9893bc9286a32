package dto

import (
	"time"

	"github.com/spec-kit/movie-catalog/internal/domain"
)

// CreateMovieRequest payload. Rating is a pointer so a missing field can
// be told apart from a zero rating.
type CreateMovieRequest struct {
	Title  string   `json:"title"`
	Genre  string   `json:"genre"`
	Rating *float64 `json:"rating"`
	Link   string   `json:"link"`
}

// UpdateMovieRequest carries a partial update; nil fields are untouched.
type UpdateMovieRequest struct {
	Title  *string  `json:"title"`
	Genre  *string  `json:"genre"`
	Rating *float64 `json:"rating"`
	Link   *string  `json:"link"`
}

// MovieResponse is the public view of a catalog entry.
type MovieResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Rating    float64   `json:"rating"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovieFromDomain maps a domain movie to its response form.
func MovieFromDomain(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:        movie.ID,
		Title:     movie.Title,
		Genre:     movie.Genre,
		Rating:    movie.Rating,
		Link:      movie.Link,
		CreatedAt: movie.CreatedAt,
		UpdatedAt: movie.UpdatedAt,
	}
}
