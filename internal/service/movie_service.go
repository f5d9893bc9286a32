package service

import (
	"context"
	"time"

	"github.com/spec-kit/movie-catalog/internal/cache"
	"github.com/spec-kit/movie-catalog/internal/domain"
	"github.com/spec-kit/movie-catalog/internal/events"
	"github.com/spec-kit/movie-catalog/internal/repository"
)

// MovieService owns the catalog read and write paths. Reads go through
// the listing cache; every committed mutation publishes an event whose
// subscribers (the cache invalidator) complete before the call returns,
// so a caller's next read cannot observe pre-write listings.
type MovieService struct {
	movies     repository.MovieRepository
	listings   *cache.ListingCache
	dispatcher events.Dispatcher
}

// NewMovieService builds the service and subscribes the invalidator.
func NewMovieService(movies repository.MovieRepository, listings *cache.ListingCache, dispatcher events.Dispatcher) *MovieService {
	s := &MovieService{
		movies:     movies,
		listings:   listings,
		dispatcher: dispatcher,
	}

	invalidate := func(ctx context.Context, _ events.Event) error {
		return listings.Invalidate(ctx)
	}
	dispatcher.Subscribe(events.EventMovieCreated, invalidate)
	dispatcher.Subscribe(events.EventMovieUpdated, invalidate)
	dispatcher.Subscribe(events.EventMovieDeleted, invalidate)

	return s
}

// List returns one pagination window, cache-aside. Concurrent misses on
// the same window may each hit the primary store and repopulate; entries
// expire in bounded time so that is tolerated.
func (s *MovieService) List(ctx context.Context, page, limit int) ([]domain.Movie, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	if movies, ok := s.listings.Get(ctx, page, limit); ok {
		return movies, nil
	}

	movies, err := s.movies.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	s.listings.Set(ctx, page, limit, movies)
	return movies, nil
}

// Search bypasses the cache entirely: the query space is too large to
// key usefully.
func (s *MovieService) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	return s.movies.Search(ctx, query)
}

// Get fetches one movie by id.
func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// Create inserts a movie and invalidates listings before returning.
func (s *MovieService) Create(ctx context.Context, movie *domain.Movie) error {
	if err := s.movies.Create(ctx, movie); err != nil {
		return err
	}
	return s.publish(ctx, events.EventMovieCreated, movie.ID)
}

// Update applies a partial update and invalidates listings before returning.
func (s *MovieService) Update(ctx context.Context, id string, update domain.MovieUpdate) error {
	if err := s.movies.Update(ctx, id, update); err != nil {
		return err
	}
	return s.publish(ctx, events.EventMovieUpdated, id)
}

// Delete removes a movie and invalidates listings before returning.
func (s *MovieService) Delete(ctx context.Context, id string) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}
	return s.publish(ctx, events.EventMovieDeleted, id)
}

func (s *MovieService) publish(ctx context.Context, eventType events.EventType, movieID string) error {
	return s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		MovieID:   movieID,
		Timestamp: time.Now(),
	})
}
