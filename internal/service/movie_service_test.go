package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-catalog/internal/cache"
	"github.com/spec-kit/movie-catalog/internal/domain"
	"github.com/spec-kit/movie-catalog/internal/events"
	"github.com/spec-kit/movie-catalog/internal/kv"
	"github.com/spec-kit/movie-catalog/internal/observability"
)

// memMovieRepo is an in-memory stand-in for the Postgres repository that
// counts primary-store reads.
type memMovieRepo struct {
	movies    []domain.Movie
	nextID    int
	listCalls int
}

func (r *memMovieRepo) Create(_ context.Context, movie *domain.Movie) error {
	r.nextID++
	movie.ID = fmt.Sprintf("m-%d", r.nextID)
	now := time.Unix(int64(r.nextID), 0).UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	r.movies = append(r.movies, *movie)
	return nil
}

func (r *memMovieRepo) Update(_ context.Context, id string, update domain.MovieUpdate) error {
	for i := range r.movies {
		if r.movies[i].ID != id {
			continue
		}
		if update.Title != nil {
			r.movies[i].Title = *update.Title
		}
		if update.Genre != nil {
			r.movies[i].Genre = *update.Genre
		}
		if update.Rating != nil {
			r.movies[i].Rating = *update.Rating
		}
		if update.Link != nil {
			r.movies[i].Link = *update.Link
		}
		return nil
	}
	return pgx.ErrNoRows
}

func (r *memMovieRepo) Delete(_ context.Context, id string) error {
	for i := range r.movies {
		if r.movies[i].ID == id {
			r.movies = append(r.movies[:i], r.movies[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memMovieRepo) GetByID(_ context.Context, id string) (*domain.Movie, error) {
	for i := range r.movies {
		if r.movies[i].ID == id {
			movie := r.movies[i]
			return &movie, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memMovieRepo) List(_ context.Context, offset, limit int) ([]domain.Movie, error) {
	r.listCalls++
	if offset >= len(r.movies) {
		return []domain.Movie{}, nil
	}
	end := offset + limit
	if end > len(r.movies) {
		end = len(r.movies)
	}
	return append([]domain.Movie{}, r.movies[offset:end]...), nil
}

func (r *memMovieRepo) Search(_ context.Context, query string) ([]domain.Movie, error) {
	r.listCalls++
	var matched []domain.Movie
	for _, movie := range r.movies {
		if containsFold(movie.Title, query) || containsFold(movie.Genre, query) {
			matched = append(matched, movie)
		}
	}
	return matched, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func newTestMovieService() (*MovieService, *memMovieRepo, *kv.MemoryStore) {
	repo := &memMovieRepo{}
	store := kv.NewMemoryStore()
	listings := cache.NewListingCache(store, time.Hour, zap.NewNop(), observability.NewMetrics())
	return NewMovieService(repo, listings, events.NewInMemoryDispatcher()), repo, store
}

func TestListPopulatesAndServesFromCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestMovieService()
	require.NoError(t, svc.Create(ctx, &domain.Movie{Title: "Inception", Genre: "Sci-Fi", Rating: 5, Link: "l"}))
	repo.listCalls = 0

	first, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	second, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second identical read must be served from cache")

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "cached read must be byte-identical")
}

func TestWriteInvalidatesListings(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestMovieService()

	_, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, svc.Create(ctx, &domain.Movie{Title: "X", Genre: "Y", Rating: 5, Link: "l"}))

	movies, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "read after write must miss the cache")
	require.Len(t, movies, 1)
	assert.Equal(t, "X", movies[0].Title)
}

func TestUpdateAndDeleteInvalidateListings(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestMovieService()
	movie := &domain.Movie{Title: "Old", Genre: "Drama", Rating: 3, Link: "l"}
	require.NoError(t, svc.Create(ctx, movie))

	_, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)

	newTitle := "New"
	require.NoError(t, svc.Update(ctx, movie.ID, domain.MovieUpdate{Title: &newTitle}))

	movies, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "New", movies[0].Title)

	require.NoError(t, svc.Delete(ctx, movie.ID))

	movies, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestUpdateMissingMovie(t *testing.T) {
	svc, _, _ := newTestMovieService()
	title := "X"
	err := svc.Update(context.Background(), "nope", domain.MovieUpdate{Title: &title})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestSearchBypassesCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestMovieService()
	require.NoError(t, svc.Create(ctx, &domain.Movie{Title: "Avatar", Genre: "Fantasy", Rating: 4, Link: "l"}))
	repo.listCalls = 0

	for i := 0; i < 2; i++ {
		movies, err := svc.Search(ctx, "avatar")
		require.NoError(t, err)
		require.Len(t, movies, 1)
	}
	assert.Equal(t, 2, repo.listCalls, "search must always read through to the primary store")
}

// failingScanStore wraps a working store but refuses scans, simulating a
// key-value outage during invalidation.
type failingScanStore struct {
	*kv.MemoryStore
}

func (s failingScanStore) Scan(context.Context, string) ([]kv.Entry, error) {
	return nil, errors.New("connection refused")
}

func TestInvalidationFailureFailsTheWrite(t *testing.T) {
	ctx := context.Background()
	repo := &memMovieRepo{}
	store := failingScanStore{kv.NewMemoryStore()}
	listings := cache.NewListingCache(store, time.Hour, zap.NewNop(), observability.NewMetrics())
	svc := NewMovieService(repo, listings, events.NewInMemoryDispatcher())

	err := svc.Create(ctx, &domain.Movie{Title: "X", Genre: "Y", Rating: 5, Link: "l"})
	assert.Error(t, err, "a write whose invalidation failed must not be acknowledged")
}
