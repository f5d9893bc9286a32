package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-catalog/internal/domain"
)

const searchResultLimit = 10

// MovieRepository defines persistence access for catalog entries.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) error
	Update(ctx context.Context, id string, update domain.MovieUpdate) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, offset, limit int) ([]domain.Movie, error)
	Search(ctx context.Context, query string) ([]domain.Movie, error)
}

type movieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository returns a Postgres-backed implementation.
func NewMovieRepository(pool *pgxpool.Pool) MovieRepository {
	return &movieRepository{pool: pool}
}

func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	const query = `
        INSERT INTO movies (title, genre, rating, link)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		movie.Title,
		movie.Genre,
		movie.Rating,
		movie.Link,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

func (r *movieRepository) Update(ctx context.Context, id string, update domain.MovieUpdate) error {
	const query = `
        UPDATE movies SET
            title=COALESCE($1, title),
            genre=COALESCE($2, genre),
            rating=COALESCE($3, rating),
            link=COALESCE($4, link),
            updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		update.Title,
		update.Genre,
		update.Rating,
		update.Link,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	const query = `
        SELECT id, title, genre, rating, link, created_at, updated_at
        FROM movies WHERE id=$1`

	var movie domain.Movie
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Rating,
		&movie.Link,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &movie, nil
}

// List pages through the catalog in stable order so identical requests
// produce identical listings.
func (r *movieRepository) List(ctx context.Context, offset, limit int) ([]domain.Movie, error) {
	const query = `
        SELECT id, title, genre, rating, link, created_at, updated_at
        FROM movies ORDER BY created_at, id OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

// Search matches the query as a case-insensitive substring of title or
// genre, capped at ten results.
func (r *movieRepository) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	const stmt = `
        SELECT id, title, genre, rating, link, created_at, updated_at
        FROM movies
        WHERE title ILIKE '%' || $1 || '%' OR genre ILIKE '%' || $1 || '%'
        ORDER BY created_at, id LIMIT $2`

	rows, err := r.pool.Query(ctx, stmt, query, searchResultLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

func scanMovies(rows pgx.Rows) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0)
	for rows.Next() {
		var movie domain.Movie
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.Rating,
			&movie.Link,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}
