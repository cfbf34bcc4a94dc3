package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
)

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ListMovies returns all movies owned by a user, ordered by title.
func (r *MovieRepository) ListMovies(ctx context.Context, userID int) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, director, year, rating, poster, user_id
		FROM movies
		WHERE user_id = $1
		ORDER BY title
	`, userID)
	if err != nil {
		return nil, storageErr("list movies", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, storageErr("scan movie", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// GetMovie returns a movie by id.
func (r *MovieRepository) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, director, year, rating, poster, user_id
		FROM movies
		WHERE id = $1
	`, id)
	m, err := scanMovie(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Movie not found")
	}
	if err != nil {
		return nil, storageErr("get movie", err)
	}
	return m, nil
}

// CreateMovie inserts a movie and returns it with its generated id.
func (r *MovieRepository) CreateMovie(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	created := *m
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (title, director, year, rating, poster, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.Title, m.Director, m.Year, m.Rating, m.Poster, m.UserID).Scan(&created.ID)
	if err != nil {
		return nil, storageErr("create movie", err)
	}
	return &created, nil
}

// UpdateMovie overwrites every mutable field of a movie. This is a full
// overwrite, not a partial merge: absent optional fields are cleared.
func (r *MovieRepository) UpdateMovie(ctx context.Context, m *models.Movie) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE movies
		SET title = $1, director = $2, year = $3, rating = $4, poster = $5
		WHERE id = $6
	`, m.Title, m.Director, m.Year, m.Rating, m.Poster, m.ID)
	if err != nil {
		return storageErr("update movie", err)
	}
	return requireRow(res, "Movie not found")
}

// DeleteMovie removes a movie by id.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete movie", err)
	}
	return requireRow(res, "Movie not found")
}

// MovieExists reports whether the user already has a movie with the
// given title, compared case-insensitively.
func (r *MovieRepository) MovieExists(ctx context.Context, title string, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM movies WHERE LOWER(title) = LOWER($1) AND user_id = $2
		)
	`, title, userID).Scan(&exists)
	if err != nil {
		return false, storageErr("movie exists", err)
	}
	return exists, nil
}

func scanMovie(scan func(dest ...any) error) (*models.Movie, error) {
	var (
		m        models.Movie
		director sql.NullString
		year     sql.NullInt64
		rating   sql.NullFloat64
		poster   sql.NullString
	)
	if err := scan(&m.ID, &m.Title, &director, &year, &rating, &poster, &m.UserID); err != nil {
		return nil, err
	}
	if director.Valid {
		m.Director = &director.String
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if rating.Valid {
		m.Rating = &rating.Float64
	}
	if poster.Valid {
		m.Poster = &poster.String
	}
	return &m, nil
}
