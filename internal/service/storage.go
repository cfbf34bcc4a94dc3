package service

import (
	"context"

	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/omdb"
)

// UserStore is the persistence contract for user accounts.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	GetUser(ctx context.Context, id int) (*models.UserAccount, error)
	CreateUser(ctx context.Context, name string) (*models.UserAccount, error)
	UpdateUserName(ctx context.Context, id int, name string) error
	DeleteUser(ctx context.Context, id int) error
	UserExists(ctx context.Context, name string) (bool, error)
	Ping(ctx context.Context) error
}

// MovieStore is the persistence contract for movies.
type MovieStore interface {
	ListMovies(ctx context.Context, userID int) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
	CreateMovie(ctx context.Context, m *models.Movie) (*models.Movie, error)
	UpdateMovie(ctx context.Context, m *models.Movie) error
	DeleteMovie(ctx context.Context, id int) error
	MovieExists(ctx context.Context, title string, userID int) (bool, error)
}

// MetadataFinder looks up normalized movie metadata by title.
type MetadataFinder interface {
	FindByTitle(ctx context.Context, title string) (*omdb.MovieDetails, error)
}
