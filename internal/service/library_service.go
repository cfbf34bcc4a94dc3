package service

import (
	"context"
	"log/slog"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/validate"
)

// LibraryService handles business logic for user accounts and their
// movie lists: validation, duplicate checks, metadata enrichment and
// persistence.
type LibraryService struct {
	users    UserStore
	movies   MovieStore
	metadata MetadataFinder
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(users UserStore, movies MovieStore, metadata MetadataFinder) *LibraryService {
	return &LibraryService{users: users, movies: movies, metadata: metadata}
}

// ListUsers returns all user accounts.
func (s *LibraryService) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	return s.users.ListUsers(ctx)
}

// CreateUser validates a name and creates a user account. Names are
// unique; an existing name is rejected without a second row.
func (s *LibraryService) CreateUser(ctx context.Context, name string) (*models.UserAccount, error) {
	validName, err := validate.UserName(name)
	if err != nil {
		return nil, err
	}
	exists, err := s.users.UserExists(ctx, validName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Duplicate, "User with this name already exists")
	}
	return s.users.CreateUser(ctx, validName)
}

// RenameUser validates the new name and renames a user account.
func (s *LibraryService) RenameUser(ctx context.Context, id int, name string) (*models.UserAccount, error) {
	validName, err := validate.UserName(name)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Name != validName {
		exists, err := s.users.UserExists(ctx, validName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.New(apperr.Duplicate, "User with this name already exists")
		}
	}
	if err := s.users.UpdateUserName(ctx, id, validName); err != nil {
		return nil, err
	}
	user.Name = validName
	return user, nil
}

// DeleteUser removes a user account and all movies the user owns.
func (s *LibraryService) DeleteUser(ctx context.Context, id int) error {
	return s.users.DeleteUser(ctx, id)
}

// ListMovies returns the movie list of an existing user.
func (s *LibraryService) ListMovies(ctx context.Context, userID int) ([]models.Movie, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.movies.ListMovies(ctx, userID)
}

// GetMovie returns a movie by id.
func (s *LibraryService) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	return s.movies.GetMovie(ctx, id)
}

// AddMovie adds a movie to a user's list by title. The title is
// validated, looked up against the metadata service and checked for a
// per-user duplicate before anything is persisted. Recommended entries
// are accepted through this same path.
func (s *LibraryService) AddMovie(ctx context.Context, userID int, title string) (*models.Movie, error) {
	validTitle, err := validate.MovieTitle(title)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	details, err := s.metadata.FindByTitle(ctx, validTitle)
	if err != nil {
		return nil, err
	}

	exists, err := s.movies.MovieExists(ctx, details.Title, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Duplicate, "Movie is already in your list")
	}

	movie := &models.Movie{
		Title:    details.Title,
		Director: details.Director,
		Year:     details.Year,
		Rating:   details.Rating,
		Poster:   details.Poster,
		UserID:   userID,
	}
	created, err := s.movies.CreateMovie(ctx, movie)
	if err != nil {
		return nil, err
	}
	slog.Info("movie added", "user_id", userID, "movie_id", created.ID, "title", created.Title)
	return created, nil
}

// UpdateMovie validates the submitted fields and overwrites the movie.
// This is a full overwrite: optional fields left blank become absent.
func (s *LibraryService) UpdateMovie(ctx context.Context, id int, req models.UpdateMovieRequest) (*models.Movie, error) {
	input, err := validate.Movie(req.Title, req.Director, req.Year, req.Rating, req.Poster)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Title = input.Title
	movie.Director = input.Director
	movie.Year = input.Year
	movie.Rating = input.Rating
	movie.Poster = input.Poster

	if err := s.movies.UpdateMovie(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// DeleteMovie removes a movie by id.
func (s *LibraryService) DeleteMovie(ctx context.Context, id int) error {
	return s.movies.DeleteMovie(ctx, id)
}

// Ping checks that the persistence layer is reachable.
func (s *LibraryService) Ping(ctx context.Context) error {
	return s.users.Ping(ctx)
}
