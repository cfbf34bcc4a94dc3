// Package memory is an in-memory store conforming to the same contract
// as the PostgreSQL repositories. It backs the service tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
)

// Store keeps user accounts and movies in process memory.
type Store struct {
	sync.Mutex
	users       map[int]*models.UserAccount
	movies      map[int]*models.Movie
	nextUserID  int
	nextMovieID int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:       map[int]*models.UserAccount{},
		movies:      map[int]*models.Movie{},
		nextUserID:  1,
		nextMovieID: 1,
	}
}

// ListUsers returns all user accounts.
func (s *Store) ListUsers(_ context.Context) ([]models.UserAccount, error) {
	s.Lock()
	defer s.Unlock()
	users := make([]models.UserAccount, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

// GetUser returns a user account by id.
func (s *Store) GetUser(_ context.Context, id int) (*models.UserAccount, error) {
	s.Lock()
	defer s.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	user := *u
	return &user, nil
}

// CreateUser adds a user account.
func (s *Store) CreateUser(_ context.Context, name string) (*models.UserAccount, error) {
	s.Lock()
	defer s.Unlock()
	u := &models.UserAccount{ID: s.nextUserID, Name: name}
	s.nextUserID++
	s.users[u.ID] = u
	user := *u
	return &user, nil
}

// UpdateUserName renames a user account.
func (s *Store) UpdateUserName(_ context.Context, id int, name string) error {
	s.Lock()
	defer s.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	u.Name = name
	return nil
}

// DeleteUser removes a user account and every movie the user owns.
func (s *Store) DeleteUser(_ context.Context, id int) error {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	delete(s.users, id)
	for movieID, m := range s.movies {
		if m.UserID == id {
			delete(s.movies, movieID)
		}
	}
	return nil
}

// UserExists reports whether a user account with the given name exists.
func (s *Store) UserExists(_ context.Context, name string) (bool, error) {
	s.Lock()
	defer s.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// ListMovies returns all movies owned by a user.
func (s *Store) ListMovies(_ context.Context, userID int) ([]models.Movie, error) {
	s.Lock()
	defer s.Unlock()
	movies := make([]models.Movie, 0)
	for _, m := range s.movies {
		if m.UserID == userID {
			movies = append(movies, *m)
		}
	}
	return movies, nil
}

// GetMovie returns a movie by id.
func (s *Store) GetMovie(_ context.Context, id int) (*models.Movie, error) {
	s.Lock()
	defer s.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Movie not found")
	}
	movie := *m
	return &movie, nil
}

// CreateMovie adds a movie.
func (s *Store) CreateMovie(_ context.Context, m *models.Movie) (*models.Movie, error) {
	s.Lock()
	defer s.Unlock()
	created := *m
	created.ID = s.nextMovieID
	s.nextMovieID++
	s.movies[created.ID] = &created
	movie := created
	return &movie, nil
}

// UpdateMovie overwrites every mutable field of a movie.
func (s *Store) UpdateMovie(_ context.Context, m *models.Movie) error {
	s.Lock()
	defer s.Unlock()
	stored, ok := s.movies[m.ID]
	if !ok {
		return apperr.New(apperr.NotFound, "Movie not found")
	}
	updated := *m
	updated.UserID = stored.UserID
	s.movies[m.ID] = &updated
	return nil
}

// DeleteMovie removes a movie by id.
func (s *Store) DeleteMovie(_ context.Context, id int) error {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.movies[id]; !ok {
		return apperr.New(apperr.NotFound, "Movie not found")
	}
	delete(s.movies, id)
	return nil
}

// MovieExists reports whether the user already has a movie with the
// given title, compared case-insensitively.
func (s *Store) MovieExists(_ context.Context, title string, userID int) (bool, error) {
	s.Lock()
	defer s.Unlock()
	for _, m := range s.movies {
		if m.UserID == userID && strings.EqualFold(m.Title, title) {
			return true, nil
		}
	}
	return false, nil
}
