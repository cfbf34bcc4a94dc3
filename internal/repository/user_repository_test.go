package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO user_accounts").
		WithArgs("Ada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Ada"))

	user, err := repo.CreateUser(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Ada", user.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, name FROM user_accounts").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err = repo.GetUser(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE user_accounts").
		WithArgs("Grace", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateUserName(context.Background(), 1, "Grace"))

	mock.ExpectExec("UPDATE user_accounts").
		WithArgs("Grace", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateUserName(context.Background(), 99, "Grace")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Ada").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.UserExists(context.Background(), "Ada")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorIsGeneric(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, name FROM user_accounts ORDER BY name").
		WillReturnError(assert.AnError)

	_, err = repo.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.Storage, apperr.KindOf(err))
	assert.Equal(t, "Something went wrong, try again later", apperr.MessageOf(err, ""))
	require.NoError(t, mock.ExpectationsWereMet())
}
