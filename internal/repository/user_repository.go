package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListUsers returns all user accounts ordered by name.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM user_accounts ORDER BY name`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	users := make([]models.UserAccount, 0)
	for rows.Next() {
		var u models.UserAccount
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, storageErr("scan user", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser returns a user account by id.
func (r *UserRepository) GetUser(ctx context.Context, id int) (*models.UserAccount, error) {
	var u models.UserAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM user_accounts WHERE id = $1`, id).Scan(&u.ID, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &u, nil
}

// CreateUser inserts a user account and returns it with its generated id.
func (r *UserRepository) CreateUser(ctx context.Context, name string) (*models.UserAccount, error) {
	var u models.UserAccount
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_accounts (name) VALUES ($1)
		RETURNING id, name
	`, name).Scan(&u.ID, &u.Name)
	if err != nil {
		return nil, storageErr("create user", err)
	}
	return &u, nil
}

// UpdateUserName renames a user account.
func (r *UserRepository) UpdateUserName(ctx context.Context, id int, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_accounts SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return storageErr("update user", err)
	}
	return requireRow(res, "User not found")
}

// DeleteUser removes a user account. Owned movies go with it through
// the ON DELETE CASCADE constraint.
func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_accounts WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete user", err)
	}
	return requireRow(res, "User not found")
}

// UserExists reports whether a user account with the given name exists.
func (r *UserRepository) UserExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_accounts WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, storageErr("user exists", err)
	}
	return exists, nil
}

// Ping checks database connectivity.
func (r *UserRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return apperr.Wrap(apperr.Storage, "Something went wrong, try again later",
		fmt.Errorf("%s: %w", op, err))
}

// requireRow turns a zero-row mutation into an explicit not-found error
// instead of silently succeeding against a missing row.
func requireRow(res sql.Result, message string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("rows affected", err)
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, message)
	}
	return nil
}
