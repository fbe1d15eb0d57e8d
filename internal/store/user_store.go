package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// The password column is deliberately absent from this list.
const userColumns = `id, username, fullName, email, phoneNumber, photoUser, address, createdAt, updatedAt`

// GetUserByID returns one user, or database.ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.getUser(ctx, "get user by id", `WHERE id = ?`, userID)
}

// GetUserByUsername returns the user with the exact username, or
// database.ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "get user by username", `WHERE username = ?`, username)
}

func (s *Store) getUser(ctx context.Context, op, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM User ` + where

	var user models.User
	err := s.read(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, arg).Scan(
			&user.ID, &user.Username, &user.FullName, &user.Email,
			&user.PhoneNumber, &user.Photo, &user.Address,
			&user.CreatedAt, &user.UpdatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
