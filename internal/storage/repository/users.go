package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// GetOrCreateUser возвращает пользователя по имени, создавая его при
// первом обращении. Конфликт одновременного создания разрешается
// на уровне базы через ON CONFLICT.
func (s *Storage) GetOrCreateUser(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetOrCreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{Username: username}

	query := `SELECT uid, created_at FROM users WHERE username = $1`
	err := s.DB.QueryRowContext(ctx, query, username).Scan(&u.UID, &u.CreatedAt)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO users (uid, username) VALUES ($1, $2)
			 ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
			 RETURNING uid, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		uuid.New().String(), username).Scan(&u.UID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, created_at FROM users WHERE uid = $1`
	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&u.UID, &u.Username, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
