package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

const userColumns = `id, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User

	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser создаёт учётную запись и профиль в одной транзакции.
// Ошибки: storage.ErrAlreadyExists (email или username заняты).
func (s *Storage) CreateUser(ctx context.Context, user models.User, username string) error {
	const op = "storage/postgres/users/CreateUser"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
	INSERT INTO users (id, email, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return mapWriteErr(op, err)
	}

	if _, err := tx.Exec(ctx, `
	INSERT INTO profiles (id, user_name, email)
	VALUES ($1, $2, $3)`,
		user.ID,
		username,
		user.Email,
	); err != nil {
		return mapWriteErr(op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail ищет пользователя по email (без учёта регистра, CITEXT).
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/postgres/users/UserByEmail"

	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/postgres/users/UserByID"

	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// SaveRefreshToken сохраняет хэш refresh-токена.
// Ошибки: storage.ErrAlreadyExists при коллизии хэша.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage/postgres/users/SaveRefreshToken"

	_, err := s.db.Exec(ctx, `
	INSERT INTO refresh_tokens (token_hash, user_id, created_at, expires_at, revoked)
	VALUES ($1, $2, $3, $4, $5)`,
		token.RefreshTokenHash,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
		token.Revoked,
	)
	if err != nil {
		return mapWriteErr(op, err)
	}

	return nil
}

// RefreshTokenByHash находит refresh-токен по хэшу.
func (s *Storage) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	const op = "storage/postgres/users/RefreshTokenByHash"

	var t models.RefreshToken
	err := s.db.QueryRow(ctx, `
	SELECT token_hash, user_id, created_at, expires_at, revoked
	FROM refresh_tokens
	WHERE token_hash = $1`, hash).Scan(
		&t.RefreshTokenHash,
		&t.UserID,
		&t.CreatedAt,
		&t.ExpiresAt,
		&t.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// RevokeRefreshToken отзывает токен, если он ещё активен.
// Возвращает:
//
//	(true, nil)  — токен был активен и отозван сейчас;
//	(false, nil) — токен уже был отозван;
//	(false, ErrNotFound) — токена нет.
func (s *Storage) RevokeRefreshToken(ctx context.Context, hash string) (bool, error) {
	const op = "storage/postgres/users/RevokeRefreshToken"

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `
	UPDATE refresh_tokens
	SET revoked = TRUE
	WHERE token_hash = $1 AND revoked = FALSE
	RETURNING user_id`, hash).Scan(&userID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var revoked bool
	err = s.db.QueryRow(ctx, `SELECT revoked FROM refresh_tokens WHERE token_hash = $1`, hash).Scan(&revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return false, nil
}
