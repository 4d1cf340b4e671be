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

// profileColumns — единый список колонок profiles для SELECT/RETURNING.
const profileColumns = `id, user_name, profile_picture_url, email`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile

	if err := row.Scan(
		&p.ID,
		&p.Username,
		&p.ProfilePictureURL,
		&p.Email,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Storage) oneProfile(ctx context.Context, op, q string, args ...any) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, mapWriteErr(op, err)
	}

	return p, nil
}

func (s *Storage) ProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	const op = "storage/postgres/profiles/ProfileByUsername"

	return s.oneProfile(ctx, op, `SELECT `+profileColumns+` FROM profiles WHERE user_name = $1`, username)
}

func (s *Storage) ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const op = "storage/postgres/profiles/ProfileByID"

	return s.oneProfile(ctx, op, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

// UpdateUsername. Ошибки: storage.ErrNotFound, storage.ErrAlreadyExists.
func (s *Storage) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.Profile, error) {
	const op = "storage/postgres/profiles/UpdateUsername"

	return s.oneProfile(ctx, op, `
	UPDATE profiles SET user_name = $2
	WHERE id = $1
	RETURNING `+profileColumns, id, username)
}

// UpdateProfilePicture. Ошибки: storage.ErrNotFound.
func (s *Storage) UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) (*models.Profile, error) {
	const op = "storage/postgres/profiles/UpdateProfilePicture"

	return s.oneProfile(ctx, op, `
	UPDATE profiles SET profile_picture_url = $2
	WHERE id = $1
	RETURNING `+profileColumns, id, url)
}
