package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

func (s *Storage) HandshakesByPost(ctx context.Context, postID int64) ([]models.Handshake, error) {
	const op = "storage/postgres/handshakes/HandshakesByPost"

	rows, err := s.db.Query(ctx, `
	SELECT post_id, user_id, created_at
	FROM post_handshakes
	WHERE post_id = $1
	ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Handshake, 0)
	for rows.Next() {
		var h models.Handshake
		if err := rows.Scan(&h.PostID, &h.UserID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Storage) HandshakeExists(ctx context.Context, postID int64, userID uuid.UUID) (bool, error) {
	const op = "storage/postgres/handshakes/HandshakeExists"

	var ok bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM post_handshakes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// AddHandshake. Ошибки: storage.ErrAlreadyExists, storage.ErrInvalidReference.
func (s *Storage) AddHandshake(ctx context.Context, postID int64, userID uuid.UUID) error {
	const op = "storage/postgres/handshakes/AddHandshake"

	_, err := s.db.Exec(ctx, `INSERT INTO post_handshakes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		return mapWriteErr(op, err)
	}

	return nil
}

// RemoveHandshake. Ошибки: storage.ErrNotFound.
func (s *Storage) RemoveHandshake(ctx context.Context, postID int64, userID uuid.UUID) error {
	const op = "storage/postgres/handshakes/RemoveHandshake"

	tag, err := s.db.Exec(ctx, `DELETE FROM post_handshakes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
