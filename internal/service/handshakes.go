package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// Handshakes — рукопожатия под постом.
func (s *Service) Handshakes(ctx context.Context, postID int64) ([]models.Handshake, error) {
	const op = "service/handshakes/Handshakes"

	if postID <= 0 {
		return nil, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyHandshakes, postID), func(ctx context.Context) ([]models.Handshake, error) {
		return s.storage.HandshakesByPost(ctx, postID)
	})
}

// ToggleHandshake ставит рукопожатие или снимает уже поставленное.
// Возвращает состояние после записи.
func (s *Service) ToggleHandshake(ctx context.Context, postID int64, userID uuid.UUID) (bool, error) {
	const op = "service/handshakes/ToggleHandshake"

	if userID == uuid.Nil {
		return false, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if postID <= 0 {
		return false, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	var shaken bool
	err := s.runner.Run(ctx, mutation.OpToggleHandshake, mutation.Target{PostID: postID, UserID: userID}, func(ctx context.Context) error {
		exists, err := s.storage.HandshakeExists(ctx, postID, userID)
		if err != nil {
			return err
		}

		if exists {
			if err := s.storage.RemoveHandshake(ctx, postID, userID); err != nil {
				return err
			}
			shaken = false

			return nil
		}

		if err := s.storage.AddHandshake(ctx, postID, userID); err != nil {
			return err
		}
		shaken = true

		return nil
	})
	if err != nil {
		return false, mapErr(op, err)
	}

	return shaken, nil
}
