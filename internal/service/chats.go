package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// Chats — список чатов пользователя. Без хранилища чатов — пустой список.
func (s *Service) Chats(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	const op = "service/chats/Chats"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if s.chats == nil {
		return []models.Chat{}, nil
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyChats, userID), func(ctx context.Context) ([]models.Chat, error) {
		return s.chats.ChatsByUser(ctx, userID)
	})
}
