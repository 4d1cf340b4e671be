package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// CreateCommunityInput — новое сообщество; картинка обязательна.
type CreateCommunityInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	Picture     *Media
}

// Communities — список сообществ со счётчиками.
func (s *Service) Communities(ctx context.Context) ([]models.CommunitySummary, error) {
	const op = "service/communities/Communities"

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyCommunities), s.storage.ListCommunities)
}

// Community — сообщество по имени.
func (s *Service) Community(ctx context.Context, name string) (*models.Community, error) {
	const op = "service/communities/Community"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: community name is required", op, ErrInvalidArgument)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyCommunity, name), func(ctx context.Context) (*models.Community, error) {
		return s.storage.CommunityByName(ctx, name)
	})
}

// CommunityPosts — посты сообщества.
func (s *Service) CommunityPosts(ctx context.Context, name string) ([]FeedPost, error) {
	const op = "service/communities/CommunityPosts"

	c, err := s.Community(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyCommunityPosts, c.ID), func(ctx context.Context) ([]models.Post, error) {
		return s.storage.PostsByCommunity(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, op, posts)
}

// JoinStatus сообщает, состоит ли пользователь в сообществе.
// Для анонимного пользователя — false без обращения к бэкенду.
func (s *Service) JoinStatus(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	const op = "service/communities/JoinStatus"

	if userID == uuid.Nil {
		return false, nil
	}

	c, err := s.Community(ctx, name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyJoinStatus, c.Name, userID), func(ctx context.Context) (bool, error) {
		return s.storage.JoinStatus(ctx, userID, c.ID)
	})
}

// ToggleJoin вступает в сообщество или выходит из него.
// Возвращает состояние после записи.
func (s *Service) ToggleJoin(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	const op = "service/communities/ToggleJoin"

	if userID == uuid.Nil {
		return false, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	c, err := s.Community(ctx, name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	target := mutation.Target{CommunityID: c.ID, CommunityName: c.Name, UserID: userID}

	var joined bool
	err = s.runner.Run(ctx, mutation.OpToggleJoin, target, func(ctx context.Context) error {
		member, err := s.storage.JoinStatus(ctx, userID, c.ID)
		if err != nil {
			return err
		}

		if member {
			if err := s.storage.LeaveCommunity(ctx, userID, c.ID); err != nil {
				return err
			}
			joined = false

			return nil
		}

		if err := s.storage.JoinCommunity(ctx, userID, c.ID); err != nil {
			return err
		}
		joined = true

		return nil
	})
	if err != nil {
		return false, mapErr(op, err)
	}

	return joined, nil
}

// CreateCommunity создаёт сообщество; картинка загружается в бакет
// картинок сообществ до вставки строки.
func (s *Service) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	const op = "service/communities/CreateCommunity"

	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	name := s.plainText(in.Name)
	if name == "" || strings.ContainsAny(name, "/?#") {
		return nil, fmt.Errorf("%s: %w: community name is required and must not contain '/', '?' or '#'", op, ErrInvalidArgument)
	}

	description := s.plainText(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%s: %w: description is required", op, ErrInvalidArgument)
	}

	if _, err := s.checkMedia(op, in.Picture, false); err != nil {
		return nil, err
	}

	var created *models.Community
	err := s.runner.Run(ctx, mutation.OpCreateCommunity, mutation.Target{CommunityName: name, UserID: in.UserID}, func(ctx context.Context) error {
		object := objectName(name, in.Picture.Filename)
		if err := s.objects.Upload(ctx, s.cfg.Buckets.CommunityPictures, in.Picture.upload(object, false)); err != nil {
			return err
		}

		c, err := s.storage.CreateCommunity(ctx, models.Community{
			Name:        name,
			Description: description,
			Image:       s.objects.PublicURL(s.cfg.Buckets.CommunityPictures, object),
			CreatorID:   in.UserID,
		})
		if err != nil {
			return err
		}
		created = c

		return nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("community_created",
		slog.Int64("community_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}
