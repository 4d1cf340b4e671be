package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

const maxUsernameRunes = 32

// Profile — публичный профиль по имени пользователя (без e-mail).
func (s *Service) Profile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "service/profiles/Profile"

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%s: %w: username is required", op, ErrInvalidArgument)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyProfile, username), func(ctx context.Context) (*models.Profile, error) {
		p, err := s.storage.ProfileByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		p.Email = ""

		return p, nil
	})
}

// Me — собственный профиль пользователя (с e-mail).
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "service/profiles/Me"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyUserData, userID), func(ctx context.Context) (*models.Profile, error) {
		return s.storage.ProfileByID(ctx, userID)
	})
}

// Author — данные автора поста или комментария.
func (s *Service) Author(ctx context.Context, userID uuid.UUID) (models.Author, error) {
	const op = "service/profiles/Author"

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyPosterData, userID), func(ctx context.Context) (models.Author, error) {
		p, err := s.storage.ProfileByID(ctx, userID)
		if err != nil {
			return models.Author{}, err
		}

		return models.AuthorOf(*p), nil
	})
}

// authorsOf собирает авторов по id. Удалённые профили пропускаются.
func (s *Service) authorsOf(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Author, error) {
	out := make(map[uuid.UUID]models.Author, len(ids))

	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}

		a, err := s.Author(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}

			return nil, err
		}
		out[id] = a
	}

	return out, nil
}

// UpdateUsername меняет имя пользователя. Занятое имя — ErrUsernameTaken.
func (s *Service) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (*models.Profile, error) {
	const op = "service/profiles/UpdateUsername"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	username, err := validateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated *models.Profile
	err = s.runner.Run(ctx, mutation.OpUpdateUsername, mutation.Target{UserID: userID, Username: username}, func(ctx context.Context) error {
		p, err := s.storage.UpdateUsername(ctx, userID, username)
		if err != nil {
			return err
		}
		updated = p

		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("username_updated", slog.String("user_id", userID.String()))

	return updated, nil
}

// UpdateProfilePicture загружает аватар в "<user>/avatar-<ts>" бакета аватаров
// (с перезаписью) и сохраняет ссылку в профиле.
func (s *Service) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, picture *Media) (*models.Profile, error) {
	const op = "service/profiles/UpdateProfilePicture"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if _, err := s.checkMedia(op, picture, false); err != nil {
		return nil, err
	}

	name := userID.String() + "/avatar-" + strconv.FormatInt(s.now().UnixMilli(), 10)

	var updated *models.Profile
	err := s.runner.Run(ctx, mutation.OpUpdateProfilePicture, mutation.Target{UserID: userID}, func(ctx context.Context) error {
		if err := s.objects.Upload(ctx, s.cfg.Buckets.Avatars, picture.upload(name, true)); err != nil {
			return err
		}

		p, err := s.storage.UpdateProfilePicture(ctx, userID, s.objects.PublicURL(s.cfg.Buckets.Avatars, name))
		if err != nil {
			return err
		}
		updated = p

		return nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("profile_picture_updated", slog.String("user_id", userID.String()))

	return updated, nil
}

// validateUsername: непустое, до maxUsernameRunes символов, без пробелов и "/".
func validateUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	if len([]rune(name)) > maxUsernameRunes {
		return "", fmt.Errorf("%w: username is longer than %d characters", ErrInvalidArgument, maxUsernameRunes)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || r == '/' {
			return "", fmt.Errorf("%w: username must not contain spaces or slashes", ErrInvalidArgument)
		}
	}

	return name, nil
}
