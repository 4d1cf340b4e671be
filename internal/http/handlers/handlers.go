// Package handlers — REST-обработчики wave-feed поверх service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/service"
)

// Service — операции бизнес-логики, которые нужны обработчикам.
type Service interface {
	SignUp(ctx context.Context, username, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, error)

	NewPosts(ctx context.Context) ([]service.FeedPost, error)
	HomeFeed(ctx context.Context, userID uuid.UUID) ([]service.FeedPost, error)
	TrendingPosts(ctx context.Context) ([]service.FeedPost, error)
	Post(ctx context.Context, id int64) (*service.FeedPost, error)
	UserPosts(ctx context.Context, username string) ([]service.FeedPost, error)
	CreatePost(ctx context.Context, in service.CreatePostInput) (*models.Post, error)

	PostComments(ctx context.Context, postID int64) (*service.Thread, error)
	CommentsCount(ctx context.Context, postID int64) (int64, error)
	CreateComment(ctx context.Context, in service.CreateCommentInput) (*models.Comment, error)

	Handshakes(ctx context.Context, postID int64) ([]models.Handshake, error)
	ToggleHandshake(ctx context.Context, postID int64, userID uuid.UUID) (bool, error)

	Communities(ctx context.Context) ([]models.CommunitySummary, error)
	Community(ctx context.Context, name string) (*models.Community, error)
	CommunityPosts(ctx context.Context, name string) ([]service.FeedPost, error)
	JoinStatus(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	ToggleJoin(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	CreateCommunity(ctx context.Context, in service.CreateCommunityInput) (*models.Community, error)

	Profile(ctx context.Context, username string) (*models.Profile, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (*models.Profile, error)
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, picture *service.Media) (*models.Profile, error)

	Chats(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc            Service
	uploadMaxBytes int64
}

// New создаёт обработчики. uploadMaxBytes — предел размера одного файла.
func New(svc Service, uploadMaxBytes int64) *Handlers {
	return &Handlers{svc: svc, uploadMaxBytes: uploadMaxBytes}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}

		return invalidArgument("malformed JSON body")
	}

	return nil
}

// invalidArgument — локальная ошибка разбора запроса.
func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", service.ErrInvalidArgument, msg)
}

// pathID читает положительный целочисленный параметр маршрута.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidArgument(name + " must be a positive integer")
	}

	return id, nil
}
