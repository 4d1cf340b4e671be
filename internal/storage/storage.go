// Package storage описывает контракты бэкенда: строки реляций, удалённые
// процедуры, объектное хранилище и список чатов.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/email/refresh-token/имя сообщества).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference — ссылка на несуществующую сущность (post/community/parent comment).
	ErrInvalidReference = errors.New("invalid reference")
)

// PostStorage — реляция posts и связанные удалённые процедуры.
type PostStorage interface {
	// NewPosts — последние посты всех сообществ (created_at DESC).
	NewPosts(ctx context.Context, limit int) ([]models.Post, error)
	// PostByID — пост по id. Ошибки: ErrNotFound.
	PostByID(ctx context.Context, id int64) (*models.Post, error)
	// PostsByCommunity — посты сообщества (created_at DESC).
	PostsByCommunity(ctx context.Context, communityID int64) ([]models.Post, error)
	// PostsByPoster — посты автора (created_at DESC).
	PostsByPoster(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	// CreatePost вставляет пост; ID и CreatedAt заполняет хранилище.
	// Ошибки: ErrInvalidReference, если сообщества нет.
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	// PostsFromJoinedCommunities — процедура get_posts_from_joined_communities.
	PostsFromJoinedCommunities(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	// RecentPosts — процедура get_recent_posts (популярные за последнее время).
	RecentPosts(ctx context.Context) ([]models.Post, error)
}

// CommentStorage — реляция post_comments.
type CommentStorage interface {
	// CommentsByPost — все комментарии поста (created_at ASC, id ASC).
	CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	// CountComments — число комментариев поста.
	CountComments(ctx context.Context, postID int64) (int64, error)
	// CreateComment вставляет комментарий. Ошибки: ErrInvalidReference.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
}

// HandshakeStorage — реляция post_handshakes.
type HandshakeStorage interface {
	HandshakesByPost(ctx context.Context, postID int64) ([]models.Handshake, error)
	HandshakeExists(ctx context.Context, postID int64, userID uuid.UUID) (bool, error)
	// AddHandshake. Ошибки: ErrAlreadyExists, ErrInvalidReference.
	AddHandshake(ctx context.Context, postID int64, userID uuid.UUID) error
	// RemoveHandshake. Ошибки: ErrNotFound.
	RemoveHandshake(ctx context.Context, postID int64, userID uuid.UUID) error
}

// CommunityStorage — реляции communities, joined_communities и процедуры над ними.
type CommunityStorage interface {
	// ListCommunities — процедура get_data_from_communities.
	ListCommunities(ctx context.Context) ([]models.CommunitySummary, error)
	CommunityByName(ctx context.Context, name string) (*models.Community, error)
	CommunityByID(ctx context.Context, id int64) (*models.Community, error)
	// CreateCommunity. Ошибки: ErrAlreadyExists (имя занято).
	CreateCommunity(ctx context.Context, community models.Community) (*models.Community, error)
	// JoinStatus — процедура get_join_community_status.
	JoinStatus(ctx context.Context, userID uuid.UUID, communityID int64) (bool, error)
	// JoinCommunity. Ошибки: ErrAlreadyExists.
	JoinCommunity(ctx context.Context, userID uuid.UUID, communityID int64) error
	// LeaveCommunity. Ошибки: ErrNotFound.
	LeaveCommunity(ctx context.Context, userID uuid.UUID, communityID int64) error
}

// ProfileStorage — реляция profiles.
type ProfileStorage interface {
	ProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// UpdateUsername. Ошибки: ErrNotFound, ErrAlreadyExists.
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.Profile, error)
	// UpdateProfilePicture. Ошибки: ErrNotFound.
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) (*models.Profile, error)
}

// UserStorage — учётные записи и refresh-токены.
type UserStorage interface {
	// CreateUser создаёт пользователя и его профиль в одной транзакции.
	// Ошибки: ErrAlreadyExists (email или username заняты).
	CreateUser(ctx context.Context, user models.User, username string) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// SaveRefreshToken. Ошибки: ErrAlreadyExists (коллизия хэша).
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshToken: (true, nil) — отозван сейчас; (false, nil) — уже был отозван;
	// ErrNotFound — токена нет.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
}

// Storage — реляционная часть бэкенда целиком.
type Storage interface {
	PostStorage
	CommentStorage
	HandshakeStorage
	CommunityStorage
	ProfileStorage
	UserStorage
	Close()
}

// Upload — объект для загрузки в бакет.
type Upload struct {
	Name        string
	Body        io.Reader
	Size        int64
	ContentType string
	// Upsert разрешает перезапись существующего объекта.
	Upsert bool
}

// ObjectStorage — объектное хранилище: загрузка по имени и публичная ссылка.
type ObjectStorage interface {
	// Upload кладёт объект в бакет. Ошибки: ErrAlreadyExists (объект есть и Upsert=false).
	Upload(ctx context.Context, bucket string, up Upload) error
	// PublicURL возвращает публичную ссылку на объект.
	PublicURL(bucket, name string) string
}

// ChatStorage — список чатов пользователя.
type ChatStorage interface {
	ChatsByUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
}
