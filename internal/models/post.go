// Package models содержит доменные сущности wave-feed.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaType — тип вложения поста.
type MediaType string

const (
	MediaNone  MediaType = ""
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Post — пост в сообществе.
//   - MediaURL — публичная ссылка на объект в бакете post-media (может быть пустой);
//   - PosterUID — автор поста;
//   - CommunityID — сообщество, в котором опубликован пост.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	MediaType   MediaType `json:"media_type,omitempty"`
	MediaURL    string    `json:"media_url,omitempty"`
	PosterUID   uuid.UUID `json:"poster_uid"`
	CommunityID int64     `json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Handshake — «рукопожатие» (лайк) пользователя под постом.
type Handshake struct {
	PostID    int64     `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
