package models

import (
	"time"

	"github.com/google/uuid"
)

// Community — сообщество, в котором публикуются посты.
type Community struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunitySummary — строка агрегированного списка сообществ
// (удалённая процедура get_data_from_communities).
type CommunitySummary struct {
	Community
	MembersCount int64 `json:"members_count"`
	PostsCount   int64 `json:"posts_count"`
}
