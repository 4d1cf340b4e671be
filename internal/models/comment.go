package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment — плоская запись комментария к посту.
// ParentID == nil (или 0 в строках, записанных в обход сервиса) означает
// корневой комментарий; иначе это ответ на комментарий с указанным id
// в рамках того же поста.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	ParentID  *int64    `json:"parent_comment_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot сообщает, что комментарий не ссылается на родителя.
func (c Comment) IsRoot() bool { return c.ParentID == nil || *c.ParentID == 0 }
