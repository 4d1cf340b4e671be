package models

import "github.com/google/uuid"

// Profile — публичный профиль пользователя.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"user_name"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	Email             string    `json:"email,omitempty"`
}

// Author — сокращённые данные автора, встраиваемые в ленты и ветки комментариев.
type Author struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"user_name"`
	ProfilePictureURL string    `json:"profile_picture_url"`
}

// AuthorOf возвращает встраиваемое представление профиля.
func AuthorOf(p Profile) Author {
	return Author{ID: p.ID, Username: p.Username, ProfilePictureURL: p.ProfilePictureURL}
}
