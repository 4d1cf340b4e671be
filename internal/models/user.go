package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись для входа по e-mail и паролю.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken — серверная запись refresh-токена; хранится только хэш секрета.
type RefreshToken struct {
	RefreshTokenHash string
	UserID           uuid.UUID
	CreatedAt        time.Time
	ExpiresAt        time.Time
	Revoked          bool
}

// Session — пара токенов, выдаваемая при входе/регистрации/обновлении.
//   - AccessToken — короткоживущий JWT для заголовка Authorization;
//   - RefreshToken — случайный секрет для выпуска новой пары;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type Session struct {
	UserID          uuid.UUID `json:"user_id"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}
