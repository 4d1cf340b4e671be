package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/pkg/redact"
	"github.com/pribylovaa/wave-feed/internal/session"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

// SignUp регистрирует пользователя с профилем и сразу выдаёт сессию.
func (s *Service) SignUp(ctx context.Context, username, email, password string) (*models.Session, error) {
	const op = "service/auth/SignUp"

	name, err := validateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapErr(op, err)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	now := s.now()
	user := models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user, name); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// E-mail проверен выше: конфликт даёт имя пользователя.
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("user_signed_up",
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(normEmail)),
	)

	return s.issueSession(ctx, &user, "", session.SignedIn)
}

// SignIn выполняет вход по email и паролю.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "service/auth/SignIn"

	normEmail, err := validateEmail(email)
	if err != nil || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, mapErr(op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		log.From(ctx).Warn("sign_in_bad_password", slog.String("email", redact.Email(normEmail)))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issueSession(ctx, user, "", session.SignedIn)
}

// Refresh выдаёт новую пару токенов; предъявленный refresh-токен отзывается.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	const op = "service/auth/Refresh"

	token, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, mapErr(op, err)
	}

	return s.issueSession(ctx, user, token.RefreshTokenHash, session.TokenRefreshed)
}

// SignOut отзывает refresh-токен.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	const op = "service/auth/SignOut"

	if refreshToken == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	hash := hashRefresh(refreshToken)

	token, err := s.storage.RefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return mapErr(op, err)
	}

	revoked, err := s.storage.RevokeRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return mapErr(op, err)
	}

	if !revoked {
		return fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	s.publishSession(session.SignedOut, token.UserID)
	log.From(ctx).Info("user_signed_out", slog.String("user_id", token.UserID.String()))

	return nil
}

// ValidateToken проверяет access-токен и возвращает id пользователя.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	const op = "service/auth/ValidateToken"

	uid, err := s.validateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return uid, nil
}

// issueSession выпускает пару токенов. Если oldRefreshHash != "",
// старый refresh-токен отзывается; повторное использование даёт ErrTokenRevoked.
func (s *Service) issueSession(ctx context.Context, user *models.User, oldRefreshHash string, kind session.Kind) (*models.Session, error) {
	const op = "service/auth/issueSession"

	if oldRefreshHash != "" {
		revoked, err := s.storage.RevokeRefreshToken(ctx, oldRefreshHash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return nil, mapErr(op, err)
		}

		if !revoked {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
		}
	}

	now := s.now()

	access, err := s.generateAccessToken(ctx, user.ID, user.Email, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	plain, err := s.generateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, mapErr(op, err)
	}

	s.publishSession(kind, user.ID)

	return &models.Session{
		UserID:          user.ID,
		AccessToken:     access,
		RefreshToken:    plain,
		AccessExpiresAt: now.Add(s.cfg.Auth.AccessTokenTTL),
	}, nil
}

func (s *Service) publishSession(kind session.Kind, userID uuid.UUID) {
	if s.sessions == nil {
		return
	}

	s.sessions.Publish(session.Event{Kind: kind, UserID: userID, At: s.now()})
}

func hashRefresh(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет формат email и приводит его к нижнему регистру.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}

// validatePassword: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	if pw == "" {
		return ErrEmptyPassword
	}

	if len([]rune(pw)) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return ErrWeakPassword
	}

	return nil
}
