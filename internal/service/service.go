// Package service содержит бизнес-логику wave-feed: ленты, посты,
// ветки комментариев, сообщества, профили, чаты и аутентификацию.
//
// Основные аспекты:
//   - каждое чтение идёт через кэш запросов (querycache) под семантическим
//     ключом, общим с таблицей инвалидаций (mutation);
//   - каждая запись выполняется через mutation.Runner: после успешной записи
//     устаревают ровно те ключи, что перечислены для операции, после
//     неуспешной кэш не меняется;
//   - валидация ввода выполняется до обращения к бэкенду;
//   - ошибки хранилища переводятся в ошибки сервиса (см. переменные ниже),
//     транспорт отображает их в HTTP-статусы.
package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pribylovaa/wave-feed/internal/config"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/session"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

var (
	// ErrInvalidArgument — некорректный ввод. HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated — операция требует входа. HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound — сущность не найдена. HTTP 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict — нарушение уникальности. HTTP 409.
	ErrConflict = errors.New("conflict")
	// ErrInFlight — такая же запись ещё выполняется. HTTP 429.
	ErrInFlight = errors.New("request already in flight")
	// ErrInternal — сбой бэкенда. HTTP 500.
	ErrInternal = errors.New("internal error")

	// ErrInvalidCredentials — пара email/пароль неверна. HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен некорректен или неизвестен. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк. HTTP 401.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked — токен отозван. HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRefreshTokenCollision — исчерпаны попытки выпустить уникальный refresh-токен. HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrEmailTaken — e-mail уже занят. HTTP 409.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken — имя пользователя уже занято. HTTP 409.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidEmail — e-mail некорректен. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword — пароль не проходит политику сложности. HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")
	// ErrEmptyPassword — пароль пустой. HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")
)

// Config — параметры сервиса.
type Config struct {
	Auth    config.AuthConfig
	Limits  config.LimitsConfig
	Buckets config.BucketsConfig
}

// Service — бизнес-логика wave-feed. Безопасен для конкурентного использования.
type Service struct {
	storage  storage.Storage
	objects  storage.ObjectStorage
	chats    storage.ChatStorage // nil — чаты не сконфигурированы
	sessions *session.Broker     // nil — события сессий не публикуются

	cache  *querycache.Cache
	runner *mutation.Runner

	cfg    Config
	strict *bluemonday.Policy
	now    func() time.Time
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, objects storage.ObjectStorage, cache *querycache.Cache, runner *mutation.Runner, cfg Config) *Service {
	return &Service{
		storage: st,
		objects: objects,
		cache:   cache,
		runner:  runner,
		cfg:     cfg,
		strict:  bluemonday.StrictPolicy(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// plainText убирает разметку и возвращает обычный текст: сущности,
// которые экранирует bluemonday, раскодируются обратно.
func (s *Service) plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(raw)))
}

// SetChatStorage подключает хранилище чатов (опционально).
func (s *Service) SetChatStorage(c storage.ChatStorage) {
	s.chats = c
}

// SetSessionBroker подключает поток событий сессий (опционально).
func (s *Service) SetSessionBroker(b *session.Broker) {
	s.sessions = b
}

// mapErr переводит ошибки хранилища и Runner в ошибки сервиса.
// Ошибки контекста и уже переведённые ошибки сервиса проходят как есть.
func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, storage.ErrInvalidReference):
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	case errors.Is(err, mutation.ErrInFlight):
		return fmt.Errorf("%s: %w", op, ErrInFlight)
	case isServiceErr(err):
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

func isServiceErr(err error) bool {
	for _, target := range []error{
		ErrInvalidArgument, ErrUnauthenticated, ErrNotFound, ErrConflict, ErrInFlight, ErrInternal,
		ErrInvalidCredentials, ErrInvalidToken, ErrTokenExpired, ErrTokenRevoked, ErrRefreshTokenCollision,
		ErrEmailTaken, ErrUsernameTaken, ErrInvalidEmail, ErrWeakPassword, ErrEmptyPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
