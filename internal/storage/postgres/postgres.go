// Package postgres реализует storage.Storage поверх PostgreSQL (pgxpool).
//
// Файлы пакета:
//   - postgres.go — конструктор пула и общие помощники;
//   - posts.go, comments.go, handshakes.go — контент постов;
//   - communities.go, profiles.go — сообщества и профили;
//   - users.go — учётные записи и refresh-токены.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pribylovaa/wave-feed/internal/storage"
)

// Storage — хранилище на базе пула соединений PostgreSQL.
type Storage struct {
	db *pgxpool.Pool
}

// New создает пул соединений и проверяет доступность базы.
// maxConns <= 0 оставляет значение из DSN (или значение pgxpool по умолчанию).
func New(ctx context.Context, dbURL string, maxConns int32) (*Storage, error) {
	const op = "storage/postgres/New"

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	cfg.ConnConfig.StatementCacheCapacity = 256

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// Ping проверяет соединение (для /healthz).
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// pgCode возвращает код ошибки PostgreSQL или пустую строку.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// mapWriteErr переводит ошибки ограничений в ошибки слоя хранения.
func mapWriteErr(op string, err error) error {
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidReference)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
