// Package redis рассылает инвалидации кэша запросов между репликами
// через Redis Pub/Sub.
//
// Каждая реплика публикует шаблоны ключей, устаревших после её записей,
// и применяет к своему кэшу шаблоны, опубликованные другими репликами.
// Собственные сообщения распознаются по origin и пропускаются.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pribylovaa/wave-feed/internal/querycache"
)

const defaultChannel = "wavefeed:invalidate"

// Invalidator — локальный кэш, куда применяются чужие инвалидации.
type Invalidator interface {
	Invalidate(patterns ...querycache.Key) int
}

// message — формат сообщения в канале.
type message struct {
	Origin string     `json:"origin"`
	Keys   [][]string `json:"keys"`
}

// Bus — Pub/Sub-шина инвалидаций.
type Bus struct {
	rdb     *goredis.Client
	channel string
	origin  string
	log     *slog.Logger
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение. Если channel пустой — используется "wavefeed:invalidate".
func New(ctx context.Context, redisURL, channel string, lg *slog.Logger) (*Bus, error) {
	const op = "querycache/redis/New"

	if channel == "" {
		channel = defaultChannel
	}

	if lg == nil {
		lg = slog.Default()
	}

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := goredis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Bus{
		rdb:     rdb,
		channel: channel,
		origin:  uuid.NewString(),
		log:     lg.With(slog.String("component", "invalidation_bus")),
	}, nil
}

// Publish отправляет шаблоны ключей другим репликам.
func (b *Bus) Publish(ctx context.Context, patterns []querycache.Key) error {
	const op = "querycache/redis/Publish"

	msg := message{Origin: b.origin, Keys: make([][]string, 0, len(patterns))}
	for _, p := range patterns {
		msg.Keys = append(msg.Keys, []string(p))
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Run подписывается на канал и применяет чужие инвалидации к target
// до отмены ctx. Битые сообщения пропускаются с предупреждением.
func (b *Bus) Run(ctx context.Context, target Invalidator) error {
	const op = "querycache/redis/Run"

	sub := b.rdb.Subscribe(ctx, b.channel)
	defer func() { _ = sub.Close() }()

	// Дожидаемся подтверждения подписки, чтобы не потерять первые сообщения.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.log.Info("invalidation_bus_subscribed", slog.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			b.apply(m.Payload, target)
		}
	}
}

func (b *Bus) apply(payload string, target Invalidator) {
	var msg message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		b.log.Warn("invalidation_message_malformed", slog.String("err", err.Error()))
		return
	}

	if msg.Origin == b.origin {
		return
	}

	patterns := make([]querycache.Key, 0, len(msg.Keys))
	for _, k := range msg.Keys {
		patterns = append(patterns, querycache.Key(k))
	}

	n := target.Invalidate(patterns...)
	b.log.Debug("invalidation_applied",
		slog.String("origin", msg.Origin),
		slog.Int("patterns", len(patterns)),
		slog.Int("invalidated", n),
	)
}

// Close закрывает клиент Redis.
func (b *Bus) Close() error { return b.rdb.Close() }
