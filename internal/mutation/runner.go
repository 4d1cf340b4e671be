package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// ErrInFlight — такая же запись (та же операция над теми же сущностями)
// ещё выполняется; повторная отправка отклоняется.
var ErrInFlight = errors.New("mutation in flight")

// Invalidator — локальный кэш, в котором помечаются устаревшие ключи.
type Invalidator interface {
	Invalidate(patterns ...querycache.Key) int
}

// Broadcaster рассылает инвалидации другим репликам.
type Broadcaster interface {
	Publish(ctx context.Context, patterns []querycache.Key) error
}

// Runner выполняет записи и применяет таблицу инвалидаций:
//   - запись завершилась ошибкой: кэш не трогается, ошибка возвращается как есть;
//   - запись успешна: все ключи операции помечаются устаревшими одним вызовом
//     Invalidate, затем в фоне рассылаются репликам.
//
// Повторов нет: политика повторов принадлежит клиенту бэкенда.
type Runner struct {
	cache          Invalidator
	bus            Broadcaster
	publishTimeout time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	wg      sync.WaitGroup
}

// Option настраивает Runner.
type Option func(*Runner)

// WithBroadcaster включает рассылку инвалидаций репликам.
func WithBroadcaster(b Broadcaster) Option {
	return func(r *Runner) { r.bus = b }
}

// WithPublishTimeout задаёт дедлайн одной рассылки (по умолчанию 2s).
func WithPublishTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.publishTimeout = d
		}
	}
}

// NewRunner создаёт Runner поверх кэша.
func NewRunner(cache Invalidator, opts ...Option) *Runner {
	r := &Runner{
		cache:          cache,
		publishTimeout: 2 * time.Second,
		pending:        make(map[string]struct{}),
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

// Run выполняет write как операцию op над t.
// Пока write не завершилась, Pending(op, t) == true, а повторный Run
// с теми же op и t возвращает ErrInFlight без вызова write.
func (r *Runner) Run(ctx context.Context, op Op, t Target, write func(ctx context.Context) error) error {
	const name = "mutation/Run"

	scope := scopeOf(op, t)

	r.mu.Lock()
	if _, busy := r.pending[scope]; busy {
		r.mu.Unlock()
		return fmt.Errorf("%s: %s: %w", name, op, ErrInFlight)
	}
	r.pending[scope] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, scope)
		r.mu.Unlock()
	}()

	if err := write(ctx); err != nil {
		return err
	}

	keys := Invalidations(op, t)
	n := r.cache.Invalidate(keys...)

	log.From(ctx).Debug("mutation_applied",
		slog.String("op", string(op)),
		slog.Int("keys", len(keys)),
		slog.Int("invalidated", n),
	)

	if r.bus != nil && len(keys) > 0 {
		r.publish(ctx, keys)
	}

	return nil
}

// Pending сообщает, выполняется ли сейчас запись op над t.
func (r *Runner) Pending(op Op, t Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, busy := r.pending[scopeOf(op, t)]
	return busy
}

// Wait дожидается завершения фоновых рассылок.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) publish(ctx context.Context, keys []querycache.Key) {
	lg := log.From(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.publishTimeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		if err := r.bus.Publish(ctx, keys); err != nil {
			lg.Warn("invalidation_publish_failed", slog.String("err", err.Error()))
		}
	}()
}

func scopeOf(op Op, t Target) string {
	return fmt.Sprintf("%s|%s|%d|%d|%s|%s", op, t.UserID, t.PostID, t.CommunityID, t.CommunityName, t.Username)
}
