// Package querycache — процессный read-through кэш результатов запросов
// к бэкенду, адресуемый семантическими ключами.
//
// Основные свойства:
//   - одновременные чтения одного ключа схлопываются в один запрос
//     (golang.org/x/sync/singleflight);
//   - Invalidate помечает записи устаревшими атомарно относительно читателей:
//     следующее чтение после возврата из Invalidate всегда идёт в бэкенд;
//   - результат запроса, начатого до инвалидации, в кэш не попадает;
//   - ошибки не кэшируются;
//   - размер ограничен LRU (github.com/hashicorp/golang-lru/v2).
//
// Значения разделяются между всеми читателями и не должны изменяться.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// FetchFunc загружает значение ключа из бэкенда.
type FetchFunc func(ctx context.Context) (any, error)

// Options — параметры кэша.
type Options struct {
	// Capacity — максимальное число записей (по умолчанию 10000).
	Capacity int
	// StaleTime — сколько запись считается свежей после загрузки.
	// 0 — запись устаревает только через Invalidate.
	StaleTime time.Duration
	// FetchTimeout — дедлайн одного запроса в бэкенд (0 — без дедлайна).
	FetchTimeout time.Duration
	// RefetchOnInvalidate — после Invalidate перезапрашивать устаревшие записи в фоне.
	RefetchOnInvalidate bool
	// RefetchConcurrency — предел одновременных фоновых перезапросов (по умолчанию 8).
	RefetchConcurrency int64
	// Registerer — куда регистрировать метрики (nil — не регистрировать).
	Registerer prometheus.Registerer
	// Logger — логгер фоновых операций (nil — slog.Default()).
	Logger *slog.Logger
	// Now — источник времени (для тестов).
	Now func() time.Time
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	stale     bool
	fetch     FetchFunc
}

// flight — состояние запроса в бэкенд, выполняющегося прямо сейчас.
type flight struct {
	key   Key
	stale bool
}

// Cache — кэш результатов запросов. Безопасен для конкурентного использования.
type Cache struct {
	opts    Options
	log     *slog.Logger
	metrics *metrics

	mu       sync.Mutex
	entries  *lru.Cache[string, *entry]
	inflight map[string]*flight

	group singleflight.Group
	sem   *semaphore.Weighted

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New создаёт кэш.
func New(opts Options) (*Cache, error) {
	const op = "querycache/New"

	if opts.Capacity <= 0 {
		opts.Capacity = 10000
	}

	if opts.RefetchConcurrency <= 0 {
		opts.RefetchConcurrency = 8
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	entries, err := lru.New[string, *entry](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	base, cancel := context.WithCancel(context.Background())

	return &Cache{
		opts:     opts,
		log:      lg.With(slog.String("component", "querycache")),
		metrics:  newMetrics(opts.Registerer),
		entries:  entries,
		inflight: make(map[string]*flight),
		sem:      semaphore.NewWeighted(opts.RefetchConcurrency),
		base:     base,
		cancel:   cancel,
	}, nil
}

// Close останавливает фоновые перезапросы и ждёт их завершения.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}

// Fetch возвращает свежее значение ключа или загружает его через fn.
// Одновременные вызовы для одного ключа разделяют один запрос в бэкенд.
// Отмена ctx прерывает ожидание, но не общий запрос: им могут пользоваться
// другие читатели.
func (c *Cache) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	id := key.id()

	c.mu.Lock()
	if e, ok := c.entries.Get(id); ok && c.fresh(e) {
		v := e.value
		c.mu.Unlock()
		c.metrics.hits.WithLabelValues(key.Head()).Inc()
		return v, nil
	}
	c.mu.Unlock()

	c.metrics.misses.WithLabelValues(key.Head()).Inc()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		return c.load(shared, key, fn)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load выполняет запрос и сохраняет результат, если ключ не был
// инвалидирован за время запроса.
func (c *Cache) load(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	id := key.id()
	f := &flight{key: key}

	c.mu.Lock()
	c.inflight[id] = f
	c.mu.Unlock()

	if c.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.FetchTimeout)
		defer cancel()
	}

	v, err := fn(ctx)

	c.mu.Lock()
	if c.inflight[id] == f {
		delete(c.inflight, id)
	}

	if err == nil && !f.stale {
		c.entries.Add(id, &entry{
			key:       key,
			value:     v,
			fetchedAt: c.opts.Now(),
			fetch:     fn,
		})
	}
	c.mu.Unlock()

	if err != nil {
		c.metrics.fetchErrors.WithLabelValues(key.Head()).Inc()
		return nil, err
	}

	return v, nil
}

func (c *Cache) fresh(e *entry) bool {
	if e.stale {
		return false
	}

	if c.opts.StaleTime > 0 && c.opts.Now().Sub(e.fetchedAt) >= c.opts.StaleTime {
		return false
	}

	return true
}

// Get возвращает значение ключа без обращения к бэкенду, если запись свежая.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key.id())
	if !ok || !c.fresh(e) {
		return nil, false
	}

	return e.value, true
}

// Set записывает значение ключа напрямую (последний писатель побеждает).
// Запись без FetchFunc не перезапрашивается в фоне после инвалидации.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(key.id(), &entry{
		key:       key,
		value:     value,
		fetchedAt: c.opts.Now(),
	})
}

// Stale сообщает состояние записи: ok=false, если записи нет.
func (c *Cache) Stale(key Key) (stale bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(key.id())
	if !ok {
		return false, false
	}

	return !c.fresh(e), true
}

// Len — число записей (включая устаревшие).
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Invalidate помечает устаревшими все записи и выполняющиеся запросы,
// ключи которых начинаются с любого из шаблонов. Все совпадения
// помечаются под одной блокировкой: читатель видит либо ни одного,
// либо все изменения. Возвращает число затронутых записей.
//
// Invalidate не ждёт перезапросов: при RefetchOnInvalidate они
// планируются в фоне в пределах RefetchConcurrency.
func (c *Cache) Invalidate(patterns ...Key) int {
	if len(patterns) == 0 {
		return 0
	}

	type target struct {
		key Key
		fn  FetchFunc
	}

	var refetch []target
	touched := 0

	c.mu.Lock()
	for _, id := range c.entries.Keys() {
		e, ok := c.entries.Peek(id)
		if !ok || !matchesAny(e.key, patterns) {
			continue
		}

		e.stale = true
		touched++
		c.metrics.invalidations.WithLabelValues(e.key.Head()).Inc()

		if e.fetch != nil {
			refetch = append(refetch, target{key: e.key, fn: e.fetch})
		}
	}

	for id, f := range c.inflight {
		if !matchesAny(f.key, patterns) {
			continue
		}

		f.stale = true
		c.group.Forget(id)
		c.metrics.invalidations.WithLabelValues(f.key.Head()).Inc()
	}
	c.mu.Unlock()

	if c.opts.RefetchOnInvalidate {
		for _, t := range refetch {
			c.scheduleRefetch(t.key, t.fn)
		}
	}

	return touched
}

// scheduleRefetch запускает фоновый перезапрос, если есть свободный слот.
// Без слота запись остаётся устаревшей до следующего чтения.
func (c *Cache) scheduleRefetch(key Key, fn FetchFunc) {
	if c.base.Err() != nil || !c.sem.TryAcquire(1) {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.sem.Release(1)

		id := key.id()
		ch := c.group.DoChan(id, func() (any, error) {
			return c.load(c.base, key, fn)
		})

		select {
		case res := <-ch:
			if res.Err != nil {
				c.log.Warn("refetch_failed",
					slog.String("key", key.String()),
					slog.String("err", res.Err.Error()),
				)
			}
		case <-c.base.Done():
		}
	}()
}

// Fetch — типизированная обёртка над Cache.Fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: unexpected value %T for key %s", v, key)
	}

	return t, nil
}
