package mutation

// Тесты Runner (runner.go).
//
// Проверяем:
//  - успешная запись инвалидирует ключи своего поста и не трогает чужие;
//  - ошибка записи возвращается как есть, кэш не меняется;
//  - повторная отправка во время выполнения отклоняется ErrInFlight;
//  - рассылка репликам не блокирует вызывающего, её ошибка не влияет на результат.

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/querycache"
)

func newCache(t *testing.T) *querycache.Cache {
	t.Helper()

	c, err := querycache.New(querycache.Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

// fakeBus — Broadcaster, запоминающий опубликованные шаблоны.
type fakeBus struct {
	mu    sync.Mutex
	got   [][]querycache.Key
	err   error
	block chan struct{}
}

func (b *fakeBus) Publish(ctx context.Context, patterns []querycache.Key) error {
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, patterns)

	return b.err
}

func (b *fakeBus) published() [][]querycache.Key {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]querycache.Key(nil), b.got...)
}

func fetchCount(t *testing.T, c *querycache.Cache, key querycache.Key, calls *atomic.Int32) {
	t.Helper()

	_, err := c.Fetch(context.Background(), key, func(context.Context) (any, error) {
		return calls.Add(1), nil
	})
	require.NoError(t, err)
}

func TestRun_CreateComment_InvalidatesOnlyThatPost(t *testing.T) {
	t.Parallel()

	c := newCache(t)
	r := NewRunner(c)

	var commentsP, countP, commentsQ atomic.Int32
	fetchCount(t, c, querycache.NewKey(KeyComments, 1), &commentsP)
	fetchCount(t, c, querycache.NewKey(KeyCommentsCount, 1), &countP)
	fetchCount(t, c, querycache.NewKey(KeyComments, 2), &commentsQ)

	err := r.Run(context.Background(), OpCreateComment, Target{PostID: 1}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	fetchCount(t, c, querycache.NewKey(KeyComments, 1), &commentsP)
	fetchCount(t, c, querycache.NewKey(KeyCommentsCount, 1), &countP)
	fetchCount(t, c, querycache.NewKey(KeyComments, 2), &commentsQ)

	require.EqualValues(t, 2, commentsP.Load())
	require.EqualValues(t, 2, countP.Load())
	require.EqualValues(t, 1, commentsQ.Load())
}

func TestRun_WriteFailure_LeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	c := newCache(t)
	bus := &fakeBus{}
	r := NewRunner(c, WithBroadcaster(bus))

	var calls atomic.Int32
	fetchCount(t, c, querycache.NewKey(KeyComments, 1), &calls)

	boom := errors.New("insert failed")
	err := r.Run(context.Background(), OpCreateComment, Target{PostID: 1}, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, boom, err)

	stale, ok := c.Stale(querycache.NewKey(KeyComments, 1))
	require.True(t, ok)
	require.False(t, stale)

	r.Wait()
	require.Empty(t, bus.published())
	require.False(t, r.Pending(OpCreateComment, Target{PostID: 1}))
}

func TestRun_DuplicateSubmissionRejectedWhilePending(t *testing.T) {
	t.Parallel()

	c := newCache(t)
	r := NewRunner(c)

	uid := uuid.New()
	target := Target{PostID: 5, UserID: uid}

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- r.Run(context.Background(), OpToggleHandshake, target, func(context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered
	require.True(t, r.Pending(OpToggleHandshake, target))

	var called bool
	err := r.Run(context.Background(), OpToggleHandshake, target, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrInFlight)
	require.False(t, called)

	// Другой пост — другая область, не блокируется.
	require.NoError(t, r.Run(context.Background(), OpToggleHandshake, Target{PostID: 6, UserID: uid},
		func(context.Context) error { return nil }))

	close(release)
	require.NoError(t, <-done)
	require.False(t, r.Pending(OpToggleHandshake, target))
}

func TestRun_BroadcastIsAsyncAndBestEffort(t *testing.T) {
	t.Parallel()

	c := newCache(t)
	bus := &fakeBus{block: make(chan struct{}), err: errors.New("redis down")}
	r := NewRunner(c, WithBroadcaster(bus), WithPublishTimeout(time.Second))

	start := time.Now()
	err := r.Run(context.Background(), OpToggleJoin, Target{CommunityName: "gophers"}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	close(bus.block)
	r.Wait()

	got := bus.published()
	require.Len(t, got, 1)
	require.Equal(t, []querycache.Key{{"joinStatus", "gophers"}}, got[0])
}

func TestRun_InvalidationVisibleToNextRead(t *testing.T) {
	t.Parallel()

	c := newCache(t)
	r := NewRunner(c)

	uid := uuid.New()
	c.Set(querycache.NewKey(KeyProfile, "neo"), "old")
	c.Set(querycache.NewKey(KeyPosterData, uid), "old")
	c.Set(querycache.NewKey(KeyProfile, "trinity"), "other")

	require.NoError(t, r.Run(context.Background(), OpUpdateUsername, Target{UserID: uid, Username: "neo2"},
		func(context.Context) error { return nil }))

	for _, k := range []querycache.Key{
		querycache.NewKey(KeyProfile, "neo"),
		querycache.NewKey(KeyPosterData, uid),
		querycache.NewKey(KeyProfile, "trinity"),
	} {
		_, ok := c.Get(k)
		require.False(t, ok, "key %s must be stale", k)
	}
}
