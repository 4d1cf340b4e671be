package redis

// Тесты шины инвалидаций:
//  - unit: apply пропускает собственные и битые сообщения, применяет чужие;
//  - integration: две шины на одном Redis (testcontainers-go), запись на одной
//    реплике инвалидирует кэш другой.
//
// Запуск интеграционных тестов:
//   GO_TEST_INTEGRATION=1 go test ./internal/querycache/redis -v -race -count=1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/wave-feed/internal/querycache"
)

type recorder struct {
	mu  sync.Mutex
	got [][]querycache.Key
}

func (r *recorder) Invalidate(patterns ...querycache.Key) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, patterns)
	return len(patterns)
}

func (r *recorder) calls() [][]querycache.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]querycache.Key(nil), r.got...)
}

func silent() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestApply_SkipsOwnAndMalformedMessages(t *testing.T) {
	t.Parallel()

	b := &Bus{origin: "me", log: silent()}
	rec := &recorder{}

	own, _ := json.Marshal(message{Origin: "me", Keys: [][]string{{"comments", "1"}}})
	b.apply(string(own), rec)
	b.apply("{not json", rec)
	require.Empty(t, rec.calls())

	peer, _ := json.Marshal(message{Origin: "peer", Keys: [][]string{{"comments", "1"}, {"commentsCount", "1"}}})
	b.apply(string(peer), rec)

	require.Equal(t, [][]querycache.Key{{{"comments", "1"}, {"commentsCount", "1"}}}, rec.calls())
}

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestIntegration_PeerInvalidationReachesOtherReplica(t *testing.T) {
	url := startRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(ctx, url, "test:invalidate", silent())
	require.NoError(t, err)
	defer a.Close()

	b, err := New(ctx, url, "test:invalidate", silent())
	require.NoError(t, err)
	defer b.Close()

	cache, err := querycache.New(querycache.Options{})
	require.NoError(t, err)
	defer cache.Close()
	cache.Set(querycache.NewKey("handshakes", 7), 3)

	go func() { _ = b.Run(ctx, cache) }()

	// Подписка асинхронна: публикуем, пока сообщение не дойдёт.
	require.Eventually(t, func() bool {
		_ = a.Publish(ctx, []querycache.Key{querycache.NewKey("handshakes", 7)})
		stale, ok := cache.Stale(querycache.NewKey("handshakes", 7))
		return ok && stale
	}, 10*time.Second, 100*time.Millisecond)
}

func TestIntegration_New_FailsOnUnreachableRedis(t *testing.T) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, "redis://127.0.0.1:1/0", "", silent())
	require.Error(t, err)
}
