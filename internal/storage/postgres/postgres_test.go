package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/wave-feed/internal/models"
)

// Интеграционные тесты пакета postgres:
// - поднимают PostgreSQL через testcontainers-go (postgres:16-alpine);
// - применяют migrations/1_init.up.sql;
// - проверяют репозитории и удалённые процедуры схемы.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — корень репозитория относительно файла тестов.
func repoRootFromThisFile() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres поднимает временный PostgreSQL со схемой и возвращает хранилище.
// Без GO_TEST_INTEGRATION тест пропускается.
func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, readMigration(t, "1_init.up.sql"))
	pool.Close()
	require.NoError(t, err)

	st, err := New(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	return st
}

// seedUser создаёт пользователя с профилем.
func seedUser(t *testing.T, st *Storage, username string) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:           uuid.New(),
		Email:        username + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.CreateUser(context.Background(), u, username))
	return u.ID
}

func seedCommunity(t *testing.T, st *Storage, name string, creator uuid.UUID) *models.Community {
	t.Helper()
	c, err := st.CreateCommunity(context.Background(), models.Community{
		Name:        name,
		Description: "about " + name,
		CreatorID:   creator,
	})
	require.NoError(t, err)
	return c
}

func seedPost(t *testing.T, st *Storage, title string, poster uuid.UUID, communityID int64) *models.Post {
	t.Helper()
	p, err := st.CreatePost(context.Background(), models.Post{
		Title:       title,
		Content:     "body of " + title,
		PosterUID:   poster,
		CommunityID: communityID,
	})
	require.NoError(t, err)
	return p
}
