package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

func TestIntegration_CreateUser_UniqueEmailAndUsername(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	id := seedUser(t, st, "tank")

	got, err := st.UserByEmail(ctx, "TANK@example.com")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)

	byID, err := st.UserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "tank@example.com", byID.Email)

	now := time.Now().UTC()
	dupEmail := models.User{ID: uuid.New(), Email: "Tank@Example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.ErrorIs(t, st.CreateUser(ctx, dupEmail, "tank2"), storage.ErrAlreadyExists)

	// Занятый username откатывает и создание пользователя.
	dupName := models.User{ID: uuid.New(), Email: "dozer@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.ErrorIs(t, st.CreateUser(ctx, dupName, "tank"), storage.ErrAlreadyExists)
	_, err = st.UserByEmail(ctx, "dozer@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_RefreshTokens_Revoke(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	uid := seedUser(t, st, "switch")
	now := time.Now().UTC()
	tok := &models.RefreshToken{
		RefreshTokenHash: "hash-1",
		UserID:           uid,
		CreatedAt:        now,
		ExpiresAt:        now.Add(time.Hour),
	}

	require.NoError(t, st.SaveRefreshToken(ctx, tok))
	require.ErrorIs(t, st.SaveRefreshToken(ctx, tok), storage.ErrAlreadyExists)

	got, err := st.RefreshTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, uid, got.UserID)
	require.False(t, got.Revoked)

	revoked, err := st.RevokeRefreshToken(ctx, "hash-1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = st.RevokeRefreshToken(ctx, "hash-1")
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = st.RevokeRefreshToken(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
