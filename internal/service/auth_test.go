package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/session"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

const goodPassword = "Str0ng!pass"

func TestSignUp_IssuesSessionAndPublishesEvent(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	broker := session.NewBroker(4)
	t.Cleanup(broker.Close)
	svc.SetSessionBroker(broker)
	events, unsubscribe := broker.Subscribe()
	defer unsubscribe()

	var created models.User
	d.st.EXPECT().UserByEmail(gomock.Any(), "neo@example.com").Return(nil, fmt.Errorf("pg: %w", storage.ErrNotFound))
	d.st.EXPECT().CreateUser(gomock.Any(), gomock.Any(), "neo").
		DoAndReturn(func(_ context.Context, u models.User, _ string) error {
			created = u
			return nil
		})
	d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	sess, err := svc.SignUp(context.Background(), "neo", " Neo@Example.com ", goodPassword)
	require.NoError(t, err)
	require.Equal(t, created.ID, sess.UserID)
	require.Equal(t, "neo@example.com", created.Email)
	require.True(t, checkPassword(created.PasswordHash, goodPassword))
	require.NotEmpty(t, sess.RefreshToken)

	uid, err := svc.ValidateToken(context.Background(), sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, uid)

	select {
	case e := <-events:
		require.Equal(t, session.SignedIn, e.Kind)
		require.Equal(t, created.ID, e.UserID)
	case <-time.After(time.Second):
		t.Fatal("no session event")
	}
}

func TestSignUp_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)

	cases := []struct {
		name                      string
		username, email, password string
		want                      error
	}{
		{"bad email", "neo", "not-an-email", goodPassword, ErrInvalidEmail},
		{"empty password", "neo", "neo@example.com", "", ErrEmptyPassword},
		{"weak password", "neo", "neo@example.com", "password", ErrWeakPassword},
		{"empty username", " ", "neo@example.com", goodPassword, ErrInvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignUp_Conflicts(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()

	d.st.EXPECT().UserByEmail(gomock.Any(), "neo@example.com").Return(&models.User{ID: uuid.New()}, nil)
	_, err := svc.SignUp(ctx, "neo", "neo@example.com", goodPassword)
	require.ErrorIs(t, err, ErrEmailTaken)

	d.st.EXPECT().UserByEmail(gomock.Any(), "trinity@example.com").Return(nil, storage.ErrNotFound)
	d.st.EXPECT().CreateUser(gomock.Any(), gomock.Any(), "neo").Return(fmt.Errorf("pg: %w", storage.ErrAlreadyExists))
	_, err = svc.SignUp(ctx, "neo", "trinity@example.com", goodPassword)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()

	hash, err := hashPassword(goodPassword)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "neo@example.com", PasswordHash: hash}

	d.st.EXPECT().UserByEmail(gomock.Any(), "neo@example.com").Return(user, nil).Times(2)
	d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	sess, err := svc.SignIn(ctx, "neo@example.com", goodPassword)
	require.NoError(t, err)
	require.Equal(t, user.ID, sess.UserID)

	_, err = svc.SignIn(ctx, "neo@example.com", "Wr0ng!pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	d.st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)
	_, err = svc.SignIn(ctx, "ghost@example.com", goodPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "neo@example.com"}
	hash := hashRefresh("old-token")

	d.st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(&models.RefreshToken{
		RefreshTokenHash: hash,
		UserID:           user.ID,
		ExpiresAt:        time.Now().Add(time.Hour),
	}, nil)
	d.st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	d.st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(true, nil)
	d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *models.RefreshToken) error {
			require.NotEqual(t, hash, tok.RefreshTokenHash)
			require.Equal(t, user.ID, tok.UserID)
			return nil
		})

	sess, err := svc.Refresh(ctx, "old-token")
	require.NoError(t, err)
	require.NotEqual(t, "old-token", sess.RefreshToken)
}

func TestRefresh_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	uid := uuid.New()

	_, err := svc.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrInvalidToken)

	d.st.EXPECT().RefreshTokenByHash(gomock.Any(), hashRefresh("unknown")).Return(nil, storage.ErrNotFound)
	_, err = svc.Refresh(ctx, "unknown")
	require.ErrorIs(t, err, ErrInvalidToken)

	d.st.EXPECT().RefreshTokenByHash(gomock.Any(), hashRefresh("revoked")).Return(&models.RefreshToken{
		UserID: uid, Revoked: true, ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	_, err = svc.Refresh(ctx, "revoked")
	require.ErrorIs(t, err, ErrTokenRevoked)

	d.st.EXPECT().RefreshTokenByHash(gomock.Any(), hashRefresh("expired")).Return(&models.RefreshToken{
		UserID: uid, ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	_, err = svc.Refresh(ctx, "expired")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	hash := hashRefresh("tok")
	token := &models.RefreshToken{RefreshTokenHash: hash, UserID: uuid.New()}

	d.st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(token, nil).Times(2)
	d.st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(true, nil)
	d.st.EXPECT().RevokeRefreshToken(gomock.Any(), hash).Return(false, nil)

	require.NoError(t, svc.SignOut(ctx, "tok"))
	require.ErrorIs(t, svc.SignOut(ctx, "tok"), ErrTokenRevoked)
	require.ErrorIs(t, svc.SignOut(ctx, ""), ErrInvalidToken)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)
	ctx := context.Background()
	uid := uuid.New()

	expired, err := svc.generateAccessToken(ctx, uid, "neo@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.ValidateToken(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	other, _ := newServiceWithMocks(t)
	other.cfg.Auth.JWTSecret = "another-secret-another-secret-another"
	foreign, err := other.generateAccessToken(ctx, uid, "neo@example.com", time.Now())
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, foreign)
	require.ErrorIs(t, err, ErrInvalidToken)

	valid, err := svc.generateAccessToken(ctx, uid, "neo@example.com", time.Now())
	require.NoError(t, err)
	got, err := svc.ValidateToken(ctx, valid)
	require.NoError(t, err)
	require.Equal(t, uid, got)
}

func TestGenerateRefreshToken_RetriesOnCollision(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	uid := uuid.New()

	gomock.InOrder(
		d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists),
		d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil),
	)

	plain, err := svc.generateRefreshToken(context.Background(), uid)
	require.NoError(t, err)
	require.NotEmpty(t, plain)

	d.st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists).Times(5)
	_, err = svc.generateRefreshToken(context.Background(), uid)
	require.ErrorIs(t, err, ErrRefreshTokenCollision)
}

func TestWatchSessions_InvalidatesUserData(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	broker := session.NewBroker(4)
	t.Cleanup(broker.Close)
	svc.SetSessionBroker(broker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.WatchSessions(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	uid := uuid.New()
	d.st.EXPECT().ProfileByID(gomock.Any(), uid).Return(profile(uid, "neo"), nil).Times(2)

	_, err := svc.Me(context.Background(), uid)
	require.NoError(t, err)

	key := querycache.NewKey(mutation.KeyUserData, uid)
	// Подписка происходит внутри горутины: публикуем, пока событие не будет обработано.
	require.Eventually(t, func() bool {
		broker.Publish(session.Event{Kind: session.SignedOut, UserID: uid, At: time.Now()})
		stale, _ := d.cache.Stale(key)
		return stale
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Me(context.Background(), uid)
	require.NoError(t, err)
}

func TestPasswordPolicy(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, validatePassword(""), ErrEmptyPassword)
	require.ErrorIs(t, validatePassword("Aa1!"), ErrWeakPassword)
	require.ErrorIs(t, validatePassword("alllowercase1!"), ErrWeakPassword)
	require.NoError(t, validatePassword(goodPassword))
}
