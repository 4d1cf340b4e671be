package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/config"
	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/storage"
	"github.com/pribylovaa/wave-feed/mocks"
)

// Тесты сервиса: хранилища подменены gomock-моками, кэш и Runner настоящие.
// Повторное чтение без ожидаемого вызова хранилища означает попадание в кэш.
//
// Запуск:
//   go test ./internal/service -v -race -count=1

func testConfig() Config {
	return Config{
		Auth: config.AuthConfig{
			JWTSecret:       "unit-secret-unit-secret-unit-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			Issuer:          "wave-feed",
			Audience:        []string{"wave-feed"},
		},
		Limits: config.LimitsConfig{
			CommentMaxRunes: 400,
			UploadMaxBytes:  1 << 20,
			FeedLimit:       50,
		},
		Buckets: config.BucketsConfig{
			PostMedia:         "post-media",
			CommunityPictures: "community-display-pictures",
			Avatars:           "avatars",
		},
	}
}

type deps struct {
	st     *mocks.MockStorage
	obj    *mocks.MockObjectStorage
	cache  *querycache.Cache
	runner *mutation.Runner
}

func newServiceWithMocks(t *testing.T) (*Service, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cache, err := querycache.New(querycache.Options{})
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	d := deps{
		st:     mocks.NewMockStorage(ctrl),
		obj:    mocks.NewMockObjectStorage(ctrl),
		cache:  cache,
		runner: mutation.NewRunner(cache),
	}

	return New(d.st, d.obj, d.cache, d.runner, testConfig()), d
}

func profile(id uuid.UUID, name string) *models.Profile {
	return &models.Profile{ID: id, Username: name, ProfilePictureURL: "http://cdn/" + name + ".png", Email: name + "@example.com"}
}

func ptr(v int64) *int64 { return &v }

func TestMapErr(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")

	cases := []struct {
		in   error
		want error
	}{
		{fmt.Errorf("x: %w", storage.ErrNotFound), ErrNotFound},
		{fmt.Errorf("x: %w", storage.ErrAlreadyExists), ErrConflict},
		{fmt.Errorf("x: %w", storage.ErrInvalidReference), ErrInvalidArgument},
		{fmt.Errorf("x: %w", mutation.ErrInFlight), ErrInFlight},
		{context.DeadlineExceeded, context.DeadlineExceeded},
		{ErrUnauthenticated, ErrUnauthenticated},
		{boom, ErrInternal},
	}

	for _, tc := range cases {
		require.ErrorIs(t, mapErr("op", tc.in), tc.want, "in=%v", tc.in)
	}

	require.ErrorIs(t, mapErr("op", boom), boom)
	require.NoError(t, mapErr("op", nil))
}

func TestNewPosts_ReadThroughWithAuthors(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	posts := []models.Post{
		{ID: 2, Title: "b", PosterUID: bob},
		{ID: 1, Title: "a", PosterUID: alice},
		{ID: 0, Title: "c", PosterUID: bob},
	}
	d.st.EXPECT().NewPosts(gomock.Any(), 50).Return(posts, nil).Times(1)
	d.st.EXPECT().ProfileByID(gomock.Any(), alice).Return(profile(alice, "alice"), nil).Times(1)
	d.st.EXPECT().ProfileByID(gomock.Any(), bob).Return(profile(bob, "bob"), nil).Times(1)

	for i := 0; i < 2; i++ {
		got, err := svc.NewPosts(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "bob", got[0].Author.Username)
		require.Equal(t, "alice", got[1].Author.Username)
	}
}

func TestHomeFeed_RequiresLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)

	_, err := svc.HomeFeed(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPost_NotFound(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	d.st.EXPECT().PostByID(gomock.Any(), int64(7)).Return(nil, fmt.Errorf("pg: %w", storage.ErrNotFound)).Times(2)

	_, err := svc.Post(context.Background(), 7)
	require.ErrorIs(t, err, ErrNotFound)

	// Ошибки не кэшируются.
	_, err = svc.Post(context.Background(), 7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfile_HidesEmail(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	id := uuid.New()
	d.st.EXPECT().ProfileByUsername(gomock.Any(), "neo").Return(profile(id, "neo"), nil)

	p, err := svc.Profile(context.Background(), " neo ")
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.Empty(t, p.Email)
}

func TestMe_IncludesEmailAndIsInvalidatedOnAuthChange(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	id := uuid.New()

	d.st.EXPECT().ProfileByID(gomock.Any(), id).Return(profile(id, "neo"), nil).Times(2)

	p, err := svc.Me(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "neo@example.com", p.Email)

	_, err = svc.Me(ctx, id)
	require.NoError(t, err)

	d.cache.Invalidate(mutation.Invalidations(mutation.OpAuthStateChanged, mutation.Target{UserID: id})...)

	_, err = svc.Me(ctx, id)
	require.NoError(t, err)
}

func TestChats(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)
	ctx := context.Background()
	uid := uuid.New()

	_, err := svc.Chats(ctx, uuid.Nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	empty, err := svc.Chats(ctx, uid)
	require.NoError(t, err)
	require.Empty(t, empty)

	chats := mocks.NewMockChatStorage(gomock.NewController(t))
	chats.EXPECT().ChatsByUser(gomock.Any(), uid).Return([]models.Chat{{ID: "c1", Name: "crew"}}, nil).Times(1)
	svc.SetChatStorage(chats)

	for i := 0; i < 2; i++ {
		got, err := svc.Chats(ctx, uid)
		require.NoError(t, err)
		require.Equal(t, []models.Chat{{ID: "c1", Name: "crew"}}, got)
	}
}
