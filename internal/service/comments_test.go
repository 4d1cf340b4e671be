package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

func TestPostComments_BuildsThreadWithAuthors(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	alice, bob := uuid.New(), uuid.New()

	records := []models.Comment{
		{ID: 1, PostID: 5, UserID: alice, Text: "root"},
		{ID: 2, PostID: 5, ParentID: ptr(1), UserID: bob, Text: "reply"},
		{ID: 3, PostID: 5, ParentID: ptr(99), UserID: bob, Text: "orphan"},
		{ID: 4, PostID: 5, UserID: bob, Text: "second root"},
	}
	d.st.EXPECT().CommentsByPost(gomock.Any(), int64(5)).Return(records, nil)
	d.st.EXPECT().ProfileByID(gomock.Any(), alice).Return(profile(alice, "alice"), nil)
	d.st.EXPECT().ProfileByID(gomock.Any(), bob).Return(profile(bob, "bob"), nil)

	th, err := svc.PostComments(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, th.Count)
	require.Len(t, th.Comments, 2)
	require.EqualValues(t, 1, th.Comments[0].ID)
	require.Len(t, th.Comments[0].Children, 1)
	require.EqualValues(t, 2, th.Comments[0].Children[0].ID)
	require.EqualValues(t, 4, th.Comments[1].ID)
	require.Equal(t, "alice", th.Authors[alice.String()].Username)
	require.Equal(t, "bob", th.Authors[bob.String()].Username)
}

func TestPostComments_InvalidPostID(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)

	_, err := svc.PostComments(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateComment_InvalidatesOnlyThatPost(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	uid := uuid.New()

	d.st.EXPECT().CommentsByPost(gomock.Any(), int64(1)).Return([]models.Comment{}, nil).Times(2)
	d.st.EXPECT().CountComments(gomock.Any(), int64(1)).Return(int64(0), nil)
	d.st.EXPECT().CountComments(gomock.Any(), int64(1)).Return(int64(1), nil)
	d.st.EXPECT().CommentsByPost(gomock.Any(), int64(2)).Return([]models.Comment{}, nil).Times(1)

	_, err := svc.PostComments(ctx, 1)
	require.NoError(t, err)
	n, err := svc.CommentsCount(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, n)
	_, err = svc.PostComments(ctx, 2)
	require.NoError(t, err)

	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			c.ID = 10
			return &c, nil
		})

	created, err := svc.CreateComment(ctx, CreateCommentInput{UserID: uid, PostID: 1, Text: "hello"})
	require.NoError(t, err)
	require.EqualValues(t, 10, created.ID)

	stale, ok := d.cache.Stale(querycache.NewKey(mutation.KeyComments, 1))
	require.True(t, ok)
	require.True(t, stale)
	stale, ok = d.cache.Stale(querycache.NewKey(mutation.KeyComments, 2))
	require.True(t, ok)
	require.False(t, stale)

	_, err = svc.PostComments(ctx, 1)
	require.NoError(t, err)
	n, err = svc.CommentsCount(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	_, err = svc.PostComments(ctx, 2)
	require.NoError(t, err)
}

func TestCreateComment_ValidationRunsBeforeBackend(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithMocks(t)
	uid := uuid.New()

	cases := []struct {
		name string
		in   CreateCommentInput
		want error
	}{
		{"anonymous", CreateCommentInput{PostID: 1, Text: "hi"}, ErrUnauthenticated},
		{"empty", CreateCommentInput{UserID: uid, PostID: 1, Text: "   "}, ErrInvalidArgument},
		{"markup only", CreateCommentInput{UserID: uid, PostID: 1, Text: "<b></b>"}, ErrInvalidArgument},
		{"too long", CreateCommentInput{UserID: uid, PostID: 1, Text: strings.Repeat("я", 401)}, ErrInvalidArgument},
		{"bad post", CreateCommentInput{UserID: uid, PostID: 0, Text: "hi"}, ErrInvalidArgument},
		{"bad parent", CreateCommentInput{UserID: uid, PostID: 1, ParentID: ptr(0), Text: "hi"}, ErrInvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateComment(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateComment_LimitCountsCharacters(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			return &c, nil
		})

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: uuid.New(),
		PostID: 1,
		Text:   strings.Repeat("я", 400),
	})
	require.NoError(t, err)
}

func TestCreateComment_SanitizesText(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	parent := ptr(3)

	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			require.Equal(t, "hi there", c.Text)
			require.Equal(t, parent, c.ParentID)
			return &c, nil
		})

	c, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:   uuid.New(),
		PostID:   1,
		ParentID: parent,
		Text:     "  <script>x()</script><b>hi</b> there ",
	})
	require.NoError(t, err)
	require.False(t, c.IsRoot())
}

func TestCreateComment_KeepsPunctuationAsPlainText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"apostrophe", "Tom's", "Tom's"},
		{"quotes and ampersand", `Tom's "take": 1 < 2 & ok`, `Tom's "take": 1 < 2 & ok`},
		{"entity typed as text", "AT&amp;T", "AT&T"},
		{"markup stripped", "<i>a</i> & b", "a & b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newServiceWithMocks(t)

			d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
					return &c, nil
				})

			c, err := svc.CreateComment(context.Background(), CreateCommentInput{
				UserID: uuid.New(),
				PostID: 1,
				Text:   tc.in,
			})
			require.NoError(t, err)
			require.Equal(t, tc.want, c.Text)
		})
	}
}

func TestCreateComment_LimitCountsStoredText(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)

	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			require.Equal(t, strings.Repeat("&", 400), c.Text)
			return &c, nil
		})

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: uuid.New(),
		PostID: 1,
		Text:   strings.Repeat("&", 400),
	})
	require.NoError(t, err)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: uuid.New(),
		PostID: 1,
		Text:   strings.Repeat("<", 401),
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateComment_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()

	d.st.EXPECT().CommentsByPost(gomock.Any(), int64(1)).Return([]models.Comment{}, nil).Times(1)
	_, err := svc.PostComments(ctx, 1)
	require.NoError(t, err)

	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: uuid.New(), PostID: 1, Text: "hi"})
	require.ErrorIs(t, err, ErrInternal)

	stale, ok := d.cache.Stale(querycache.NewKey(mutation.KeyComments, 1))
	require.True(t, ok)
	require.False(t, stale)

	_, err = svc.PostComments(ctx, 1)
	require.NoError(t, err)
}

func TestCreateComment_ParentFromAnotherPost(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("pg: %w", storage.ErrInvalidReference))

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:   uuid.New(),
		PostID:   1,
		ParentID: ptr(77),
		Text:     "hi",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateComment_DuplicateSubmitIsRejected(t *testing.T) {
	t.Parallel()

	svc, d := newServiceWithMocks(t)
	ctx := context.Background()
	uid := uuid.New()

	entered := make(chan struct{})
	release := make(chan struct{})
	d.st.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			close(entered)
			<-release
			return &c, nil
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: uid, PostID: 1, Text: "first"})
		done <- err
	}()

	<-entered
	_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: uid, PostID: 1, Text: "again"})
	require.ErrorIs(t, err, ErrInFlight)

	close(release)
	require.NoError(t, <-done)
}
