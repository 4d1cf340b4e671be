package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// FeedPost — пост ленты с данными автора.
type FeedPost struct {
	models.Post
	Author models.Author `json:"author"`
}

// CreatePostInput — данные нового поста.
type CreatePostInput struct {
	UserID      uuid.UUID
	CommunityID int64
	Title       string
	Content     string
	Media       *Media
}

// NewPosts — последние посты всех сообществ.
func (s *Service) NewPosts(ctx context.Context) ([]FeedPost, error) {
	const op = "service/posts/NewPosts"

	posts, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyNewPosts), func(ctx context.Context) ([]models.Post, error) {
		return s.storage.NewPosts(ctx, s.cfg.Limits.FeedLimit)
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, op, posts)
}

// HomeFeed — посты сообществ, в которых состоит пользователь.
func (s *Service) HomeFeed(ctx context.Context, userID uuid.UUID) ([]FeedPost, error) {
	const op = "service/posts/HomeFeed"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	posts, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyPosts, userID), func(ctx context.Context) ([]models.Post, error) {
		return s.storage.PostsFromJoinedCommunities(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, op, posts)
}

// TrendingPosts — популярные посты последней недели.
func (s *Service) TrendingPosts(ctx context.Context) ([]FeedPost, error) {
	const op = "service/posts/TrendingPosts"

	posts, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyTrendingPosts), s.storage.RecentPosts)
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, op, posts)
}

// Post — пост по id.
func (s *Service) Post(ctx context.Context, id int64) (*FeedPost, error) {
	const op = "service/posts/Post"

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	post, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyPost, id), func(ctx context.Context) (*models.Post, error) {
		return s.storage.PostByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.withAuthors(ctx, op, []models.Post{*post})
	if err != nil {
		return nil, err
	}

	return &out[0], nil
}

// UserPosts — посты пользователя по имени.
func (s *Service) UserPosts(ctx context.Context, username string) ([]FeedPost, error) {
	const op = "service/posts/UserPosts"

	profile, err := s.Profile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyUserPosts, profile.ID), func(ctx context.Context) ([]models.Post, error) {
		return s.storage.PostsByPoster(ctx, profile.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, op, posts)
}

// CreatePost публикует пост. Вложение, если есть, загружается в бакет
// медиа постов до вставки строки; ошибка загрузки отменяет публикацию.
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const op = "service/posts/CreatePost"

	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	title := s.plainText(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w: title is required", op, ErrInvalidArgument)
	}

	if in.CommunityID <= 0 {
		return nil, fmt.Errorf("%s: %w: community is required", op, ErrInvalidArgument)
	}

	mediaType := models.MediaNone
	if in.Media != nil {
		mt, err := s.checkMedia(op, in.Media, true)
		if err != nil {
			return nil, err
		}
		mediaType = mt
	}

	community, err := s.storage.CommunityByID(ctx, in.CommunityID)
	if err != nil {
		return nil, mapErr(op, err)
	}

	post := models.Post{
		Title:       title,
		Content:     s.plainText(in.Content),
		MediaType:   mediaType,
		PosterUID:   in.UserID,
		CommunityID: community.ID,
	}

	target := mutation.Target{
		CommunityID:   community.ID,
		CommunityName: community.Name,
		UserID:        in.UserID,
	}

	var created *models.Post
	err = s.runner.Run(ctx, mutation.OpCreatePost, target, func(ctx context.Context) error {
		if in.Media != nil {
			name := objectName(in.UserID.String(), in.Media.Filename)
			if err := s.objects.Upload(ctx, s.cfg.Buckets.PostMedia, in.Media.upload(name, false)); err != nil {
				return err
			}
			post.MediaURL = s.objects.PublicURL(s.cfg.Buckets.PostMedia, name)
		}

		p, err := s.storage.CreatePost(ctx, post)
		if err != nil {
			return err
		}
		created = p

		return nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("post_created",
		slog.Int64("post_id", created.ID),
		slog.Int64("community_id", created.CommunityID),
	)

	return created, nil
}

// withAuthors дополняет посты данными авторов.
func (s *Service) withAuthors(ctx context.Context, op string, posts []models.Post) ([]FeedPost, error) {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.PosterUID)
	}

	authors, err := s.authorsOf(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, FeedPost{Post: p, Author: authors[p.PosterUID]})
	}

	return out, nil
}
