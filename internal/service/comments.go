package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/commenttree"
	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// Thread — ветка комментариев поста.
//   - Comments — корни в порядке создания, ответы вложены в Children;
//   - Authors — данные авторов по user_id;
//   - Count — число комментариев, попавших в дерево.
type Thread struct {
	Comments []*commenttree.Node      `json:"comments"`
	Authors  map[string]models.Author `json:"authors"`
	Count    int                      `json:"count"`
}

// CreateCommentInput — новый комментарий или ответ (ParentID != nil).
type CreateCommentInput struct {
	UserID   uuid.UUID
	PostID   int64
	ParentID *int64
	Text     string
}

// PostComments строит ветку комментариев поста из плоского списка.
// Комментарии, чей родитель не найден, в ветку не попадают.
func (s *Service) PostComments(ctx context.Context, postID int64) (*Thread, error) {
	const op = "service/comments/PostComments"

	if postID <= 0 {
		return nil, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	records, err := cached(ctx, s, op, querycache.NewKey(mutation.KeyComments, postID), func(ctx context.Context) ([]models.Comment, error) {
		return s.storage.CommentsByPost(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	roots := commenttree.Build(records)

	ids := make([]uuid.UUID, 0, len(records))
	commenttree.Walk(roots, func(n *commenttree.Node, _ int) bool {
		ids = append(ids, n.UserID)
		return true
	})

	authors, err := s.authorsOf(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]models.Author, len(authors))
	for id, a := range authors {
		byID[id.String()] = a
	}

	return &Thread{Comments: roots, Authors: byID, Count: len(ids)}, nil
}

// CommentsCount — число комментариев поста.
func (s *Service) CommentsCount(ctx context.Context, postID int64) (int64, error) {
	const op = "service/comments/CommentsCount"

	if postID <= 0 {
		return 0, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	return cached(ctx, s, op, querycache.NewKey(mutation.KeyCommentsCount, postID), func(ctx context.Context) (int64, error) {
		return s.storage.CountComments(ctx, postID)
	})
}

// CreateComment добавляет комментарий или ответ. Текст очищается от разметки;
// пустой или длиннее лимита текст отклоняется до обращения к бэкенду.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if in.PostID <= 0 {
		return nil, fmt.Errorf("%s: %w: post id must be positive", op, ErrInvalidArgument)
	}

	if in.ParentID != nil && *in.ParentID <= 0 {
		return nil, fmt.Errorf("%s: %w: parent comment id must be positive", op, ErrInvalidArgument)
	}

	text, err := s.commentText(in.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created *models.Comment
	err = s.runner.Run(ctx, mutation.OpCreateComment, mutation.Target{PostID: in.PostID, UserID: in.UserID}, func(ctx context.Context) error {
		c, err := s.storage.CreateComment(ctx, models.Comment{
			PostID:   in.PostID,
			ParentID: in.ParentID,
			UserID:   in.UserID,
			Text:     text,
		})
		if err != nil {
			return err
		}
		created = c

		return nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	log.From(ctx).Info("comment_created",
		slog.Int64("post_id", created.PostID),
		slog.Int64("comment_id", created.ID),
		slog.Bool("reply", !created.IsRoot()),
	)

	return created, nil
}

// commentText обрезает пробелы, убирает разметку и проверяет длину в символах.
func (s *Service) commentText(raw string) (string, error) {
	text := s.plainText(raw)
	if text == "" {
		return "", fmt.Errorf("%w: comment text is required", ErrInvalidArgument)
	}

	if n := utf8.RuneCountInString(text); n > s.cfg.Limits.CommentMaxRunes {
		return "", fmt.Errorf("%w: comment is %d characters, limit is %d", ErrInvalidArgument, n, s.cfg.Limits.CommentMaxRunes)
	}

	return text, nil
}
