package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

const commentColumns = `id, post_id, parent_comment_id, user_id, comment_text, created_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment

	if err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.ParentID,
		&c.UserID,
		&c.Text,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

// CommentsByPost возвращает плоский список комментариев поста
// в порядке создания (created_at ASC, id ASC).
func (s *Storage) CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	const op = "storage/postgres/comments/CommentsByPost"

	q := `SELECT ` + commentColumns + ` FROM post_comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := s.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		comments = append(comments, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}

func (s *Storage) CountComments(ctx context.Context, postID int64) (int64, error) {
	const op = "storage/postgres/comments/CountComments"

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM post_comments WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// CreateComment вставляет комментарий. Ответ принимается, только если
// родитель существует и принадлежит тому же посту.
// Ошибки: storage.ErrInvalidReference (нет поста/родителя или родитель из другого поста).
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/postgres/comments/CreateComment"

	q := `
	INSERT INTO post_comments (post_id, parent_comment_id, user_id, comment_text)
	SELECT $1, $2::bigint, $3, $4
	WHERE $2::bigint IS NULL
	   OR EXISTS (SELECT 1 FROM post_comments WHERE id = $2::bigint AND post_id = $1)
	RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, q,
		comment.PostID,
		comment.ParentID,
		comment.UserID,
		comment.Text,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidReference)
		}

		return nil, mapWriteErr(op, err)
	}

	return c, nil
}
