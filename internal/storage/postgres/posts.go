package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

// postColumns — порядок колонок posts для SELECT/RETURNING и scanPost.
const postColumns = `id, title, content, media_type, media_url, poster_uid, community_id, created_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		p         models.Post
		mediaType string
	)

	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&mediaType,
		&p.MediaURL,
		&p.PosterUID,
		&p.CommunityID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.MediaType = models.MediaType(mediaType)

	return &p, nil
}

// queryPosts выполняет запрос, возвращающий строки posts в порядке postColumns.
func (s *Storage) queryPosts(ctx context.Context, op, q string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

// NewPosts возвращает последние посты всех сообществ.
func (s *Storage) NewPosts(ctx context.Context, limit int) ([]models.Post, error) {
	const op = "storage/postgres/posts/NewPosts"

	q := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC LIMIT $1`

	return s.queryPosts(ctx, op, q, limit)
}

// PostByID возвращает пост по id.
func (s *Storage) PostByID(ctx context.Context, id int64) (*models.Post, error) {
	const op = "storage/postgres/posts/PostByID"

	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Storage) PostsByCommunity(ctx context.Context, communityID int64) ([]models.Post, error) {
	const op = "storage/postgres/posts/PostsByCommunity"

	q := `SELECT ` + postColumns + ` FROM posts WHERE community_id = $1 ORDER BY created_at DESC, id DESC`

	return s.queryPosts(ctx, op, q, communityID)
}

func (s *Storage) PostsByPoster(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	const op = "storage/postgres/posts/PostsByPoster"

	q := `SELECT ` + postColumns + ` FROM posts WHERE poster_uid = $1 ORDER BY created_at DESC, id DESC`

	return s.queryPosts(ctx, op, q, userID)
}

// CreatePost вставляет пост и возвращает сохранённую строку.
// Ошибки: storage.ErrInvalidReference, если сообщества или автора нет.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	const op = "storage/postgres/posts/CreatePost"

	q := `
	INSERT INTO posts (title, content, media_type, media_url, poster_uid, community_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + postColumns

	p, err := scanPost(s.db.QueryRow(ctx, q,
		post.Title,
		post.Content,
		string(post.MediaType),
		post.MediaURL,
		post.PosterUID,
		post.CommunityID,
	))
	if err != nil {
		return nil, mapWriteErr(op, err)
	}

	return p, nil
}

// PostsFromJoinedCommunities — домашняя лента пользователя.
func (s *Storage) PostsFromJoinedCommunities(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	const op = "storage/postgres/posts/PostsFromJoinedCommunities"

	q := `SELECT ` + postColumns + ` FROM get_posts_from_joined_communities($1)`

	return s.queryPosts(ctx, op, q, userID)
}

// RecentPosts — популярные посты последней недели.
func (s *Storage) RecentPosts(ctx context.Context) ([]models.Post, error) {
	const op = "storage/postgres/posts/RecentPosts"

	q := `SELECT ` + postColumns + ` FROM get_recent_posts()`

	return s.queryPosts(ctx, op, q)
}
