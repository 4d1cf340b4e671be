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

const communityColumns = `id, name, description, image, creator_id, created_at`

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var c models.Community

	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Image,
		&c.CreatorID,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

// ListCommunities возвращает сообщества со счётчиками участников и постов.
func (s *Storage) ListCommunities(ctx context.Context) ([]models.CommunitySummary, error) {
	const op = "storage/postgres/communities/ListCommunities"

	rows, err := s.db.Query(ctx, `SELECT `+communityColumns+`, members_count, posts_count FROM get_data_from_communities()`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.CommunitySummary, 0)
	for rows.Next() {
		var cs models.CommunitySummary
		if err := rows.Scan(
			&cs.ID,
			&cs.Name,
			&cs.Description,
			&cs.Image,
			&cs.CreatorID,
			&cs.CreatedAt,
			&cs.MembersCount,
			&cs.PostsCount,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Storage) CommunityByName(ctx context.Context, name string) (*models.Community, error) {
	const op = "storage/postgres/communities/CommunityByName"

	return s.oneCommunity(ctx, op, `SELECT `+communityColumns+` FROM communities WHERE name = $1`, name)
}

func (s *Storage) CommunityByID(ctx context.Context, id int64) (*models.Community, error) {
	const op = "storage/postgres/communities/CommunityByID"

	return s.oneCommunity(ctx, op, `SELECT `+communityColumns+` FROM communities WHERE id = $1`, id)
}

func (s *Storage) oneCommunity(ctx context.Context, op, q string, arg any) (*models.Community, error) {
	c, err := scanCommunity(s.db.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// CreateCommunity создаёт сообщество.
// Ошибки: storage.ErrAlreadyExists (имя занято), storage.ErrInvalidReference (нет профиля создателя).
func (s *Storage) CreateCommunity(ctx context.Context, community models.Community) (*models.Community, error) {
	const op = "storage/postgres/communities/CreateCommunity"

	c, err := scanCommunity(s.db.QueryRow(ctx, `
	INSERT INTO communities (name, description, image, creator_id)
	VALUES ($1, $2, $3, $4)
	RETURNING `+communityColumns,
		community.Name,
		community.Description,
		community.Image,
		community.CreatorID,
	))
	if err != nil {
		return nil, mapWriteErr(op, err)
	}

	return c, nil
}

// JoinStatus сообщает, состоит ли пользователь в сообществе.
func (s *Storage) JoinStatus(ctx context.Context, userID uuid.UUID, communityID int64) (bool, error) {
	const op = "storage/postgres/communities/JoinStatus"

	var joined bool
	if err := s.db.QueryRow(ctx, `SELECT get_join_community_status($1, $2)`, userID, communityID).Scan(&joined); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return joined, nil
}

// JoinCommunity. Ошибки: storage.ErrAlreadyExists, storage.ErrInvalidReference.
func (s *Storage) JoinCommunity(ctx context.Context, userID uuid.UUID, communityID int64) error {
	const op = "storage/postgres/communities/JoinCommunity"

	_, err := s.db.Exec(ctx, `INSERT INTO joined_communities (user_id, community_id) VALUES ($1, $2)`, userID, communityID)
	if err != nil {
		return mapWriteErr(op, err)
	}

	return nil
}

// LeaveCommunity. Ошибки: storage.ErrNotFound.
func (s *Storage) LeaveCommunity(ctx context.Context, userID uuid.UUID, communityID int64) error {
	const op = "storage/postgres/communities/LeaveCommunity"

	tag, err := s.db.Exec(ctx, `DELETE FROM joined_communities WHERE user_id = $1 AND community_id = $2`, userID, communityID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
