package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

type CommunityRepository struct {
	pool *pgxpool.Pool
}

func NewCommunityRepository(pool *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{pool: pool}
}

func (r *CommunityRepository) ListPosts(ctx context.Context, limit int) ([]model.CommunityPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.user_id, u.name AS user_name, p.content, p.type, p.image_url,
			p.likes, p.comments, p.created_at
		FROM community_posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CommunityPost])
	if err != nil {
		return nil, fmt.Errorf("failed to collect posts: %w", err)
	}

	return posts, nil
}

func (r *CommunityRepository) CreatePost(ctx context.Context, in model.NewCommunityPost) (uuid.UUID, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO community_posts (user_id, content, type, image_url, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, in.UserID, in.Content, in.Type, in.ImageURL, in.Likes, createdAt).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create post: %w", missingParent(err, "users"))
	}
	return id, nil
}

// LikePost increments the like counter in place and returns the new count.
func (r *CommunityRepository) LikePost(ctx context.Context, postID uuid.UUID) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `
		UPDATE community_posts SET likes = likes + 1
		WHERE id = $1
		RETURNING likes`, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, sqlerr.NotFound("community_posts")
		}
		return 0, fmt.Errorf("failed to like post: %w", err)
	}
	return likes, nil
}

func (r *CommunityRepository) ActiveChallenges(ctx context.Context) ([]model.Challenge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, type, target_value, reward_credits, start_date, end_date,
			participants, is_active, created_at
		FROM challenges
		WHERE is_active
		ORDER BY end_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenges: %w", err)
	}

	challenges, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Challenge])
	if err != nil {
		return nil, fmt.Errorf("failed to collect challenges: %w", err)
	}

	return challenges, nil
}

func (r *CommunityRepository) PublicGroups(ctx context.Context) ([]model.CommunityGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, category, member_count, is_public, created_by, created_at
		FROM community_groups
		WHERE is_public
		ORDER BY member_count DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CommunityGroup])
	if err != nil {
		return nil, fmt.Errorf("failed to collect groups: %w", err)
	}

	return groups, nil
}

// JoinGroup adds a membership once. member_count moves only when a new
// membership row was written.
func (r *CommunityRepository) JoinGroup(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var joined bool

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM community_groups WHERE id = $1)`, groupID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sqlerr.NotFound("community_groups")
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO group_memberships (group_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (group_id, user_id) DO NOTHING`, groupID, userID)
		if err != nil {
			return missingParent(err, "users")
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		joined = true
		_, err = tx.Exec(ctx, `UPDATE community_groups SET member_count = member_count + 1 WHERE id = $1`, groupID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to join group: %w", err)
	}

	return joined, nil
}
