package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

const mentorColumns = `id, name, subtitle, specialty, description, rating, sessions_count, price,
	categories, is_online, avatar_url, created_at`

type MentorRepository struct {
	pool *pgxpool.Pool
}

func NewMentorRepository(pool *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{pool: pool}
}

func (r *MentorRepository) collect(rows pgx.Rows, err error) ([]model.Mentor, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	mentors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Mentor])
	if err != nil {
		return nil, fmt.Errorf("failed to collect mentors: %w", err)
	}
	return mentors, nil
}

// List returns all mentors, best rated first.
func (r *MentorRepository) List(ctx context.Context) ([]model.Mentor, error) {
	return r.collect(r.pool.Query(ctx, `SELECT `+mentorColumns+` FROM mentors ORDER BY rating DESC, name ASC`))
}

func (r *MentorRepository) ListByCategory(ctx context.Context, category string) ([]model.Mentor, error) {
	return r.collect(r.pool.Query(ctx, `
		SELECT `+mentorColumns+`
		FROM mentors
		WHERE categories @> ARRAY[$1::text]
		ORDER BY rating DESC, name ASC`, category))
}

func (r *MentorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Mentor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mentorColumns+` FROM mentors WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor: %w", err)
	}

	mentor, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Mentor])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound("mentors")
		}
		return nil, fmt.Errorf("failed to collect mentor: %w", err)
	}

	return &mentor, nil
}

func (r *MentorRepository) Create(ctx context.Context, m model.Mentor) (*model.Mentor, error) {
	if m.Categories == nil {
		m.Categories = []string{}
	}

	rows, err := r.pool.Query(ctx, `
		INSERT INTO mentors (name, subtitle, specialty, description, rating, sessions_count, price,
			categories, is_online, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+mentorColumns,
		m.Name, m.Subtitle, m.Specialty, m.Description, m.Rating, m.SessionsCount, m.Price,
		m.Categories, m.IsOnline, m.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create mentor: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Mentor])
	if err != nil {
		return nil, fmt.Errorf("failed to collect created mentor: %w", err)
	}

	return &created, nil
}

func (r *MentorRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM mentors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count mentors: %w", err)
	}
	return n, nil
}

func (r *MentorRepository) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]model.MentorSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.user_id, s.mentor_id, m.name AS mentor_name, s.topic, s.type, s.status,
			s.scheduled_at, s.duration_minutes, s.rating, s.notes, s.created_at
		FROM mentor_sessions s
		JOIN mentors m ON m.id = s.mentor_id
		WHERE s.user_id = $1
		ORDER BY s.scheduled_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor sessions: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.MentorSession])
	if err != nil {
		return nil, fmt.Errorf("failed to collect mentor sessions: %w", err)
	}

	return sessions, nil
}

// CreateSession books a session and bumps the mentor's session counter.
func (r *MentorRepository) CreateSession(ctx context.Context, in model.NewMentorSession) (uuid.UUID, error) {
	var id uuid.UUID

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE mentors SET sessions_count = sessions_count + 1 WHERE id = $1`, in.MentorID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return sqlerr.NotFound("mentors")
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO mentor_sessions (user_id, mentor_id, topic, type, status, scheduled_at, duration_minutes, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			in.UserID, in.MentorID, in.Topic, in.Type, in.Status, in.ScheduledAt, in.DurationMinutes, in.Rating,
		).Scan(&id)
		return missingParent(err, "users")
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create mentor session: %w", err)
	}

	return id, nil
}

// ToggleFavorite flips the favorite flag and reports the new state.
func (r *MentorRepository) ToggleFavorite(ctx context.Context, userID, mentorID uuid.UUID) (bool, error) {
	var favorite bool

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM mentor_favorites WHERE user_id = $1 AND mentor_id = $2`, userID, mentorID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO mentor_favorites (user_id, mentor_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, mentorID)
		if err != nil {
			if sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
				return sqlerr.NotFound(fkTable(err))
			}
			return err
		}
		favorite = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return favorite, nil
}

func (r *MentorRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Mentor, error) {
	return r.collect(r.pool.Query(ctx, `
		SELECT m.id, m.name, m.subtitle, m.specialty, m.description, m.rating, m.sessions_count, m.price,
			m.categories, m.is_online, m.avatar_url, m.created_at
		FROM mentor_favorites f
		JOIN mentors m ON m.id = f.mentor_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID))
}
