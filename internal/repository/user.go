package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

const userColumns = `id, email, name, phone, date_of_birth, gender, height, weight, sport, level,
	bio, avatar_url, preferences, credits, total_score, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user together with an empty leaderboard entry.
func (r *UserRepository) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	var user model.User

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO users (email, name, password_hash, sport, level, credits, total_score)
			VALUES (lower(@email), @name, @password_hash, @sport, @level, @credits, @total_score)
			RETURNING `+userColumns, pgx.NamedArgs{
			"email":         strings.TrimSpace(in.Email),
			"name":          in.Name,
			"password_hash": nullIfEmpty(in.PasswordHash),
			"sport":         in.Sport,
			"level":         in.Level,
			"credits":       in.Credits,
			"total_score":   in.TotalScore,
		})
		if err != nil {
			return err
		}

		user, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `INSERT INTO leaderboard (user_id, score, rank) VALUES ($1, $2, 0)`, user.ID, user.TotalScore)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound("users")
		}
		return nil, fmt.Errorf("failed to collect user: %w", err)
	}

	return &user, nil
}

// GetCredentialsByEmail matches email case-insensitively.
func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, password_hash
		FROM users
		WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}

	creds, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Credentials])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound("users")
		}
		return nil, fmt.Errorf("failed to collect credentials: %w", err)
	}

	return &creds, nil
}

// Update applies the non-nil fields of patch.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) error {
	args := pgx.NamedArgs{"id": id}
	sets := []string{"updated_at = now()"}

	set := func(column string, value any) {
		args[column] = value
		sets = append(sets, fmt.Sprintf("%s = @%s", column, column))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.DateOfBirth != nil {
		set("date_of_birth", *patch.DateOfBirth)
	}
	if patch.Gender != nil {
		set("gender", *patch.Gender)
	}
	if patch.Height != nil {
		set("height", *patch.Height)
	}
	if patch.Weight != nil {
		set("weight", *patch.Weight)
	}
	if patch.Sport != nil {
		set("sport", *patch.Sport)
	}
	if patch.Level != nil {
		set("level", *patch.Level)
	}
	if patch.Bio != nil {
		set("bio", *patch.Bio)
	}
	if patch.AvatarURL != nil {
		set("avatar_url", *patch.AvatarURL)
	}
	if patch.Preferences != nil {
		set("preferences", patch.Preferences)
	}

	tag, err := r.pool.Exec(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = @id`, args)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound("users")
	}

	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
