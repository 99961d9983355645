package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
)

// DemoRepository bulk loads and clears demo data. Loads use COPY inside a
// single transaction.
type DemoRepository struct {
	pool *pgxpool.Pool
}

func NewDemoRepository(pool *pgxpool.Pool) *DemoRepository {
	return &DemoRepository{pool: pool}
}

// demoTables is ordered children first.
var demoTables = []string{
	"mentor_favorites",
	"mentor_sessions",
	"purchases",
	"products",
	"body_logs",
	"achievements",
	"challenges",
	"group_memberships",
	"community_posts",
	"community_groups",
	"credit_transactions",
	"leaderboard",
	"test_results",
	"users",
	"mentors",
}

// ClearAll deletes every row of every domain table and returns the per-table
// counts.
func (r *DemoRepository) ClearAll(ctx context.Context) (model.SeedSummary, error) {
	summary := model.SeedSummary{}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range demoTables {
			tag, err := tx.Exec(ctx, "DELETE FROM "+table)
			if err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
			summary[table] = tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear demo data: %w", err)
	}

	return summary, nil
}

func (r *DemoRepository) ClearMentors(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mentors`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear mentors: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ClearUsers removes users together with their results and leaderboard rows.
func (r *DemoRepository) ClearUsers(ctx context.Context) (model.SeedSummary, error) {
	summary := model.SeedSummary{}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"test_results", "leaderboard", "users"} {
			tag, err := tx.Exec(ctx, "DELETE FROM "+table)
			if err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
			summary[table] = tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear users: %w", err)
	}

	return summary, nil
}

func (r *DemoRepository) InsertMentors(ctx context.Context, mentors []model.Mentor) (int64, error) {
	now := time.Now()
	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"mentors"},
		[]string{"id", "name", "subtitle", "specialty", "description", "rating", "sessions_count", "price",
			"categories", "is_online", "avatar_url", "created_at"},
		pgx.CopyFromSlice(len(mentors), func(i int) ([]any, error) {
			m := mentors[i]
			id := m.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			return []any{id, m.Name, m.Subtitle, m.Specialty, m.Description, m.Rating, m.SessionsCount,
				m.Price, m.Categories, m.IsOnline, m.AvatarURL, now}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mentors: %w", err)
	}
	return n, nil
}

// MentorIDs returns the ids of all mentors.
func (r *DemoRepository) MentorIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM mentors ORDER BY rating DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect mentor ids: %w", err)
	}
	return ids, nil
}

type copySource struct {
	table   string
	columns []string
	rows    int
	row     func(i int) []any
}

// Seed writes the dataset and derives leaderboard rows from the seeded
// totals.
func (r *DemoRepository) Seed(ctx context.Context, ds model.DemoDataset) (model.SeedSummary, error) {
	summary := model.SeedSummary{}

	sources := []copySource{
		{
			table:   "users",
			columns: []string{"id", "email", "name", "password_hash", "sport", "level", "credits", "total_score", "created_at", "updated_at"},
			rows:    len(ds.Users),
			row: func(i int) []any {
				u := ds.Users[i]
				return []any{u.ID, u.Email, u.Name, nullIfEmpty(u.PasswordHash), u.Sport, u.Level, u.Credits, u.TotalScore, u.CreatedAt, u.CreatedAt}
			},
		},
		{
			table:   "test_results",
			columns: []string{"user_id", "test_id", "score", "status", "ml_analysis", "video_url", "created_at", "completed_at"},
			rows:    len(ds.TestResults),
			row: func(i int) []any {
				t := ds.TestResults[i]
				return []any{t.UserID, t.TestID, t.Score, string(t.Status), t.MLAnalysis, t.VideoURL, t.CreatedAt, t.CompletedAt}
			},
		},
		{
			table:   "credit_transactions",
			columns: []string{"user_id", "amount", "type", "description", "reference_id", "reference_type", "expires_at"},
			rows:    len(ds.Credits),
			row: func(i int) []any {
				c := ds.Credits[i]
				return []any{c.UserID, c.Amount, string(c.Type), c.Description, c.ReferenceID, c.ReferenceType, c.ExpiresAt}
			},
		},
		{
			table:   "community_groups",
			columns: []string{"id", "name", "description", "category", "member_count", "is_public", "created_by", "created_at"},
			rows:    len(ds.Groups),
			row: func(i int) []any {
				g := ds.Groups[i]
				return []any{g.ID, g.Name, g.Description, g.Category, g.MemberCount, g.IsPublic, g.CreatedBy, g.CreatedAt}
			},
		},
		{
			table:   "group_memberships",
			columns: []string{"group_id", "user_id"},
			rows:    len(ds.Memberships),
			row: func(i int) []any {
				m := ds.Memberships[i]
				return []any{m.GroupID, m.UserID}
			},
		},
		{
			table:   "community_posts",
			columns: []string{"user_id", "content", "type", "image_url", "likes", "created_at"},
			rows:    len(ds.Posts),
			row: func(i int) []any {
				p := ds.Posts[i]
				return []any{p.UserID, p.Content, p.Type, p.ImageURL, p.Likes, p.CreatedAt}
			},
		},
		{
			table:   "challenges",
			columns: []string{"id", "title", "description", "type", "target_value", "reward_credits", "start_date", "end_date", "participants", "is_active"},
			rows:    len(ds.Challenges),
			row: func(i int) []any {
				c := ds.Challenges[i]
				return []any{c.ID, c.Title, c.Description, c.Type, c.TargetValue, c.RewardCredits, c.StartDate, c.EndDate, c.Participants, c.IsActive}
			},
		},
		{
			table:   "achievements",
			columns: []string{"user_id", "achievement_id", "unlocked_at"},
			rows:    len(ds.Achievements),
			row: func(i int) []any {
				a := ds.Achievements[i]
				return []any{a.UserID, a.AchievementID, a.UnlockedAt}
			},
		},
		{
			table:   "body_logs",
			columns: []string{"user_id", "logged_on", "weight", "height", "body_fat", "muscle_mass", "notes"},
			rows:    len(ds.BodyLogs),
			row: func(i int) []any {
				b := ds.BodyLogs[i]
				return []any{b.UserID, b.LoggedOn, b.Weight, b.Height, b.BodyFat, b.MuscleMass, b.Notes}
			},
		},
		{
			table:   "products",
			columns: []string{"id", "name", "description", "price", "category", "image_url", "is_active"},
			rows:    len(ds.Products),
			row: func(i int) []any {
				p := ds.Products[i]
				return []any{p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.IsActive}
			},
		},
		{
			table:   "purchases",
			columns: []string{"id", "user_id", "product_id", "quantity", "total_cost", "status", "created_at"},
			rows:    len(ds.Purchases),
			row: func(i int) []any {
				p := ds.Purchases[i]
				return []any{p.ID, p.UserID, p.ProductID, p.Quantity, p.TotalCost, p.Status, p.CreatedAt}
			},
		},
		{
			table:   "mentor_sessions",
			columns: []string{"user_id", "mentor_id", "topic", "type", "status", "scheduled_at", "duration_minutes", "rating"},
			rows:    len(ds.Sessions),
			row: func(i int) []any {
				s := ds.Sessions[i]
				return []any{s.UserID, s.MentorID, s.Topic, string(s.Type), string(s.Status), s.ScheduledAt, s.DurationMinutes, s.Rating}
			},
		},
		{
			table:   "mentor_favorites",
			columns: []string{"user_id", "mentor_id"},
			rows:    len(ds.Favorites),
			row: func(i int) []any {
				f := ds.Favorites[i]
				return []any{f.UserID, f.MentorID}
			},
		},
	}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, src := range sources {
			if src.rows == 0 {
				continue
			}
			n, err := tx.CopyFrom(ctx, pgx.Identifier{src.table}, src.columns,
				pgx.CopyFromSlice(src.rows, func(i int) ([]any, error) { return src.row(i), nil }))
			if err != nil {
				return fmt.Errorf("copying %s: %w", src.table, err)
			}
			summary[src.table] = n
		}

		if len(ds.Users) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(ds.Users))
		for i, u := range ds.Users {
			ids[i] = u.ID
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO leaderboard (user_id, score, rank)
			SELECT id, total_score, 0 FROM users WHERE id = ANY($1)
			ON CONFLICT (user_id) DO UPDATE SET score = EXCLUDED.score`, ids)
		if err != nil {
			return fmt.Errorf("seeding leaderboard: %w", err)
		}
		summary["leaderboard"] = tag.RowsAffected()

		_, err = tx.Exec(ctx, `
			UPDATE leaderboard l
			SET rank = ranked.rnk
			FROM (SELECT user_id, RANK() OVER (ORDER BY score DESC)::int AS rnk FROM leaderboard) ranked
			WHERE l.user_id = ranked.user_id`)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	return summary, nil
}
