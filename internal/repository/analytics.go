package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// Realtime aggregates activity over the 24 hours and 7 days before now.
func (r *AnalyticsRepository) Realtime(ctx context.Context, now time.Time) (*model.RealtimeAnalytics, error) {
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	out := &model.RealtimeAnalytics{Timestamp: now}

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM test_results WHERE created_at >= $1)::int,
			(SELECT count(DISTINCT user_id) FROM test_results WHERE created_at >= $2)::int,
			(SELECT count(*) FROM community_posts WHERE created_at >= $1)::int`,
		dayAgo, weekAgo,
	).Scan(&out.TestsToday, &out.ActiveUsersWeekly, &out.CommunityPostsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(avg((ml_analysis->>'formScore')::double precision), 0),
			COALESCE(avg(CASE WHEN (ml_analysis->>'cheatDetected')::boolean THEN 100.0 ELSE 0 END), 0)
		FROM test_results
		WHERE created_at >= $1 AND ml_analysis IS NOT NULL`, dayAgo,
	).Scan(&out.MLStats.AverageFormScore, &out.MLStats.CheatDetectionRate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ml stats: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v AS violation, count(*)::int AS count
		FROM test_results, jsonb_array_elements_text(COALESCE(ml_analysis->'violations', '[]'::jsonb)) AS v
		WHERE created_at >= $1 AND ml_analysis IS NOT NULL
		GROUP BY v
		ORDER BY count(*) DESC, v ASC
		LIMIT 5`, dayAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}

	out.MLStats.MostCommonViolations, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ViolationCount])
	if err != nil {
		return nil, fmt.Errorf("failed to collect violations: %w", err)
	}

	return out, nil
}
