// Package service holds the business logic behind every backend function.
//
// Services receive validated payloads from the handler layer, apply the
// domain rules and call repositories through small interfaces declared next
// to the code that consumes them.
package service

import (
	"context"
	"time"

	"github.com/vitasports/backend/internal/lib/job"
)

// LeaderboardNamespace versions every cached leaderboard read.
const LeaderboardNamespace = "leaderboard"

// TaskEnqueuer schedules background work. *job.JobService implements it.
type TaskEnqueuer interface {
	EnqueueSignupEmails(ctx context.Context, userID, to, name string) error
	EnqueueTestResultEmail(ctx context.Context, p job.TestResultEmailPayload) error
	EnqueueRankRecompute(ctx context.Context) error
}

// ReadCache stores versioned read models and broadcasts change events.
// *cache.Cache implements it.
type ReadCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Version(ctx context.Context, namespace string) (int64, error)
	Bump(ctx context.Context, namespace string) (int64, error)
	Publish(ctx context.Context, channel string, v any) error
}
