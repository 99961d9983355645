package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/lib/auth"
	"github.com/vitasports/backend/internal/model"
)

// DemoPassword signs in every seeded demo account.
const DemoPassword = "vitademo123"

type demoStore interface {
	ClearAll(ctx context.Context) (model.SeedSummary, error)
	ClearMentors(ctx context.Context) (int64, error)
	ClearUsers(ctx context.Context) (model.SeedSummary, error)
	InsertMentors(ctx context.Context, mentors []model.Mentor) (int64, error)
	MentorIDs(ctx context.Context) ([]uuid.UUID, error)
	Seed(ctx context.Context, ds model.DemoDataset) (model.SeedSummary, error)
}

type mentorCounter interface {
	Count(ctx context.Context) (int, error)
}

// DemoService loads and clears demonstration data. Every operation is
// refused in production.
type DemoService struct {
	demo       demoStore
	mentors    mentorCounter
	production bool
	logger     *zerolog.Logger
	now        func() time.Time
	rand       *rand.Rand
}

func NewDemoService(demo demoStore, mentors mentorCounter, production bool, logger *zerolog.Logger) *DemoService {
	return &DemoService{
		demo:       demo,
		mentors:    mentors,
		production: production,
		logger:     logger,
		now:        time.Now,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *DemoService) guard() error {
	if s.production {
		return errs.NewForbiddenError("Demo data functions are disabled in production", true)
	}
	return nil
}

// SeedMentors inserts the demo mentors unless mentors already exist.
func (s *DemoService) SeedMentors(ctx context.Context) (*model.SeedResult, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	existing, err := s.mentors.Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &model.SeedResult{Message: "Mentors already exist", Count: int64(existing)}, nil
	}

	n, err := s.demo.InsertMentors(ctx, demoMentors())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("count", n).Msg("seeded demo mentors")
	return &model.SeedResult{Message: fmt.Sprintf("Seeded %d mentors", n), Count: n}, nil
}

// SeedData replaces all domain data with a freshly generated demo dataset.
func (s *DemoService) SeedData(ctx context.Context) (*model.SeedResult, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	if _, err := s.demo.ClearAll(ctx); err != nil {
		return nil, err
	}
	if _, err := s.demo.InsertMentors(ctx, demoMentors()); err != nil {
		return nil, err
	}
	mentorIDs, err := s.demo.MentorIDs(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	ds := buildDemoDataset(s.rand, s.now(), hash, mentorIDs)
	summary, err := s.demo.Seed(ctx, ds)
	if err != nil {
		return nil, err
	}
	summary["mentors"] = int64(len(mentorIDs))

	s.logger.Info().Interface("tables", summary).Msg("seeded demo data")
	return &model.SeedResult{
		Message: "Demo data seeded",
		Count:   total(summary),
		Tables:  summary,
	}, nil
}

// QuickSeed resets users and loads a small set of scored demo accounts.
func (s *DemoService) QuickSeed(ctx context.Context) (*model.SeedResult, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	if _, err := s.demo.ClearUsers(ctx); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	ds := buildQuickDataset(s.rand, s.now(), hash)
	summary, err := s.demo.Seed(ctx, ds)
	if err != nil {
		return nil, err
	}

	return &model.SeedResult{
		Message: fmt.Sprintf("Seeded %d users with %d results", len(ds.Users), len(ds.TestResults)),
		Count:   total(summary),
		Tables:  summary,
	}, nil
}

func (s *DemoService) ClearData(ctx context.Context) (*model.SeedResult, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	summary, err := s.demo.ClearAll(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Warn().Interface("tables", summary).Msg("cleared demo data")
	return &model.SeedResult{Message: "Demo data cleared", Count: total(summary), Tables: summary}, nil
}

func (s *DemoService) ClearMentors(ctx context.Context) (*model.SeedResult, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	n, err := s.demo.ClearMentors(ctx)
	if err != nil {
		return nil, err
	}
	return &model.SeedResult{Message: fmt.Sprintf("Deleted %d mentors", n), Count: n}, nil
}

func total(summary model.SeedSummary) int64 {
	var n int64
	for _, v := range summary {
		n += v
	}
	return n
}
