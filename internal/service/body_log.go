package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/model"
)

const defaultBodyLogLimit = 30

type bodyLogStore interface {
	Create(ctx context.Context, in model.NewBodyLog) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.BodyLog, error)
}

type BodyLogService struct {
	logs bodyLogStore
	now  func() time.Time
}

func NewBodyLogService(logs bodyLogStore) *BodyLogService {
	return &BodyLogService{logs: logs, now: time.Now}
}

// Create defaults the log date to today in UTC.
func (s *BodyLogService) Create(ctx context.Context, p *model.CreateBodyLogPayload) (*model.BodyLogCreated, error) {
	loggedOn := truncateDay(s.now())
	if p.Date != "" {
		d, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return nil, err
		}
		loggedOn = d
	}

	id, err := s.logs.Create(ctx, model.NewBodyLog{
		UserID:     p.UserID,
		LoggedOn:   loggedOn,
		Weight:     p.Weight,
		Height:     p.Height,
		BodyFat:    p.BodyFat,
		MuscleMass: p.MuscleMass,
		Notes:      p.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &model.BodyLogCreated{BodyLogID: id}, nil
}

func (s *BodyLogService) GetByUser(ctx context.Context, p *model.BodyLogsPayload) ([]model.BodyLog, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultBodyLogLimit
	}
	logs, err := s.logs.ListByUser(ctx, p.UserID, limit)
	return nonNil(logs), err
}
