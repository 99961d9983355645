package service

import (
	"context"
	"time"

	"github.com/vitasports/backend/internal/model"
)

type analyticsStore interface {
	Realtime(ctx context.Context, now time.Time) (*model.RealtimeAnalytics, error)
}

type AnalyticsService struct {
	analytics analyticsStore
	now       func() time.Time
}

func NewAnalyticsService(analytics analyticsStore) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, now: time.Now}
}

func (s *AnalyticsService) GetRealtime(ctx context.Context) (*model.RealtimeAnalytics, error) {
	out, err := s.analytics.Realtime(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	out.MLStats.MostCommonViolations = nonNil(out.MLStats.MostCommonViolations)
	return out, nil
}
