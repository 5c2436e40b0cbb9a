package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/internal/ports/output"
)

const (
	activeSessionWindow = 30 * time.Minute
	popularWindow       = 7 * 24 * time.Hour
	popularLimit        = 5
)

// DashboardService struct - Application service for the admin dashboard
type DashboardService struct {
	metrics   output.MetricsStore
	assistant input.AssistantService
	now       func() time.Time
}

// NewDashboardService func - Creates new dashboard service
func NewDashboardService(metrics output.MetricsStore, assistant input.AssistantService) *DashboardService {
	return &DashboardService{
		metrics:   metrics,
		assistant: assistant,
		now:       time.Now,
	}
}

var _ input.DashboardService = (*DashboardService)(nil)

// Metrics func - Use case: storefront activity numbers
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	now := s.now()
	store, err := s.metrics.StoreMetrics(ctx, now.Add(-activeSessionWindow), now.Add(-popularWindow), popularLimit)
	if err != nil {
		logrus.Errorln(err)
		return nil, storeError("dashboard metrics", err)
	}

	result := &domain.DashboardMetrics{StoreMetrics: *store}
	if s.assistant != nil {
		result.Assistant = s.assistant.Stats()
	}
	return result, nil
}
