// Package reporting aggregates revenue over completed orders.
package reporting

import (
	"context"
	"fmt"

	"resto/internal/logger"
	"resto/internal/models"
	"resto/internal/revenue"
	"resto/internal/storage"
)

// RevenueReport is the read-only reporting view exposed to callers.
type RevenueReport struct {
	TotalRevenue    int64             `json:"total_revenue"`
	CompletedOrders int               `json:"completed_orders"`
	Anomalies       []revenue.Anomaly `json:"anomalies,omitempty"`
}

// Service computes revenue reports.
type Service struct {
	store      storage.OrderStore
	normalizer *revenue.Normalizer
	logger     *logger.Logger
}

// NewService creates a reporting service.
func NewService(store storage.OrderStore, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		normalizer: revenue.New(log),
		logger:     log,
	}
}

// Revenue aggregates all completed orders through the normalizer.
func (s *Service) Revenue(ctx context.Context) (*RevenueReport, error) {
	requestID := logger.GenerateRequestID()

	orders, err := s.store.List(ctx, storage.Filter{
		Statuses: []models.OrderStatus{models.StatusCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed orders: %w", err)
	}

	records := revenue.FromOrders(orders)
	total, anomalies := s.normalizer.Revenue(records)

	s.logger.Info("revenue_computed", fmt.Sprintf("Revenue over %d completed orders", len(records)), requestID, map[string]interface{}{
		"total_revenue":    total,
		"completed_orders": len(records),
		"anomalies":        len(anomalies),
	})

	return &RevenueReport{
		TotalRevenue:    total,
		CompletedOrders: len(records),
		Anomalies:       anomalies,
	}, nil
}
