package tracking

import (
	"context"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

// Service answers status questions from the durable log, so it works
// for delivered orders long after they left the active collection.
type Service struct {
	archive interfaces.OrderArchive
	logger  logger.Logger
}

func NewService(archive interfaces.OrderArchive, logger logger.Logger) *Service {
	return &Service{
		archive: archive,
		logger:  logger,
	}
}

func (s *Service) GetOrderStatus(ctx context.Context, orderID string) (*interfaces.TrackingOrderResponse, error) {
	entry, err := s.archive.GetCurrentStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &interfaces.TrackingOrderResponse{
		OrderID:       entry.OrderID,
		CurrentStatus: entry.Status,
		ChangedBy:     entry.ChangedBy,
		UpdatedAt:     entry.ChangedAt,
	}, nil
}

func (s *Service) GetOrderHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error) {
	return s.archive.GetStatusHistory(ctx, orderID)
}
