package interfaces

import (
	"context"

	"github.com/teedup/courseside/internal/domain"
)

// OrderArchive is the durable trail of orders and their transitions.
// The active collection itself lives in memory; the archive is
// append-only and never consulted by the lifecycle logic.
type OrderArchive interface {
	ArchiveOrder(ctx context.Context, order *domain.Order) error
	LogStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) error
	GetStatusHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error)
	GetCurrentStatus(ctx context.Context, orderID string) (*domain.StatusLog, error)
}
