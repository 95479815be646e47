package interfaces

import (
	"context"
	"time"

	"github.com/teedup/courseside/internal/domain"
)

// KitchenService owns the active-orders collection and drives each order
// through its status sequence.
type KitchenService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	Submit(orderID string) error
	UpdateStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) bool
	ActiveOrders() []*domain.Order
	OrdersByStatus(status domain.Status) []*domain.Order
	OrdersByHole(hole int) []*domain.Order
	OrdersByType(orderType domain.OrderType) []*domain.Order
	PreparationMinutes(orderID string) (int, bool)
}

type TrackingService interface {
	GetOrderStatus(ctx context.Context, orderID string) (*TrackingOrderResponse, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error)
}

// SettingsProvider supplies the printer settings read before each
// scheduled transition.
type SettingsProvider interface {
	Settings() domain.PrinterSettings
}

// Команды для сервисов
type CreateOrderCommand struct {
	PlayerName string
	Hole       int
	OrderType  string
	Items      []CreateOrderItemCommand
}

type CreateOrderItemCommand struct {
	ID       string
	Name     string
	Quantity int
}

// Ответы Tracking Service
type TrackingOrderResponse struct {
	OrderID       string
	CurrentStatus domain.Status
	ChangedBy     string
	UpdatedAt     time.Time
}
