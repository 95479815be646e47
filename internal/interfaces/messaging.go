package interfaces

import (
	"context"
	"time"

	"github.com/teedup/courseside/internal/domain"
)

// Сообщения RabbitMQ
type StatusUpdateMessage struct {
	OrderID    string             `json:"order_id"`
	OldStatus  domain.Status      `json:"old_status"`
	NewStatus  domain.Status      `json:"new_status"`
	OrderType  domain.OrderType   `json:"order_type"`
	PlayerName string             `json:"player_name"`
	Hole       int                `json:"hole"`
	Items      []NotificationItem `json:"items"`
	Timestamp  time.Time          `json:"timestamp"`
}

type NotificationItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type MessagePublisher interface {
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
}

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
