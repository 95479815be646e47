package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

var statusMessages = map[domain.Status]string{
	domain.StatusReceived:  "Your order has been received!",
	domain.StatusPreparing: "Your order is being prepared",
	domain.StatusReady:     "Your order is ready!",
	domain.StatusEnRoute:   "Your order is on its way",
	domain.StatusDelivered: "Enjoy your order!",
}

type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.StatusUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	h.logger.Debug("notification_received", fmt.Sprintf("Received status update for order %s", msg.OrderID),
		msg.OrderID, map[string]interface{}{
			"order_id":   msg.OrderID,
			"new_status": msg.NewStatus,
		})

	// Stand-in for push delivery
	fmt.Printf("[%s] %s\n%s\n", msg.OrderID, msg.PlayerName, renderBody(msg))

	return nil
}

// renderBody builds the customer-facing message text.
func renderBody(msg interfaces.StatusUpdateMessage) string {
	text, ok := statusMessages[msg.NewStatus]
	if !ok {
		text = fmt.Sprintf("Order status: %s", msg.NewStatus)
	}

	summary := make([]string, len(msg.Items))
	for i, item := range msg.Items {
		summary[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}

	body := text
	if len(summary) > 0 {
		body += "\n" + strings.Join(summary, ", ")
	}

	if msg.NewStatus == domain.StatusReady {
		if msg.OrderType == domain.OrderTypePickup {
			body += "\nSwing by the bar and grab your order — your drinks are waiting!"
		} else {
			body += "\nWe'll bring it to you between holes 9 & 10!"
		}
	}

	return body
}
