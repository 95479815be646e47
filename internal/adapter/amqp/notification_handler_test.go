package amqp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

func statusUpdate(status domain.Status, orderType domain.OrderType) interfaces.StatusUpdateMessage {
	return interfaces.StatusUpdateMessage{
		OrderID:    "ORD-1",
		OldStatus:  domain.StatusPreparing,
		NewStatus:  status,
		OrderType:  orderType,
		PlayerName: "Alex",
		Hole:       7,
		Items: []interfaces.NotificationItem{
			{Name: "Soda", Quantity: 2},
			{Name: "Hot Dog", Quantity: 1},
		},
	}
}

func TestHandleNotification(t *testing.T) {
	handler := NewNotificationHandler(logger.New("test"))

	body, err := json.Marshal(statusUpdate(domain.StatusReady, domain.OrderTypePickup))
	require.NoError(t, err)

	assert.NoError(t, handler.HandleNotification(context.Background(), body))
}

func TestHandleNotificationBadPayload(t *testing.T) {
	handler := NewNotificationHandler(logger.New("test"))
	assert.Error(t, handler.HandleNotification(context.Background(), []byte("{not json")))
}

func TestRenderBody(t *testing.T) {
	body := renderBody(statusUpdate(domain.StatusPreparing, domain.OrderTypePickup))
	assert.Contains(t, body, "Your order is being prepared")
	assert.Contains(t, body, "2x Soda")
	assert.Contains(t, body, "1x Hot Dog")
	assert.NotContains(t, body, "Swing by the bar")
}

func TestRenderBodyReadyInstructions(t *testing.T) {
	pickup := renderBody(statusUpdate(domain.StatusReady, domain.OrderTypePickup))
	assert.Contains(t, pickup, "Your order is ready!")
	assert.Contains(t, pickup, "Swing by the bar")

	grabngo := renderBody(statusUpdate(domain.StatusReady, domain.OrderTypeGrabNGo))
	assert.Contains(t, grabngo, "between holes 9 & 10")
}
