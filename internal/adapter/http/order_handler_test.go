package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

type mockKitchenService struct {
	createOrderFn    func(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error)
	updateStatusFn   func(ctx context.Context, orderID string, status domain.Status, changedBy string) bool
	activeOrdersFn   func() []*domain.Order
	ordersByStatusFn func(status domain.Status) []*domain.Order
	ordersByHoleFn   func(hole int) []*domain.Order
	ordersByTypeFn   func(orderType domain.OrderType) []*domain.Order
	prepMinutesFn    func(orderID string) (int, bool)
}

func (m *mockKitchenService) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	return m.createOrderFn(ctx, cmd)
}

func (m *mockKitchenService) Submit(orderID string) error { return nil }

func (m *mockKitchenService) UpdateStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) bool {
	return m.updateStatusFn(ctx, orderID, status, changedBy)
}

func (m *mockKitchenService) ActiveOrders() []*domain.Order {
	return m.activeOrdersFn()
}

func (m *mockKitchenService) OrdersByStatus(status domain.Status) []*domain.Order {
	return m.ordersByStatusFn(status)
}

func (m *mockKitchenService) OrdersByHole(hole int) []*domain.Order {
	return m.ordersByHoleFn(hole)
}

func (m *mockKitchenService) OrdersByType(orderType domain.OrderType) []*domain.Order {
	return m.ordersByTypeFn(orderType)
}

func (m *mockKitchenService) PreparationMinutes(orderID string) (int, bool) {
	if m.prepMinutesFn == nil {
		return 0, false
	}
	return m.prepMinutesFn(orderID)
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"player_name": "Alex",
		"hole":        7,
		"order_type":  "pickup",
		"items": []map[string]interface{}{
			{"id": "1", "name": "Soda", "quantity": 2},
		},
	}
}

func postOrder(t *testing.T, handler *OrderHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler.CreateOrder(rec, req)
	return rec
}

func TestCreateOrderHandlerSuccess(t *testing.T) {
	svc := &mockKitchenService{
		createOrderFn: func(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
			assert.Equal(t, "Alex", cmd.PlayerName)
			assert.Equal(t, 7, cmd.Hole)
			return domain.NewOrder("ORD-123", []domain.OrderItem{{ID: "1", Name: "Soda", Quantity: 2}}, cmd.PlayerName, cmd.Hole, domain.OrderTypePickup)
		},
	}
	handler := NewOrderHandler(svc, logger.New("test"))

	rec := postOrder(t, handler, validOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-123", resp.OrderID)
	assert.Equal(t, "received", resp.Status)
}

func TestCreateOrderHandlerValidation(t *testing.T) {
	svc := &mockKitchenService{
		createOrderFn: func(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	handler := NewOrderHandler(svc, logger.New("test"))

	body := validOrderBody()
	body["player_name"] = ""
	body["hole"] = 19
	body["items"] = []map[string]interface{}{
		{"id": "1", "name": "Soda", "quantity": 0},
	}

	rec := postOrder(t, handler, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)

	fields := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		fields[i] = e.Field
	}
	assert.Contains(t, fields, "player_name")
	assert.Contains(t, fields, "hole")
	assert.Contains(t, fields, "items[0].quantity")
}

func TestCreateOrderHandlerInvalidBody(t *testing.T) {
	handler := NewOrderHandler(&mockKitchenService{}, logger.New("test"))

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandlerMethodNotAllowed(t *testing.T) {
	handler := NewOrderHandler(&mockKitchenService{}, logger.New("test"))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	handler.CreateOrder(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
