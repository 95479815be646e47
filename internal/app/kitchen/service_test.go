package kitchen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

type mockPublisher struct {
	mu   sync.Mutex
	msgs []interfaces.StatusUpdateMessage
	err  error
}

func (m *mockPublisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return m.err
}

func (m *mockPublisher) statuses() []domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Status, len(m.msgs))
	for i, msg := range m.msgs {
		out[i] = msg.NewStatus
	}
	return out
}

type loggedStatus struct {
	OrderID   string
	Status    domain.Status
	ChangedBy string
}

type mockArchive struct {
	mu       sync.Mutex
	archived []string
	logs     []loggedStatus
	logErr   error
}

func (m *mockArchive) ArchiveOrder(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived = append(m.archived, order.ID)
	return nil
}

func (m *mockArchive) LogStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, loggedStatus{OrderID: orderID, Status: status, ChangedBy: changedBy})
	return m.logErr
}

func (m *mockArchive) GetStatusHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error) {
	return nil, errors.New("not implemented")
}

func (m *mockArchive) GetCurrentStatus(ctx context.Context, orderID string) (*domain.StatusLog, error) {
	return nil, errors.New("not implemented")
}

func (m *mockArchive) loggedStatuses() []domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Status, len(m.logs))
	for i, entry := range m.logs {
		out[i] = entry.Status
	}
	return out
}

func instantSettings() *SettingsStore {
	return NewSettingsStore(domain.PrinterSettings{
		SimulateDelays:       false,
		NotificationsEnabled: true,
	})
}

// parkedSettings keeps every chain waiting in its first delay so tests
// can poke at orders stuck in received.
func parkedSettings() *SettingsStore {
	return NewSettingsStore(domain.PrinterSettings{
		SimulateDelays:       true,
		NotificationsEnabled: true,
		Delays: domain.StatusDelays{
			Preparing: time.Hour,
			Ready:     time.Hour,
			EnRoute:   time.Hour,
		},
	})
}

// parkedQuietSettings additionally disables notifications so tests can
// swap the service clock without racing the chain goroutine.
func parkedQuietSettings() *SettingsStore {
	s := parkedSettings()
	cfg := s.Settings()
	cfg.NotificationsEnabled = false
	s.Update(cfg)
	return s
}

func newTestService(settings *SettingsStore) (*Service, *mockPublisher, *mockArchive) {
	publisher := &mockPublisher{}
	archive := &mockArchive{}
	svc := NewService(settings, publisher, archive, logger.New("kitchen-test"))
	return svc, publisher, archive
}

func pickupCommand() interfaces.CreateOrderCommand {
	return interfaces.CreateOrderCommand{
		PlayerName: "Alex",
		Hole:       7,
		OrderType:  "pickup",
		Items: []interfaces.CreateOrderItemCommand{
			{ID: "1", Name: "Soda", Quantity: 2},
		},
	}
}

func TestCreateOrderValidatesInput(t *testing.T) {
	svc, publisher, _ := newTestService(instantSettings())

	cmd := pickupCommand()
	cmd.Items = nil
	_, err := svc.CreateOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	cmd = pickupCommand()
	cmd.Items[0].Quantity = 0
	_, err = svc.CreateOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	cmd = pickupCommand()
	cmd.OrderType = "delivery"
	_, err = svc.CreateOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderType)

	assert.Empty(t, svc.ActiveOrders())
	assert.Empty(t, publisher.statuses())
}

func TestPickupSequence(t *testing.T) {
	svc, publisher, archive := newTestService(instantSettings())

	order, err := svc.CreateOrder(context.Background(), pickupCommand())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, order.Status)

	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Equal(t, []domain.Status{
		domain.StatusReceived,
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusDelivered,
	}, publisher.statuses())

	// Delivered orders leave the active collection
	assert.Empty(t, svc.ActiveOrders())
	assert.Empty(t, svc.OrdersByStatus(domain.StatusDelivered))
	assert.Empty(t, svc.OrdersByHole(7))
	assert.Empty(t, svc.OrdersByType(domain.OrderTypePickup))

	assert.Equal(t, []string{order.ID}, archive.archived)
	assert.Equal(t, []domain.Status{
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusDelivered,
	}, archive.loggedStatuses())
	for _, entry := range archive.logs {
		assert.Equal(t, changedByPrinter, entry.ChangedBy)
	}
}

func TestGrabNGoSequence(t *testing.T) {
	svc, publisher, _ := newTestService(instantSettings())

	cmd := pickupCommand()
	cmd.OrderType = "grabngo"
	_, err := svc.CreateOrder(context.Background(), cmd)
	require.NoError(t, err)

	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Equal(t, []domain.Status{
		domain.StatusReceived,
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusEnRoute,
		domain.StatusDelivered,
	}, publisher.statuses())
}

func TestNotificationFailureDoesNotBlockTransitions(t *testing.T) {
	svc, publisher, archive := newTestService(instantSettings())
	publisher.err = errors.New("broker down")

	_, err := svc.CreateOrder(context.Background(), pickupCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Empty(t, svc.ActiveOrders())
	assert.Equal(t, []domain.Status{
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusDelivered,
	}, archive.loggedStatuses())
}

func TestNotificationsDisabled(t *testing.T) {
	settings := NewSettingsStore(domain.PrinterSettings{
		SimulateDelays:       false,
		NotificationsEnabled: false,
	})
	svc, publisher, archive := newTestService(settings)

	_, err := svc.CreateOrder(context.Background(), pickupCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Empty(t, publisher.statuses())
	assert.Equal(t, []domain.Status{
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusDelivered,
	}, archive.loggedStatuses())
}

func TestSubmitIsIdempotent(t *testing.T) {
	svc, publisher, _ := newTestService(instantSettings())

	order, err := svc.CreateOrder(context.Background(), pickupCommand())
	require.NoError(t, err)

	// CreateOrder already started the chain
	require.NoError(t, svc.Submit(order.ID))
	require.NoError(t, svc.Shutdown(context.Background()))

	assert.Len(t, publisher.statuses(), 4)
}

func TestSubmitUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(instantSettings())
	assert.Error(t, svc.Submit("nonexistent-id"))
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(instantSettings())
	assert.False(t, svc.UpdateStatus(context.Background(), "nonexistent-id", domain.StatusReady, "chef"))
	assert.Empty(t, svc.ActiveOrders())
}

func TestManualUpdateRecordsPrepStartOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _, archive := newTestService(parkedQuietSettings())
	require.NoError(t, svc.Start(ctx))

	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	order, err := svc.CreateOrder(ctx, pickupCommand())
	require.NoError(t, err)

	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusPreparing, "chef"))

	active := svc.ActiveOrders()
	require.Len(t, active, 1)
	require.NotNil(t, active[0].PrepStartedAt)
	assert.Equal(t, first, *active[0].PrepStartedAt)

	// Re-entering preparing later must keep the original timestamp
	svc.now = func() time.Time { return first.Add(10 * time.Minute) }
	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusReady, "chef"))
	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusPreparing, "chef"))

	active = svc.ActiveOrders()
	require.Len(t, active, 1)
	assert.Equal(t, first, *active[0].PrepStartedAt)

	assert.Equal(t, "chef", archive.logs[0].ChangedBy)
}

func TestManualDeliveredRemovesOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _, _ := newTestService(parkedSettings())
	require.NoError(t, svc.Start(ctx))

	order, err := svc.CreateOrder(ctx, pickupCommand())
	require.NoError(t, err)

	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusDelivered, "chef"))
	assert.Empty(t, svc.ActiveOrders())
	assert.False(t, svc.UpdateStatus(ctx, order.ID, domain.StatusReady, "chef"))
}

func TestScheduledStepIsGuarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, publisher, _ := newTestService(parkedSettings())
	require.NoError(t, svc.Start(ctx))

	order, err := svc.CreateOrder(ctx, pickupCommand())
	require.NoError(t, err)

	// Wait out the initial received notification
	require.Eventually(t, func() bool {
		return len(publisher.statuses()) == 1
	}, time.Second, 10*time.Millisecond)

	// Operator jumps the order ahead of the parked chain
	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusReady, "chef"))
	notified := len(publisher.statuses())

	// The chain's transition into preparing must now be a no-op
	assert.True(t, svc.step(ctx, order.ID, domain.StatusPreparing))
	active := svc.ActiveOrders()
	require.Len(t, active, 1)
	assert.Equal(t, domain.StatusReady, active[0].Status)
	assert.Len(t, publisher.statuses(), notified)

	// A step whose predecessor matches still applies
	assert.True(t, svc.step(ctx, order.ID, domain.StatusDelivered))
	assert.Empty(t, svc.ActiveOrders())

	// Once the order is gone the chain stops
	assert.False(t, svc.step(ctx, order.ID, domain.StatusPreparing))
}

func TestPreparationMinutes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _, _ := newTestService(parkedQuietSettings())
	require.NoError(t, svc.Start(ctx))

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	order, err := svc.CreateOrder(ctx, pickupCommand())
	require.NoError(t, err)

	_, ok := svc.PreparationMinutes(order.ID)
	assert.False(t, ok)

	require.True(t, svc.UpdateStatus(ctx, order.ID, domain.StatusPreparing, "chef"))

	minutes, ok := svc.PreparationMinutes(order.ID)
	require.True(t, ok)
	assert.Equal(t, 0, minutes)

	svc.now = func() time.Time { return start.Add(12*time.Minute + 30*time.Second) }
	minutes, ok = svc.PreparationMinutes(order.ID)
	require.True(t, ok)
	assert.Equal(t, 12, minutes)

	_, ok = svc.PreparationMinutes("nonexistent-id")
	assert.False(t, ok)
}

func TestQueriesFilterActiveOrders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _, _ := newTestService(parkedSettings())
	require.NoError(t, svc.Start(ctx))

	first := pickupCommand()
	second := pickupCommand()
	second.PlayerName = "Sam"
	second.Hole = 3
	second.OrderType = "grabngo"

	a, err := svc.CreateOrder(ctx, first)
	require.NoError(t, err)
	b, err := svc.CreateOrder(ctx, second)
	require.NoError(t, err)

	active := svc.ActiveOrders()
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, b.ID, active[1].ID)

	byHole := svc.OrdersByHole(3)
	require.Len(t, byHole, 1)
	assert.Equal(t, b.ID, byHole[0].ID)

	byType := svc.OrdersByType(domain.OrderTypePickup)
	require.Len(t, byType, 1)
	assert.Equal(t, a.ID, byType[0].ID)

	byStatus := svc.OrdersByStatus(domain.StatusReceived)
	assert.Len(t, byStatus, 2)
	assert.Empty(t, svc.OrdersByStatus(domain.StatusReady))
}

func TestSettingsStore(t *testing.T) {
	store := NewSettingsStore(domain.DefaultPrinterSettings())
	assert.True(t, store.Settings().SimulateDelays)
	assert.Equal(t, 30*time.Second, store.Settings().Delays.Preparing)

	updated := domain.PrinterSettings{
		SimulateDelays:       false,
		NotificationsEnabled: false,
		Delays:               domain.StatusDelays{Preparing: time.Second},
	}
	store.Update(updated)
	assert.Equal(t, updated, store.Settings())
}
