package kitchen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

// changedByPrinter attributes automatic transitions in the status log.
const changedByPrinter = "printer"

// Service owns the active-orders collection and advances each submitted
// order through its status sequence on a timer. Each instance carries
// its own state, so independent services can coexist.
type Service struct {
	settings  interfaces.SettingsProvider
	publisher interfaces.MessagePublisher
	archive   interfaces.OrderArchive
	logger    logger.Logger

	mu      sync.Mutex
	orders  map[string]*domain.Order
	byAge   []string // order ids in insertion order
	started map[string]bool

	runCtx context.Context
	wg     sync.WaitGroup
	now    func() time.Time
}

func NewService(
	settings interfaces.SettingsProvider,
	publisher interfaces.MessagePublisher,
	archive interfaces.OrderArchive,
	logger logger.Logger,
) *Service {
	return &Service{
		settings:  settings,
		publisher: publisher,
		archive:   archive,
		logger:    logger,
		orders:    make(map[string]*domain.Order),
		started:   make(map[string]bool),
		runCtx:    context.Background(),
		now:       time.Now,
	}
}

// Start binds the advance chains to ctx; cancelling it stops every
// pending timer.
func (s *Service) Start(ctx context.Context) error {
	s.runCtx = ctx
	return nil
}

// Shutdown waits for in-flight advance chains to wind down.
func (s *Service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// CreateOrder validates the command, places the order into the active
// collection and hands it to the printer.
func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	items := make([]domain.OrderItem, len(cmd.Items))
	for i, item := range cmd.Items {
		items[i] = domain.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
		}
	}

	order, err := domain.NewOrder(
		fmt.Sprintf("ORD-%s", uuid.NewString()),
		items,
		cmd.PlayerName,
		cmd.Hole,
		domain.OrderType(cmd.OrderType),
	)
	if err != nil {
		s.logger.Error("validation_failed", "Order validation failed", "", nil, err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.byAge = append(s.byAge, order.ID)
	s.mu.Unlock()

	// Durable trail only; a failure here must not lose the order.
	if err := s.archive.ArchiveOrder(ctx, order); err != nil {
		s.logger.Error("archive_failed", "Failed to archive order", "", map[string]interface{}{
			"order_id": order.ID,
		}, err)
	}

	s.logger.Debug("order_received", "Order placed into active collection", "", map[string]interface{}{
		"order_id":   order.ID,
		"hole":       order.Hole,
		"order_type": string(order.Type),
	})

	if err := s.Submit(order.ID); err != nil {
		return nil, err
	}

	return order.Clone(), nil
}

// Submit hands the order to the fulfillment printer and starts its
// advance chain. Submitting an already started order is a no-op.
func (s *Service) Submit(orderID string) error {
	s.mu.Lock()
	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("order %s is not active", orderID)
	}
	if s.started[orderID] {
		s.mu.Unlock()
		return nil
	}
	s.started[orderID] = true
	seq := order.Sequence()
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.progress(s.runCtx, orderID, seq)
	}()

	return nil
}

// progress is one order's advance chain. Transitions for a single order
// are strictly ordered; across orders the chains run independently.
func (s *Service) progress(ctx context.Context, orderID string, seq []domain.Status) {
	s.mu.Lock()
	order, ok := s.orders[orderID]
	var snap *domain.Order
	if ok {
		snap = order.Clone()
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	s.notify(ctx, snap, "", domain.StatusReceived)

	for _, next := range seq[1:] {
		cfg := s.settings.Settings()
		if cfg.SimulateDelays {
			select {
			case <-ctx.Done():
				return
			case <-time.After(cfg.Delays.For(next)):
			}
		}

		if !s.step(ctx, orderID, next) {
			return
		}
	}
}

// step applies one scheduled transition. The transition into next only
// applies while the order still sits in next's defined predecessor, so
// a chain racing a manual override degrades to a no-op instead of
// moving the status backward. Returns false once the order has left the
// active collection.
func (s *Service) step(ctx context.Context, orderID string, next domain.Status) bool {
	s.mu.Lock()
	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return false
	}

	pred, scheduled := order.Predecessor(next)
	if !scheduled || order.Status != pred {
		s.mu.Unlock()
		return true
	}

	old := order.Status
	order.MarkStatus(next, s.now())
	snap := order.Clone()
	if next == domain.StatusDelivered {
		s.remove(orderID)
	}
	s.mu.Unlock()

	if err := s.archive.LogStatus(ctx, orderID, next, changedByPrinter); err != nil {
		s.logger.Error("status_log_failed", "Failed to log status change", "", map[string]interface{}{
			"order_id": orderID,
			"status":   string(next),
		}, err)
	}

	s.notify(ctx, snap, old, next)
	return true
}

// UpdateStatus is the operator override from the kitchen display. The
// target status is applied as-is; the automatic chain's guard makes the
// resulting race benign. Returns false for an unknown or already
// delivered order.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) bool {
	s.mu.Lock()
	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return false
	}

	order.MarkStatus(status, s.now())
	if status == domain.StatusDelivered {
		s.remove(orderID)
	}
	s.mu.Unlock()

	if changedBy == "" {
		changedBy = "kitchen-display"
	}
	if err := s.archive.LogStatus(ctx, orderID, status, changedBy); err != nil {
		s.logger.Error("status_log_failed", "Failed to log status change", "", map[string]interface{}{
			"order_id": orderID,
			"status":   string(status),
		}, err)
	}

	return true
}

// remove drops the order from the active collection. Caller holds the lock.
func (s *Service) remove(orderID string) {
	delete(s.orders, orderID)
	for i, id := range s.byAge {
		if id == orderID {
			s.byAge = append(s.byAge[:i], s.byAge[i+1:]...)
			break
		}
	}
}

// notify emits a status-change event and continues regardless of the
// outcome; notification latency or failure never rolls back a
// transition that already took effect.
func (s *Service) notify(ctx context.Context, order *domain.Order, old, next domain.Status) {
	if !s.settings.Settings().NotificationsEnabled {
		return
	}

	msg := interfaces.StatusUpdateMessage{
		OrderID:    order.ID,
		OldStatus:  old,
		NewStatus:  next,
		OrderType:  order.Type,
		PlayerName: order.PlayerName,
		Hole:       order.Hole,
		Items:      notificationItems(order.Items),
		Timestamp:  s.now(),
	}

	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("notification_failed", "Failed to publish status update", "", map[string]interface{}{
			"order_id":   order.ID,
			"new_status": string(next),
		}, err)
	}
}

func notificationItems(items []domain.OrderItem) []interfaces.NotificationItem {
	out := make([]interfaces.NotificationItem, len(items))
	for i, item := range items {
		out[i] = interfaces.NotificationItem{Name: item.Name, Quantity: item.Quantity}
	}
	return out
}

// ActiveOrders returns all orders not yet delivered, oldest first.
func (s *Service) ActiveOrders() []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Order, 0, len(s.byAge))
	for _, id := range s.byAge {
		if order, ok := s.orders[id]; ok {
			out = append(out, order.Clone())
		}
	}
	return out
}

func (s *Service) OrdersByStatus(status domain.Status) []*domain.Order {
	return s.filter(func(o *domain.Order) bool { return o.Status == status })
}

func (s *Service) OrdersByHole(hole int) []*domain.Order {
	return s.filter(func(o *domain.Order) bool { return o.Hole == hole })
}

func (s *Service) OrdersByType(orderType domain.OrderType) []*domain.Order {
	return s.filter(func(o *domain.Order) bool { return o.Type == orderType })
}

func (s *Service) filter(keep func(*domain.Order) bool) []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Order
	for _, id := range s.byAge {
		if order, ok := s.orders[id]; ok && keep(order) {
			out = append(out, order.Clone())
		}
	}
	return out
}

// PreparationMinutes returns the elapsed whole minutes since the order
// entered preparing; false for any other status or unknown id.
func (s *Service) PreparationMinutes(orderID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return 0, false
	}
	return order.PreparationMinutes(s.now())
}
