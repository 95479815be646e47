package domain

import (
	"errors"
	"sort"
	"time"
)

// Order represents a food order placed from somewhere on the course
type Order struct {
	ID            string
	Items         []OrderItem
	PlayerName    string
	Hole          int
	Type          OrderType
	Status        Status
	CreatedAt     time.Time
	PrepStartedAt *time.Time
}

// OrderItem represents a menu item line in an order
type OrderItem struct {
	ID       string
	Name     string
	Quantity int
}

var (
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be at least 1")
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrInvalidHole        = errors.New("hole must be between 1 and 18")
	ErrPlayerNameRequired = errors.New("player name is required")
)

// NewOrder creates a new order with business rules applied
func NewOrder(id string, items []OrderItem, playerName string, hole int, orderType OrderType) (*Order, error) {
	order := &Order{
		ID:         id,
		Items:      items,
		PlayerName: playerName,
		Hole:       hole,
		Type:       orderType,
		Status:     StatusReceived,
		CreatedAt:  time.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate applies business validation rules
func (o *Order) Validate() error {
	if o.PlayerName == "" {
		return ErrPlayerNameRequired
	}

	if !ValidOrderType(o.Type) {
		return ErrInvalidOrderType
	}

	if o.Hole < 1 || o.Hole > 18 {
		return ErrInvalidHole
	}

	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	for _, item := range o.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	return nil
}

// Sequence returns the full status progression for the order's type.
// Pickup orders never pass through enRoute.
func (o *Order) Sequence() []Status {
	if o.Type == OrderTypeGrabNGo {
		return []Status{StatusReceived, StatusPreparing, StatusReady, StatusEnRoute, StatusDelivered}
	}
	return []Status{StatusReceived, StatusPreparing, StatusReady, StatusDelivered}
}

// Predecessor returns the status that precedes next in the order's
// sequence. The second result is false when next is not a scheduled
// target for this order type.
func (o *Order) Predecessor(next Status) (Status, bool) {
	seq := o.Sequence()
	for i := 1; i < len(seq); i++ {
		if seq[i] == next {
			return seq[i-1], true
		}
	}
	return "", false
}

// MarkStatus sets the status. The preparation start time is recorded on
// the first transition into preparing and never overwritten.
func (o *Order) MarkStatus(status Status, now time.Time) {
	o.Status = status
	if status == StatusPreparing && o.PrepStartedAt == nil {
		t := now
		o.PrepStartedAt = &t
	}
}

// PreparationMinutes returns the whole minutes since the order entered
// preparing. The second result is false for any other status.
func (o *Order) PreparationMinutes(now time.Time) (int, bool) {
	if o.Status != StatusPreparing || o.PrepStartedAt == nil {
		return 0, false
	}
	return int(now.Sub(*o.PrepStartedAt) / time.Minute), true
}

// Clone returns a copy safe to hand outside the owning collection.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	if o.PrepStartedAt != nil {
		t := *o.PrepStartedAt
		c.PrepStartedAt = &t
	}
	return &c
}

// SortKey selects the comparator for SortOrders.
type SortKey string

const (
	SortByTime SortKey = "time"
	SortByHole SortKey = "hole"
	SortByType SortKey = "type"
)

// SortOrders returns a sorted copy of orders. Time sorts most recent
// first, hole ascending, type lexicographically. Ties keep their
// original relative order.
func SortOrders(orders []*Order, key SortKey) []*Order {
	sorted := make([]*Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		switch key {
		case SortByTime:
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		case SortByHole:
			return sorted[i].Hole < sorted[j].Hole
		case SortByType:
			return sorted[i].Type < sorted[j].Type
		default:
			return false
		}
	})

	return sorted
}
