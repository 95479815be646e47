package domain

import "time"

type OrderType string

const (
	OrderTypePickup  OrderType = "pickup"
	OrderTypeGrabNGo OrderType = "grabngo"
)

type Status string

const (
	StatusReceived  Status = "received"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusEnRoute   Status = "enRoute"
	StatusDelivered Status = "delivered"
)

// ValidOrderType reports whether t is a known order type.
func ValidOrderType(t OrderType) bool {
	return t == OrderTypePickup || t == OrderTypeGrabNGo
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusReady, StatusEnRoute, StatusDelivered:
		return true
	}
	return false
}

// PrepSeverity grades how long an order has been in preparation.
type PrepSeverity string

const (
	PrepSeverityLow    PrepSeverity = "low"
	PrepSeverityMedium PrepSeverity = "medium"
	PrepSeverityHigh   PrepSeverity = "high"
)

// PreparationSeverity maps elapsed preparation minutes to an urgency grade.
func PreparationSeverity(minutes int) PrepSeverity {
	if minutes < 10 {
		return PrepSeverityLow
	}
	if minutes < 15 {
		return PrepSeverityMedium
	}
	return PrepSeverityHigh
}

// StatusLog represents a durable record of one status change
type StatusLog struct {
	ID        int
	OrderID   string
	Status    Status
	ChangedBy string
	ChangedAt time.Time
}

// PrinterSettings controls the simulated fulfillment timing. Settings are
// read once per transition decision; updates apply to subsequent
// transitions only.
type PrinterSettings struct {
	SimulateDelays       bool
	NotificationsEnabled bool
	Delays               StatusDelays
}

// StatusDelays holds the wait before each scheduled transition.
type StatusDelays struct {
	Preparing time.Duration
	Ready     time.Duration
	EnRoute   time.Duration
}

// For returns the delay configured before entering s. Statuses without a
// configured delay transition immediately.
func (d StatusDelays) For(s Status) time.Duration {
	switch s {
	case StatusPreparing:
		return d.Preparing
	case StatusReady:
		return d.Ready
	case StatusEnRoute:
		return d.EnRoute
	default:
		return 0
	}
}

// DefaultPrinterSettings matches the bar printer's factory configuration.
func DefaultPrinterSettings() PrinterSettings {
	return PrinterSettings{
		SimulateDelays:       true,
		NotificationsEnabled: true,
		Delays: StatusDelays{
			Preparing: 30 * time.Second,
			Ready:     2 * time.Minute,
			EnRoute:   30 * time.Second,
		},
	}
}
