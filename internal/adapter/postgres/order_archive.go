package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

// ErrOrderNotArchived is returned when no status log exists for an id.
var ErrOrderNotArchived = errors.New("order not found in archive")

type orderArchive struct {
	db DB
}

func NewOrderArchive(db DB) interfaces.OrderArchive {
	return &orderArchive{db: db}
}

// ArchiveOrder records the order, its items and the initial received
// status in one transaction.
func (r *orderArchive) ArchiveOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, player_name, hole, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query,
		order.ID, order.PlayerName, order.Hole, order.Type, order.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, item_id, name, quantity)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.ID, item.Name, item.Quantity); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	logQuery := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, logQuery, order.ID, order.Status, "order-service", time.Now()); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderArchive) LogStatus(ctx context.Context, orderID string, status domain.Status, changedBy string) error {
	query := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, orderID, status, changedBy, time.Now()); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}
	return nil
}

func (r *orderArchive) GetStatusHistory(ctx context.Context, orderID string) ([]*domain.StatusLog, error) {
	query := `
		SELECT id, order_id, status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var logs []*domain.StatusLog
	for rows.Next() {
		var entry domain.StatusLog
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status log: %w", err)
		}
		logs = append(logs, &entry)
	}

	if len(logs) == 0 {
		return nil, ErrOrderNotArchived
	}

	return logs, nil
}

func (r *orderArchive) GetCurrentStatus(ctx context.Context, orderID string) (*domain.StatusLog, error) {
	query := `
		SELECT id, order_id, status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT 1
	`

	var entry domain.StatusLog
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotArchived
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query current status: %w", err)
	}

	return &entry, nil
}
