package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/adapter/postgres"
	"github.com/teedup/courseside/internal/interfaces"
)

type TrackingHandler struct {
	service interfaces.TrackingService
	logger  logger.Logger
}

func NewTrackingHandler(service interfaces.TrackingService, logger logger.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		logger:  logger,
	}
}

type OrderStatusResponse struct {
	OrderID       string    `json:"order_id"`
	CurrentStatus string    `json:"current_status"`
	ChangedBy     string    `json:"changed_by"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StatusLogResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// HandleOrders routes /orders/{id}/status and /orders/{id}/history.
func (h *TrackingHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		h.respondError(w, "Not found", http.StatusNotFound)
		return
	}

	orderID := parts[1]

	switch parts[2] {
	case "status":
		h.getStatus(w, r, orderID)
	case "history":
		h.getHistory(w, r, orderID)
	default:
		h.respondError(w, "Not found", http.StatusNotFound)
	}
}

func (h *TrackingHandler) getStatus(w http.ResponseWriter, r *http.Request, orderID string) {
	resp, err := h.service.GetOrderStatus(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotArchived) {
			h.respondError(w, "Order not found", http.StatusNotFound)
			return
		}
		h.logger.Error("status_lookup_failed", "Failed to look up order status", "", map[string]interface{}{
			"order_id": orderID,
		}, err)
		h.respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OrderStatusResponse{
		OrderID:       resp.OrderID,
		CurrentStatus: string(resp.CurrentStatus),
		ChangedBy:     resp.ChangedBy,
		UpdatedAt:     resp.UpdatedAt,
	})
}

func (h *TrackingHandler) getHistory(w http.ResponseWriter, r *http.Request, orderID string) {
	logs, err := h.service.GetOrderHistory(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotArchived) {
			h.respondError(w, "Order not found", http.StatusNotFound)
			return
		}
		h.logger.Error("history_lookup_failed", "Failed to look up order history", "", map[string]interface{}{
			"order_id": orderID,
		}, err)
		h.respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]StatusLogResponse, len(logs))
	for i, entry := range logs {
		resp[i] = StatusLogResponse{
			Status:    string(entry.Status),
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *TrackingHandler) respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
