package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/domain"
	"github.com/teedup/courseside/internal/interfaces"
)

// KitchenHandler is the display surface: it reads the active collection
// and lets an operator force a status transition.
type KitchenHandler struct {
	service interfaces.KitchenService
	logger  logger.Logger
}

func NewKitchenHandler(service interfaces.KitchenService, logger logger.Logger) *KitchenHandler {
	return &KitchenHandler{
		service: service,
		logger:  logger,
	}
}

type KitchenOrderResponse struct {
	OrderID      string             `json:"order_id"`
	PlayerName   string             `json:"player_name"`
	Hole         int                `json:"hole"`
	OrderType    string             `json:"order_type"`
	Status       string             `json:"status"`
	Items        []OrderItemRequest `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	PrepMinutes  *int               `json:"prep_minutes,omitempty"`
	PrepSeverity string             `json:"prep_severity,omitempty"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changed_by"`
}

// HandleOrders routes /kitchen/orders and /kitchen/orders/{id}/status.
func (h *KitchenHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 2 && r.Method == http.MethodGet:
		h.listOrders(w, r)
	case len(parts) == 4 && parts[3] == "status" && r.Method == http.MethodPost:
		h.updateStatus(w, r, parts[2])
	default:
		h.respondError(w, "Not found", http.StatusNotFound)
	}
}

func (h *KitchenHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var orders []*domain.Order
	switch {
	case query.Get("status") != "":
		orders = h.service.OrdersByStatus(domain.Status(query.Get("status")))
	case query.Get("hole") != "":
		hole, err := strconv.Atoi(query.Get("hole"))
		if err != nil {
			h.respondError(w, "Invalid hole", http.StatusBadRequest)
			return
		}
		orders = h.service.OrdersByHole(hole)
	case query.Get("type") != "":
		orders = h.service.OrdersByType(domain.OrderType(query.Get("type")))
	default:
		orders = h.service.ActiveOrders()
	}

	if sortBy := query.Get("sort"); sortBy != "" {
		orders = domain.SortOrders(orders, domain.SortKey(sortBy))
	}

	resp := make([]KitchenOrderResponse, len(orders))
	for i, order := range orders {
		resp[i] = h.toResponse(order)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *KitchenHandler) updateStatus(w http.ResponseWriter, r *http.Request, orderID string) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status := domain.Status(req.Status)
	if !domain.ValidStatus(status) {
		h.respondError(w, "Unknown status", http.StatusBadRequest)
		return
	}

	if !h.service.UpdateStatus(r.Context(), orderID, status, req.ChangedBy) {
		h.respondError(w, "Order not found", http.StatusNotFound)
		return
	}

	h.logger.Info("status_overridden", "Operator changed order status", "", map[string]interface{}{
		"order_id":   orderID,
		"new_status": req.Status,
		"changed_by": req.ChangedBy,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"order_id": orderID,
		"status":   req.Status,
	})
}

func (h *KitchenHandler) toResponse(order *domain.Order) KitchenOrderResponse {
	items := make([]OrderItemRequest, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemRequest{ID: item.ID, Name: item.Name, Quantity: item.Quantity}
	}

	resp := KitchenOrderResponse{
		OrderID:    order.ID,
		PlayerName: order.PlayerName,
		Hole:       order.Hole,
		OrderType:  string(order.Type),
		Status:     string(order.Status),
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}

	if minutes, ok := h.service.PreparationMinutes(order.ID); ok {
		resp.PrepMinutes = &minutes
		resp.PrepSeverity = string(domain.PreparationSeverity(minutes))
	}

	return resp
}

func (h *KitchenHandler) respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
