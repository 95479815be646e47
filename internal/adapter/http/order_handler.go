package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.KitchenService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.KitchenService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	PlayerName string             `json:"player_name"`
	Hole       int                `json:"hole"`
	OrderType  string             `json:"order_type"`
	Items      []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CreateOrderResponse struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if validationErrors := validateCreateOrderRequest(req); len(validationErrors) > 0 {
		h.logger.Error("validation_failed", "Order validation failed", "", map[string]interface{}{
			"errors": validationErrors,
		}, fmt.Errorf("validation failed"))

		h.respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	cmd := interfaces.CreateOrderCommand{
		PlayerName: strings.TrimSpace(req.PlayerName),
		Hole:       req.Hole,
		OrderType:  req.OrderType,
		Items:      convertItemsToCommand(req.Items),
	}

	result, err := h.service.CreateOrder(r.Context(), cmd)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", "", nil, err)
		h.respondError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	resp := CreateOrderResponse{
		OrderID:   result.ID,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func validateCreateOrderRequest(req CreateOrderRequest) []ValidationError {
	var errors []ValidationError

	playerName := strings.TrimSpace(req.PlayerName)
	if len(playerName) < 1 {
		errors = append(errors, ValidationError{
			Field:   "player_name",
			Message: "player name is required",
		})
	} else if len(playerName) > 100 {
		errors = append(errors, ValidationError{
			Field:   "player_name",
			Message: "player name must not exceed 100 characters",
		})
	}

	if req.OrderType != "pickup" && req.OrderType != "grabngo" {
		errors = append(errors, ValidationError{
			Field:   "order_type",
			Message: "order type must be one of: pickup, grabngo",
		})
	}

	if req.Hole < 1 || req.Hole > 18 {
		errors = append(errors, ValidationError{
			Field:   "hole",
			Message: "hole must be between 1 and 18",
		})
	}

	if len(req.Items) < 1 {
		errors = append(errors, ValidationError{
			Field:   "items",
			Message: "order must contain at least 1 item",
		})
	} else if len(req.Items) > 20 {
		errors = append(errors, ValidationError{
			Field:   "items",
			Message: "order must not contain more than 20 items",
		})
	}

	for i, item := range req.Items {
		itemPrefix := fmt.Sprintf("items[%d]", i)

		if len(strings.TrimSpace(item.Name)) < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.name", itemPrefix),
				Message: "item name is required",
			})
		}

		if item.Quantity < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.quantity", itemPrefix),
				Message: "item quantity must be at least 1",
			})
		} else if item.Quantity > 10 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.quantity", itemPrefix),
				Message: "item quantity must not exceed 10",
			})
		}
	}

	return errors
}

func convertItemsToCommand(items []OrderItemRequest) []interfaces.CreateOrderItemCommand {
	result := make([]interfaces.CreateOrderItemCommand, len(items))
	for i, item := range items {
		result[i] = interfaces.CreateOrderItemCommand{
			ID:       item.ID,
			Name:     strings.TrimSpace(item.Name),
			Quantity: item.Quantity,
		}
	}
	return result
}

func (h *OrderHandler) respondError(w http.ResponseWriter, message string, statusCode int, validationErrors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResp := ErrorResponse{
		Error:  message,
		Errors: validationErrors,
	}

	json.NewEncoder(w).Encode(errResp)
}
