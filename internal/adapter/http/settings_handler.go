package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/teedup/courseside/internal/adapter/logger"
	"github.com/teedup/courseside/internal/app/kitchen"
	"github.com/teedup/courseside/internal/domain"
)

// SettingsHandler exposes the printer settings screen: read the live
// settings, replace them. Changes apply to subsequent transitions only.
type SettingsHandler struct {
	store  *kitchen.SettingsStore
	logger logger.Logger
}

func NewSettingsHandler(store *kitchen.SettingsStore, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

// Delays travel as milliseconds on the wire, matching the settings screen.
type SettingsPayload struct {
	SimulateDelays       bool          `json:"simulated_delays"`
	NotificationsEnabled bool          `json:"notifications_enabled"`
	StatusDelays         DelaysPayload `json:"status_delays"`
}

type DelaysPayload struct {
	PreparingMS int64 `json:"preparing"`
	ReadyMS     int64 `json:"ready"`
	EnRouteMS   int64 `json:"en_route"`
}

func (h *SettingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSettings(w)
	case http.MethodPut:
		h.putSettings(w, r)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed"})
	}
}

func (h *SettingsHandler) getSettings(w http.ResponseWriter) {
	settings := h.store.Settings()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SettingsPayload{
		SimulateDelays:       settings.SimulateDelays,
		NotificationsEnabled: settings.NotificationsEnabled,
		StatusDelays: DelaysPayload{
			PreparingMS: settings.Delays.Preparing.Milliseconds(),
			ReadyMS:     settings.Delays.Ready.Milliseconds(),
			EnRouteMS:   settings.Delays.EnRoute.Milliseconds(),
		},
	})
}

func (h *SettingsHandler) putSettings(w http.ResponseWriter, r *http.Request) {
	var payload SettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.store.Update(domain.PrinterSettings{
		SimulateDelays:       payload.SimulateDelays,
		NotificationsEnabled: payload.NotificationsEnabled,
		Delays: domain.StatusDelays{
			Preparing: time.Duration(payload.StatusDelays.PreparingMS) * time.Millisecond,
			Ready:     time.Duration(payload.StatusDelays.ReadyMS) * time.Millisecond,
			EnRoute:   time.Duration(payload.StatusDelays.EnRouteMS) * time.Millisecond,
		},
	})

	h.logger.Info("settings_updated", "Printer settings replaced", "", map[string]interface{}{
		"simulated_delays":      payload.SimulateDelays,
		"notifications_enabled": payload.NotificationsEnabled,
	})

	h.getSettings(w)
}
