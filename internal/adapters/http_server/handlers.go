// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stay_sync/internal/domain"
	"stay_sync/internal/pms"
)

// maxWebhookBody caps inbound webhook bodies at 1 MiB.
const maxWebhookBody = 1 << 20

type Handlers struct {
	Registry *pms.Registry
	Store    domain.RecordStore
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/pms/{vendor}/webhook", h.handleWebhook)
	s.mux.Get("/v1/stays/{reservationID}/breakfast", h.getBreakfast)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// handleWebhook is the inbound trigger: clean the vendor payload, then hand
// it to that vendor's adapter. The adapter's boolean maps to 200/502; detail
// lives in logs and metrics, not the response.
func (h *Handlers) handleWebhook(w http.ResponseWriter, r *http.Request) {
	vendor := chi.URLParam(r, "vendor")
	adapter, ok := h.Registry.Resolve(vendor)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Unknown Vendor", "no adapter registered for vendor "+vendor)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Unreadable Body", err.Error())
		return
	}

	payload, err := adapter.CleanPayload(string(body))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed Payload", err.Error())
		return
	}

	if !adapter.HandleWebhook(r.Context(), payload) {
		writeProblem(w, http.StatusBadGateway, "Webhook Failed", "one or more events could not be processed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// getBreakfast answers live from the vendor. Tri-state: true, false, or null
// when the vendor cannot say. Never cached, never persisted.
func (h *Handlers) getBreakfast(w http.ResponseWriter, r *http.Request) {
	vendor := r.URL.Query().Get("vendor")
	if vendor == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Vendor", "query parameter 'vendor' is required")
		return
	}
	adapter, ok := h.Registry.Resolve(vendor)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Unknown Vendor", "no adapter registered for vendor "+vendor)
		return
	}

	reservationID := chi.URLParam(r, "reservationID")
	stay, err := h.Store.StayByReservationID(r.Context(), adapter.Name(), reservationID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Store Error", "stay lookup failed")
		return
	}
	if stay == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "no stay for reservation "+reservationID)
		return
	}

	breakfast, err := adapter.StayHasBreakfast(r.Context(), *stay)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Vendor Unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reservation_id": stay.ReservationID,
		"breakfast":      breakfast, // null when unknown
	})
}
