package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// EventHandler serves the accepted-gesture log.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

type eventResponse struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Reason     string `json:"reason"`
	Phrase     string `json:"phrase"`
	AcceptedAt string `json:"accepted_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/events. The optional limit query parameter
// bounds the number of rows returned, newest first.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().ListRecent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:         e.ID,
			Label:      e.Label,
			Reason:     e.Reason,
			Phrase:     e.Phrase,
			AcceptedAt: e.AcceptedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
