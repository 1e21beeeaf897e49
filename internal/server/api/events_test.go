package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func appendTestEvent(t *testing.T, s *store.Store, label, reason, phrase string) {
	t.Helper()

	if err := s.Events().Append(&store.Event{Label: label, Reason: reason, Phrase: phrase}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}
}

func TestEventHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	appendTestEvent(t, s, "fist", "classifier", "Stop, please.")
	appendTestEvent(t, s, "open_palm", "classifier", "Hello!")

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(response.Events))
	}

	// Newest first
	if response.Events[0].Label != "open_palm" {
		t.Errorf("expected newest event first, got %q", response.Events[0].Label)
	}
}

func TestEventHandler_Limit(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	for i := 0; i < 5; i++ {
		appendTestEvent(t, s, "fist", "classifier", "Stop, please.")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=3", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 3 {
		t.Errorf("expected 3 events, got %d", len(response.Events))
	}
}

func TestEventHandler_InvalidLimit(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	for _, raw := range []string{"abc", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit="+raw, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected status %d, got %d", raw, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestEventHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
