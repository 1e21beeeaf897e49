package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a Store backed by a temporary database.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// recordingCatalog records Set and Remove calls for assertions.
type recordingCatalog struct {
	set     map[classifier.Label]string
	removed []classifier.Label
}

func newRecordingCatalog() *recordingCatalog {
	return &recordingCatalog{set: make(map[classifier.Label]string)}
}

func (c *recordingCatalog) Set(label classifier.Label, text string) {
	c.set[label] = text
}

func (c *recordingCatalog) Remove(label classifier.Label) {
	c.removed = append(c.removed, label)
}

func createTestPhrase(t *testing.T, s *store.Store, id, label, text string) *store.Phrase {
	t.Helper()

	p := &store.Phrase{ID: id, Label: label, Text: text, Enabled: true}
	if err := s.Phrases().Create(p); err != nil {
		t.Fatalf("failed to create phrase: %v", err)
	}
	return p
}

func TestPhraseHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	createTestPhrase(t, s, "phrase-1", "fist", "Stop, please.")

	req := httptest.NewRequest(http.MethodGet, "/api/phrases", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var response listPhrasesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Phrases) != 1 {
		t.Fatalf("expected 1 phrase, got %d", len(response.Phrases))
	}

	if response.Phrases[0].Label != "fist" {
		t.Errorf("expected label 'fist', got %q", response.Phrases[0].Label)
	}
	if response.Phrases[0].Text != "Stop, please." {
		t.Errorf("expected text 'Stop, please.', got %q", response.Phrases[0].Text)
	}
}

func TestPhraseHandler_Create(t *testing.T) {
	s := newTestStore(t)
	catalog := newRecordingCatalog()
	handler := NewPhraseHandler(s, catalog)

	body, _ := json.Marshal(createPhraseRequest{
		Label: "victory",
		Text:  "Yes, thank you!",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/phrases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response phraseResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("expected a generated ID")
	}
	if !response.Enabled {
		t.Error("phrase should default to enabled")
	}

	// Persisted
	if _, err := s.Phrases().GetByLabel("victory"); err != nil {
		t.Errorf("phrase not persisted: %v", err)
	}

	// Pushed to the live catalog
	if catalog.set[classifier.LabelVictory] != "Yes, thank you!" {
		t.Errorf("catalog not updated, got %q", catalog.set[classifier.LabelVictory])
	}
}

func TestPhraseHandler_Create_Validation(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	tests := []struct {
		name string
		req  createPhraseRequest
		want int
	}{
		{
			name: "unknown label",
			req:  createPhraseRequest{Label: "wave", Text: "Hi"},
			want: http.StatusBadRequest,
		},
		{
			name: "none label rejected",
			req:  createPhraseRequest{Label: "none", Text: "Hi"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing text",
			req:  createPhraseRequest{Label: "fist"},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/api/phrases", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPhraseHandler_Create_DuplicateLabel(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	createTestPhrase(t, s, "phrase-1", "fist", "Stop, please.")

	body, _ := json.Marshal(createPhraseRequest{Label: "fist", Text: "Another"})
	req := httptest.NewRequest(http.MethodPost, "/api/phrases", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestPhraseHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	createTestPhrase(t, s, "phrase-1", "open_palm", "Hello!")

	req := httptest.NewRequest(http.MethodGet, "/api/phrases/phrase-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response phraseResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Text != "Hello!" {
		t.Errorf("expected text 'Hello!', got %q", response.Text)
	}
}

func TestPhraseHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/phrases/missing", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestPhraseHandler_Update(t *testing.T) {
	s := newTestStore(t)
	catalog := newRecordingCatalog()
	handler := NewPhraseHandler(s, catalog)

	createTestPhrase(t, s, "phrase-1", "thumbs_up", "I'm doing great!")

	newText := "Feeling good!"
	body, _ := json.Marshal(updatePhraseRequest{Text: &newText})

	req := httptest.NewRequest(http.MethodPut, "/api/phrases/phrase-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	p, err := s.Phrases().GetByID("phrase-1")
	if err != nil {
		t.Fatalf("failed to get phrase: %v", err)
	}
	if p.Text != newText {
		t.Errorf("expected text %q, got %q", newText, p.Text)
	}

	if catalog.set[classifier.LabelThumbsUp] != newText {
		t.Errorf("catalog not updated, got %q", catalog.set[classifier.LabelThumbsUp])
	}
}

func TestPhraseHandler_Update_Disable(t *testing.T) {
	s := newTestStore(t)
	catalog := newRecordingCatalog()
	handler := NewPhraseHandler(s, catalog)

	createTestPhrase(t, s, "phrase-1", "pointing", "I need that, please.")

	disabled := false
	body, _ := json.Marshal(updatePhraseRequest{Enabled: &disabled})

	req := httptest.NewRequest(http.MethodPut, "/api/phrases/phrase-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	// Disabled bindings come out of the live catalog
	if len(catalog.removed) != 1 || catalog.removed[0] != classifier.LabelPointing {
		t.Errorf("expected pointing removed from catalog, got %v", catalog.removed)
	}
}

func TestPhraseHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	catalog := newRecordingCatalog()
	handler := NewPhraseHandler(s, catalog)

	createTestPhrase(t, s, "phrase-1", "fist", "Stop, please.")

	req := httptest.NewRequest(http.MethodDelete, "/api/phrases/phrase-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if _, err := s.Phrases().GetByID("phrase-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if len(catalog.removed) != 1 || catalog.removed[0] != classifier.LabelFist {
		t.Errorf("expected fist removed from catalog, got %v", catalog.removed)
	}
}

func TestPhraseHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewPhraseHandler(s, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/phrases", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
