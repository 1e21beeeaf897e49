// Package api provides the HTTP API handlers for the Mudra assistant.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/store"
)

// PhraseHandler handles HTTP requests for phrase bindings.
type PhraseHandler struct {
	store   *store.Store
	catalog PhraseCatalog
}

// PhraseCatalog is the in-memory phrase table kept in sync with the store.
// The frame loop reads from it, so edits made over the API are applied here
// as well as persisted.
type PhraseCatalog interface {
	Set(label classifier.Label, text string)
	Remove(label classifier.Label)
}

// NewPhraseHandler creates a new PhraseHandler. The catalog may be nil when
// no live pipeline is running.
func NewPhraseHandler(s *store.Store, catalog PhraseCatalog) *PhraseHandler {
	return &PhraseHandler{store: s, catalog: catalog}
}

// ServeHTTP routes phrase requests to the appropriate method handler.
// Expected paths: /api/phrases or /api/phrases/{id}
func (h *PhraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/phrases")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createPhraseRequest struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Enabled *bool  `json:"enabled"`
}

type updatePhraseRequest struct {
	Text    *string `json:"text"`
	Enabled *bool   `json:"enabled"`
}

type phraseResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Text      string `json:"text"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listPhrasesResponse struct {
	Phrases []phraseResponse `json:"phrases"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPhraseResponse(p *store.Phrase) phraseResponse {
	return phraseResponse{
		ID:        p.ID,
		Label:     p.Label,
		Text:      p.Text,
		Enabled:   p.Enabled,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// syncCatalog pushes a phrase row into the live catalog.
func (h *PhraseHandler) syncCatalog(p *store.Phrase) {
	if h.catalog == nil {
		return
	}
	if p.Enabled {
		h.catalog.Set(classifier.Label(p.Label), p.Text)
	} else {
		h.catalog.Remove(classifier.Label(p.Label))
	}
}

// list handles GET /api/phrases and returns all phrase bindings.
func (h *PhraseHandler) list(w http.ResponseWriter, r *http.Request) {
	phrases, err := h.store.Phrases().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list phrases")
		return
	}

	response := listPhrasesResponse{
		Phrases: make([]phraseResponse, 0, len(phrases)),
	}
	for _, p := range phrases {
		response.Phrases = append(response.Phrases, toPhraseResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/phrases/{id} and returns a single phrase binding.
func (h *PhraseHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}

	writeJSON(w, http.StatusOK, toPhraseResponse(p))
}

// create handles POST /api/phrases and binds a phrase to a gesture label.
func (h *PhraseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if !classifier.Label(req.Label).Known() {
		writeError(w, http.StatusBadRequest, "Unknown gesture label")
		return
	}

	// One binding per label
	if _, err := h.store.Phrases().GetByLabel(req.Label); err == nil {
		writeError(w, http.StatusConflict, "Label already has a phrase")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to create phrase")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	p := &store.Phrase{
		ID:      uuid.New().String(),
		Label:   req.Label,
		Text:    req.Text,
		Enabled: enabled,
	}

	if err := h.store.Phrases().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create phrase")
		return
	}

	h.syncCatalog(p)
	writeJSON(w, http.StatusCreated, toPhraseResponse(p))
}

// update handles PUT /api/phrases/{id} and edits an existing binding.
func (h *PhraseHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}

	var req updatePhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Text != nil {
		if *req.Text == "" {
			writeError(w, http.StatusBadRequest, "Text cannot be empty")
			return
		}
		p.Text = *req.Text
	}
	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}

	if err := h.store.Phrases().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update phrase")
		return
	}

	h.syncCatalog(p)
	writeJSON(w, http.StatusOK, toPhraseResponse(p))
}

// delete handles DELETE /api/phrases/{id} and removes a binding.
func (h *PhraseHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}

	if err := h.store.Phrases().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}

	if h.catalog != nil {
		h.catalog.Remove(classifier.Label(p.Label))
	}

	w.WriteHeader(http.StatusNoContent)
}
