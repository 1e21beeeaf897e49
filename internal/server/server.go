// Package server provides the HTTP server for the Mudra gesture-to-phrase
// assistant: the phrase and event API, the camera preview stream, and the
// live acceptance feed.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration. Nil or empty fields disable the
// routes that depend on them.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera

	// Catalog receives phrase edits made over the API so the running
	// pipeline picks them up without a restart.
	Catalog api.PhraseCatalog

	// EngineState reports the decision engine's current state for the
	// debug endpoint.
	EngineState func() engine.DebugState
}

// Server is the HTTP front of the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	live   *LiveHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		live:   NewLiveHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Live returns the handler used to push acceptance events to connected
// WebSocket clients.
func (s *Server) Live() *LiveHandler {
	return s.live
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/live", s.live)

	if s.config.Store != nil {
		phraseHandler := api.NewPhraseHandler(s.config.Store, s.config.Catalog)
		s.mux.Handle("/api/phrases", phraseHandler)
		s.mux.Handle("/api/phrases/", phraseHandler)

		s.mux.Handle("/api/events", api.NewEventHandler(s.config.Store))
	}

	if s.config.EngineState != nil {
		s.mux.HandleFunc("/api/engine", s.handleEngineState)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleEngineState handles GET requests to /api/engine and reports the
// decision engine's debug state.
func (s *Server) handleEngineState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.config.EngineState()

	response := map[string]interface{}{
		"accepted_label":        string(state.AcceptedLabel),
		"locked":                state.Locked,
		"buffer_size":           state.BufferSize,
		"cooldown_remaining_ms": state.CooldownRemainingMs,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
