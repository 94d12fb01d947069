// Package server provides the local HTTP server for the Strandguard
// dashboard: statistics, settings, live telemetry and the camera preview.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/strandguard/internal/capture"
	"github.com/ayusman/strandguard/internal/ledger"
	"github.com/ayusman/strandguard/internal/session"
	"github.com/ayusman/strandguard/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Ledger    *ledger.Ledger
	Session   *session.Session
	Camera    capture.Camera
}

// Server is the HTTP server for the Strandguard application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Ledger != nil {
		s.mux.HandleFunc("/api/stats", s.handleStats)
		s.mux.HandleFunc("/stats", s.handleStatsPage)
	}

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/settings", s.handleSettings)
		s.mux.HandleFunc("/api/phrases", s.handlePhrases)
	}

	if s.config.Session != nil {
		s.mux.Handle("/api/telemetry", NewTelemetryHandler(s.config.Session))
	}

	// Camera preview; shares the capture device with the pipeline.
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

	writeJSON(w, response)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
