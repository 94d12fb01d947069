package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ayusman/strandguard/internal/config"
)

// handleSettings handles GET and PUT requests to /api/settings.
//
// GET returns the effective configuration (persisted values over defaults).
// PUT accepts a full configuration document, clamps the detection thresholds
// into their valid ranges, persists the result and applies it to the running
// session. The response carries the configuration as applied, so a client
// that sent out-of-range values sees what actually took effect.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.loadConfig()
		if err != nil {
			http.Error(w, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, cfg)

	case http.MethodPut:
		var cfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		cfg.Detection = cfg.Detection.Clamped()

		if err := s.config.Store.Settings().SetAll(cfg.Values()); err != nil {
			log.Printf("Error persisting settings: %v", err)
			http.Error(w, "Failed to persist settings", http.StatusInternalServerError)
			return
		}

		if s.config.Session != nil {
			s.config.Session.UpdateDetection(cfg.Detection)
		}

		writeJSON(w, cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// loadConfig builds the effective configuration from the settings table.
func (s *Server) loadConfig() (config.Config, error) {
	values, err := s.config.Store.Settings().All()
	if err != nil {
		return config.Config{}, err
	}
	return config.FromSettings(values), nil
}

// phrasesPayload is the JSON shape of /api/phrases.
type phrasesPayload struct {
	Phrases []string `json:"phrases"`
}

// handlePhrases handles GET and PUT requests to /api/phrases, managing the
// motivational phrase pool.
func (s *Server) handlePhrases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		phrases, err := s.config.Store.Phrases().List()
		if err != nil {
			http.Error(w, "Failed to load phrases", http.StatusInternalServerError)
			return
		}
		if phrases == nil {
			phrases = []string{}
		}
		writeJSON(w, phrasesPayload{Phrases: phrases})

	case http.MethodPut:
		var payload phrasesPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		if err := s.config.Store.Phrases().Replace(payload.Phrases); err != nil {
			log.Printf("Error replacing phrases: %v", err)
			http.Error(w, "Failed to persist phrases", http.StatusInternalServerError)
			return
		}

		writeJSON(w, payload)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
