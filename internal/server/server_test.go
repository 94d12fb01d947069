package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/strandguard/internal/config"
	"github.com/ayusman/strandguard/internal/ledger"
	"github.com/ayusman/strandguard/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "strandguard.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

func TestServer_Stats(t *testing.T) {
	l := ledger.New()
	now := time.Now()
	l.RecordTrigger(now)
	l.RecordTrigger(now)
	l.RecordTrigger(now.AddDate(0, 0, -2))

	s := New(Config{Ledger: l})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var stats statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if stats.Today != 2 {
		t.Errorf("expected today count 2, got %d", stats.Today)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if len(stats.WeeklyTrend) != 7 {
		t.Errorf("expected 7 weekly trend entries, got %d", len(stats.WeeklyTrend))
	}
	if len(stats.Hourly) != 24 {
		t.Errorf("expected 24 hourly buckets, got %d", len(stats.Hourly))
	}
	if stats.WeeklyTrend[6].Date != now.Format(ledger.DateFormat) {
		t.Errorf("expected last trend entry to be today, got %s", stats.WeeklyTrend[6].Date)
	}
	if stats.PeakHour.Count == 0 {
		t.Error("expected a non-zero peak hour count")
	}
}

func TestServer_StatsPage(t *testing.T) {
	l := ledger.New()
	l.RecordTrigger(time.Now())

	s := New(Config{Ledger: l})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Pulling Triggers") {
		t.Error("expected chart title in rendered page")
	}
}

func TestServer_SettingsGetDefaults(t *testing.T) {
	s := New(Config{Store: newTestStore(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var cfg config.Config
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := config.Default()
	if cfg.Detection != want.Detection {
		t.Errorf("expected default detection settings, got %+v", cfg.Detection)
	}
}

func TestServer_SettingsPutClampsAndPersists(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	body := `{"detection": {"hand_confidence": 0.8, "max_head_distance": 1000, "required_duration": 1.5,
		"face_confidence": 0.5, "trigger_cooldown": 3, "pull_threshold": 1, "full_head_detection": true},
		"camera": {"device": 1, "flip": false}}`

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var applied config.Config
	if err := json.NewDecoder(rec.Body).Decode(&applied); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Out-of-range distance is clamped, not rejected
	if applied.Detection.MaxHeadDistance != 200 {
		t.Errorf("expected clamped max distance 200, got %v", applied.Detection.MaxHeadDistance)
	}

	// Reload via GET: persisted values survive
	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var loaded config.Config
	if err := json.NewDecoder(rec.Body).Decode(&loaded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if loaded.Detection.MaxHeadDistance != 200 {
		t.Errorf("expected persisted max distance 200, got %v", loaded.Detection.MaxHeadDistance)
	}
	if loaded.Detection.RequiredDuration != 1.5 {
		t.Errorf("expected required duration 1.5, got %v", loaded.Detection.RequiredDuration)
	}
	if !loaded.Detection.FullHeadDetection {
		t.Error("expected full head detection enabled")
	}
	if loaded.Camera.Device != 1 {
		t.Errorf("expected camera device 1, got %d", loaded.Camera.Device)
	}
}

func TestServer_SettingsRejectsInvalidJSON(t *testing.T) {
	s := New(Config{Store: newTestStore(t)})

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_Phrases(t *testing.T) {
	s := New(Config{Store: newTestStore(t)})

	t.Run("empty pool returns empty list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/phrases", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var payload phrasesPayload
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(payload.Phrases) != 0 {
			t.Errorf("expected no phrases, got %v", payload.Phrases)
		}
	})

	t.Run("put then get round trip", func(t *testing.T) {
		body := `{"phrases": ["Hands off!", "Stay strong."]}`
		req := httptest.NewRequest(http.MethodPut, "/api/phrases", strings.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/phrases", nil)
		rec = httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		var payload phrasesPayload
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(payload.Phrases) != 2 || payload.Phrases[0] != "Hands off!" {
			t.Errorf("unexpected phrases: %v", payload.Phrases)
		}
	})
}

func TestServer_RoutesAbsentWithoutCollaborators(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{"/api/stats", "/api/settings", "/api/phrases", "/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("path %s: expected status %d, got %d", path, http.StatusNotFound, rec.Code)
		}
	}
}
