package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/strandguard/internal/audio"
	"github.com/ayusman/strandguard/internal/capture"
	"github.com/ayusman/strandguard/internal/config"
	"github.com/ayusman/strandguard/internal/landmark"
	"github.com/ayusman/strandguard/internal/ledger"
	"github.com/ayusman/strandguard/internal/server"
	"github.com/ayusman/strandguard/internal/session"
	"github.com/ayusman/strandguard/internal/store"
	"github.com/ayusman/strandguard/internal/tray"
)

func main() {
	fmt.Println("Strandguard - Hair-Pulling Awareness Monitor")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".strandguard")

	var (
		dbPath     = flag.String("db", filepath.Join(dataDir, "strandguard.db"), "path to the sqlite database")
		addr       = flag.String("addr", ":8080", "dashboard listen address")
		cameraID   = flag.Int("camera", -1, "camera device ID (-1 uses the persisted setting)")
		importPath = flag.String("import", "", "one-time import of a legacy JSON stats file")
		audioDir   = flag.String("audio", filepath.Join(dataDir, "audio"), "directory of audio cue files")
	)
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := st.Phrases().SeedDefaults(audio.DefaultPhrases); err != nil {
		log.Printf("Warning: failed to seed phrase pool: %v", err)
	}

	// Load the effective configuration; missing or malformed settings fall
	// back to defaults.
	values, err := st.Settings().All()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	cfg := config.FromSettings(values)
	if *cameraID >= 0 {
		cfg.Camera.Device = *cameraID
	}

	if *importPath != "" {
		importLegacyStats(st, *importPath)
	}

	led, err := loadLedger(st)
	if err != nil {
		log.Fatalf("Failed to load trigger history: %v", err)
	}
	log.Printf("Loaded %d recorded triggers", led.Len())

	camera := capture.NewCamera(cfg.Camera.Device, cfg.Camera.Flip)

	// Try MediaPipe first, fall back to the mock extractor
	var extractor landmark.Extractor
	if mp, err := landmark.NewMediaPipeExtractor(landmark.Config{
		MaxHands:       2,
		HandConfidence: cfg.Detection.HandConfidence,
		FaceConfidence: cfg.Detection.FaceConfidence,
	}); err == nil {
		extractor = mp
		log.Println("Using MediaPipe landmark extraction")
	} else {
		log.Printf("MediaPipe not available (%v), using mock extractor", err)
		extractor = landmark.NewMockExtractor()
	}

	phrases, err := st.Phrases().List()
	if err != nil {
		log.Printf("Warning: failed to load phrases: %v", err)
	}
	dispatcher := audio.NewPlayerDispatcher(*audioDir, phrases)
	defer dispatcher.Close()

	tr := tray.New()

	sess := session.New(session.Config{
		Camera:    camera,
		Extractor: extractor,
		Ledger:    led,
		Audio:     dispatcher,
		Store:     st,
		Detection: cfg.Detection,
		OnTrigger: tr.SetTodayCount,
	})

	if err := sess.Start(); err != nil {
		log.Fatalf("Failed to start detection: %v", err)
	}
	defer sess.Stop()

	srv := server.New(server.Config{
		StaticDir: findWebDir(dataDir),
		Store:     st,
		Ledger:    led,
		Session:   sess,
		Camera:    camera,
	})

	go func() {
		log.Printf("Dashboard listening on %s", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Printf("Server failed: %v", err)
		}
	}()

	tr.OnToggle(sess.SetEnabled)
	tr.OnStats(func() { openBrowser("http://localhost" + *addr + "/stats") })

	// Blocks until Quit is selected from the tray menu.
	tr.Run()
}

// importLegacyStats reads a legacy JSON stats file and persists its triggers.
// Existing records with the same ID are left untouched.
func importLegacyStats(st *store.Store, path string) {
	legacy := ledger.LoadLegacyFile(path)

	recs := legacy.Records()
	triggers := make([]store.Trigger, len(recs))
	for i, r := range recs {
		triggers[i] = store.Trigger{ID: r.ID, TriggeredAt: r.Timestamp}
	}

	if err := st.Triggers().InsertBatch(triggers); err != nil {
		log.Printf("Warning: legacy import failed: %v", err)
		return
	}
	log.Printf("Imported %d triggers from %s", len(triggers), path)
}

// loadLedger rehydrates the in-memory trigger ledger from the store.
func loadLedger(st *store.Store) (*ledger.Ledger, error) {
	triggers, err := st.Triggers().List()
	if err != nil {
		return nil, err
	}

	recs := make([]ledger.Record, len(triggers))
	for i, t := range triggers {
		recs[i] = ledger.Record{ID: t.ID, Timestamp: t.TriggeredAt}
	}
	return ledger.FromRecords(recs), nil
}

// findWebDir searches for the dashboard assets in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
