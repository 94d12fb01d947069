// Package session orchestrates the detection pipeline. Frames from the
// camera flow through landmark extraction, proximity evaluation and the
// gesture state machine; confirmed triggers fan out to the ledger, the
// store and the audio dispatcher.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/strandguard/internal/audio"
	"github.com/ayusman/strandguard/internal/capture"
	"github.com/ayusman/strandguard/internal/config"
	"github.com/ayusman/strandguard/internal/gesture"
	"github.com/ayusman/strandguard/internal/landmark"
	"github.com/ayusman/strandguard/internal/ledger"
	"github.com/ayusman/strandguard/internal/proximity"
	"github.com/ayusman/strandguard/internal/store"
)

// Pipeline timing constants.
const (
	// DefaultFrameInterval targets roughly 15 frames per second.
	DefaultFrameInterval = 66 * time.Millisecond

	// persistQueueSize bounds the async trigger write queue. Triggers are at
	// least a cooldown apart, so the queue only fills if sqlite stalls.
	persistQueueSize = 64

	// fpsWindow is how often the measured frame rate is recomputed.
	fpsWindow = time.Second
)

// Config holds the collaborators and tuning for a detection session.
type Config struct {
	Camera    capture.Camera
	Extractor landmark.Extractor
	Ledger    *ledger.Ledger
	Audio     audio.Dispatcher
	Store     *store.Store
	Detection config.Detection

	// FrameInterval is the tick between frame reads. Zero selects
	// DefaultFrameInterval.
	FrameInterval time.Duration

	// FrameSkip processes only every (FrameSkip+1)th tick. The state machine
	// works on timestamps, so skipping frames trades latency for CPU without
	// changing trigger semantics.
	FrameSkip int

	// OnTrigger, if set, is called with today's count after each confirmed
	// trigger. Used by the tray to refresh its counter.
	OnTrigger func(todayCount int)
}

// Telemetry is a point-in-time snapshot of the pipeline for the UI.
type Telemetry struct {
	State      string  `json:"state"`
	Distance   float64 `json:"distance"`
	Dwell      float64 `json:"dwell"`
	FPS        float64 `json:"fps"`
	TodayCount int     `json:"today_count"`
	Enabled    bool    `json:"enabled"`
}

// Session runs the detection loop and owns the state machine.
type Session struct {
	cfg       Config
	detection config.Detection
	machine   *gesture.Machine

	mu        sync.RWMutex
	enabled   bool
	stopCh    chan struct{}
	started   time.Time
	lastState gesture.State
	distance  float64
	fps       float64

	persistCh chan store.Trigger
	loopWG    sync.WaitGroup
	persistWG sync.WaitGroup
}

// New creates a Session. Detection thresholds are clamped into their valid
// ranges before use.
func New(cfg Config) *Session {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.FrameSkip < 0 {
		cfg.FrameSkip = 0
	}

	d := cfg.Detection.Clamped()

	return &Session{
		cfg:       cfg,
		detection: d,
		machine: gesture.NewMachine(gesture.Config{
			RequiredDuration: d.RequiredDuration,
			Cooldown:         d.TriggerCooldown,
		}),
		enabled:  true,
		distance: proximity.DistanceUnknown,
	}
}

// Start opens the camera and launches the pipeline. Starting a running
// session is a no-op.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		return nil
	}

	if err := s.cfg.Camera.Open(); err != nil {
		return err
	}

	s.started = time.Now()
	s.stopCh = make(chan struct{})
	s.persistCh = make(chan store.Trigger, persistQueueSize)

	s.persistWG.Add(1)
	go s.persistLoop(s.persistCh)

	s.loopWG.Add(1)
	go s.run(s.stopCh)

	log.Printf("Detection session started (%s)", s.detection)
	return nil
}

// Stop halts the pipeline, flushes pending trigger writes and releases the
// camera and extractor.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopCh == nil {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.stopCh = nil
	persistCh := s.persistCh
	s.persistCh = nil
	s.mu.Unlock()

	s.loopWG.Wait()

	// Drain the write queue before shutting down the store.
	close(persistCh)
	s.persistWG.Wait()

	if err := s.cfg.Camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if s.cfg.Extractor != nil {
		if err := s.cfg.Extractor.Close(); err != nil {
			log.Printf("Error closing landmark extractor: %v", err)
		}
	}

	log.Println("Detection session stopped")
}

// SetEnabled pauses or resumes detection. The loop keeps ticking while
// paused so resume is instant.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	if enabled {
		log.Println("Detection resumed")
	} else {
		log.Println("Detection paused")
	}
}

// IsEnabled reports whether detection is currently active.
func (s *Session) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// UpdateDetection applies new thresholds to the running pipeline. Values are
// clamped; the state machine keeps its current state.
func (s *Session) UpdateDetection(d config.Detection) {
	d = d.Clamped()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.detection = d
	s.machine.SetConfig(gesture.Config{
		RequiredDuration: d.RequiredDuration,
		Cooldown:         d.TriggerCooldown,
	})
	log.Printf("Detection settings updated (%s)", d)
}

// Detection returns the active (clamped) detection thresholds.
func (s *Session) Detection() config.Detection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detection
}

// Telemetry returns the current pipeline state for the UI.
func (s *Session) Telemetry() Telemetry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := Telemetry{
		State:    s.lastState.String(),
		Distance: s.distance,
		Dwell:    s.machine.Dwell(),
		FPS:      s.fps,
		Enabled:  s.enabled,
	}
	if s.cfg.Ledger != nil {
		t.TodayCount = s.cfg.Ledger.TodayCount(time.Now())
	}
	return t
}

// run is the main detection loop. One tick reads one frame; duration math
// happens on sample timestamps inside the state machine, so dropped or
// skipped frames never distort trigger timing.
func (s *Session) run(stopCh chan struct{}) {
	defer s.loopWG.Done()

	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	tick := 0
	processed := 0
	windowStart := time.Now()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !s.IsEnabled() {
				continue
			}

			tick++
			if s.cfg.FrameSkip > 0 && tick%(s.cfg.FrameSkip+1) != 0 {
				continue
			}

			s.processFrame()
			processed++

			if elapsed := time.Since(windowStart); elapsed >= fpsWindow {
				s.mu.Lock()
				s.fps = float64(processed) / elapsed.Seconds()
				s.mu.Unlock()
				processed = 0
				windowStart = time.Now()
			}
		}
	}
}

// processFrame runs one frame through extraction, proximity evaluation and
// the state machine.
func (s *Session) processFrame() {
	frame, err := s.cfg.Camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		return
	}

	result, err := s.cfg.Extractor.Extract(frame)
	frame.Close()
	if err != nil {
		log.Printf("Error extracting landmarks: %v", err)
		return
	}

	now := time.Since(s.started).Seconds()

	s.mu.Lock()
	snap := landmark.BuildSnapshot(result, s.snapshotOptions(), now)
	sample := proximity.Evaluate(snap, proximity.Config{
		MaxHeadDistance:   s.detection.MaxHeadDistance,
		ReferenceHeadSpan: proximity.DefaultHeadSpan,
	}, now)

	fired := s.machine.Step(sample)
	s.lastState = s.machine.State()
	s.distance = sample.Distance
	s.mu.Unlock()

	if fired {
		s.handleTrigger()
	}
}

// snapshotOptions builds the per-frame landmark filter. Caller holds s.mu.
func (s *Session) snapshotOptions() landmark.SnapshotOptions {
	w, h := s.cfg.Camera.FrameSize()
	return landmark.SnapshotOptions{
		FrameWidth:     w,
		FrameHeight:    h,
		FullHead:       s.detection.FullHeadDetection,
		HandConfidence: s.detection.HandConfidence,
		FaceConfidence: s.detection.FaceConfidence,
	}
}

// handleTrigger records a confirmed trigger and fans it out. The ledger is
// the source of truth; persistence and audio are fire-and-forget so a slow
// disk or player never stalls the loop.
func (s *Session) handleTrigger() {
	ts := time.Now()

	var todayCount int
	var rec ledger.Record
	if s.cfg.Ledger != nil {
		rec = s.cfg.Ledger.RecordTrigger(ts)
		todayCount = s.cfg.Ledger.TodayCount(ts)
	}

	log.Printf("Pulling trigger confirmed (today: %d)", todayCount)

	if s.cfg.Store != nil && rec.ID != "" {
		s.mu.RLock()
		ch := s.persistCh
		s.mu.RUnlock()
		if ch != nil {
			select {
			case ch <- store.Trigger{ID: rec.ID, TriggeredAt: rec.Timestamp}:
			default:
				log.Println("Warning: trigger write queue full, dropping persist")
			}
		}
	}

	if s.cfg.Audio != nil {
		s.cfg.Audio.Dispatch(ts)
	}

	if s.cfg.OnTrigger != nil {
		s.cfg.OnTrigger(todayCount)
	}
}

// persistLoop writes triggers to sqlite off the hot path.
func (s *Session) persistLoop(ch chan store.Trigger) {
	defer s.persistWG.Done()
	for tr := range ch {
		if s.cfg.Store == nil {
			continue
		}
		if err := s.cfg.Store.Triggers().Insert(tr); err != nil {
			log.Printf("Error persisting trigger %s: %v", tr.ID, err)
		}
	}
}
