// Package gesture implements the temporal state machine that turns noisy
// per-frame proximity samples into debounced, cooldown-gated trigger events.
package gesture

import (
	"github.com/ayusman/strandguard/internal/proximity"
)

// State identifies where the machine is in the detection cycle.
type State int

const (
	// StateIdle means no sustained proximity is being tracked.
	StateIdle State = iota
	// StateApproaching means the hand is within range and dwell time is
	// accumulating.
	StateApproaching
	// StateConfirmed marks the instant a trigger fires. It is transient:
	// the machine advances to StateCooldown within the same step.
	StateConfirmed
	// StateCooldown is the hard lockout after a trigger. All proximity
	// input is ignored until the cooldown elapses.
	StateCooldown
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateApproaching:
		return "approaching"
	case StateConfirmed:
		return "confirmed"
	case StateCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Config holds the timing thresholds for gesture confirmation, in seconds.
type Config struct {
	// RequiredDuration is how long proximity must be continuously sustained
	// before a trigger fires.
	RequiredDuration float64

	// Cooldown is the quiet period after a trigger during which no new
	// trigger can fire.
	Cooldown float64
}

// normalized clamps negative durations to zero.
func (c Config) normalized() Config {
	if c.RequiredDuration < 0 {
		c.RequiredDuration = 0
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}
	return c
}

// Machine is the gesture confirmation state machine. It consumes exactly one
// proximity sample per processed frame and emits at most one trigger per
// cooldown window. Machine is not safe for concurrent use; the session
// serializes all calls.
type Machine struct {
	cfg         Config
	state       State
	dwellStart  float64
	dwell       float64
	lastTrigger float64
	triggered   bool // lastTrigger is valid
}

// NewMachine creates a Machine in the idle state.
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg.normalized()}
}

// SetConfig replaces the timing thresholds. The current state is kept; new
// values apply from the next step.
func (m *Machine) SetConfig(cfg Config) {
	m.cfg = cfg.normalized()
}

// Step advances the machine by one sample and reports whether a trigger
// fired on this step. All duration math uses the sample's timestamp, never
// wall-clock frame counts, so frame skipping does not change trigger timing.
func (m *Machine) Step(s proximity.Sample) bool {
	now := s.Timestamp

	if m.state == StateCooldown {
		if elapsed(now, m.lastTrigger) < m.cfg.Cooldown {
			return false
		}
		// Cooldown over; fall through and re-evaluate this same sample
		// under idle rules.
		m.state = StateIdle
	}

	switch m.state {
	case StateIdle:
		if s.WithinRange {
			m.state = StateApproaching
			m.dwellStart = now
			m.dwell = 0
		}

	case StateApproaching:
		if !s.WithinRange {
			// A single out-of-range sample resets the dwell entirely.
			m.state = StateIdle
			m.dwell = 0
			return false
		}
		m.dwell = elapsed(now, m.dwellStart)
		if m.dwell >= m.cfg.RequiredDuration {
			m.state = StateConfirmed
			m.lastTrigger = now
			m.triggered = true
			// Confirmed exists only to mark the trigger instant.
			m.state = StateCooldown
			m.dwell = 0
			return true
		}
	}

	return false
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Dwell returns the accumulated in-range duration of the current approach,
// in seconds. Zero outside of StateApproaching.
func (m *Machine) Dwell() float64 {
	return m.dwell
}

// LastTrigger returns the timestamp of the most recent trigger and whether
// one has fired.
func (m *Machine) LastTrigger() (float64, bool) {
	return m.lastTrigger, m.triggered
}

// elapsed returns now-since, clamped to zero so a clock rewind never feeds a
// negative duration into threshold comparisons.
func elapsed(now, since float64) float64 {
	d := now - since
	if d < 0 {
		return 0
	}
	return d
}
