// Package proximity converts landmark snapshots into hand-to-head distance
// samples for the gesture state machine.
package proximity

import (
	"math"

	"github.com/ayusman/strandguard/internal/landmark"
)

// DefaultHeadSpan is the inter-eye pixel distance distances are normalized
// against, so MaxHeadDistance keeps its meaning when the user moves closer
// to or further from the camera.
const DefaultHeadSpan = 60.0

// DistanceUnknown is reported when no landmarks were available this frame.
const DistanceUnknown = -1.0

// Sample is the per-frame output of Evaluate, consumed immediately by the
// state machine.
type Sample struct {
	Distance    float64
	WithinRange bool
	Timestamp   float64
}

// Config holds the thresholds Evaluate works against. Values are accepted
// as-is; range clamping is the caller's concern.
type Config struct {
	// MaxHeadDistance is the trigger radius in pixels at reference head size.
	MaxHeadDistance float64

	// ReferenceHeadSpan is the inter-eye distance the thresholds were tuned
	// at. Zero disables head-scale normalization.
	ReferenceHeadSpan float64
}

// Evaluate computes the hand-to-head distance for one frame. A nil snapshot
// (landmarks missing or below confidence) yields an out-of-range sample so a
// single bad frame never stalls the pipeline. Pure function of its inputs.
func Evaluate(snap *landmark.Snapshot, cfg Config, now float64) Sample {
	if snap == nil {
		return Sample{Distance: DistanceUnknown, WithinRange: false, Timestamp: now}
	}

	d := math.Hypot(snap.HandX-snap.HeadRefX, snap.HandY-snap.HeadRefY)

	// Normalize by apparent head size so the threshold tracks the user's
	// distance from the camera.
	if cfg.ReferenceHeadSpan > 0 && snap.HeadScale > 0 {
		d = d * cfg.ReferenceHeadSpan / snap.HeadScale
	}

	return Sample{
		Distance:    d,
		WithinRange: d <= cfg.MaxHeadDistance,
		Timestamp:   snap.Timestamp,
	}
}
