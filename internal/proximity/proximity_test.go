package proximity

import (
	"testing"

	"github.com/ayusman/strandguard/internal/landmark"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_WithinRange(t *testing.T) {
	snap := &landmark.Snapshot{
		HandX: 100, HandY: 100,
		HeadRefX: 130, HeadRefY: 140,
		HeadScale: 60,
		Timestamp: 2.0,
	}

	s := Evaluate(snap, Config{MaxHeadDistance: 100, ReferenceHeadSpan: 60}, 2.0)
	assert.InDelta(t, 50.0, s.Distance, 1e-9) // 3-4-5 triangle
	assert.True(t, s.WithinRange)
	assert.Equal(t, 2.0, s.Timestamp)
}

func TestEvaluate_OutOfRange(t *testing.T) {
	snap := &landmark.Snapshot{
		HandX: 0, HandY: 0,
		HeadRefX: 300, HeadRefY: 0,
		HeadScale: 60,
	}

	s := Evaluate(snap, Config{MaxHeadDistance: 100, ReferenceHeadSpan: 60}, 0)
	assert.False(t, s.WithinRange)
	assert.InDelta(t, 300.0, s.Distance, 1e-9)
}

func TestEvaluate_HeadScaleNormalization(t *testing.T) {
	// Head twice as large as reference: the user is close to the camera, so
	// a 120px gap is really a 60px gap at reference size.
	snap := &landmark.Snapshot{
		HandX: 0, HandY: 0,
		HeadRefX: 120, HeadRefY: 0,
		HeadScale: 120,
	}

	s := Evaluate(snap, Config{MaxHeadDistance: 100, ReferenceHeadSpan: 60}, 0)
	assert.InDelta(t, 60.0, s.Distance, 1e-9)
	assert.True(t, s.WithinRange)

	// Normalization disabled: raw pixel distance.
	s = Evaluate(snap, Config{MaxHeadDistance: 100}, 0)
	assert.InDelta(t, 120.0, s.Distance, 1e-9)
	assert.False(t, s.WithinRange)
}

func TestEvaluate_MissingSnapshot(t *testing.T) {
	s := Evaluate(nil, Config{MaxHeadDistance: 100}, 3.5)
	assert.False(t, s.WithinRange)
	assert.Equal(t, DistanceUnknown, s.Distance)
	assert.Equal(t, 3.5, s.Timestamp)
}

func TestEvaluate_ZeroHeadScale(t *testing.T) {
	// Degenerate head scale must not divide by zero.
	snap := &landmark.Snapshot{
		HandX: 0, HandY: 0,
		HeadRefX: 50, HeadRefY: 0,
		HeadScale: 0,
	}

	s := Evaluate(snap, Config{MaxHeadDistance: 100, ReferenceHeadSpan: 60}, 0)
	assert.InDelta(t, 50.0, s.Distance, 1e-9)
	assert.True(t, s.WithinRange)
}
