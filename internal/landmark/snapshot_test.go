package landmark

import (
	"math"
	"testing"
)

func defaultOpts() SnapshotOptions {
	return SnapshotOptions{
		FrameWidth:     640,
		FrameHeight:    480,
		FullHead:       false,
		HandConfidence: 0.7,
		FaceConfidence: 0.5,
	}
}

func TestBuildSnapshot_HandNearForehead(t *testing.T) {
	res := &Result{
		Hands: []Hand{HandAt(0.50, 0.28)}, // just above the forehead point
		Face:  FrontalFace(),
	}

	snap := BuildSnapshot(res, defaultOpts(), 1.5)
	if snap == nil {
		t.Fatal("expected a snapshot for a hand above the eye line")
	}

	if snap.Timestamp != 1.5 {
		t.Errorf("expected timestamp 1.5, got %f", snap.Timestamp)
	}

	// The chosen reference should be the forehead at (0.50, 0.30) in pixels.
	wantX, wantY := 0.50*640, 0.30*480
	if snap.HeadRefX != wantX || snap.HeadRefY != wantY {
		t.Errorf("expected head reference (%f, %f), got (%f, %f)",
			wantX, wantY, snap.HeadRefX, snap.HeadRefY)
	}

	// Head scale is the inter-eye pixel distance.
	wantScale := math.Hypot((0.55-0.45)*640, 0)
	if math.Abs(snap.HeadScale-wantScale) > 1e-9 {
		t.Errorf("expected head scale %f, got %f", wantScale, snap.HeadScale)
	}
}

func TestBuildSnapshot_EyeLineGate(t *testing.T) {
	// Hand entirely below the eye line: ignored unless full-head detection
	// is enabled.
	res := &Result{
		Hands: []Hand{HandAt(0.50, 0.60)},
		Face:  FrontalFace(),
	}

	if snap := BuildSnapshot(res, defaultOpts(), 0); snap != nil {
		t.Error("expected no snapshot for a hand below the eye line")
	}

	opts := defaultOpts()
	opts.FullHead = true
	if snap := BuildSnapshot(res, opts, 0); snap == nil {
		t.Error("expected a snapshot in full-head mode")
	}
}

func TestBuildSnapshot_ConfidenceThresholds(t *testing.T) {
	hand := HandAt(0.50, 0.28)
	hand.Score = 0.3 // below the 0.7 hand threshold
	res := &Result{
		Hands: []Hand{hand},
		Face:  FrontalFace(),
	}
	if snap := BuildSnapshot(res, defaultOpts(), 0); snap != nil {
		t.Error("expected low-confidence hand to be treated as absent")
	}

	res = &Result{
		Hands: []Hand{HandAt(0.50, 0.28)},
		Face:  FrontalFace(),
	}
	res.Face.Score = 0.2 // below the 0.5 face threshold
	if snap := BuildSnapshot(res, defaultOpts(), 0); snap != nil {
		t.Error("expected low-confidence face to be treated as absent")
	}
}

func TestBuildSnapshot_MissingInput(t *testing.T) {
	if snap := BuildSnapshot(nil, defaultOpts(), 0); snap != nil {
		t.Error("expected nil snapshot for nil result")
	}

	if snap := BuildSnapshot(&Result{}, defaultOpts(), 0); snap != nil {
		t.Error("expected nil snapshot when no face is present")
	}

	// Face without eye points cannot establish the eye line or head scale.
	res := &Result{
		Hands: []Hand{HandAt(0.50, 0.28)},
		Face: &Face{
			Score:  0.9,
			Points: map[int]Point{FaceForehead: {X: 0.5, Y: 0.3}},
		},
	}
	if snap := BuildSnapshot(res, defaultOpts(), 0); snap != nil {
		t.Error("expected nil snapshot when eye points are missing")
	}
}

func TestBuildSnapshot_PicksClosestPair(t *testing.T) {
	// Two hands: one near the left temple, one far away at the top corner.
	near := HandAt(0.60, 0.41)
	far := HandAt(0.05, 0.05)
	res := &Result{
		Hands: []Hand{far, near},
		Face:  FrontalFace(),
	}

	snap := BuildSnapshot(res, defaultOpts(), 0)
	if snap == nil {
		t.Fatal("expected a snapshot")
	}

	d := math.Hypot(snap.HandX-snap.HeadRefX, snap.HandY-snap.HeadRefY)
	// The near hand overlaps the temple; the chosen pair must be tight.
	if d > 30 {
		t.Errorf("expected the closest pair to be selected, got distance %f", d)
	}
}
