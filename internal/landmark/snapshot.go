package landmark

// Snapshot is the per-frame value consumed by the proximity evaluator: the
// hand point closest to a head reference, the reference it was closest to,
// and the apparent head size for distance normalization. Coordinates are in
// pixels. A Snapshot is built fresh each frame and discarded after use.
type Snapshot struct {
	HandX     float64
	HandY     float64
	HeadRefX  float64
	HeadRefY  float64
	HeadScale float64 // inter-eye pixel distance; 0 when unknown
	Timestamp float64 // monotonic seconds
}

// SnapshotOptions control how a Snapshot is selected from raw extraction
// results.
type SnapshotOptions struct {
	FrameWidth     int
	FrameHeight    int
	FullHead       bool    // widen references from the above-eye line to the whole head
	HandConfidence float64 // hands scoring below this are treated as absent
	FaceConfidence float64 // faces scoring below this are treated as absent
}

// BuildSnapshot selects the closest hand-point/head-reference pair from an
// extraction result. It returns nil when no sufficiently confident hand and
// face are both present, which callers treat as out of range rather than as
// an error.
//
// When full-head detection is off, hand points below the eye line are
// ignored so that a hand resting at chin height does not count.
func BuildSnapshot(res *Result, opts SnapshotOptions, now float64) *Snapshot {
	if res == nil || res.Face == nil || res.Face.Score < opts.FaceConfidence {
		return nil
	}

	w := float64(opts.FrameWidth)
	h := float64(opts.FrameHeight)

	rightEye, okR := res.Face.Points[FaceRightEye]
	leftEye, okL := res.Face.Points[FaceLeftEye]
	if !okR || !okL {
		return nil
	}

	// Eye line in pixels; the higher (smaller Y) eye wins, matching a tilted
	// head conservatively.
	eyeLevel := rightEye.Y * h
	if leftEye.Y*h < eyeLevel {
		eyeLevel = leftEye.Y * h
	}

	headScale := distance2D(rightEye.X*w, rightEye.Y*h, leftEye.X*w, leftEye.Y*h)

	indices := UpperHeadIndices
	if opts.FullHead {
		indices = FullHeadIndices
	}

	refs := make([][2]float64, 0, len(indices))
	for _, idx := range indices {
		p, ok := res.Face.Points[idx]
		if !ok {
			continue
		}
		refs = append(refs, [2]float64{p.X * w, p.Y * h})
	}
	if len(refs) == 0 {
		return nil
	}

	best := Snapshot{HeadScale: headScale, Timestamp: now}
	bestDist := -1.0

	for hi := range res.Hands {
		hand := &res.Hands[hi]
		if hand.Score < opts.HandConfidence {
			continue
		}
		for _, p := range hand.Points {
			hx := p.X * w
			hy := p.Y * h
			if !opts.FullHead && hy > eyeLevel {
				continue
			}
			for _, ref := range refs {
				d := distance2D(hx, hy, ref[0], ref[1])
				if bestDist < 0 || d < bestDist {
					bestDist = d
					best.HandX = hx
					best.HandY = hy
					best.HeadRefX = ref[0]
					best.HeadRefY = ref[1]
				}
			}
		}
	}

	if bestDist < 0 {
		return nil
	}
	return &best
}
