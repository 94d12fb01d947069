// Package landmark provides hand and face landmark types and extraction for
// hair-pulling gesture detection.
package landmark

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// Face mesh reference indices following the MediaPipe face mesh convention.
// Only the points used as head references are listed; the extractor sends
// exactly this subset.
const (
	FaceRightEye     = 159
	FaceLeftEye      = 386
	FaceForehead     = 10
	FaceCrown        = 152
	FaceTempleRight  = 447
	FaceTempleLeft   = 227
	FaceChin         = 152
	FaceCheekLeft    = 234
	FaceCheekRight   = 454
	FaceJawLeft      = 136
	FaceJawRight     = 365
	FaceNoseTip      = 4
	FaceEyebrowLeft  = 282
	FaceEyebrowRight = 52
)

// UpperHeadIndices are the head reference points restricted to the above-eye
// region, used when full-head detection is disabled.
var UpperHeadIndices = []int{
	FaceRightEye, FaceLeftEye, FaceForehead, FaceCrown,
	FaceTempleRight, FaceTempleLeft,
}

// FullHeadIndices extends UpperHeadIndices with the lower face, used when
// full-head detection is enabled.
var FullHeadIndices = append([]int{
	FaceChin, FaceCheekLeft, FaceCheekRight, FaceJawLeft, FaceJawRight,
	FaceNoseTip, FaceEyebrowLeft, FaceEyebrowRight,
}, UpperHeadIndices...)

// Point represents a normalized landmark position. X and Y are in [0,1]
// relative to the frame; Z is MediaPipe's relative depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand represents the 21 hand landmarks detected for one hand.
type Hand struct {
	Points     [NumHandLandmarks]Point `json:"points"`
	Handedness string                  `json:"handedness"` // "Left" or "Right"
	Score      float64                 `json:"score"`
}

// Face holds the subset of face mesh points used as head references, keyed
// by mesh index.
type Face struct {
	Points map[int]Point `json:"points"`
	Score  float64       `json:"score"`
}

// Result is the outcome of extracting one frame. Face is nil when no face
// was detected.
type Result struct {
	Hands []Hand
	Face  *Face
}

// distance2D calculates the Euclidean distance between two points in pixel
// space, ignoring depth.
func distance2D(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return math.Sqrt(dx*dx + dy*dy)
}
