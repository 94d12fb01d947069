package landmark

import (
	"gocv.io/x/gocv"
)

// MockExtractor is a test implementation of the Extractor interface.
// It allows tests to control the extraction results.
type MockExtractor struct {
	result *Result
	err    error
}

// NewMockExtractor creates a new MockExtractor instance.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{result: &Result{}}
}

// SetResult sets the result that will be returned by Extract.
func (m *MockExtractor) SetResult(res *Result) {
	m.result = res
}

// SetError sets the error that will be returned by Extract.
func (m *MockExtractor) SetError(err error) {
	m.err = err
}

// Extract returns the pre-configured result or error.
func (m *MockExtractor) Extract(frame *gocv.Mat) (*Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// Close is a no-op for the mock extractor.
func (m *MockExtractor) Close() error {
	return nil
}

// FrontalFace returns a preset Face for a head roughly centered in the
// frame, facing the camera. Coordinates are normalized.
func FrontalFace() *Face {
	return &Face{
		Score: 0.95,
		Points: map[int]Point{
			FaceRightEye:     {X: 0.45, Y: 0.40},
			FaceLeftEye:      {X: 0.55, Y: 0.40},
			FaceForehead:     {X: 0.50, Y: 0.30},
			FaceCrown:        {X: 0.50, Y: 0.62},
			FaceTempleRight:  {X: 0.40, Y: 0.42},
			FaceTempleLeft:   {X: 0.60, Y: 0.42},
			FaceCheekLeft:    {X: 0.58, Y: 0.50},
			FaceCheekRight:   {X: 0.42, Y: 0.50},
			FaceJawLeft:      {X: 0.56, Y: 0.58},
			FaceJawRight:     {X: 0.44, Y: 0.58},
			FaceNoseTip:      {X: 0.50, Y: 0.46},
			FaceEyebrowLeft:  {X: 0.56, Y: 0.37},
			FaceEyebrowRight: {X: 0.44, Y: 0.37},
		},
	}
}

// HandAt returns a preset Hand with every landmark clustered around the
// given normalized position, as a raised hand near the head would appear.
func HandAt(x, y float64) Hand {
	hand := Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	// Tight cluster; fingertips spread slightly above the wrist.
	offsets := [NumHandLandmarks][2]float64{
		{0, 0.04},                                                  // wrist below
		{0.01, 0.03}, {0.02, 0.02}, {0.02, 0.01}, {0.03, 0.00},     // thumb
		{0.00, 0.01}, {0.00, -0.01}, {0.00, -0.02}, {0.00, -0.03},  // index
		{-0.01, 0.01}, {-0.01, -0.01}, {-0.01, -0.02}, {-0.01, -0.03}, // middle
		{-0.02, 0.01}, {-0.02, -0.01}, {-0.02, -0.02}, {-0.02, -0.03}, // ring
		{-0.03, 0.01}, {-0.03, 0.00}, {-0.03, -0.01}, {-0.03, -0.02}, // pinky
	}

	for i, off := range offsets {
		hand.Points[i] = Point{X: x + off[0], Y: y + off[1]}
	}

	return hand
}
