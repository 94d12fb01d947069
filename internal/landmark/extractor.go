package landmark

import "gocv.io/x/gocv"

// Extractor defines the interface for landmark extraction implementations.
type Extractor interface {
	// Extract analyzes a video frame and returns the detected hand and face
	// landmarks. A frame with no detections returns a Result with no hands
	// and a nil face, not an error.
	Extract(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the extractor.
	Close() error
}

// Config holds configuration options for landmark extraction.
type Config struct {
	// MaxHands is the maximum number of hands to track (default: 2).
	MaxHands int

	// HandConfidence is the minimum hand detection confidence (0.0-1.0).
	HandConfidence float64

	// FaceConfidence is the minimum face detection confidence (0.0-1.0).
	FaceConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:       2,
		HandConfidence: 0.7,
		FaceConfidence: 0.5,
	}
}
