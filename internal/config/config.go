// Package config defines the detection and camera settings, their defaults,
// and tolerant loading from persisted key-value pairs.
package config

import (
	"fmt"
	"log"
	"strconv"
)

// Detection holds the tunable thresholds for gesture confirmation. All
// fields are read-only inputs to the detection core; mutation happens
// through the settings API.
type Detection struct {
	HandConfidence    float64 `json:"hand_confidence"`
	FaceConfidence    float64 `json:"face_confidence"`
	TriggerCooldown   float64 `json:"trigger_cooldown"`  // seconds
	RequiredDuration  float64 `json:"required_duration"` // seconds
	PullThreshold     int     `json:"pull_threshold"`
	MaxHeadDistance   float64 `json:"max_head_distance"` // pixels at reference head size
	FullHeadDetection bool    `json:"full_head_detection"`
}

// Camera holds camera selection settings.
type Camera struct {
	Device int  `json:"device"`
	Flip   bool `json:"flip"`
}

// Config is the complete application configuration.
type Config struct {
	Detection Detection `json:"detection"`
	Camera    Camera    `json:"camera"`
}

// Default returns the configuration used when nothing is persisted.
func Default() Config {
	return Config{
		Detection: Detection{
			HandConfidence:    0.7,
			FaceConfidence:    0.5,
			TriggerCooldown:   3,
			RequiredDuration:  0.75,
			PullThreshold:     1,
			MaxHeadDistance:   100,
			FullHeadDetection: false,
		},
		Camera: Camera{
			Device: 0,
			Flip:   true,
		},
	}
}

// Clamped returns a copy with every value forced into its valid range, so a
// single bad setting can never halt detection. Out-of-range values are
// clamped here, at the point of use, rather than rejected on load.
func (d Detection) Clamped() Detection {
	d.HandConfidence = clampFloat(d.HandConfidence, 0, 1)
	d.FaceConfidence = clampFloat(d.FaceConfidence, 0, 1)
	if d.TriggerCooldown < 0 {
		d.TriggerCooldown = 0
	}
	if d.RequiredDuration < 0 {
		d.RequiredDuration = 0
	}
	if d.PullThreshold < 0 {
		d.PullThreshold = 0
	}
	d.MaxHeadDistance = clampFloat(d.MaxHeadDistance, 10, 200)
	return d
}

// Settings keys as stored in the settings table.
const (
	keyHandConfidence   = "detection.hand_confidence"
	keyFaceConfidence   = "detection.face_confidence"
	keyTriggerCooldown  = "detection.trigger_cooldown"
	keyRequiredDuration = "detection.required_duration"
	keyPullThreshold    = "detection.pull_threshold"
	keyMaxHeadDistance  = "detection.max_head_distance"
	keyFullHead         = "detection.full_head_detection"
	keyCameraDevice     = "camera.device"
	keyCameraFlip       = "camera.flip"
)

// FromSettings builds a Config from persisted key-value pairs. Missing keys
// keep their defaults; malformed values are skipped with a logged warning,
// never an error.
func FromSettings(values map[string]string) Config {
	cfg := Default()

	parseFloat(values, keyHandConfidence, &cfg.Detection.HandConfidence)
	parseFloat(values, keyFaceConfidence, &cfg.Detection.FaceConfidence)
	parseFloat(values, keyTriggerCooldown, &cfg.Detection.TriggerCooldown)
	parseFloat(values, keyRequiredDuration, &cfg.Detection.RequiredDuration)
	parseInt(values, keyPullThreshold, &cfg.Detection.PullThreshold)
	parseFloat(values, keyMaxHeadDistance, &cfg.Detection.MaxHeadDistance)
	parseBool(values, keyFullHead, &cfg.Detection.FullHeadDetection)
	parseInt(values, keyCameraDevice, &cfg.Camera.Device)
	parseBool(values, keyCameraFlip, &cfg.Camera.Flip)

	return cfg
}

// Values flattens the configuration into settings-table key-value pairs.
func (c Config) Values() map[string]string {
	return map[string]string{
		keyHandConfidence:   formatFloat(c.Detection.HandConfidence),
		keyFaceConfidence:   formatFloat(c.Detection.FaceConfidence),
		keyTriggerCooldown:  formatFloat(c.Detection.TriggerCooldown),
		keyRequiredDuration: formatFloat(c.Detection.RequiredDuration),
		keyPullThreshold:    strconv.Itoa(c.Detection.PullThreshold),
		keyMaxHeadDistance:  formatFloat(c.Detection.MaxHeadDistance),
		keyFullHead:         strconv.FormatBool(c.Detection.FullHeadDetection),
		keyCameraDevice:     strconv.Itoa(c.Camera.Device),
		keyCameraFlip:       strconv.FormatBool(c.Camera.Flip),
	}
}

func parseFloat(values map[string]string, key string, dst *float64) {
	raw, ok := values[key]
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, keeping %v", raw, key, *dst)
		return
	}
	*dst = v
}

func parseInt(values map[string]string, key string, dst *int) {
	raw, ok := values[key]
	if !ok {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, keeping %v", raw, key, *dst)
		return
	}
	*dst = v
}

func parseBool(values map[string]string, key string, dst *bool) {
	raw, ok := values[key]
	if !ok {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, keeping %v", raw, key, *dst)
		return
	}
	*dst = v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// String implements fmt.Stringer for log output.
func (d Detection) String() string {
	return fmt.Sprintf(
		"duration=%.2fs cooldown=%.1fs max_distance=%.0f full_head=%v",
		d.RequiredDuration, d.TriggerCooldown, d.MaxHeadDistance, d.FullHeadDetection,
	)
}
