package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.75, cfg.Detection.RequiredDuration)
	assert.Equal(t, 3.0, cfg.Detection.TriggerCooldown)
	assert.Equal(t, 100.0, cfg.Detection.MaxHeadDistance)
	assert.False(t, cfg.Detection.FullHeadDetection)
	assert.True(t, cfg.Camera.Flip)
}

func TestFromSettings_OverridesDefaults(t *testing.T) {
	cfg := FromSettings(map[string]string{
		"detection.required_duration":   "1.5",
		"detection.trigger_cooldown":    "10",
		"detection.full_head_detection": "true",
		"camera.device":                 "2",
	})

	assert.Equal(t, 1.5, cfg.Detection.RequiredDuration)
	assert.Equal(t, 10.0, cfg.Detection.TriggerCooldown)
	assert.True(t, cfg.Detection.FullHeadDetection)
	assert.Equal(t, 2, cfg.Camera.Device)

	// Untouched keys keep defaults.
	assert.Equal(t, 0.7, cfg.Detection.HandConfidence)
}

func TestFromSettings_MalformedValuesKeepDefaults(t *testing.T) {
	cfg := FromSettings(map[string]string{
		"detection.required_duration": "soon",
		"detection.pull_threshold":    "one",
		"camera.flip":                 "sideways",
	})

	def := Default()
	assert.Equal(t, def.Detection.RequiredDuration, cfg.Detection.RequiredDuration)
	assert.Equal(t, def.Detection.PullThreshold, cfg.Detection.PullThreshold)
	assert.Equal(t, def.Camera.Flip, cfg.Camera.Flip)
}

func TestDetection_Clamped(t *testing.T) {
	d := Detection{
		HandConfidence:   1.8,
		FaceConfidence:   -0.2,
		TriggerCooldown:  -3,
		RequiredDuration: -1,
		PullThreshold:    -5,
		MaxHeadDistance:  500,
	}.Clamped()

	assert.Equal(t, 1.0, d.HandConfidence)
	assert.Equal(t, 0.0, d.FaceConfidence)
	assert.Equal(t, 0.0, d.TriggerCooldown)
	assert.Equal(t, 0.0, d.RequiredDuration)
	assert.Equal(t, 0, d.PullThreshold)
	assert.Equal(t, 200.0, d.MaxHeadDistance)

	low := Detection{MaxHeadDistance: 1}.Clamped()
	assert.Equal(t, 10.0, low.MaxHeadDistance)
}

func TestValues_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Detection.RequiredDuration = 2
	cfg.Detection.FullHeadDetection = true
	cfg.Camera.Device = 1

	got := FromSettings(cfg.Values())
	assert.Equal(t, cfg, got)
}
