package capture

import (
	"errors"
	"testing"
)

func TestNewCamera_Defaults(t *testing.T) {
	cam := NewCamera(0, true)

	if cam.IsOpen() {
		t.Error("camera should not be open before Open is called")
	}
	if cam.FPS() != DefaultFPS {
		t.Errorf("expected default FPS %d, got %d", DefaultFPS, cam.FPS())
	}

	w, h := cam.FrameSize()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("expected frame size %dx%d, got %dx%d", DefaultWidth, DefaultHeight, w, h)
	}
}

func TestCamera_ReadFrameWhenClosed(t *testing.T) {
	cam := NewCamera(0, false)

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("expected ErrCameraNotOpen, got %v", err)
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0, false)

	cam.SetFPS(30)
	if cam.FPS() != 30 {
		t.Errorf("expected FPS 30, got %d", cam.FPS())
	}

	// Non-positive values are ignored
	cam.SetFPS(0)
	if cam.FPS() != 30 {
		t.Errorf("FPS should be unchanged after SetFPS(0), got %d", cam.FPS())
	}
	cam.SetFPS(-5)
	if cam.FPS() != 30 {
		t.Errorf("FPS should be unchanged after SetFPS(-5), got %d", cam.FPS())
	}
}

func TestCamera_CloseWhenNotOpen(t *testing.T) {
	cam := NewCamera(0, false)

	if err := cam.Close(); err != nil {
		t.Errorf("closing an unopened camera should not error: %v", err)
	}
}
