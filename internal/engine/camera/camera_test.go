package camera

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	c := NewOrbitCamera()
	if c.Yaw != DefaultYaw || c.Pitch != DefaultPitch || c.Distance != DefaultDistance {
		t.Errorf("defaults = yaw %v pitch %v dist %v", c.Yaw, c.Pitch, c.Distance)
	}
	if c.Target.Y != DefaultTargetY {
		t.Errorf("target = %+v", c.Target)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.Rotate(0, 1000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}
	c.Rotate(0, -10000)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, -c.MaxPitch)
	}
}

func TestZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(1000)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want %v", c.Distance, c.MinDistance)
	}
	c.Zoom(-1000)
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestRotateSensitivity(t *testing.T) {
	c := NewOrbitCamera()
	c.Rotate(10, 0)
	if got := c.Yaw - DefaultYaw; got != 5 {
		t.Errorf("yaw moved %v for 10px drag, want 5", got)
	}
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera()
	c.Rotate(50, 30)
	c.Zoom(5)
	c.Reset()
	if c.Yaw != DefaultYaw || c.Pitch != DefaultPitch || c.Distance != DefaultDistance {
		t.Errorf("reset left yaw %v pitch %v dist %v", c.Yaw, c.Pitch, c.Distance)
	}
}

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	d := c.Position().Distance(c.Target)
	if d < c.Distance-0.01 || d > c.Distance+0.01 {
		t.Errorf("|position - target| = %v, want %v", d, c.Distance)
	}
}

func TestProjMatrixDegenerateViewport(t *testing.T) {
	c := NewOrbitCamera()
	// Must not divide by zero; aspect falls back to 1.
	square := c.ProjMatrix(100, 100)
	degen := c.ProjMatrix(0, 0)
	if square != degen {
		t.Error("zero viewport projection differs from square aspect")
	}
}
