// Package camera provides the orbit camera the preview is viewed through.
package camera

import (
	gomath "math"

	"github.com/gnumc/skin3d/pkg/math"
)

// Orbit camera defaults: three-quarter view of the whole player model.
const (
	DefaultYaw      = 205.0
	DefaultPitch    = 15.0
	DefaultDistance = 45.0
	DefaultTargetY  = 16.0
)

// OrbitCamera orbits around a fixed target point. Angles are in degrees.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Yaw      float32 // horizontal angle around the target
	Pitch    float32 // vertical angle, positive looks down
	Distance float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32 // pitch is clamped to +/- MaxPitch

	// Sensitivity
	RotateSensitivity float32 // degrees per pixel of drag
	ZoomSensitivity   float32 // distance units per wheel step

	// Projection
	FovY float32 // degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera framing the player model.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:       10.0,
		MaxDistance:       120.0,
		MaxPitch:          89.0,
		RotateSensitivity: 0.5,
		ZoomSensitivity:   2.0,
		FovY:              45.0,
		Near:              0.1,
		Far:               500.0,
	}
	c.Reset()
	return c
}

// Reset restores the default viewpoint.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{X: 0, Y: DefaultTargetY, Z: 0}
	c.Yaw = DefaultYaw
	c.Pitch = DefaultPitch
	c.Distance = DefaultDistance
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	yaw := float64(radians(c.Yaw))
	pitch := float64(radians(c.Pitch))

	x := c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw))
	y := c.Distance * float32(gomath.Sin(pitch))
	z := c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw))

	return math.Vec3{
		X: c.Target.X + x,
		Y: c.Target.Y + y,
		Z: c.Target.Z + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// ProjMatrix returns the perspective projection for the given viewport.
func (c *OrbitCamera) ProjMatrix(width, height float32) math.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = width / height
	}
	return math.Perspective(radians(c.FovY), aspect, c.Near, c.Far)
}

// Rotate updates yaw and pitch from a mouse drag delta in pixels.
func (c *OrbitCamera) Rotate(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.RotateSensitivity
	c.Pitch += deltaY * c.RotateSensitivity

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// Zoom updates distance from a scroll wheel delta. Positive deltas move
// closer.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance -= delta * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180.0
}
