// Package camera provides the orbit camera driving the viewer.
package camera

import (
	gomath "math"

	"github.com/AIEngineerX/wanshitong/pkg/math"
)

// Polar angle clamp, keeping the eye away from the poles so the fixed
// +Y up vector never degenerates.
const (
	minPhi = 0.12
	maxPhi = gomath.Pi - 0.12
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Orbit is a camera parameterized by spherical coordinates around a
// target point.
type Orbit struct {
	// Spherical coordinates
	Theta    float32 // Azimuth (radians)
	Phi      float32 // Polar angle from +Y (radians), clamped near (0, pi)
	Distance float32 // Distance from target

	// Target point the camera orbits and looks at
	Target math.Vec3

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	RotateSpeed float32
	PanSpeed    float32

	// Home state captured by Frame, restored by Reset
	homeTheta    float32
	homePhi      float32
	homeDistance float32
	homeTarget   math.Vec3
}

// New creates an orbit camera with default settings.
func New() *Orbit {
	c := &Orbit{
		Theta:       0.5,
		Phi:         1.2,
		Distance:    5,
		MinDistance: 0.5,
		MaxDistance: 100,
		RotateSpeed: 0.01,
		PanSpeed:    0.002,
	}
	c.rememberHome()
	return c
}

// Frame points the camera at center from a distance proportional to
// radius, and records the result as the home state for Reset.
func (c *Orbit) Frame(center math.Vec3, distance float32) {
	c.Target = center
	c.Distance = clamp(distance, c.MinDistance, c.MaxDistance)
	c.rememberHome()
}

// Reset restores the camera to the last framed state.
func (c *Orbit) Reset() {
	c.Theta = c.homeTheta
	c.Phi = c.homePhi
	c.Distance = c.homeDistance
	c.Target = c.homeTarget
}

func (c *Orbit) rememberHome() {
	c.homeTheta = c.Theta
	c.homePhi = c.Phi
	c.homeDistance = c.Distance
	c.homeTarget = c.Target
}

// Rotate adjusts azimuth and polar angle proportionally to a pointer
// displacement.
func (c *Orbit) Rotate(deltaX, deltaY float32) {
	c.Theta -= deltaX * c.RotateSpeed
	c.Phi = clamp(c.Phi-deltaY*c.RotateSpeed, minPhi, maxPhi)
}

// Pan translates the target along the camera's current screen-right and
// screen-up directions. The step scales with distance so panning feels
// the same at any zoom level.
func (c *Orbit) Pan(deltaX, deltaY float32) {
	forward := c.Target.Sub(c.Eye()).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	step := c.Distance * c.PanSpeed
	c.Target = c.Target.
		Add(right.Scale(-deltaX * step)).
		Add(up.Scale(deltaY * step))
}

// Zoom multiplies the distance by factor, clamped to the configured
// range.
func (c *Orbit) Zoom(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Eye returns the camera position derived from the spherical
// coordinates around Target.
func (c *Orbit) Eye() math.Vec3 {
	sinPhi := float32(gomath.Sin(float64(c.Phi)))
	cosPhi := float32(gomath.Cos(float64(c.Phi)))
	sinTheta := float32(gomath.Sin(float64(c.Theta)))
	cosTheta := float32(gomath.Cos(float64(c.Theta)))

	return math.Vec3{
		X: c.Target.X + c.Distance*sinPhi*sinTheta,
		Y: c.Target.Y + c.Distance*cosPhi,
		Z: c.Target.Z + c.Distance*sinPhi*cosTheta,
	}
}

// ViewMatrix returns the view matrix for the current camera state.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye(), c.Target, worldUp)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
