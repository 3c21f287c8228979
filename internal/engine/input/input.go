// Package input maps pointer gestures onto orbit camera operations.
package input

import (
	"github.com/AIEngineerX/wanshitong/internal/engine/camera"
)

// Button identifies a pointer button, independent of the windowing
// backend. The viewer translates SDL button codes into these.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// dragMode classifies the active gesture.
type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// Controller tracks a single active pointer drag and dispatches deltas
// to the camera. A second button press while a drag is active is
// ignored entirely; motion only applies while the captured button is
// held.
type Controller struct {
	cam *camera.Orbit

	active       Button
	mode         dragMode
	lastX, lastY int32

	// Multiplicative zoom steps per wheel notch.
	ZoomInStep  float32
	ZoomOutStep float32
}

// New creates a controller driving the given camera.
func New(cam *camera.Orbit) *Controller {
	return &Controller{
		cam:         cam,
		ZoomInStep:  0.9,
		ZoomOutStep: 1.1,
	}
}

// Dragging reports whether a drag is currently active.
func (c *Controller) Dragging() bool {
	return c.active != ButtonNone
}

// ButtonDown starts a drag. The gesture is classified once, at press
// time: the secondary button or a held pan modifier selects pan,
// anything else rotates.
func (c *Controller) ButtonDown(b Button, panModifier bool, x, y int32) {
	if c.active != ButtonNone {
		return
	}
	c.active = b
	c.lastX, c.lastY = x, y
	if b == ButtonSecondary || panModifier {
		c.mode = dragPan
	} else {
		c.mode = dragRotate
	}
}

// Motion applies pointer movement to the camera according to the
// gesture recorded at press time. Motion without an active drag is
// ignored.
func (c *Controller) Motion(x, y int32) {
	if c.active == ButtonNone {
		return
	}

	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	switch c.mode {
	case dragRotate:
		c.cam.Rotate(dx, dy)
	case dragPan:
		c.cam.Pan(dx, dy)
	}
}

// ButtonUp ends the drag if the released button matches the captured
// one; releases of other buttons are ignored.
func (c *Controller) ButtonUp(b Button) {
	if b != c.active {
		return
	}
	c.active = ButtonNone
	c.mode = dragNone
}

// Cancel releases any active drag, for pointer-leave or window events.
func (c *Controller) Cancel() {
	c.active = ButtonNone
	c.mode = dragNone
}

// Wheel zooms the camera: one multiplicative step per notch, with
// distinct factors for each direction.
func (c *Controller) Wheel(delta float32) {
	if delta > 0 {
		c.cam.Zoom(c.ZoomInStep)
	} else if delta < 0 {
		c.cam.Zoom(c.ZoomOutStep)
	}
}
