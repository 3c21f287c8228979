package input

import (
	"testing"

	"github.com/AIEngineerX/wanshitong/internal/engine/camera"
	"github.com/AIEngineerX/wanshitong/pkg/math"
)

func TestPrimaryDragRotates(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)
	theta, phi := cam.Theta, cam.Phi

	ctl.ButtonDown(ButtonPrimary, false, 100, 100)
	ctl.Motion(110, 100)

	if cam.Theta == theta {
		t.Error("primary drag did not change Theta")
	}
	if cam.Phi != phi {
		t.Errorf("horizontal drag changed Phi: %v -> %v", phi, cam.Phi)
	}
	if cam.Target != (math.Vec3{}) {
		t.Errorf("rotate drag moved Target to %v", cam.Target)
	}
}

func TestSecondaryDragPans(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)
	theta, phi := cam.Theta, cam.Phi

	ctl.ButtonDown(ButtonSecondary, false, 100, 100)
	ctl.Motion(110, 100)

	if cam.Target == (math.Vec3{}) {
		t.Error("secondary drag did not move Target")
	}
	if cam.Theta != theta || cam.Phi != phi {
		t.Error("pan drag changed rotation angles")
	}
}

func TestModifierSelectsPan(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)

	ctl.ButtonDown(ButtonPrimary, true, 0, 0)
	ctl.Motion(10, 0)

	if cam.Target == (math.Vec3{}) {
		t.Error("modifier drag did not pan")
	}
}

func TestSecondButtonIgnoredWhileDragging(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)

	ctl.ButtonDown(ButtonPrimary, false, 100, 100)
	ctl.ButtonDown(ButtonSecondary, false, 500, 500)
	ctl.Motion(110, 100)

	// The original rotate gesture stays active with its start point.
	if cam.Target != (math.Vec3{}) {
		t.Errorf("second press hijacked the drag, Target = %v", cam.Target)
	}
	if cam.Theta == camera.New().Theta {
		t.Error("original rotate drag stopped applying")
	}

	// Releasing the non-captured button does not end the drag.
	ctl.ButtonUp(ButtonSecondary)
	if !ctl.Dragging() {
		t.Error("release of non-captured button ended the drag")
	}

	ctl.ButtonUp(ButtonPrimary)
	if ctl.Dragging() {
		t.Error("release of captured button did not end the drag")
	}
}

func TestMotionWithoutDragIgnored(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)
	theta := cam.Theta

	ctl.Motion(250, 250)

	if cam.Theta != theta || cam.Target != (math.Vec3{}) {
		t.Error("motion without a drag mutated the camera")
	}
}

func TestCancelReleasesDrag(t *testing.T) {
	cam := camera.New()
	ctl := New(cam)

	ctl.ButtonDown(ButtonPrimary, false, 0, 0)
	ctl.Cancel()

	if ctl.Dragging() {
		t.Error("Cancel did not release the drag")
	}

	theta := cam.Theta
	ctl.Motion(50, 50)
	if cam.Theta != theta {
		t.Error("motion after Cancel still rotated the camera")
	}
}

func TestWheelZoomSteps(t *testing.T) {
	cam := camera.New()
	cam.Distance = 10
	ctl := New(cam)

	ctl.Wheel(1)
	if cam.Distance != 9 {
		t.Errorf("Distance after zoom in = %v, want 9", cam.Distance)
	}

	ctl.Wheel(-1)
	if cam.Distance < 9.899 || cam.Distance > 9.901 {
		t.Errorf("Distance after zoom out = %v, want 9.9", cam.Distance)
	}

	d := cam.Distance
	ctl.Wheel(0)
	if cam.Distance != d {
		t.Error("zero wheel delta changed the distance")
	}
}
