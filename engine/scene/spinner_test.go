package scene

import (
	"testing"

	"github.com/dvitali/maquette/engine/math"
)

func TestSpinnerAngleIncreasesEveryFrame(t *testing.T) {
	node := NewNode("spinning")
	spinner := NewSpinner(math.NewVec3Up(), 1.0)
	node.Animators = append(node.Animators, spinner)

	last := spinner.Angle()
	for frame := 0; frame < 100; frame++ {
		node.Update(1.0 / 60.0)
		if spinner.Angle() <= last {
			t.Fatalf("angle must increase monotonically, frame %d: %f -> %f", frame, last, spinner.Angle())
		}
		last = spinner.Angle()
	}
}

func TestSpinnerRotatesNodeTransform(t *testing.T) {
	node := NewNode("spinning")
	// Half a turn per second around y.
	node.Animators = append(node.Animators, NewSpinner(math.NewVec3(0, 1, 0), math.K_PI))

	// Advance exactly one second in small steps.
	for i := 0; i < 100; i++ {
		node.Update(0.01)
	}

	p := math.NewVec3(1, 0, 0).Transform(node.Transform.GetLocal())
	if !p.Compare(math.NewVec3(-1, 0, 0), 1e-3) {
		t.Fatalf("expected half turn after one second, got %+v", p)
	}
}

func TestSpinnerZeroDeltaLeavesAngle(t *testing.T) {
	node := NewNode("spinning")
	spinner := NewSpinner(math.NewVec3Up(), 2.0)
	node.Animators = append(node.Animators, spinner)

	node.Update(0)
	if spinner.Angle() != 0 {
		t.Fatalf("zero delta should not advance the angle, got %f", spinner.Angle())
	}
}

func TestSpinnerNormalizesAxis(t *testing.T) {
	s := NewSpinner(math.NewVec3(0, 10, 0), 1.0)
	if !s.Axis.Compare(math.NewVec3(0, 1, 0), 1e-6) {
		t.Fatalf("expected normalized axis, got %+v", s.Axis)
	}
}
