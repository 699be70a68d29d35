package scene

import (
	"github.com/dvitali/maquette/engine/math"
)

// Spinner rotates its node around a fixed axis every frame. The applied
// angle accumulates monotonically for as long as the spinner runs.
type Spinner struct {
	Axis math.Vec3
	// Speed is the angular velocity in radians per second.
	Speed float32

	angle float32
}

func NewSpinner(axis math.Vec3, speed float32) *Spinner {
	return &Spinner{Axis: axis.Normalized(), Speed: speed}
}

func (s *Spinner) Animate(node *Node, deltaTime float64) {
	step := s.Speed * float32(deltaTime)
	if step == 0 {
		return
	}
	s.angle += step
	node.Transform.Rotate(math.NewQuatFromAxisAngle(s.Axis, step, false))
}

// Angle reports the total rotation applied so far, in radians.
func (s *Spinner) Angle() float32 {
	return s.angle
}
