package testbed

import (
	"testing"

	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/systems"
)

func TestMouseWheelZoomsCamera(t *testing.T) {
	if err := core.InputInitialize(); err != nil {
		t.Fatalf("input: %v", err)
	}

	state := &gameState{camera: systems.NewCamera()}
	g := &ViewerGame{}

	core.InputProcessMouseWheel(2)
	g.moveCamera(state, 1.0/60.0)

	// The default camera looks down negative z, so wheel-forward moves
	// it towards the scene.
	pos := state.camera.GetPosition()
	want := math.NewVec3(0, 0, -2*cameraZoomStep)
	if !pos.Compare(want, 1e-5) {
		t.Fatalf("expected camera at %+v after zoom, got %+v", want, pos)
	}

	core.InputUpdate(1.0 / 60.0)
	g.moveCamera(state, 1.0/60.0)
	if !state.camera.GetPosition().Compare(want, 1e-5) {
		t.Fatal("camera should not move once the wheel delta is consumed")
	}
}
