package engine

import (
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/systems"
)

// Game is the application the engine hosts. The engine fills in
// SystemManager before FnInitialize runs; the callbacks drive the
// application's own behaviour each frame.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
