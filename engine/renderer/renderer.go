package renderer

import (
	"fmt"
	"image"

	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/resources"
)

// Renderer is the front-end the engine talks to; it forwards frames to
// whichever backend it was built with.
type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint16) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) SetFont(font *resources.FontData) {
	r.backend.SetFont(font)
}

// Framebuffer exposes the pixels of the last completed frame.
func (r *Renderer) Framebuffer() *image.RGBA {
	return r.backend.Framebuffer()
}

// DrawFrame renders one packet start to finish.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if packet == nil {
		return fmt.Errorf("nil render packet")
	}
	if err := r.backend.BeginFrame(packet); err != nil {
		core.LogError("%s", err.Error())
		return err
	}
	for _, g := range packet.Geometries {
		if err := r.backend.DrawGeometry(g); err != nil {
			core.LogError("%s", err.Error())
			return err
		}
	}
	for _, t := range packet.Texts {
		if err := r.backend.DrawText(t); err != nil {
			core.LogError("%s", err.Error())
			return err
		}
	}
	if err := r.backend.EndFrame(); err != nil {
		core.LogError("EndFrame failed. Application shutting down...")
		return err
	}
	return nil
}
