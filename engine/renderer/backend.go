package renderer

import (
	"image"

	"github.com/dvitali/maquette/engine/resources"
)

// RendererBackend is the rendering implementation behind the front-end.
// The engine drives it once per displayed frame: BeginFrame, any number
// of DrawGeometry/DrawText calls, EndFrame.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(packet *RenderPacket) error
	DrawGeometry(data *GeometryRenderData) error
	DrawText(data *TextRenderData) error
	EndFrame() error
	// SetFont installs the bitmap font used by DrawText.
	SetFont(font *resources.FontData)
	// Framebuffer exposes the frame rendered by the last EndFrame.
	Framebuffer() *image.RGBA
}
