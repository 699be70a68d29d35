package soft

import (
	"fmt"
	"image"
	"image/color"

	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/resources"
)

// Backend is a CPU rasterizer. It draws into a plain RGBA framebuffer
// with a z-buffer, which the platform layer blits to the screen. It has
// no GPU or window dependency, so the whole render path runs headless.
type Backend struct {
	width  int
	height int

	framebuffer *image.RGBA
	depth       []float32

	clearColour color.RGBA
	lightDir    math.Vec3

	view       math.Mat4
	projection math.Mat4
	wireframe  bool

	font *resources.FontData
}

func New() *Backend {
	return &Backend{
		clearColour: color.RGBA{R: 24, G: 24, B: 32, A: 255},
		lightDir:    math.NewVec3(0.45, -0.8, 0.4).Normalized(),
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if appWidth == 0 || appHeight == 0 {
		return fmt.Errorf("framebuffer dimensions must be nonzero (%dx%d)", appWidth, appHeight)
	}
	b.allocate(int(appWidth), int(appHeight))
	core.LogInfo("software renderer initialized for '%s' at %dx%d", appName, appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	b.framebuffer = nil
	b.depth = nil
	return nil
}

func (b *Backend) Resized(width, height uint16) error {
	if width == 0 || height == 0 {
		return nil
	}
	b.allocate(int(width), int(height))
	return nil
}

func (b *Backend) allocate(w, h int) {
	b.width = w
	b.height = h
	b.framebuffer = image.NewRGBA(image.Rect(0, 0, w, h))
	b.depth = make([]float32, w*h)
}

func (b *Backend) SetFont(font *resources.FontData) {
	b.font = font
}

func (b *Backend) Framebuffer() *image.RGBA {
	return b.framebuffer
}

func (b *Backend) BeginFrame(packet *renderer.RenderPacket) error {
	b.view = packet.View
	b.projection = packet.Projection
	b.wireframe = packet.Wireframe

	// Clear colour and depth.
	pix := b.framebuffer.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = b.clearColour.R
		pix[i+1] = b.clearColour.G
		pix[i+2] = b.clearColour.B
		pix[i+3] = 255
	}
	for i := range b.depth {
		b.depth[i] = 1.0
	}
	return nil
}

func (b *Backend) EndFrame() error {
	return nil
}

func (b *Backend) DrawGeometry(data *renderer.GeometryRenderData) error {
	if data == nil || data.Geometry == nil {
		return fmt.Errorf("nil geometry draw")
	}
	geom := data.Geometry

	mvp := data.Model.Mul(b.view).Mul(b.projection)

	colour := geom.Material.DiffuseColour
	translucent := colour.W < 1.0

	for i := 0; i+2 < len(geom.Indices); i += 3 {
		v0 := geom.Vertices[geom.Indices[i+0]]
		v1 := geom.Vertices[geom.Indices[i+1]]
		v2 := geom.Vertices[geom.Indices[i+2]]

		p0, ok0 := b.project(v0.Position, mvp)
		p1, ok1 := b.project(v1.Position, mvp)
		p2, ok2 := b.project(v2.Position, mvp)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		if b.wireframe {
			c := shade(colour, 1.0)
			b.line(p0, p1, c)
			b.line(p1, p2, c)
			b.line(p2, p0, c)
			continue
		}

		// Backface cull on screen-space winding.
		area := (p1.x-p0.x)*(p2.y-p0.y) - (p1.y-p0.y)*(p2.x-p0.x)
		if area >= 0 {
			continue
		}

		// Flat shading off the face normal in world space.
		n := faceNormalWorld(v0, v1, v2, data.Model)
		intensity := math.Clamp(-n.Dot(b.lightDir), 0.0, 1.0)*0.75 + 0.25

		b.fillTriangle(p0, p1, p2, shade(colour, intensity), translucent)
	}
	return nil
}

// project transforms a model-space point into screen space. ok is false
// when the point sits behind the near plane; the whole triangle is then
// skipped rather than clipped.
func (b *Backend) project(p math.Vec3, mvp math.Mat4) (screenPoint, bool) {
	clip := p.ToVec4(1).Transform(mvp)
	if clip.W < 1e-5 {
		return screenPoint{}, false
	}
	inv := 1.0 / clip.W
	ndcX := clip.X * inv
	ndcY := clip.Y * inv
	ndcZ := clip.Z * inv

	return screenPoint{
		x: (ndcX*0.5 + 0.5) * float32(b.width),
		y: (1.0 - (ndcY*0.5 + 0.5)) * float32(b.height),
		z: ndcZ,
	}, true
}

func faceNormalWorld(v0, v1, v2 math.Vertex3D, model math.Mat4) math.Vec3 {
	// Rotate the averaged vertex normal into world space; w=0 drops the
	// translation.
	n := v0.Normal.Add(v1.Normal).Add(v2.Normal)
	world := n.ToVec4(0).Transform(model).ToVec3()
	return world.Normalized()
}

func shade(colour math.Vec4, intensity float32) color.RGBA {
	return color.RGBA{
		R: uint8(math.Clamp(colour.X*intensity, 0, 1) * 255),
		G: uint8(math.Clamp(colour.Y*intensity, 0, 1) * 255),
		B: uint8(math.Clamp(colour.Z*intensity, 0, 1) * 255),
		A: uint8(math.Clamp(colour.W, 0, 1) * 255),
	}
}
