package soft

import (
	"image/color"
	"testing"

	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
)

// frontTriangle builds a triangle that covers the middle of the screen
// when drawn with identity view and projection matrices. Normals face
// away from the light so shading is deterministic.
func frontTriangle(z float32, colour math.Vec4) *renderer.Geometry {
	normal := math.NewVec3(-0.45, 0.8, -0.4).Normalized()
	mk := func(x, y float32) math.Vertex3D {
		return math.Vertex3D{
			Position: math.NewVec3(x, y, z),
			Normal:   normal,
			Colour:   math.NewVec4(1, 1, 1, 1),
		}
	}
	return &renderer.Geometry{
		Name: "tri",
		Vertices: []math.Vertex3D{
			mk(-0.5, -0.5),
			mk(0.5, -0.5),
			mk(0, 0.5),
		},
		Indices:  []uint32{0, 1, 2},
		Material: renderer.Material{Name: "flat", DiffuseColour: colour},
	}
}

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New()
	if err := b.Initialize("test", 100, 100); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return b
}

func beginFrame(t *testing.T, b *Backend, packet *renderer.RenderPacket) {
	t.Helper()
	if packet == nil {
		packet = &renderer.RenderPacket{
			View:       math.NewMat4Identity(),
			Projection: math.NewMat4Identity(),
		}
	}
	if err := b.BeginFrame(packet); err != nil {
		t.Fatalf("begin frame: %v", err)
	}
}

func draw(t *testing.T, b *Backend, geom *renderer.Geometry) {
	t.Helper()
	err := b.DrawGeometry(&renderer.GeometryRenderData{
		Geometry: geom,
		Model:    math.NewMat4Identity(),
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
}

func TestInitializeRejectsZeroDimensions(t *testing.T) {
	if err := New().Initialize("test", 0, 100); err == nil {
		t.Fatal("expected an error for a zero width framebuffer")
	}
}

func TestBeginFrameClearsFramebuffer(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, nil)
	draw(t, b, frontTriangle(0, math.NewVec4(1, 1, 1, 1)))

	beginFrame(t, b, nil)
	got := b.Framebuffer().RGBAAt(50, 50)
	want := color.RGBA{R: 24, G: 24, B: 32, A: 255}
	if got != want {
		t.Fatalf("expected clear colour after BeginFrame, got %v", got)
	}
}

func TestDrawGeometryFillsTriangle(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, nil)
	draw(t, b, frontTriangle(0, math.NewVec4(1, 1, 1, 1)))

	fb := b.Framebuffer()
	center := fb.RGBAAt(50, 50)
	if center.R < 250 || center.G < 250 || center.B < 250 {
		t.Fatalf("expected fully lit white at triangle interior, got %v", center)
	}
	corner := fb.RGBAAt(2, 2)
	if corner != (color.RGBA{R: 24, G: 24, B: 32, A: 255}) {
		t.Fatalf("expected clear colour outside the triangle, got %v", corner)
	}
}

func TestDrawGeometryCullsBackfaces(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, nil)

	geom := frontTriangle(0, math.NewVec4(1, 1, 1, 1))
	// Reverse winding flips the triangle away from the camera.
	geom.Indices = []uint32{0, 2, 1}
	draw(t, b, geom)

	got := b.Framebuffer().RGBAAt(50, 50)
	if got != (color.RGBA{R: 24, G: 24, B: 32, A: 255}) {
		t.Fatalf("backfacing triangle should not be drawn, got %v", got)
	}
}

func TestDepthTestKeepsNearestSurface(t *testing.T) {
	near := frontTriangle(0.0, math.NewVec4(1, 0, 0, 1))
	far := frontTriangle(0.5, math.NewVec4(0, 1, 0, 1))

	for _, order := range [][]*renderer.Geometry{{far, near}, {near, far}} {
		b := newTestBackend(t)
		beginFrame(t, b, nil)
		for _, g := range order {
			draw(t, b, g)
		}
		got := b.Framebuffer().RGBAAt(50, 50)
		if got.R < 250 || got.G > 5 {
			t.Fatalf("expected the near red triangle regardless of draw order, got %v", got)
		}
	}
}

func TestTranslucentSurfacesBlend(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, nil)
	draw(t, b, frontTriangle(0, math.NewVec4(1, 1, 1, 0.5)))

	clear := color.RGBA{R: 24, G: 24, B: 32, A: 255}
	got := b.Framebuffer().RGBAAt(50, 50)
	if got == clear {
		t.Fatal("translucent triangle left no trace in the framebuffer")
	}
	if got.R < 100 || got.R > 200 {
		t.Fatalf("expected a blend between white and the clear colour, got %v", got)
	}
}

func TestTranslucentSurfacesDoNotOccludeOpaque(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, nil)

	// The translucent surface sits nearer but must not write depth, so
	// the opaque surface behind it still lands.
	draw(t, b, frontTriangle(0.0, math.NewVec4(1, 1, 1, 0.5)))
	draw(t, b, frontTriangle(0.5, math.NewVec4(1, 0, 0, 1)))

	got := b.Framebuffer().RGBAAt(50, 50)
	if got.R < 250 || got.G > 5 || got.B > 5 {
		t.Fatalf("opaque surface should overwrite the translucent one, got %v", got)
	}
}

func TestWireframeDrawsEdgesOnly(t *testing.T) {
	b := newTestBackend(t)
	beginFrame(t, b, &renderer.RenderPacket{
		View:       math.NewMat4Identity(),
		Projection: math.NewMat4Identity(),
		Wireframe:  true,
	})
	draw(t, b, frontTriangle(0, math.NewVec4(1, 1, 1, 1)))

	fb := b.Framebuffer()
	clear := color.RGBA{R: 24, G: 24, B: 32, A: 255}
	// Bottom edge runs along y=75 between x=25 and x=75.
	if fb.RGBAAt(50, 75) == clear {
		t.Fatal("expected the triangle edge to be drawn in wireframe mode")
	}
	if fb.RGBAAt(50, 60) != clear {
		t.Fatalf("expected the triangle interior to stay clear in wireframe mode, got %v", fb.RGBAAt(50, 60))
	}
}

func TestResizedReallocatesFramebuffer(t *testing.T) {
	b := newTestBackend(t)
	if err := b.Resized(64, 32); err != nil {
		t.Fatalf("resized: %v", err)
	}
	bounds := b.Framebuffer().Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Fatalf("unexpected framebuffer bounds %v", bounds)
	}
	// Zero dimensions happen while the window is minimized; keep the old
	// framebuffer.
	if err := b.Resized(0, 0); err != nil {
		t.Fatalf("resized to zero: %v", err)
	}
	if b.Framebuffer().Bounds().Dx() != 64 {
		t.Fatal("zero sized resize should leave the framebuffer alone")
	}
}

func TestBehindCameraGeometryIsSkipped(t *testing.T) {
	b := newTestBackend(t)
	view := math.NewMat4Identity()
	projection := math.NewMat4Perspective(math.DegToRad(45), 1, 0.1, 100)
	beginFrame(t, b, &renderer.RenderPacket{View: view, Projection: projection})

	// Positive z is behind the camera under this projection.
	geom := frontTriangle(5, math.NewVec4(1, 1, 1, 1))
	draw(t, b, geom)

	got := b.Framebuffer().RGBAAt(50, 50)
	if got != (color.RGBA{R: 24, G: 24, B: 32, A: 255}) {
		t.Fatalf("geometry behind the camera should be skipped, got %v", got)
	}
}
