package renderer

import (
	"github.com/dvitali/maquette/engine/math"
)

// Material carries the shading state the backend understands. An alpha
// below one renders translucent.
type Material struct {
	Name          string
	DiffuseColour math.Vec4
}

// Geometry is renderable mesh data registered with the geometry system.
// Vertices and indices are read-only once registered.
type Geometry struct {
	ID       string
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
	Material Material
	Extents  math.Extents3D
	// Generation increments every time the geometry is re-uploaded,
	// e.g. after a hot reload.
	Generation uint32
}

// GeometryRenderData is one draw of a geometry with its world matrix.
type GeometryRenderData struct {
	Geometry *Geometry
	Model    math.Mat4
}

// TextRenderData is one HUD text draw in screen coordinates.
type TextRenderData struct {
	Text   string
	X, Y   int
	Colour math.Vec4
}

// RenderPacket is everything the backend needs for one frame.
type RenderPacket struct {
	DeltaTime  float64
	View       math.Mat4
	Projection math.Mat4
	Geometries []*GeometryRenderData
	Texts      []*TextRenderData
	Wireframe  bool
}
