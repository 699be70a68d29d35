package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Quaternion represents a rotational orientation.
type Quaternion Vec4

// Mat4 is a 4x4 matrix, used to represent object transformations.
// The convention is row vectors: a point p is transformed as p * M,
// and A.Mul(B) applies A first, then B.
type Mat4 struct {
	Data [16]float32
}

// Extents3D is the axis-aligned bounding volume of a 3D object.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Vertex3D is a single vertex of a mesh.
type Vertex3D struct {
	Position Vec3
	Normal   Vec3
	Texcoord Vec2
	Colour   Vec4
}

// Transform is the placement of an object in the world. Transforms can
// have a parent whose own transform is then taken into account. The
// fields should not be edited directly; use the methods so the cached
// local matrix is regenerated when needed.
type Transform struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3
	IsDirty  bool
	Local    Mat4
	Parent   *Transform
}
