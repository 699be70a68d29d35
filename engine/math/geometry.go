package math

// GeometryGenerateNormals fills in face normals for meshes that were
// loaded without them. Smoothing would be a separate pass if desired.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		normal := edge1.Cross(edge2).Normalized()

		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// CalculateExtents returns the axis-aligned bounds of the vertices.
func CalculateExtents(vertices []Vertex3D) Extents3D {
	if len(vertices) == 0 {
		return Extents3D{}
	}
	e := Extents3D{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		p := v.Position
		if p.X < e.Min.X {
			e.Min.X = p.X
		}
		if p.Y < e.Min.Y {
			e.Min.Y = p.Y
		}
		if p.Z < e.Min.Z {
			e.Min.Z = p.Z
		}
		if p.X > e.Max.X {
			e.Max.X = p.X
		}
		if p.Y > e.Max.Y {
			e.Max.Y = p.Y
		}
		if p.Z > e.Max.Z {
			e.Max.Z = p.Z
		}
	}
	return e
}
