package systems

import (
	"fmt"
	"sync"

	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/resources"
)

const DefaultGeometryName = "default"

// GeometrySystem owns all renderable geometry, keyed by a generated id.
// Mesh instances acquire geometry from here and release it when done;
// geometry with no remaining references is dropped.
type GeometrySystem struct {
	mu         sync.Mutex
	geometries map[string]*geometryReference
}

type geometryReference struct {
	geometry       *renderer.Geometry
	referenceCount int
	autoRelease    bool
}

func NewGeometrySystem() (*GeometrySystem, error) {
	return &GeometrySystem{
		geometries: make(map[string]*geometryReference),
	}, nil
}

func (gs *GeometrySystem) Shutdown() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.geometries = make(map[string]*geometryReference)
	return nil
}

// AcquireFromMesh registers parsed mesh data as renderable geometry and
// returns it with a reference held.
func (gs *GeometrySystem) AcquireFromMesh(mesh *resources.MeshData, material renderer.Material, autoRelease bool) (*renderer.Geometry, error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("cannot acquire geometry from empty mesh data")
	}

	geometry := &renderer.Geometry{
		ID:         core.IdentifierNew(),
		Name:       mesh.Name,
		Vertices:   mesh.Vertices,
		Indices:    mesh.Indices,
		Material:   material,
		Extents:    mesh.Extents,
		Generation: 0,
	}

	gs.mu.Lock()
	gs.geometries[geometry.ID] = &geometryReference{
		geometry:       geometry,
		referenceCount: 1,
		autoRelease:    autoRelease,
	}
	gs.mu.Unlock()

	return geometry, nil
}

// Acquire takes an additional reference on an already registered
// geometry by id.
func (gs *GeometrySystem) Acquire(id string) (*renderer.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.geometries[id]
	if !ok {
		return nil, fmt.Errorf("geometry '%s' is not registered", id)
	}
	ref.referenceCount++
	return ref.geometry, nil
}

// Release drops a reference. Auto-release geometry is removed when the
// count reaches zero.
func (gs *GeometrySystem) Release(geometry *renderer.Geometry) {
	if geometry == nil {
		return
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.geometries[geometry.ID]
	if !ok {
		core.LogWarn("released unregistered geometry '%s'", geometry.Name)
		return
	}
	ref.referenceCount--
	if ref.referenceCount <= 0 && ref.autoRelease {
		delete(gs.geometries, geometry.ID)
	}
}

func (gs *GeometrySystem) Count() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.geometries)
}

// GenerateCubeMesh builds an axis-aligned cube centred on the origin,
// four vertices and two triangles per face.
func GenerateCubeMesh(width, height, depth float32, name string) (*resources.MeshData, error) {
	if width == 0 {
		core.LogWarn("width must be nonzero, defaulting to one")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("height must be nonzero, defaulting to one")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("depth must be nonzero, defaulting to one")
		depth = 1.0
	}
	if name == "" {
		name = DefaultGeometryName
	}

	minX := -width * 0.5
	minY := -height * 0.5
	minZ := -depth * 0.5
	maxX := width * 0.5
	maxY := height * 0.5
	maxZ := depth * 0.5

	verts := make([]math.Vertex3D, 4*6)

	// Front face
	verts[(0*4)+0].Position = math.NewVec3(minX, minY, maxZ)
	verts[(0*4)+1].Position = math.NewVec3(maxX, maxY, maxZ)
	verts[(0*4)+2].Position = math.NewVec3(minX, maxY, maxZ)
	verts[(0*4)+3].Position = math.NewVec3(maxX, minY, maxZ)
	setFace(verts[0:4], math.NewVec3(0, 0, 1))

	// Back face
	verts[(1*4)+0].Position = math.NewVec3(maxX, minY, minZ)
	verts[(1*4)+1].Position = math.NewVec3(minX, maxY, minZ)
	verts[(1*4)+2].Position = math.NewVec3(maxX, maxY, minZ)
	verts[(1*4)+3].Position = math.NewVec3(minX, minY, minZ)
	setFace(verts[4:8], math.NewVec3(0, 0, -1))

	// Left face
	verts[(2*4)+0].Position = math.NewVec3(minX, minY, minZ)
	verts[(2*4)+1].Position = math.NewVec3(minX, maxY, maxZ)
	verts[(2*4)+2].Position = math.NewVec3(minX, maxY, minZ)
	verts[(2*4)+3].Position = math.NewVec3(minX, minY, maxZ)
	setFace(verts[8:12], math.NewVec3(-1, 0, 0))

	// Right face
	verts[(3*4)+0].Position = math.NewVec3(maxX, minY, maxZ)
	verts[(3*4)+1].Position = math.NewVec3(maxX, maxY, minZ)
	verts[(3*4)+2].Position = math.NewVec3(maxX, maxY, maxZ)
	verts[(3*4)+3].Position = math.NewVec3(maxX, minY, minZ)
	setFace(verts[12:16], math.NewVec3(1, 0, 0))

	// Bottom face
	verts[(4*4)+0].Position = math.NewVec3(maxX, minY, maxZ)
	verts[(4*4)+1].Position = math.NewVec3(minX, minY, minZ)
	verts[(4*4)+2].Position = math.NewVec3(maxX, minY, minZ)
	verts[(4*4)+3].Position = math.NewVec3(minX, minY, maxZ)
	setFace(verts[16:20], math.NewVec3(0, -1, 0))

	// Top face
	verts[(5*4)+0].Position = math.NewVec3(minX, maxY, maxZ)
	verts[(5*4)+1].Position = math.NewVec3(maxX, maxY, minZ)
	verts[(5*4)+2].Position = math.NewVec3(minX, maxY, minZ)
	verts[(5*4)+3].Position = math.NewVec3(maxX, maxY, maxZ)
	setFace(verts[20:24], math.NewVec3(0, 1, 0))

	indices := make([]uint32, 6*6)
	for i := 0; i < 6; i++ {
		vOffset := uint32(i * 4)
		iOffset := i * 6
		indices[iOffset+0] = vOffset + 0
		indices[iOffset+1] = vOffset + 1
		indices[iOffset+2] = vOffset + 2
		indices[iOffset+3] = vOffset + 0
		indices[iOffset+4] = vOffset + 3
		indices[iOffset+5] = vOffset + 1
	}

	return &resources.MeshData{
		Name:          name,
		MaterialIndex: -1,
		Vertices:      verts,
		Indices:       indices,
		Extents: math.Extents3D{
			Min: math.NewVec3(minX, minY, minZ),
			Max: math.NewVec3(maxX, maxY, maxZ),
		},
	}, nil
}

func setFace(face []math.Vertex3D, normal math.Vec3) {
	face[0].Texcoord = math.NewVec2(0, 0)
	face[1].Texcoord = math.NewVec2(1, 1)
	face[2].Texcoord = math.NewVec2(0, 1)
	face[3].Texcoord = math.NewVec2(1, 0)
	for i := range face {
		face[i].Normal = normal
	}
}
