package scene

import (
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/systems"
)

// DefaultFallbackColour is a translucent grey so pending content reads
// as a placeholder rather than finished geometry.
var DefaultFallbackColour = math.NewVec4(0.6, 0.6, 0.65, 0.4)

// NewFallbackNode builds a placeholder cube shown while a model is
// still loading.
func NewFallbackNode(gs *systems.GeometrySystem, name string, size float32, colour math.Vec4) (*Node, error) {
	mesh, err := systems.GenerateCubeMesh(size, size, size, name)
	if err != nil {
		return nil, err
	}
	geometry, err := gs.AcquireFromMesh(mesh, renderer.Material{
		Name:          name,
		DiffuseColour: colour,
	}, true)
	if err != nil {
		return nil, err
	}
	node := NewNode(name)
	node.Geometries = []*renderer.Geometry{geometry}
	return node, nil
}
