package scene

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/systems"
)

// Manifest is the on-disk description of a scene. Models referenced by
// name resolve through the asset manager and load asynchronously.
type Manifest struct {
	Name   string     `yaml:"name"`
	Camera CameraSpec `yaml:"camera"`
	Nodes  []NodeSpec `yaml:"nodes"`
}

type CameraSpec struct {
	Position [3]float32 `yaml:"position"`
	// Euler rotation in degrees.
	Rotation [3]float32 `yaml:"rotation"`
}

type NodeSpec struct {
	Name string `yaml:"name"`
	// Model names an asset to load asynchronously. Empty means a plain
	// grouping node.
	Model    string     `yaml:"model,omitempty"`
	Position [3]float32 `yaml:"position,omitempty"`
	// Euler rotation in degrees.
	Rotation [3]float32    `yaml:"rotation,omitempty"`
	Scale    []float32     `yaml:"scale,omitempty"`
	Spin     *SpinSpec     `yaml:"spin,omitempty"`
	Fallback *FallbackSpec `yaml:"fallback,omitempty"`
	Children []NodeSpec    `yaml:"children,omitempty"`
}

type SpinSpec struct {
	Axis [3]float32 `yaml:"axis"`
	// Speed is angular velocity in radians per second.
	Speed float32 `yaml:"speed"`
}

type FallbackSpec struct {
	Size   float32    `yaml:"size,omitempty"`
	Colour [4]float32 `yaml:"colour,omitempty"`
}

// LoadManifest reads and parses a scene manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scene manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse scene manifest %s", path)
	}
	return &m, nil
}

// Build realizes the manifest as a scene graph. Model nodes come back
// pending with their fallback showing.
func (m *Manifest) Build(ms *systems.MeshSystem, gs *systems.GeometrySystem) (*Graph, error) {
	graph := NewGraph()
	for i := range m.Nodes {
		node, err := buildSpecNode(&m.Nodes[i], ms, gs)
		if err != nil {
			return nil, err
		}
		graph.Root.AddChild(node)
	}
	return graph, nil
}

func buildSpecNode(spec *NodeSpec, ms *systems.MeshSystem, gs *systems.GeometrySystem) (*Node, error) {
	var node *Node
	if spec.Model != "" {
		fallback, err := specFallback(spec, gs)
		if err != nil {
			return nil, err
		}
		node = NewModelNode(spec.Model, ms, gs, fallback).Node
	} else {
		node = NewNode(spec.Name)
	}
	if spec.Name != "" {
		node.Name = spec.Name
	}

	node.Transform.SetPosition(math.NewVec3(spec.Position[0], spec.Position[1], spec.Position[2]))
	if spec.Rotation != [3]float32{} {
		node.Transform.SetRotation(eulerDegreesToQuat(spec.Rotation))
	}
	if s := specScale(spec.Scale); s != math.NewVec3One() {
		node.Transform.SetScale(s)
	}
	if spec.Spin != nil {
		axis := math.NewVec3(spec.Spin.Axis[0], spec.Spin.Axis[1], spec.Spin.Axis[2])
		if axis.Length() == 0 {
			axis = math.NewVec3Up()
		}
		node.Animators = append(node.Animators, NewSpinner(axis, spec.Spin.Speed))
	}

	for i := range spec.Children {
		child, err := buildSpecNode(&spec.Children[i], ms, gs)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func specFallback(spec *NodeSpec, gs *systems.GeometrySystem) (*Node, error) {
	size := float32(1.0)
	colour := DefaultFallbackColour
	if spec.Fallback != nil {
		if spec.Fallback.Size > 0 {
			size = spec.Fallback.Size
		}
		if spec.Fallback.Colour != [4]float32{} {
			c := spec.Fallback.Colour
			colour = math.NewVec4(c[0], c[1], c[2], c[3])
		}
	}
	return NewFallbackNode(gs, spec.Model+".fallback", size, colour)
}

func specScale(scale []float32) math.Vec3 {
	switch len(scale) {
	case 0:
		return math.NewVec3One()
	case 1:
		return math.NewVec3(scale[0], scale[0], scale[0])
	default:
		s := math.NewVec3One()
		s.X = scale[0]
		if len(scale) > 1 {
			s.Y = scale[1]
		}
		if len(scale) > 2 {
			s.Z = scale[2]
		}
		return s
	}
}

func eulerDegreesToQuat(rotation [3]float32) math.Quaternion {
	qx := math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.DegToRad(rotation[0]), false)
	qy := math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(rotation[1]), false)
	qz := math.NewQuatFromAxisAngle(math.NewVec3(0, 0, 1), math.DegToRad(rotation[2]), false)
	return qx.Mul(qy).Mul(qz).Normalize()
}
