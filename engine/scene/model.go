package scene

import (
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/resources"
	"github.com/dvitali/maquette/engine/systems"
)

// ModelNode asynchronously resolves a named model into a subtree of
// scene nodes. Until the load completes it shows its fallback child;
// once the handle reports loaded, the parsed hierarchy replaces the
// fallback. The node itself is valid and animatable the whole time, so
// animators attached to it rotate the placeholder and the loaded model
// alike.
type ModelNode struct {
	*Node

	handle         *systems.ModelHandle
	geometrySystem *systems.GeometrySystem
	fallback       *Node
	content        *Node
	// builtGeneration tracks which load generation the content subtree
	// was built from, so hot reloads rebuild it.
	builtGeneration uint32
	failed          bool
}

// NewModelNode requests the named model from the mesh system and
// returns immediately with the fallback visible.
func NewModelNode(name string, ms *systems.MeshSystem, gs *systems.GeometrySystem, fallback *Node) *ModelNode {
	mn := &ModelNode{
		Node:           NewNode(name),
		handle:         ms.RequestModel(name),
		geometrySystem: gs,
		fallback:       fallback,
	}
	if fallback != nil {
		mn.Node.AddChild(fallback)
	}
	// Handle resolution runs as the node's first animator so plain
	// graph traversal picks it up on the frame thread.
	mn.Node.Animators = append(mn.Node.Animators, &modelResolver{mn})
	return mn
}

type modelResolver struct {
	owner *ModelNode
}

func (r *modelResolver) Animate(_ *Node, _ float64) {
	r.owner.resolve()
}

// Handle exposes the underlying load handle, mainly for HUD status.
func (mn *ModelNode) Handle() *systems.ModelHandle {
	return mn.handle
}

// Pending reports whether the fallback is still standing in for the
// model.
func (mn *ModelNode) Pending() bool {
	return mn.handle.State() == systems.ModelStatePending
}

// resolve reacts to handle state changes. It runs on the frame thread,
// after the mesh system's Update has drained its completions.
func (mn *ModelNode) resolve() {
	switch mn.handle.State() {
	case systems.ModelStateLoaded:
		if gen := mn.handle.Generation(); gen != mn.builtGeneration {
			mn.rebuild(gen)
		}
	case systems.ModelStateFailed:
		if !mn.failed {
			mn.failed = true
			core.LogWarn("model '%s' unavailable, keeping placeholder: %s", mn.Name, mn.handle.Err().Error())
		}
	}
}

func (mn *ModelNode) rebuild(generation uint32) {
	data := mn.handle.Data()
	if data == nil {
		return
	}

	content, err := mn.buildContent(data)
	if err != nil {
		core.LogError("failed to realize model '%s': %s", mn.Name, err.Error())
		return
	}

	if mn.content != nil {
		mn.releaseSubtree(mn.content)
		mn.Node.RemoveChild(mn.content)
	}
	if mn.fallback != nil {
		mn.Node.RemoveChild(mn.fallback)
		mn.releaseSubtree(mn.fallback)
		mn.fallback = nil
	}

	mn.content = content
	mn.Node.AddChild(content)
	mn.builtGeneration = generation
	mn.failed = false
}

// buildContent realizes the parsed node hierarchy as scene nodes with
// registered geometry.
func (mn *ModelNode) buildContent(data *resources.ModelData) (*Node, error) {
	root := NewNode(data.Name)
	for _, idx := range data.RootNodes {
		child, err := mn.buildNode(data, idx)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func (mn *ModelNode) buildNode(data *resources.ModelData, index int) (*Node, error) {
	src := data.Nodes[index]
	node := NewNode(src.Name)
	node.Transform.SetPositionRotationScale(src.Translation, src.Rotation, src.Scale)

	for _, meshIndex := range src.Meshes {
		mesh := data.Meshes[meshIndex]
		material := renderer.Material{
			Name:          mesh.Name,
			DiffuseColour: math.NewVec4(1, 1, 1, 1),
		}
		if mesh.MaterialIndex >= 0 && mesh.MaterialIndex < len(data.Materials) {
			md := data.Materials[mesh.MaterialIndex]
			material.Name = md.Name
			material.DiffuseColour = md.DiffuseColour
		}
		geometry, err := mn.geometrySystem.AcquireFromMesh(mesh, material, true)
		if err != nil {
			return nil, err
		}
		node.Geometries = append(node.Geometries, geometry)
	}

	for _, childIndex := range src.Children {
		child, err := mn.buildNode(data, childIndex)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func (mn *ModelNode) releaseSubtree(n *Node) {
	for _, g := range n.Geometries {
		mn.geometrySystem.Release(g)
	}
	n.Geometries = nil
	for _, c := range n.Children() {
		mn.releaseSubtree(c)
	}
}
