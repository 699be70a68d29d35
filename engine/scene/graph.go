package scene

import (
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
)

// Animator mutates a node once per frame. Animators run on the frame
// thread during Graph.Update, never concurrently with rendering.
type Animator interface {
	Animate(node *Node, deltaTime float64)
}

// Node is one element of the scene hierarchy. It carries a transform,
// zero or more geometries to draw and zero or more animators.
type Node struct {
	Name       string
	Transform  *math.Transform
	Geometries []*renderer.Geometry
	Animators  []Animator
	Visible    bool

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: math.TransformCreate(),
		Visible:   true,
	}
}

// AddChild attaches a child and parents its transform so world matrices
// chain through this node.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	child.Transform.Parent = n.Transform
	n.children = append(n.children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.Transform.Parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Find returns the first node named name in this subtree, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Update runs animators depth first. Invisible nodes still animate so
// their state does not stall while hidden.
func (n *Node) Update(deltaTime float64) {
	for _, a := range n.Animators {
		a.Animate(n, deltaTime)
	}
	for _, c := range n.children {
		c.Update(deltaTime)
	}
}

// Collect appends render data for every visible geometry in the
// subtree. An invisible node hides its whole subtree.
func (n *Node) Collect(out []*renderer.GeometryRenderData) []*renderer.GeometryRenderData {
	if !n.Visible {
		return out
	}
	if len(n.Geometries) > 0 {
		world := n.Transform.GetWorld()
		for _, g := range n.Geometries {
			out = append(out, &renderer.GeometryRenderData{Geometry: g, Model: world})
		}
	}
	for _, c := range n.children {
		out = c.Collect(out)
	}
	return out
}

// Graph is a scene rooted at a single node.
type Graph struct {
	Root *Node
}

func NewGraph() *Graph {
	return &Graph{Root: NewNode("root")}
}

func (g *Graph) Update(deltaTime float64) {
	g.Root.Update(deltaTime)
}

func (g *Graph) Find(name string) *Node {
	return g.Root.Find(name)
}

func (g *Graph) Collect() []*renderer.GeometryRenderData {
	return g.Root.Collect(nil)
}
