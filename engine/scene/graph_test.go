package scene

import (
	"testing"

	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
)

func testGeometry(name string) *renderer.Geometry {
	return &renderer.Geometry{
		ID:   name,
		Name: name,
		Material: renderer.Material{
			Name:          name,
			DiffuseColour: math.NewVec4(1, 1, 1, 1),
		},
	}
}

func TestGraphFindByName(t *testing.T) {
	g := NewGraph()
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	g.Root.AddChild(parent)

	if g.Find("child") != child {
		t.Fatal("expected to find nested child by name")
	}
	if g.Find("missing") != nil {
		t.Fatal("expected nil for unknown name")
	}
}

func TestNodeReparentingMovesChild(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AddChild(child)
	if child.Parent() != a || len(a.Children()) != 1 {
		t.Fatal("child should be under a")
	}

	b.AddChild(child)
	if child.Parent() != b {
		t.Fatal("child should have moved to b")
	}
	if len(a.Children()) != 0 {
		t.Fatal("a should no longer list the child")
	}
	if child.Transform.Parent != b.Transform {
		t.Fatal("child transform should chain through b")
	}
}

func TestCollectSkipsInvisibleSubtree(t *testing.T) {
	g := NewGraph()

	visible := NewNode("visible")
	visible.Geometries = append(visible.Geometries, testGeometry("v"))

	hidden := NewNode("hidden")
	hidden.Geometries = append(hidden.Geometries, testGeometry("h"))
	hiddenChild := NewNode("hidden-child")
	hiddenChild.Geometries = append(hiddenChild.Geometries, testGeometry("hc"))
	hidden.AddChild(hiddenChild)
	hidden.Visible = false

	g.Root.AddChild(visible)
	g.Root.AddChild(hidden)

	draws := g.Collect()
	if len(draws) != 1 {
		t.Fatalf("expected one draw, got %d", len(draws))
	}
	if draws[0].Geometry.Name != "v" {
		t.Fatalf("expected the visible geometry, got %s", draws[0].Geometry.Name)
	}
}

func TestCollectUsesWorldMatrices(t *testing.T) {
	g := NewGraph()
	parent := NewNode("parent")
	parent.Transform.SetPosition(math.NewVec3(0, 10, 0))
	child := NewNode("child")
	child.Transform.SetPosition(math.NewVec3(1, 0, 0))
	child.Geometries = append(child.Geometries, testGeometry("c"))
	parent.AddChild(child)
	g.Root.AddChild(parent)

	draws := g.Collect()
	if len(draws) != 1 {
		t.Fatalf("expected one draw, got %d", len(draws))
	}
	p := math.NewVec3Zero().Transform(draws[0].Model)
	if !p.Compare(math.NewVec3(1, 10, 0), 1e-5) {
		t.Fatalf("expected world position (1,10,0), got %+v", p)
	}
}

func TestUpdateAnimatesInvisibleNodes(t *testing.T) {
	g := NewGraph()
	hidden := NewNode("hidden")
	hidden.Visible = false
	spinner := NewSpinner(math.NewVec3Up(), 1.0)
	hidden.Animators = append(hidden.Animators, spinner)
	g.Root.AddChild(hidden)

	g.Update(0.5)
	if spinner.Angle() == 0 {
		t.Fatal("hidden nodes should still animate")
	}
}
