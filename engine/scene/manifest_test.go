package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dvitali/maquette/engine/math"
)

const testManifest = `
name: test-scene
camera:
  position: [0, 1, 5]
  rotation: [0, 90, 0]
nodes:
  - name: pivot
    position: [0, 2, 0]
    spin:
      axis: [0, 1, 0]
      speed: 0.5
    children:
      - name: satellite
        position: [3, 0, 0]
        scale: [0.5]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifestParsesFields(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if m.Name != "test-scene" {
		t.Fatalf("unexpected name %q", m.Name)
	}
	if m.Camera.Position != [3]float32{0, 1, 5} {
		t.Fatalf("unexpected camera position %v", m.Camera.Position)
	}
	if len(m.Nodes) != 1 {
		t.Fatalf("expected one top level node, got %d", len(m.Nodes))
	}
	pivot := m.Nodes[0]
	if pivot.Spin == nil || pivot.Spin.Speed != 0.5 {
		t.Fatalf("expected spin spec, got %+v", pivot.Spin)
	}
	if len(pivot.Children) != 1 || pivot.Children[0].Name != "satellite" {
		t.Fatalf("expected satellite child, got %+v", pivot.Children)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadManifestInvalidYAML(t *testing.T) {
	if _, err := LoadManifest(writeManifest(t, "nodes: [pivot")); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestManifestBuildRealizesHierarchy(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	graph, err := m.Build(nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	pivot := graph.Find("pivot")
	if pivot == nil {
		t.Fatal("pivot node missing")
	}
	if len(pivot.Animators) != 1 {
		t.Fatalf("expected one animator on pivot, got %d", len(pivot.Animators))
	}

	satellite := graph.Find("satellite")
	if satellite == nil {
		t.Fatal("satellite node missing")
	}
	if satellite.Parent() != pivot {
		t.Fatal("satellite should be parented to pivot")
	}
	if !satellite.Transform.Scale.Compare(math.NewVec3(0.5, 0.5, 0.5), 1e-6) {
		t.Fatalf("expected uniform scale 0.5, got %+v", satellite.Transform.Scale)
	}

	// The spin must flow into the world matrix of the child.
	graph.Update(1.0)
	world := satellite.Transform.GetWorld()
	p := math.NewVec3Zero().Transform(world)
	if p.Compare(math.NewVec3(3, 2, 0), 1e-6) {
		t.Fatal("satellite should have moved after the pivot spun")
	}
}
