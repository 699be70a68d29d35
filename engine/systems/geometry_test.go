package systems

import (
	"testing"

	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
)

func TestGenerateCubeMeshShape(t *testing.T) {
	mesh, err := GenerateCubeMesh(2, 4, 6, "box")
	if err != nil {
		t.Fatalf("cube generation failed: %v", err)
	}

	if len(mesh.Vertices) != 24 {
		t.Fatalf("expected 24 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 36 {
		t.Fatalf("expected 36 indices, got %d", len(mesh.Indices))
	}
	if mesh.Name != "box" {
		t.Fatalf("unexpected name %q", mesh.Name)
	}
	if !mesh.Extents.Min.Compare(math.NewVec3(-1, -2, -3), 1e-6) {
		t.Fatalf("unexpected min extents %+v", mesh.Extents.Min)
	}
	if !mesh.Extents.Max.Compare(math.NewVec3(1, 2, 3), 1e-6) {
		t.Fatalf("unexpected max extents %+v", mesh.Extents.Max)
	}

	for i, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range at %d", idx, i)
		}
	}
	for i, v := range mesh.Vertices {
		if v.Normal.Length() == 0 {
			t.Fatalf("vertex %d has no normal", i)
		}
	}
}

func TestGenerateCubeMeshDefaultsZeroDimensions(t *testing.T) {
	mesh, err := GenerateCubeMesh(0, 0, 0, "")
	if err != nil {
		t.Fatalf("cube generation failed: %v", err)
	}
	if mesh.Name != DefaultGeometryName {
		t.Fatalf("expected default name, got %q", mesh.Name)
	}
	if !mesh.Extents.Max.Compare(math.NewVec3(0.5, 0.5, 0.5), 1e-6) {
		t.Fatalf("zero dimensions should default to a unit cube, got %+v", mesh.Extents.Max)
	}
}

func TestGeometrySystemAcquireRelease(t *testing.T) {
	gs, err := NewGeometrySystem()
	if err != nil {
		t.Fatalf("geometry system: %v", err)
	}

	mesh, err := GenerateCubeMesh(1, 1, 1, "cube")
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	material := renderer.Material{Name: "grey", DiffuseColour: math.NewVec4(0.5, 0.5, 0.5, 1)}

	geometry, err := gs.AcquireFromMesh(mesh, material, true)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if gs.Count() != 1 {
		t.Fatalf("expected one registered geometry, got %d", gs.Count())
	}

	second, err := gs.Acquire(geometry.ID)
	if err != nil {
		t.Fatalf("acquire by id: %v", err)
	}
	if second != geometry {
		t.Fatal("acquire by id should return the same geometry")
	}

	gs.Release(geometry)
	if gs.Count() != 1 {
		t.Fatal("geometry with a remaining reference must stay registered")
	}
	gs.Release(geometry)
	if gs.Count() != 0 {
		t.Fatal("auto-release geometry should be dropped at zero references")
	}
}

func TestGeometrySystemRejectsEmptyMesh(t *testing.T) {
	gs, err := NewGeometrySystem()
	if err != nil {
		t.Fatalf("geometry system: %v", err)
	}
	if _, err := gs.AcquireFromMesh(nil, renderer.Material{}, true); err == nil {
		t.Fatal("expected error for nil mesh")
	}
}
