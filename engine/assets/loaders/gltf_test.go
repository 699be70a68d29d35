package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/dvitali/maquette/engine/resources"
)

func buildTestDoc() *gltf.Document {
	doc := gltf.NewDocument()

	red := float32(1.0)
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{red, 0, 0, 1},
		},
	})

	positionAccessor := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	})
	normalAccessor := modeler.WriteNormal(doc, [][3]float32{
		{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
	})
	uvAccessor := modeler.WriteTextureCoord(doc, [][2]float32{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	})
	indicesAccessor := modeler.WriteIndices(doc, []uint32{0, 1, 2, 2, 1, 3})

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{
				"POSITION":   positionAccessor,
				"NORMAL":     normalAccessor,
				"TEXCOORD_0": uvAccessor,
			},
			Indices:  &indicesAccessor,
			Material: gltf.Index(0),
		}},
	})

	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "quad-node",
		Mesh:        gltf.Index(0),
		Translation: [3]float32{1, 2, 3},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:     "group",
		Children: []uint32{0},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 1)
	return doc
}

func TestModelLoaderParsesGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(buildTestDoc(), path); err != nil {
		t.Fatalf("save glb: %v", err)
	}

	loader := &ModelLoader{}
	res, err := loader.Load(path, resources.ResourceTypeModel, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	model, ok := res.Data.(*resources.ModelData)
	if !ok {
		t.Fatal("expected model data payload")
	}
	if model.Name != "quad" {
		t.Fatalf("expected model name from file, got %q", model.Name)
	}

	if len(model.Meshes) != 1 {
		t.Fatalf("expected one mesh, got %d", len(model.Meshes))
	}
	mesh := model.Meshes[0]
	if len(mesh.Vertices) != 4 || len(mesh.Indices) != 6 {
		t.Fatalf("unexpected mesh shape: %d verts, %d indices", len(mesh.Vertices), len(mesh.Indices))
	}
	if mesh.MaterialIndex != 0 {
		t.Fatalf("expected material index 0, got %d", mesh.MaterialIndex)
	}
	v := mesh.Vertices[3]
	if v.Position.X != 1 || v.Position.Y != 1 {
		t.Fatalf("unexpected vertex position %+v", v.Position)
	}
	if v.Normal.Z != 1 {
		t.Fatalf("expected authored normal, got %+v", v.Normal)
	}
	if v.Texcoord.X != 1 || v.Texcoord.Y != 1 {
		t.Fatalf("unexpected texcoord %+v", v.Texcoord)
	}

	if len(model.Materials) != 1 {
		t.Fatalf("expected one material, got %d", len(model.Materials))
	}
	mat := model.Materials[0]
	if mat.Name != "red" || mat.DiffuseColour.X != 1 || mat.DiffuseColour.Y != 0 {
		t.Fatalf("unexpected material %+v", mat)
	}

	if len(model.RootNodes) != 1 || model.RootNodes[0] != 1 {
		t.Fatalf("expected the group node as scene root, got %v", model.RootNodes)
	}
	group := model.Nodes[1]
	if len(group.Children) != 1 || group.Children[0] != 0 {
		t.Fatalf("expected group to parent the quad node, got %+v", group.Children)
	}
	quadNode := model.Nodes[0]
	if quadNode.Translation.X != 1 || quadNode.Translation.Y != 2 || quadNode.Translation.Z != 3 {
		t.Fatalf("unexpected node translation %+v", quadNode.Translation)
	}
	if len(quadNode.Meshes) != 1 || quadNode.Meshes[0] != 0 {
		t.Fatalf("expected quad node to carry mesh 0, got %v", quadNode.Meshes)
	}

	if idx := model.FindNode("quad-node"); idx != 0 {
		t.Fatalf("FindNode should locate the quad node, got %d", idx)
	}
	if idx := model.FindNode("nope"); idx != -1 {
		t.Fatalf("FindNode should return -1 for unknown names, got %d", idx)
	}
}

func TestModelLoaderMissingFileIsFetchError(t *testing.T) {
	loader := &ModelLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.glb"), resources.ResourceTypeModel, nil)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestModelLoaderCorruptFileIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.glb")
	if err := os.WriteFile(path, []byte("not a glb"), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := &ModelLoader{}
	_, err := loader.Load(path, resources.ResourceTypeModel, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestModelLoaderGeneratesMissingNormals(t *testing.T) {
	doc := gltf.NewDocument()
	positionAccessor := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "bare",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{"POSITION": positionAccessor},
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "n", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "bare.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}

	loader := &ModelLoader{}
	res, err := loader.Load(path, resources.ResourceTypeModel, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mesh := res.Data.(*resources.ModelData).Meshes[0]
	for i, v := range mesh.Vertices {
		if v.Normal.Length() == 0 {
			t.Fatalf("vertex %d should have a generated normal", i)
		}
	}
	// Non-indexed primitives synthesize sequential indices.
	if len(mesh.Indices) != 3 {
		t.Fatalf("expected synthesized indices, got %d", len(mesh.Indices))
	}
}
