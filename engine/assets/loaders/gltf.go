package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/resources"
)

// ModelLoader parses glTF scene containers (.glb/.gltf) into a
// resources.ModelData node graph.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(ErrFetch, "%v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "open %s: %v", path, err)
	}

	model, err := buildModel(doc, modelName(path))
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%s: %v", path, err)
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: modelSize(model),
		Data:     model,
	}, nil
}

func (ml *ModelLoader) Unload(*resources.Resource) error {
	return nil
}

func buildModel(doc *gltf.Document, name string) (*resources.ModelData, error) {
	model := &resources.ModelData{Name: name}

	for _, mat := range doc.Materials {
		model.Materials = append(model.Materials, convertMaterial(mat))
	}

	// A glTF mesh may hold several primitives; each becomes its own
	// MeshData so per-primitive materials survive.
	meshLookup := make(map[uint32][]int, len(doc.Meshes))
	for iMesh, mesh := range doc.Meshes {
		for iPrim, prim := range mesh.Primitives {
			md, err := convertPrimitive(doc, mesh, prim, iPrim)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d", mesh.Name, iPrim)
			}
			meshLookup[uint32(iMesh)] = append(meshLookup[uint32(iMesh)], len(model.Meshes))
			model.Meshes = append(model.Meshes, md)
		}
	}

	for _, node := range doc.Nodes {
		model.Nodes = append(model.Nodes, convertNode(node, meshLookup))
	}

	sceneRoots := []int{}
	if len(doc.Scenes) > 0 {
		scene := doc.Scenes[0]
		if doc.Scene != nil {
			scene = doc.Scenes[*doc.Scene]
		}
		for _, n := range scene.Nodes {
			sceneRoots = append(sceneRoots, int(n))
		}
	} else {
		for i := range model.Nodes {
			sceneRoots = append(sceneRoots, i)
		}
	}
	model.RootNodes = sceneRoots

	return model, nil
}

func convertPrimitive(doc *gltf.Document, mesh *gltf.Mesh, prim *gltf.Primitive, iPrim int) (*resources.MeshData, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}

	vertices := make([]math.Vertex3D, len(positions))
	for i, p := range positions {
		vertices[i].Position = math.NewVec3(p[0], p[1], p[2])
		vertices[i].Colour = math.NewVec4(1, 1, 1, 1)
	}

	hasNormals := false
	if normIdx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read normals")
		}
		for i, n := range normals {
			if i < len(vertices) {
				vertices[i].Normal = math.NewVec3(n[0], n[1], n[2])
			}
		}
		hasNormals = true
	}

	if uvIdx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read texture coords")
		}
		for i, uv := range uvs {
			if i < len(vertices) {
				vertices[i].Texcoord = math.NewVec2(uv[0], uv[1])
			}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
	} else {
		// Non-indexed geometry: every three vertices form a triangle.
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if !hasNormals {
		math.GeometryGenerateNormals(vertices, indices)
	}

	name := mesh.Name
	if name == "" {
		name = "mesh"
	}
	if iPrim > 0 {
		name = fmt.Sprintf("%s.%d", name, iPrim)
	}

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = int(*prim.Material)
	}

	return &resources.MeshData{
		Name:          name,
		MaterialIndex: materialIndex,
		Vertices:      vertices,
		Indices:       indices,
		Extents:       math.CalculateExtents(vertices),
	}, nil
}

func convertMaterial(mat *gltf.Material) *resources.MaterialData {
	out := &resources.MaterialData{
		Name:          mat.Name,
		DiffuseColour: math.NewVec4(1, 1, 1, 1),
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		c := *pbr.BaseColorFactor
		out.DiffuseColour = math.NewVec4(c[0], c[1], c[2], c[3])
	}
	return out
}

func convertNode(node *gltf.Node, meshLookup map[uint32][]int) *resources.ModelNode {
	out := &resources.ModelNode{
		Name:     node.Name,
		Scale:    math.NewVec3One(),
		Rotation: math.NewQuatIdentity(),
	}

	if node.Matrix != identityMatrix {
		// Matrix-form nodes: decompose into TRS.
		m := mgl32.Mat4(node.Matrix)
		t, r, s := decomposeTRS(m)
		out.Translation = t
		out.Rotation = r
		out.Scale = s
	} else {
		out.Translation = math.NewVec3(node.Translation[0], node.Translation[1], node.Translation[2])
		if node.Rotation != [4]float32{0, 0, 0, 0} {
			out.Rotation = math.Quaternion{X: node.Rotation[0], Y: node.Rotation[1], Z: node.Rotation[2], W: node.Rotation[3]}
		}
		if node.Scale != [3]float32{0, 0, 0} {
			out.Scale = math.NewVec3(node.Scale[0], node.Scale[1], node.Scale[2])
		}
	}

	if node.Mesh != nil {
		out.Meshes = append(out.Meshes, meshLookup[*node.Mesh]...)
	}

	for _, c := range node.Children {
		out.Children = append(out.Children, int(c))
	}
	return out
}

var identityMatrix = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// decomposeTRS splits a column-major transform matrix into translation,
// rotation and scale.
func decomposeTRS(m mgl32.Mat4) (math.Vec3, math.Quaternion, math.Vec3) {
	t := math.NewVec3(m.At(0, 3), m.At(1, 3), m.At(2, 3))

	c0 := mgl32.Vec3{m.At(0, 0), m.At(1, 0), m.At(2, 0)}
	c1 := mgl32.Vec3{m.At(0, 1), m.At(1, 1), m.At(2, 1)}
	c2 := mgl32.Vec3{m.At(0, 2), m.At(1, 2), m.At(2, 2)}
	s := math.NewVec3(c0.Len(), c1.Len(), c2.Len())

	rot := mgl32.Mat4{}
	copy(rot[:], m[:])
	if s.X != 0 && s.Y != 0 && s.Z != 0 {
		rot = m.Mul4(mgl32.Scale3D(1/s.X, 1/s.Y, 1/s.Z))
	}
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	q := mgl32.Mat4ToQuat(rot)
	return t, math.Quaternion{X: q.X(), Y: q.Y(), Z: q.Z(), W: q.W}, s
}

func modelName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func modelSize(model *resources.ModelData) uint64 {
	var size uint64
	for _, m := range model.Meshes {
		size += uint64(len(m.Vertices))*uint64(48) + uint64(len(m.Indices))*4
	}
	return size
}
