package resources

import (
	"github.com/fzipp/bmfont"

	"github.com/dvitali/maquette/engine/math"
)

type ResourceType int

// Pre-defined resource types.
const (
	ResourceTypeNone ResourceType = iota
	// Raw bytes.
	ResourceTypeBinary
	// Decoded image pixels.
	ResourceTypeImage
	// A parsed model scene container (node graph plus mesh data).
	ResourceTypeModel
	// Bitmap font descriptor plus glyph page images.
	ResourceTypeBitmapFont
)

// Resource is the generic structure all asset loaders load data into.
type Resource struct {
	// The name of the resource.
	Name string
	// The full file path of the resource.
	FullPath string
	// The size of the resource data in bytes.
	DataSize uint64
	// The typed resource data: *ImageData, *ModelData, *FontData or []byte.
	Data interface{}
}

// ImageData is the payload of an image resource.
type ImageData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	// Tightly packed RGBA, row major.
	Pixels []uint8
}

// ModelData is the payload of a model resource: the in-memory node graph
// parsed from a scene-container file. Read-only after load.
type ModelData struct {
	Name      string
	Meshes    []*MeshData
	Materials []*MaterialData
	// Flat node list; children reference indices into this slice.
	Nodes []*ModelNode
	// Indices of the scene's top-level nodes.
	RootNodes []int
}

// MeshData is one named mesh of a model.
type MeshData struct {
	Name string
	// MaterialIndex indexes ModelData.Materials, -1 if none.
	MaterialIndex int
	Vertices      []math.Vertex3D
	Indices       []uint32
	Extents       math.Extents3D
}

// MaterialData carries the subset of material state the renderer uses.
type MaterialData struct {
	Name          string
	DiffuseColour math.Vec4
}

// ModelNode is one named node of the model hierarchy.
type ModelNode struct {
	Name        string
	Translation math.Vec3
	Rotation    math.Quaternion
	Scale       math.Vec3
	// Meshes indexes ModelData.Meshes; empty for pure grouping nodes.
	// A node carries several meshes when its source mesh had multiple
	// primitives.
	Meshes   []int
	Children []int
}

// FontData is the payload of a bitmap font resource.
type FontData struct {
	Descriptor *bmfont.Descriptor
	// Glyph page images keyed by page id.
	Pages map[int]*ImageData
}

// FindNode returns the index of the first node with the given name, or -1.
func (md *ModelData) FindNode(name string) int {
	for i, n := range md.Nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}
