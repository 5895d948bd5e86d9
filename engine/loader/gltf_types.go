// gltf_types.go holds the subset of the glTF 2.0 JSON schema needed to rebuild static meshes.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

// gltfDocument is the root of a glTF JSON document.
type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       *int             `json:"scene,omitempty"`
	Scenes      []gltfScene      `json:"scenes,omitempty"`
	Nodes       []gltfNode       `json:"nodes,omitempty"`
	Meshes      []gltfMesh       `json:"meshes,omitempty"`
	Accessors   []gltfAccessor   `json:"accessors,omitempty"`
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`
	Buffers     []gltfBuffer     `json:"buffers,omitempty"`
	Materials   []gltfMaterial   `json:"materials,omitempty"`

	// ExtensionsRequired lists extensions a loader must support to read the asset.
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is one entry of the transform hierarchy. A node carries either Matrix or TRS.
type gltfNode struct {
	Name        string       `json:"name,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`      // column-major
	Translation *[3]float32  `json:"translation,omitempty"` // x, y, z
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // quaternion x, y, z, w
	Scale       *[3]float32  `json:"scale,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	// Attributes maps a semantic (POSITION, NORMAL, ...) to an accessor index.
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"` // 4 (TRIANGLES) when absent
}

const gltfPrimitiveModeTriangles = 4

type gltfAccessor struct {
	BufferView    *int   `json:"bufferView,omitempty"`
	ByteOffset    int    `json:"byteOffset,omitempty"`
	ComponentType int    `json:"componentType"`
	Normalized    bool   `json:"normalized,omitempty"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
	Sparse        *struct {
		Count int `json:"count"`
	} `json:"sparse,omitempty"`
}

// Accessor component types.
const (
	gltfComponentTypeByte          = 5120
	gltfComponentTypeUnsignedByte  = 5121
	gltfComponentTypeShort         = 5122
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

// Accessor element types.
const (
	gltfAccessorTypeScalar = "SCALAR"
	gltfAccessorTypeVec2   = "VEC2"
	gltfAccessorTypeVec3   = "VEC3"
	gltfAccessorTypeVec4   = "VEC4"
	gltfAccessorTypeMat4   = "MAT4"
)

type gltfBufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
}

type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`

	// Data is filled during load from the URI or the GLB BIN chunk.
	Data []byte `json:"-"`
}

type gltfMaterial struct {
	Name                 string                    `json:"name,omitempty"`
	PbrMetallicRoughness *gltfPbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	DoubleSided          bool                      `json:"doubleSided,omitempty"`
}

type gltfPbrMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"`
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"`
}

// gltfGLBHeader is the 12-byte header of a GLB container.
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader precedes every GLB chunk.
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0"
)
