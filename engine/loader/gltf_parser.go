package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Errors returned while decoding a glTF or GLB asset.
var (
	ErrInvalidGLTFVersion = errors.New("loader: invalid glTF version, must be 2.x")
	ErrInvalidGLBMagic    = errors.New("loader: invalid GLB magic number")
	ErrInvalidGLBVersion  = errors.New("loader: invalid GLB version, must be 2")
	ErrMissingJSONChunk   = errors.New("loader: GLB file missing JSON chunk")
	ErrTruncated          = errors.New("loader: data truncated")
	ErrInvalidBufferURI   = errors.New("loader: invalid buffer URI")
	ErrUnsupported        = errors.New("loader: unsupported feature")
)

// gltfParser holds one decoded document and its loaded buffers.
type gltfParser struct {
	baseDir string
	doc     *gltfDocument
	bin     []byte
}

// parseAsset decodes GLB or glTF JSON, detected by the GLB magic number.
// External buffer URIs resolve against baseDir.
func parseAsset(data []byte, baseDir string) (*gltfParser, error) {
	p := &gltfParser{baseDir: baseDir}
	var err error
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		err = p.parseGLB(data)
	} else {
		err = p.parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// parseFile reads and decodes the asset at path.
func parseFile(path string) (*gltfParser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parseAsset(data, filepath.Dir(path))
}

func (p *gltfParser) parseJSON(data []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("loader: parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return ErrInvalidGLTFVersion
	}
	if len(doc.ExtensionsRequired) > 0 {
		return fmt.Errorf("%w: required extensions %v", ErrUnsupported, doc.ExtensionsRequired)
	}
	if err := p.loadBuffers(&doc); err != nil {
		return err
	}
	p.doc = &doc
	return nil
}

// parseGLB splits the container into its JSON and BIN chunks.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func (p *gltfParser) parseGLB(data []byte) error {
	if len(data) < 12 {
		return fmt.Errorf("%w: GLB header", ErrTruncated)
	}
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("loader: read GLB header: %w", err)
	}
	if header.Magic != gltfGLBMagic {
		return ErrInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return ErrInvalidGLBVersion
	}

	var jsonData []byte
	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%w: GLB chunk header", ErrTruncated)
		}
		if int64(chunk.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("%w: GLB chunk of %d bytes", ErrTruncated, chunk.ChunkLength)
		}
		body := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, body); err != nil {
			return fmt.Errorf("%w: GLB chunk body", ErrTruncated)
		}
		switch chunk.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = body
		case gltfGLBChunkBIN:
			p.bin = body
		}
	}
	if jsonData == nil {
		return ErrMissingJSONChunk
	}
	return p.parseJSON(jsonData)
}

// loadBuffers fills every buffer from a data URI, an external file, or the GLB BIN chunk.
func (p *gltfParser) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]
		switch {
		case buf.URI == "" && i == 0 && p.bin != nil:
			buf.Data = p.bin
		case buf.URI == "":
			return fmt.Errorf("loader: buffer %d has no URI and no GLB binary chunk", i)
		case strings.HasPrefix(buf.URI, "data:"):
			data, err := decodeDataURI(buf.URI)
			if err != nil {
				return fmt.Errorf("loader: buffer %d: %w", i, err)
			}
			buf.Data = data
		default:
			data, err := os.ReadFile(filepath.Join(p.baseDir, filepath.FromSlash(buf.URI)))
			if err != nil {
				return fmt.Errorf("loader: buffer %d: %w", i, err)
			}
			buf.Data = data
		}
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("%w: buffer %d has %d of %d bytes", ErrTruncated, i, len(buf.Data), buf.ByteLength)
		}
	}
	return nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, ErrInvalidBufferURI
	}
	if !strings.Contains(uri[5:comma], "base64") {
		return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrInvalidBufferURI)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBufferURI, err)
	}
	return data, nil
}

// accessorElements returns the tightly packed bytes of an accessor and its element size.
func (p *gltfParser) accessorElements(index int) ([]byte, int, error) {
	if index < 0 || index >= len(p.doc.Accessors) {
		return nil, 0, fmt.Errorf("loader: accessor %d out of range", index)
	}
	acc := &p.doc.Accessors[index]
	if acc.Sparse != nil {
		return nil, 0, fmt.Errorf("%w: sparse accessor %d", ErrUnsupported, index)
	}
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(p.doc.BufferViews) {
		return nil, 0, fmt.Errorf("loader: accessor %d has no valid bufferView", index)
	}
	bv := &p.doc.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(p.doc.Buffers) {
		return nil, 0, fmt.Errorf("loader: bufferView %d references missing buffer", *acc.BufferView)
	}
	data := p.doc.Buffers[bv.Buffer].Data

	elementSize := componentSize(acc.ComponentType) * componentCount(acc.Type)
	if elementSize == 0 {
		return nil, 0, fmt.Errorf("%w: accessor %d type %s/%d", ErrUnsupported, index, acc.Type, acc.ComponentType)
	}
	stride := elementSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	if stride < elementSize {
		return nil, 0, fmt.Errorf("%w: accessor %d stride %d below element size %d", ErrUnsupported, index, stride, elementSize)
	}

	start := bv.ByteOffset + acc.ByteOffset
	if bv.ByteOffset < 0 || acc.ByteOffset < 0 || acc.Count < 0 {
		return nil, 0, fmt.Errorf("%w: accessor %d has a negative offset or count", ErrTruncated, index)
	}
	if acc.Count > 0 && start+(acc.Count-1)*stride+elementSize > len(data) {
		return nil, 0, fmt.Errorf("%w: accessor %d", ErrTruncated, index)
	}

	out := make([]byte, acc.Count*elementSize)
	for i := 0; i < acc.Count; i++ {
		src := start + i*stride
		copy(out[i*elementSize:(i+1)*elementSize], data[src:src+elementSize])
	}
	return out, elementSize, nil
}

// readVec3 reads a VEC3 FLOAT accessor.
func (p *gltfParser) readVec3(index int) ([]mgl32.Vec3, error) {
	acc := &p.doc.Accessors[index]
	if acc.Type != gltfAccessorTypeVec3 || acc.ComponentType != gltfComponentTypeFloat {
		return nil, fmt.Errorf("%w: accessor %d is %s/%d, want VEC3 FLOAT", ErrUnsupported, index, acc.Type, acc.ComponentType)
	}
	raw, _, err := p.accessorElements(index)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec3, acc.Count)
	for i := range out {
		for k := 0; k < 3; k++ {
			bits := binary.LittleEndian.Uint32(raw[i*12+k*4:])
			out[i][k] = math.Float32frombits(bits)
		}
	}
	return out, nil
}

// readIndices reads a SCALAR index accessor of unsigned byte, short or int components.
func (p *gltfParser) readIndices(index int) ([]uint32, error) {
	acc := &p.doc.Accessors[index]
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("%w: index accessor %d is %s", ErrUnsupported, index, acc.Type)
	}
	raw, size, err := p.accessorElements(index)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, acc.Count)
	for i := range out {
		switch acc.ComponentType {
		case gltfComponentTypeUnsignedByte:
			out[i] = uint32(raw[i])
		case gltfComponentTypeUnsignedShort:
			out[i] = uint32(binary.LittleEndian.Uint16(raw[i*size:]))
		case gltfComponentTypeUnsignedInt:
			out[i] = binary.LittleEndian.Uint32(raw[i*size:])
		default:
			return nil, fmt.Errorf("%w: index component type %d", ErrUnsupported, acc.ComponentType)
		}
	}
	return out, nil
}

func componentSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

func componentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4:
		return 4
	case gltfAccessorTypeMat4:
		return 16
	default:
		return 0
	}
}
