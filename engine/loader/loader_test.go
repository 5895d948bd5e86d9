package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// triangleBin holds three positions of a unit right triangle followed by uint16 indices 0, 1, 2.
func triangleBin() []byte {
	var buf bytes.Buffer
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2} {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// triangleDoc describes triangleBin with one node applying the given transform fields.
func triangleDoc(node map[string]any, buffer map[string]any) map[string]any {
	node["mesh"] = 0
	return map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"nodes": []int{0}}},
		"nodes":  []any{node},
		"meshes": []any{map[string]any{
			"name": "tri",
			"primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": 0},
				"indices":    1,
				"material":   0,
			}},
		}},
		"materials": []any{map[string]any{
			"doubleSided":          true,
			"pbrMetallicRoughness": map[string]any{"baseColorFactor": []float32{1, 0, 0, 1}, "roughnessFactor": 0.25},
		}},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": gltfComponentTypeFloat, "count": 3, "type": "VEC3"},
			map[string]any{"bufferView": 1, "componentType": gltfComponentTypeUnsignedShort, "count": 3, "type": "SCALAR"},
		},
		"bufferViews": []any{
			map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			map[string]any{"buffer": 0, "byteOffset": 36, "byteLength": 6},
		},
		"buffers": []any{buffer},
	}
}

// buildGLB packs a JSON document and a binary chunk into a GLB container.
func buildGLB(t *testing.T, doc map[string]any, bin []byte) []byte {
	t.Helper()
	js, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var out bytes.Buffer
	total := 12 + 8 + len(js) + 8 + len(bin)
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)})
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(js)), ChunkType: gltfGLBChunkJSON})
	out.Write(js)
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	out.Write(bin)
	return out.Bytes()
}

func triangleGLB(t *testing.T, node map[string]any) []byte {
	bin := triangleBin()
	return buildGLB(t, triangleDoc(node, map[string]any{"byteLength": len(bin)}), bin)
}

func nearVec(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}

func TestParseGLBBakesNodeTransform(t *testing.T) {
	data := triangleGLB(t, map[string]any{"translation": []float32{1, 2, 3}})
	m, err := ParseGLB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	if len(m.Parts) != 1 || m.TriangleCount() != 1 {
		t.Fatalf("got %d parts and %d triangles, want 1 and 1", len(m.Parts), m.TriangleCount())
	}

	part := m.Parts[0]
	want := []mgl32.Vec3{{1, 2, 3}, {2, 2, 3}, {1, 3, 3}}
	for i, p := range part.Mesh.Positions {
		if !nearVec(p, want[i]) {
			t.Errorf("position %d = %v, want %v", i, p, want[i])
		}
	}
	if !nearVec(part.Mesh.Normals[0], mgl32.Vec3{0, 0, 1}) {
		t.Errorf("generated normal = %v, want +Z", part.Mesh.Normals[0])
	}
	if part.Mesh.Name != "tri" {
		t.Errorf("mesh name = %q, want tri", part.Mesh.Name)
	}

	if got := color.NRGBAModel.Convert(part.Material.Color).(color.NRGBA); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("material color = %v, want opaque red", got)
	}
	if !part.Material.DoubleSided {
		t.Error("material should be double sided")
	}
	if part.Material.Roughness != 0.25 || part.Material.Metalness != 1 {
		t.Errorf("roughness/metalness = %v/%v, want 0.25/1", part.Material.Roughness, part.Material.Metalness)
	}
}

func TestParseGLBMirroredNodeKeepsFrontFace(t *testing.T) {
	data := triangleGLB(t, map[string]any{"scale": []float32{-1, 1, 1}})
	m, err := ParseGLB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	a, b, c := m.Parts[0].Mesh.Triangle(0)
	if face := b.Sub(a).Cross(c.Sub(a)); face.Z() <= 0 {
		t.Fatalf("mirrored face normal = %v, want +Z", face)
	}
}

func TestParseGLBRotationAndMatrix(t *testing.T) {
	// Quarter turn about Z maps (1,0,0) to (0,1,0).
	s := float32(math.Sqrt2 / 2)
	m, err := ParseGLB(bytes.NewReader(triangleGLB(t, map[string]any{"rotation": []float32{0, 0, s, s}})))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	if p := m.Parts[0].Mesh.Positions[1]; !nearVec(p, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("rotated vertex = %v, want (0,1,0)", p)
	}

	matrix := mgl32.Translate3D(0, 0, -4)
	m, err = ParseGLB(bytes.NewReader(triangleGLB(t, map[string]any{"matrix": matrix})))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	if p := m.Parts[0].Mesh.Positions[2]; !nearVec(p, mgl32.Vec3{0, 1, -4}) {
		t.Errorf("matrix vertex = %v, want (0,1,-4)", p)
	}
}

func TestParseGLTFDataURI(t *testing.T) {
	bin := triangleBin()
	doc := triangleDoc(map[string]any{}, map[string]any{
		"byteLength": len(bin),
		"uri":        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(bin),
	})
	js, _ := json.Marshal(doc)

	m, err := ParseGLB(bytes.NewReader(js))
	if err != nil {
		t.Fatalf("ParseGLB(json): %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("triangles = %d, want 1", m.TriangleCount())
	}
}

func TestParseErrors(t *testing.T) {
	good := triangleGLB(t, map[string]any{})

	badMagic := append([]byte{}, good...)
	copy(badMagic, "nope")

	badVersion := append([]byte{}, good...)
	binary.LittleEndian.PutUint32(badVersion[4:], 1)

	truncated := good[:len(good)-8]

	oldAsset, _ := json.Marshal(map[string]any{"asset": map[string]any{"version": "1.0"}})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", badMagic, nil},
		{"bad version", badVersion, ErrInvalidGLBVersion},
		{"truncated chunk", truncated, ErrTruncated},
		{"glTF 1.0", oldAsset, ErrInvalidGLTFVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGLB(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAccessorOutOfBounds(t *testing.T) {
	bin := triangleBin()
	doc := triangleDoc(map[string]any{}, map[string]any{"byteLength": len(bin)})
	doc["accessors"].([]any)[0].(map[string]any)["count"] = 30

	_, err := ParseGLB(bytes.NewReader(buildGLB(t, doc, bin)))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestMalformedAccessorsReturnErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		want   error
	}{
		{"negative bufferView offset", func(doc map[string]any) {
			doc["bufferViews"].([]any)[0].(map[string]any)["byteOffset"] = -8
		}, ErrTruncated},
		{"negative accessor offset", func(doc map[string]any) {
			doc["accessors"].([]any)[0].(map[string]any)["byteOffset"] = -4
		}, ErrTruncated},
		{"negative count", func(doc map[string]any) {
			doc["accessors"].([]any)[0].(map[string]any)["count"] = -1
		}, ErrTruncated},
		{"stride below element size", func(doc map[string]any) {
			doc["bufferViews"].([]any)[0].(map[string]any)["byteStride"] = 4
		}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := triangleBin()
			doc := triangleDoc(map[string]any{}, map[string]any{"byteLength": len(bin)})
			tt.mutate(doc)

			_, err := ParseGLB(bytes.NewReader(buildGLB(t, doc, bin)))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoaderCachesByPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.glb"), triangleGLB(t, map[string]any{}), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(WithBaseDir(dir))
	first, err := l.Load("tri.glb")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.Name != "tri" {
		t.Errorf("model name = %q, want tri", first.Name)
	}
	second, err := l.Load("tri.glb")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatal("second Load should return the cached model")
	}
	if l.Get("tri.glb") != first || len(l.Models()) != 1 {
		t.Fatal("cache should hold exactly the loaded model")
	}

	if _, err := l.Load("tri.obj"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Load(.obj) err = %v, want ErrUnsupported", err)
	}
	if _, err := l.Load("missing.glb"); err == nil {
		t.Fatal("Load(missing) should fail")
	}
}

func TestLoadFuncPopulatesScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.glb")
	if err := os.WriteFile(path, triangleGLB(t, map[string]any{}), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	load := l.LoadFunc(path, WithScale(0.5), WithOffset(0, 1, 0))
	populate, err := load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := scene.NewScene("test")
	populate(s)
	if s.Len() != 1 {
		t.Fatalf("scene has %d objects, want 1", s.Len())
	}
	obj := s.Objects()[0]
	if obj.Scale() != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("scale = %v, want 0.5", obj.Scale())
	}
	if obj.Position() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("position = %v, want (0,1,0)", obj.Position())
	}
}

func TestLoadFuncCentered(t *testing.T) {
	m := &Model{Name: "tri"}
	l := NewLoader(WithModel("tri.glb", m))
	data := triangleGLB(t, map[string]any{"translation": []float32{2, 2, 2}})
	parsed, err := ParseGLB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	m.Parts = parsed.Parts

	populate, err := l.LoadFunc("tri.glb", WithCentered(true))(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := scene.NewScene("test")
	populate(s)

	// Bounds are (2,2,2)..(3,3,2), so the center lands on the origin.
	if p := s.Objects()[0].Position(); !nearVec(p, mgl32.Vec3{-2.5, -2.5, -2}) {
		t.Errorf("centered position = %v, want (-2.5,-2.5,-2)", p)
	}
}

func TestLoadFuncCancelledContext(t *testing.T) {
	l := NewLoader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	populate, err := l.LoadFunc("never-read.glb")(ctx)
	if !errors.Is(err, context.Canceled) || populate != nil {
		t.Fatalf("load = (populate!=nil: %v, %v), want (nil, context.Canceled)", populate != nil, err)
	}
	if len(l.Models()) != 0 {
		t.Fatal("cancelled load should not touch the cache")
	}
}
