package renderer

import (
	_ "embed"
	"image/color"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
)

// litShaderSource is the WGSL vertex and fragment program used by the wgpu backend.
// Its FrameUniforms and ObjectUniforms structs match GPUFrameUniforms and GPUObjectUniforms.
//
//go:embed assets/lit.wgsl
var litShaderSource string

// GPULight is the std140 layout of one light in FrameUniforms.
// Size: 64 bytes.
type GPULight struct {
	Position  [4]float32 // offset  0: xyz world position, w light type
	Direction [4]float32 // offset 16: xyz normalized direction, w range (0 = unbounded)
	Color     [4]float32 // offset 32: rgb color × intensity, w cos(outer cone)
	Ground    [4]float32 // offset 48: rgb hemisphere ground × intensity, w cos(inner cone)
}

// GPUFrameUniforms is bind group 0: camera and lights, written once per frame.
// Size: 96 + 64 × MaxLights bytes.
type GPUFrameUniforms struct {
	ViewProjection [16]float32 // offset  0
	CameraPosition [4]float32  // offset 64
	LightCount     uint32      // offset 80
	_              [3]uint32
	Lights         [MaxLights]GPULight // offset 96
}

// GPUObjectUniforms is bind group 1: one per draw.
// Size: 144 bytes.
type GPUObjectUniforms struct {
	Model  [16]float32 // offset   0
	Normal [16]float32 // offset  64: inverse transpose of Model
	Color  [4]float32  // offset 128: rgb base color, w 1 if double-sided
}

// GPUVertexStride is the byte stride of geometry.Mesh.Interleaved output.
const GPUVertexStride = 6 * 4

func frameUniformSize() uint64 {
	return uint64(unsafe.Sizeof(GPUFrameUniforms{}))
}

func objectUniformSize() uint64 {
	return uint64(unsafe.Sizeof(GPUObjectUniforms{}))
}

// packFrameUniforms fills the per-frame uniform block.
func packFrameUniforms(c camera.Camera, lights []light.Light) *GPUFrameUniforms {
	u := &GPUFrameUniforms{ViewProjection: c.ViewProjectionMatrix()}
	eye := c.Position()
	u.CameraPosition = [4]float32{eye.X(), eye.Y(), eye.Z(), 1}
	for i, l := range lights {
		if i == MaxLights {
			break
		}
		u.Lights[i] = packLight(l)
		u.LightCount++
	}
	return u
}

func packLight(l light.Light) GPULight {
	p := l.Position()
	d := l.Direction()
	c := scaled(l.Color(), l.Intensity())
	g := scaled(l.GroundColor(), l.Intensity())
	return GPULight{
		Position:  [4]float32{p.X(), p.Y(), p.Z(), float32(l.Type())},
		Direction: [4]float32{d.X(), d.Y(), d.Z(), l.Range()},
		Color:     [4]float32{c[0], c[1], c[2], float32(math.Cos(float64(l.Angle())))},
		Ground:    [4]float32{g[0], g[1], g[2], float32(math.Cos(float64(l.Angle() * (1 - l.Penumbra()))))},
	}
}

func scaled(col color.Color, k float32) mgl32.Vec3 {
	f := common.ColorToFloats(col)
	return mgl32.Vec3{f[0], f[1], f[2]}.Mul(k)
}

// packObjectUniforms fills the per-draw uniform block.
func packObjectUniforms(item drawItem) *GPUObjectUniforms {
	u := &GPUObjectUniforms{
		Model:  item.model,
		Normal: item.normal,
		Color:  [4]float32{item.color[0], item.color[1], item.color[2], 0},
	}
	if item.doubleSided {
		u.Color[3] = 1
	}
	return u
}
