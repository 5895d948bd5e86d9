package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
)

// gpuMesh holds the vertex and index buffers uploaded for one geometry.Mesh.
type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

// gpuObject holds the per-draw uniform buffer and bind group for one scene object.
type gpuObject struct {
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	seen          bool
}

func newGPUMesh(device *wgpu.Device, queue *wgpu.Queue, mesh *geometry.Mesh) (*gpuMesh, error) {
	vertexData := common.SliceToBytes(mesh.Interleaved())
	indexData := common.SliceToBytes(mesh.Indices)

	vb, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: mesh.Name + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer for %q: %w", mesh.Name, err)
	}
	ib, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: mesh.Name + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("create index buffer for %q: %w", mesh.Name, err)
	}
	queue.WriteBuffer(vb, 0, vertexData)
	queue.WriteBuffer(ib, 0, indexData)
	return &gpuMesh{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(len(mesh.Indices))}, nil
}

func newGPUObject(device *wgpu.Device, layout *wgpu.BindGroupLayout, label string) (*gpuObject, error) {
	ub, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  objectUniformSize(),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ub, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		ub.Release()
		return nil, err
	}
	return &gpuObject{uniformBuffer: ub, bindGroup: bg}, nil
}

// Release frees the mesh buffers. Safe to call more than once.
func (m *gpuMesh) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// Release frees the uniform buffer and bind group. Safe to call more than once.
func (o *gpuObject) Release() {
	if o.bindGroup != nil {
		o.bindGroup.Release()
		o.bindGroup = nil
	}
	if o.uniformBuffer != nil {
		o.uniformBuffer.Release()
		o.uniformBuffer = nil
	}
}
