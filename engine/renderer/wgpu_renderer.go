package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-scenes/common"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
)

// SurfaceSource is a container that can hand out a platform WebGPU surface descriptor.
type SurfaceSource interface {
	// SurfaceDescriptor returns the descriptor, or nil if the platform window is gone.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// wgpuRenderer implements Renderer on WebGPU.
// Every renderer owns its own instance, adapter and device; nothing is shared between renderers.
type wgpuRenderer struct {
	mu   *sync.Mutex
	cfg  *rendererConfig
	node *surfaceNode

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width         int
	height        int

	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	shaderModule   *wgpu.ShaderModule
	frameLayout    *wgpu.BindGroupLayout
	objectLayout   *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	cullPipeline   *wgpu.RenderPipeline // back faces culled
	doublePipeline *wgpu.RenderPipeline // both faces drawn
	frameBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	meshes         map[*geometry.Mesh]*gpuMesh
	objects        map[uint64]*gpuObject
	released       bool
}

var _ Renderer = &wgpuRenderer{}

// NewWGPURenderer creates a WebGPU renderer drawing into the surface of src.
//
// Parameters:
//   - src: the container providing the surface descriptor
//   - width, height: initial surface size in pixels
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: error if any GPU object could not be created; partial resources are released
func NewWGPURenderer(src SurfaceSource, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	desc := src.SurfaceDescriptor()
	if desc == nil {
		return nil, fmt.Errorf("%w: no surface descriptor", ErrUnsupportedContainer)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: invalid surface size %dx%d", width, height)
	}

	cfg := newRendererConfig(options...)
	prefix := cfg.label
	if prefix == "" {
		prefix = "wgpu-surface"
	}
	r := &wgpuRenderer{
		mu:          &sync.Mutex{},
		cfg:         cfg,
		node:        newSurfaceNode(prefix),
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		meshes:      make(map[*geometry.Mesh]*gpuMesh),
		objects:     make(map[uint64]*gpuObject),
	}
	if cfg.presentMode == PresentModeUncapped {
		r.presentMode = wgpu.PresentModeImmediate
	}

	if err := r.init(desc, width, height); err != nil {
		r.Release()
		return nil, err
	}
	logger.Debugf("%s: created %dx%d", r.node.label, width, height)
	return r, nil
}

func (r *wgpuRenderer) init(desc *wgpu.SurfaceDescriptor, width, height int) error {
	r.surface = r.instance.CreateSurface(desc)

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.cfg.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: r.node.label + " Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	r.device = d
	r.queue = d.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no formats")
	}
	r.surfaceFormat = capabilities.Formats[0]

	if err := r.configureSurface(width, height); err != nil {
		return err
	}
	return r.createPipelines()
}

// configureSurface (re)configures the swapchain and the MSAA and depth targets. Caller must hold the mutex
// or be the constructor.
func (r *wgpuRenderer) configureSurface(width, height int) error {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	r.releaseTargets()

	count := uint32(r.cfg.msaa)
	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         r.node.label + " MSAA Texture",
			Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        r.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		r.msaaTexture = tex
		if r.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth sample count must match the color attachment.
	depth, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         r.node.label + " Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	r.depthTexture = depth
	if r.depthTextureView, err = depth.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	r.width, r.height = width, height
	return nil
}

func (r *wgpuRenderer) createPipelines() error {
	var err error
	r.shaderModule, err = r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "lit.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: litShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}

	uniformEntry := func(size uint64) []wgpu.BindGroupLayoutEntry {
		return []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		}}
	}
	if r.frameLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Frame Bind Group Layout",
		Entries: uniformEntry(frameUniformSize()),
	}); err != nil {
		return fmt.Errorf("create frame layout: %w", err)
	}
	if r.objectLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Bind Group Layout",
		Entries: uniformEntry(objectUniformSize()),
	}); err != nil {
		return fmt.Errorf("create object layout: %w", err)
	}
	if r.pipelineLayout, err = r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Lit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.frameLayout, r.objectLayout},
	}); err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	if r.cullPipeline, err = r.createPipeline("Lit Cull Back", wgpu.CullModeBack); err != nil {
		return err
	}
	if r.doublePipeline, err = r.createPipeline("Lit Double Sided", wgpu.CullModeNone); err != nil {
		return err
	}

	if r.frameBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  frameUniformSize(),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	}); err != nil {
		return fmt.Errorf("create frame buffer: %w", err)
	}
	if r.frameBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: r.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	}); err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}
	return nil
}

func (r *wgpuRenderer) createPipeline(label string, cull wgpu.CullMode) (*wgpu.RenderPipeline, error) {
	p, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: r.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     r.shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: GPUVertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     r.shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cull,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(r.cfg.msaa),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return p, nil
}

func (r *wgpuRenderer) Node() window.Node {
	return r.node
}

func (r *wgpuRenderer) Backend() RendererBackendType {
	return BackendTypeWGPU
}

func (r *wgpuRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *wgpuRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released || width <= 0 || height <= 0 {
		return
	}
	if err := r.configureSurface(width, height); err != nil {
		logger.Errorf("%s: resize to %dx%d: %v", r.node.label, width, height, err)
	}
}

func (r *wgpuRenderer) Render(s scene.Scene, c camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}

	items := buildDrawList(s)
	r.queue.WriteBuffer(r.frameBuffer, 0, common.StructToBytes(packFrameUniforms(c, activeLights(s, r.cfg.maxLights))))

	for _, o := range r.objects {
		o.seen = false
	}
	for _, item := range items {
		obj, err := r.objectResources(item)
		if err != nil {
			return err
		}
		r.queue.WriteBuffer(obj.uniformBuffer, 0, common.StructToBytes(packObjectUniforms(item)))
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	bg := common.ColorToFloats(opaque(s.Background()))
	color := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1.0},
	}
	if r.msaaTextureView != nil {
		color.View = r.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	pass.SetBindGroup(0, r.frameBindGroup, nil)
	for _, item := range cullDrawList(items, c.ViewProjectionMatrix()) {
		mesh := r.meshes[item.mesh]
		obj := r.objects[item.objectID]
		if item.doubleSided {
			pass.SetPipeline(r.doublePipeline)
		} else {
			pass.SetPipeline(r.cullPipeline)
		}
		pass.SetBindGroup(1, obj.bindGroup, nil)
		pass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer commandBuffer.Release()
	r.queue.Submit(commandBuffer)
	r.surface.Present()

	r.pruneObjects()
	return nil
}

// objectResources returns the GPU buffers for an item, creating them on first sight.
func (r *wgpuRenderer) objectResources(item drawItem) (*gpuObject, error) {
	if _, ok := r.meshes[item.mesh]; !ok {
		m, err := newGPUMesh(r.device, r.queue, item.mesh)
		if err != nil {
			return nil, err
		}
		r.meshes[item.mesh] = m
	}
	obj, ok := r.objects[item.objectID]
	if !ok {
		var err error
		obj, err = newGPUObject(r.device, r.objectLayout, fmt.Sprintf("object-%d", item.objectID))
		if err != nil {
			return nil, fmt.Errorf("create object resources: %w", err)
		}
		r.objects[item.objectID] = obj
	}
	obj.seen = true
	return obj, nil
}

// pruneObjects frees resources of objects that left the scene.
// Meshes stay cached until Release since several objects may share one.
func (r *wgpuRenderer) pruneObjects() {
	for id, o := range r.objects {
		if !o.seen {
			o.Release()
			delete(r.objects, id)
		}
	}
}

func (r *wgpuRenderer) releaseTargets() {
	if r.msaaTextureView != nil {
		r.msaaTextureView.Release()
		r.msaaTextureView = nil
	}
	if r.msaaTexture != nil {
		r.msaaTexture.Release()
		r.msaaTexture = nil
	}
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
		r.depthTextureView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
}

func (r *wgpuRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true

	for id, o := range r.objects {
		o.Release()
		delete(r.objects, id)
	}
	for key, m := range r.meshes {
		m.Release()
		delete(r.meshes, key)
	}
	if r.frameBindGroup != nil {
		r.frameBindGroup.Release()
	}
	if r.frameBuffer != nil {
		r.frameBuffer.Release()
	}
	if r.doublePipeline != nil {
		r.doublePipeline.Release()
	}
	if r.cullPipeline != nil {
		r.cullPipeline.Release()
	}
	if r.pipelineLayout != nil {
		r.pipelineLayout.Release()
	}
	if r.objectLayout != nil {
		r.objectLayout.Release()
	}
	if r.frameLayout != nil {
		r.frameLayout.Release()
	}
	if r.shaderModule != nil {
		r.shaderModule.Release()
	}
	r.releaseTargets()
	if r.queue != nil {
		r.queue.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
	logger.Debugf("%s: released", r.node.label)
}

func (r *wgpuRenderer) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
