package renderer

// RendererBackendType identifies the backend implementation used by a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeSoftware selects the CPU rasterizer backed by gg.
	BackendTypeSoftware
)

// String returns the backend name used by the CLI.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// rendererConfig is the option set shared by every backend.
type rendererConfig struct {
	label                string
	presentMode          PresentMode
	msaa                 MSAASampleCount
	forceFallbackAdapter bool
	maxLights            int
}

func newRendererConfig(options ...RendererBuilderOption) *rendererConfig {
	cfg := &rendererConfig{
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		maxLights:   MaxLights,
	}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}
