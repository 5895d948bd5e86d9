package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction.
type RendererBuilderOption func(*rendererConfig)

// WithLabel sets the prefix of the surface node label.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithLabel(label string) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.label = label
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Ignored by the software backend.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count. The default is MSAA4x.
// Ignored by the software backend.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.msaa = count
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(c *rendererConfig) {
		c.forceFallbackAdapter = force
	}
}

// WithMaxLights caps how many scene lights are shaded. Values outside 1..MaxLights are ignored.
//
// Parameters:
//   - n: the light budget
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMaxLights(n int) RendererBuilderOption {
	return func(c *rendererConfig) {
		if n >= 1 && n <= MaxLights {
			c.maxLights = n
		}
	}
}
