package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"

	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/light"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
)

// SoftwareRenderer is a Renderer that rasterizes on the CPU into a gg canvas.
// Triangles are flat shaded, back-face culled and painted far to near.
type SoftwareRenderer interface {
	Renderer

	// Image returns the last rendered frame.
	//
	// Returns:
	//   - image.Image: the frame, or nil after Release
	Image() image.Image

	// Snapshot writes the last rendered frame as PNG.
	//
	// Parameters:
	//   - w: the destination
	//
	// Returns:
	//   - error: ErrReleased after Release, or an encoding error
	Snapshot(w io.Writer) error

	// Frames returns the number of frames rendered.
	Frames() uint64

	// Triangles returns how many triangles the last frame filled.
	Triangles() int
}

// softwareRenderer implements SoftwareRenderer.
type softwareRenderer struct {
	mu        *sync.Mutex
	cfg       *rendererConfig
	node      *surfaceNode
	dc        *gg.Context
	width     int
	height    int
	released  bool
	frames    uint64
	triangles int
}

var _ SoftwareRenderer = &softwareRenderer{}

// rasterTri is one projected, shaded triangle awaiting painting.
type rasterTri struct {
	pts   [3][2]float64
	depth float32
	color color.NRGBA
}

// NewSoftwareRenderer creates a CPU renderer with a canvas of the given size.
//
// Parameters:
//   - width, height: canvas size in pixels, must be positive
//   - options: functional options
//
// Returns:
//   - SoftwareRenderer: the renderer
//   - error: error if the size is invalid
func NewSoftwareRenderer(width, height int, options ...RendererBuilderOption) (SoftwareRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: invalid canvas size %dx%d", width, height)
	}
	cfg := newRendererConfig(options...)
	prefix := cfg.label
	if prefix == "" {
		prefix = "software-surface"
	}
	return &softwareRenderer{
		mu:     &sync.Mutex{},
		cfg:    cfg,
		node:   newSurfaceNode(prefix),
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
	}, nil
}

func (r *softwareRenderer) Node() window.Node {
	return r.node
}

func (r *softwareRenderer) Backend() RendererBackendType {
	return BackendTypeSoftware
}

func (r *softwareRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *softwareRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released || width <= 0 || height <= 0 {
		return
	}
	if err := r.dc.Resize(width, height); err != nil {
		logger.Warningf("%s: resize to %dx%d: %v", r.node.label, width, height, err)
		return
	}
	r.width, r.height = width, height
}

func (r *softwareRenderer) Render(s scene.Scene, c camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}

	r.dc.ClearWithColor(gg.FromColor(opaque(s.Background())))

	items := cullDrawList(buildDrawList(s), c.ViewProjectionMatrix())
	tris := r.project(items, activeLights(s, r.cfg.maxLights), c)
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

	for _, t := range tris {
		r.dc.SetColor(t.color)
		r.dc.MoveTo(t.pts[0][0], t.pts[0][1])
		r.dc.LineTo(t.pts[1][0], t.pts[1][1])
		r.dc.LineTo(t.pts[2][0], t.pts[2][1])
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("renderer: fill triangle: %w", err)
		}
	}
	r.triangles = len(tris)
	r.frames++
	return nil
}

// project transforms, culls and shades every triangle of the draw list.
// Triangles with any vertex behind the eye or entirely outside the view volume are dropped.
func (r *softwareRenderer) project(items []drawItem, lights []light.Light, c camera.Camera) []rasterTri {
	vp := c.ViewProjectionMatrix()
	eye := c.Position()
	w, h := float64(r.width), float64(r.height)

	var out []rasterTri
	for _, item := range items {
		for i := 0; i < item.mesh.TriangleCount(); i++ {
			a, b, cc := item.mesh.Triangle(i)
			world := [3]mgl32.Vec3{
				item.model.Mul4x1(a.Vec4(1)).Vec3(),
				item.model.Mul4x1(b.Vec4(1)).Vec3(),
				item.model.Mul4x1(cc.Vec4(1)).Vec3(),
			}
			n := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			if n.Len() == 0 {
				continue
			}
			n = n.Normalize()
			if n.Dot(eye.Sub(world[0])) <= 0 {
				if !item.doubleSided {
					continue
				}
				n = n.Mul(-1)
			}

			var tri rasterTri
			var ndc [3]mgl32.Vec3
			visible := true
			for k, p := range world {
				clip := vp.Mul4x1(p.Vec4(1))
				if clip.W() <= 1e-6 {
					visible = false
					break
				}
				ndc[k] = clip.Vec3().Mul(1 / clip.W())
				tri.pts[k] = [2]float64{
					(float64(ndc[k].X()) + 1) / 2 * w,
					(1 - float64(ndc[k].Y())) / 2 * h,
				}
			}
			if !visible || outsideView(ndc) {
				continue
			}
			tri.depth = (ndc[0].Z() + ndc[1].Z() + ndc[2].Z()) / 3

			centroid := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
			tri.color = shade(item.color, lights, centroid, n)
			out = append(out, tri)
		}
	}
	return out
}

// outsideView reports whether all three points lie beyond the same clip plane.
func outsideView(ndc [3]mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		below, above := 0, 0
		for _, p := range ndc {
			if p[axis] < -1 {
				below++
			}
			if p[axis] > 1 {
				above++
			}
		}
		if below == 3 || above == 3 {
			return true
		}
	}
	return false
}

// shade sums light.Irradiance over the lights and modulates the base color.
func shade(base [3]float32, lights []light.Light, p, n mgl32.Vec3) color.NRGBA {
	var total mgl32.Vec3
	for _, l := range lights {
		total = total.Add(light.Irradiance(l, p, n))
	}
	ch := func(k int) uint8 {
		return uint8(mgl32.Clamp(base[k]*total[k], 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(0), G: ch(1), B: ch(2), A: 255}
}

// opaque drops alpha so the canvas background matches the GPU clear.
func opaque(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

func (r *softwareRenderer) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	return r.dc.Image()
}

func (r *softwareRenderer) Snapshot(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	return r.dc.EncodePNG(w)
}

func (r *softwareRenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *softwareRenderer) Triangles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.triangles
}

func (r *softwareRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	if err := r.dc.Close(); err != nil {
		logger.Warningf("%s: close canvas: %v", r.node.label, err)
	}
	logger.Debugf("%s: released", r.node.label)
}

func (r *softwareRenderer) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
