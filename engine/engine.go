package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scenes/engine/camera"
	"github.com/Carmen-Shannon/oxy-scenes/engine/frame"
	"github.com/Carmen-Shannon/oxy-scenes/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scenes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scenes/engine/scene"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
	"github.com/Carmen-Shannon/oxy-scenes/log"
)

var logger = log.New("engine")

var (
	// ErrLifecycleReused is returned by Initialize on a lifecycle that was already torn down.
	ErrLifecycleReused = errors.New("engine: lifecycle was torn down and cannot be reused")

	// ErrAlreadyInitialized is returned by Initialize on an active lifecycle.
	ErrAlreadyInitialized = errors.New("engine: lifecycle already initialized")

	// ErrAlreadyPopulated is returned by the second Populate or PopulateAsync call.
	ErrAlreadyPopulated = errors.New("engine: scene already populated")

	// ErrNotActive is returned by operations that need an initialized lifecycle.
	ErrNotActive = errors.New("engine: lifecycle is not active")

	// ErrLoopRunning is returned by StartLoop while a loop handle is active.
	ErrLoopRunning = errors.New("engine: frame loop already running")
)

// Loader pool sizing for lifecycles without WithLoaderPool.
const (
	sharedLoaderWorkers   = 4
	sharedLoaderQueueSize = 64
	sharedLoaderIdle      = time.Minute
)

var (
	sharedPoolOnce sync.Once
	sharedPool     worker.DynamicWorkerPool
)

// SharedLoaderPool returns the process-wide worker pool used for asset loads by
// lifecycles created without WithLoaderPool. It is created on first use and never stopped.
//
// Returns:
//   - worker.DynamicWorkerPool: the shared pool
func SharedLoaderPool() worker.DynamicWorkerPool {
	sharedPoolOnce.Do(func() {
		sharedPool = worker.NewDynamicWorkerPool(sharedLoaderWorkers, sharedLoaderQueueSize, sharedLoaderIdle)
	})
	return sharedPool
}

// Handle identifies the frame loop started by StartLoop. The zero Handle is never active.
type Handle uint64

var handleCount atomic.Uint64

// PopulateFunc adds the initial objects and lights to a scene.
type PopulateFunc func(s scene.Scene)

// LoadFunc loads external assets and returns the population step to apply once loaded.
// It should return early with ctx.Err() when ctx is cancelled.
type LoadFunc func(ctx context.Context) (func(scene.Scene), error)

type lifecycleState int

const (
	stateInactive lifecycleState = iota
	stateActive
	stateSpent
)

// lifecycle implements the Lifecycle interface.
type lifecycle struct {
	mu *sync.Mutex

	name    string
	factory renderer.Factory
	source  frame.Source
	fps     float64

	pool worker.DynamicWorkerPool

	profilingEnabled bool
	profiler         *profiler.Profiler

	state     lifecycleState
	container window.Container
	scene     scene.Scene
	camera    camera.Camera
	renderer  renderer.Renderer
	orbit     camera.OrbitController
	listeners []int

	ctx       context.Context
	cancel    context.CancelFunc
	populated bool
	pending   chan func(scene.Scene)

	handle   Handle
	loopDone chan struct{}
}

// Lifecycle owns one render surface from mount to unmount: it creates the scene, camera and
// renderer inside a container, populates the scene once, drives a per-frame loop, and tears
// everything down exactly once.
//
// A lifecycle moves from inactive to active on Initialize and to spent on Teardown.
// A spent lifecycle is never reused; create a new one to mount again.
type Lifecycle interface {
	// Initialize creates the scene, camera and renderer sized to the container and mounts
	// the renderer's surface node. A nil or unavailable container is a silent no-op so the
	// host can retry once the container exists.
	//
	// Parameters:
	//   - container: the mount container
	//   - cfg: background and camera configuration; zero fields use defaults
	//
	// Returns:
	//   - error: ErrLifecycleReused, ErrAlreadyInitialized, or a wrapped renderer error
	Initialize(container window.Container, cfg Config) error

	// Populate runs fn against the scene once. Before the loop starts it runs synchronously;
	// afterwards it is applied on the loop goroutine before the next frame.
	//
	// Parameters:
	//   - fn: the population step
	//
	// Returns:
	//   - error: ErrNotActive or ErrAlreadyPopulated
	Populate(fn PopulateFunc) error

	// PopulateAsync runs load on the loader pool and applies its result on the loop
	// goroutine, but only while the lifecycle is still active. Load errors are logged and
	// never retried. It counts as the single populate call.
	//
	// Parameters:
	//   - load: the asynchronous load step
	//
	// Returns:
	//   - error: ErrNotActive or ErrAlreadyPopulated
	PopulateAsync(load LoadFunc) error

	// StartLoop starts the frame loop. Each frame applies any pending population, advances
	// the orbit controller, spins objects, calls onFrame, then renders.
	//
	// Parameters:
	//   - onFrame: per-frame callback, may be nil
	//
	// Returns:
	//   - Handle: the loop handle to pass to Teardown
	//   - error: ErrNotActive or ErrLoopRunning
	StartLoop(onFrame func()) (Handle, error)

	// Teardown stops the loop, removes pointer listeners, unmounts the surface node if it is
	// still attached and releases the renderer. Calls on an inactive or spent lifecycle and
	// calls with another lifecycle's handle are no-ops. A zero handle tears down a lifecycle
	// whose loop was never started. Must not be called from onFrame.
	//
	// Parameters:
	//   - h: the handle returned by StartLoop, or zero
	Teardown(h Handle)

	// EnableOrbit attaches a damped orbit controller to the camera, orbiting its current
	// target from its current position, and routes pointer drags to it. The listeners are
	// removed at Teardown. A second call returns the existing controller.
	//
	// Parameters:
	//   - options: orbit controller options applied after the camera-derived defaults
	//
	// Returns:
	//   - camera.OrbitController: the controller
	//   - error: ErrNotActive
	EnableOrbit(options ...camera.OrbitControllerBuilderOption) (camera.OrbitController, error)

	// Active reports whether the lifecycle is initialized and not torn down.
	Active() bool

	// ActiveHandles returns 1 while a loop handle is active, otherwise 0.
	ActiveHandles() int

	// Scene returns the scene graph, or nil before Initialize.
	Scene() scene.Scene

	// Camera returns the camera, or nil before Initialize.
	Camera() camera.Camera

	// Renderer returns the renderer, or nil before Initialize.
	Renderer() renderer.Renderer
}

var _ Lifecycle = &lifecycle{}

// NewLifecycle creates an inactive Lifecycle with the provided options.
// Without WithRendererFactory the software renderer is used.
//
// Parameters:
//   - options: functional options for lifecycle configuration
//
// Returns:
//   - Lifecycle: the newly created lifecycle
func NewLifecycle(options ...LifecycleBuilderOption) Lifecycle {
	l := &lifecycle{
		mu:      &sync.Mutex{},
		name:    "scene",
		factory: renderer.NewFactory(renderer.BackendTypeSoftware),
		fps:     frame.DefaultFPS,
		state:   stateInactive,
		pending: make(chan func(scene.Scene), 1),
	}

	for _, opt := range options {
		opt(l)
	}

	if l.profilingEnabled {
		l.profiler = profiler.NewProfiler(l.name)
	}
	return l
}

func (l *lifecycle) Initialize(container window.Container, cfg Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case stateSpent:
		return ErrLifecycleReused
	case stateActive:
		return ErrAlreadyInitialized
	}
	if container == nil || !container.Available() {
		logger.Debugf("%s: container not available, skipping initialize", l.name)
		return nil
	}

	cfg = cfg.withDefaults()

	r, err := l.factory(container)
	if err != nil {
		return fmt.Errorf("engine: create renderer: %w", err)
	}
	if err := container.AppendChild(r.Node()); err != nil {
		r.Release()
		return fmt.Errorf("engine: mount surface: %w", err)
	}

	aspect := float32(1)
	if w, h := container.Width(), container.Height(); w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	pos, target := cfg.Camera.InitialPosition, cfg.Camera.Target

	l.container = container
	l.renderer = r
	l.scene = scene.NewScene(l.name, scene.WithBackground(cfg.Background))
	l.camera = camera.NewCamera(
		camera.WithFov(cfg.Camera.Fov),
		camera.WithAspect(aspect),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithPosition(pos[0], pos[1], pos[2]),
		camera.WithTarget(target[0], target[1], target[2]),
	)
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.state = stateActive

	if rc, ok := container.(resizeNotifier); ok {
		rc.SetResizeCallback(l.handleResize)
	}

	w, h := r.Size()
	logger.Infof("%s: initialized %s renderer %dx%d", l.name, r.Backend(), w, h)
	return nil
}

// resizeNotifier is implemented by containers that report client size changes.
type resizeNotifier interface {
	SetResizeCallback(callback func(width, height int))
}

// scrollNotifier is implemented by containers that report scroll wheel input.
type scrollNotifier interface {
	SetScrollCallback(callback func(delta float32))
}

// handleResize resizes the renderer and camera aspect. Called from the container's thread.
func (l *lifecycle) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.mu.Lock()
	r, c, active := l.renderer, l.camera, l.state == stateActive
	l.mu.Unlock()
	if !active {
		return
	}
	r.Resize(width, height)
	c.SetAspect(float32(width) / float32(height))
}

func (l *lifecycle) Populate(fn PopulateFunc) error {
	l.mu.Lock()
	if l.state != stateActive {
		l.mu.Unlock()
		return ErrNotActive
	}
	if l.populated {
		l.mu.Unlock()
		return ErrAlreadyPopulated
	}
	l.populated = true
	running := l.handle != 0
	s := l.scene
	l.mu.Unlock()

	if running {
		l.pending <- fn
		return nil
	}
	fn(s)
	return nil
}

func (l *lifecycle) PopulateAsync(load LoadFunc) error {
	l.mu.Lock()
	if l.state != stateActive {
		l.mu.Unlock()
		return ErrNotActive
	}
	if l.populated {
		l.mu.Unlock()
		return ErrAlreadyPopulated
	}
	l.populated = true
	if l.pool == nil {
		l.pool = SharedLoaderPool()
	}
	ctx, pool, pending, name := l.ctx, l.pool, l.pending, l.name
	l.mu.Unlock()

	pool.SubmitTask(worker.Task{
		ID:      int(handleCount.Add(1)),
		Payload: name,
		Do: func() (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("%s: asset load panicked: %v", name, r)
					err = fmt.Errorf("engine: asset load panicked: %v", r)
				}
			}()

			populate, err := load(ctx)
			if ctx.Err() != nil {
				logger.Debugf("%s: discarding asset load that finished after teardown", name)
				return nil, ctx.Err()
			}
			if err != nil {
				logger.Errorf("%s: asset load failed: %v", name, err)
				return nil, err
			}
			if populate == nil {
				return nil, nil
			}
			select {
			case pending <- populate:
			case <-ctx.Done():
			}
			return nil, nil
		},
	})
	return nil
}

func (l *lifecycle) StartLoop(onFrame func()) (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != stateActive {
		return 0, ErrNotActive
	}
	if l.handle != 0 {
		return 0, ErrLoopRunning
	}
	if l.source == nil {
		l.source = frame.NewTickerSource(l.fps)
	}

	l.handle = Handle(handleCount.Add(1))
	l.loopDone = make(chan struct{})
	go l.run(l.ctx, l.source, onFrame, l.loopDone)

	logger.Debugf("%s: frame loop %d started", l.name, l.handle)
	return l.handle, nil
}

// run is the frame loop goroutine. It exits on teardown, when the source stops, or after
// a frame panics.
func (l *lifecycle) run(ctx context.Context, src frame.Source, onFrame func(), done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-src.Done():
			return
		case <-src.Frames():
			ok := l.safeFrame(ctx, onFrame)
			src.FrameDone()
			if !ok {
				return
			}
		}
	}
}

// safeFrame renders one frame and reports false if it panicked.
func (l *lifecycle) safeFrame(ctx context.Context, onFrame func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("%s: frame loop recovered from panic: %v", l.name, r)
			ok = false
		}
	}()
	l.frame(ctx, onFrame)
	return true
}

// frame runs one tick on the loop goroutine.
func (l *lifecycle) frame(ctx context.Context, onFrame func()) {
	l.mu.Lock()
	s, c, r, orbit, prof := l.scene, l.camera, l.renderer, l.orbit, l.profiler
	l.mu.Unlock()

	select {
	case populate := <-l.pending:
		if ctx.Err() == nil {
			populate(s)
			logger.Debugf("%s: scene populated with %d objects", l.name, s.Len())
		}
	default:
	}

	if orbit != nil {
		orbit.Update()
	}
	for _, obj := range s.Objects() {
		obj.Spin()
	}
	c.Update()

	if onFrame != nil {
		onFrame()
	}

	if err := r.Render(s, c); err != nil {
		logger.Errorf("%s: render failed: %v", l.name, err)
	}

	if prof != nil {
		prof.Tick()
	}
}

func (l *lifecycle) Teardown(h Handle) {
	l.mu.Lock()
	if l.state == stateActive && h != 0 && h != l.handle {
		l.mu.Unlock()
		logger.Debugf("%s: ignoring teardown with stale handle %d", l.name, h)
		return
	}
	wasActive := l.state == stateActive
	l.state = stateSpent
	cancel, src, loopDone := l.cancel, l.source, l.loopDone
	container, r, listeners := l.container, l.renderer, l.listeners
	l.handle = 0
	l.loopDone = nil
	l.listeners = nil
	l.mu.Unlock()

	if !wasActive {
		return
	}

	cancel()
	if loopDone != nil {
		src.Stop()
		<-loopDone
	} else if src != nil {
		src.Stop()
	}

	for _, id := range listeners {
		container.RemovePointerListener(id)
	}
	if rc, ok := container.(resizeNotifier); ok {
		rc.SetResizeCallback(nil)
	}
	if sc, ok := container.(scrollNotifier); ok && len(listeners) > 0 {
		sc.SetScrollCallback(nil)
	}

	if node := r.Node(); container.Contains(node) {
		container.RemoveChild(node)
	}
	r.Release()

	logger.Infof("%s: torn down", l.name)
}

func (l *lifecycle) EnableOrbit(options ...camera.OrbitControllerBuilderOption) (camera.OrbitController, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != stateActive {
		return nil, ErrNotActive
	}
	if l.orbit != nil {
		return l.orbit, nil
	}

	pos, target := l.camera.Position(), l.camera.Target()
	opts := append([]camera.OrbitControllerBuilderOption{
		camera.WithOrbitTarget(target[0], target[1], target[2]),
		camera.WithOrbitPosition(pos[0], pos[1], pos[2]),
	}, options...)
	oc := camera.NewOrbitController(opts...)
	l.camera.SetController(oc)
	l.orbit = oc

	l.listeners = append(l.listeners, l.container.AddPointerListener(orbitListener(oc)))
	if sc, ok := l.container.(scrollNotifier); ok {
		sc.SetScrollCallback(oc.Zoom)
	}
	return oc, nil
}

// orbitListener routes left-button drags to an orbit controller.
func orbitListener(oc camera.OrbitController) window.PointerListener {
	return func(ev window.PointerEvent) {
		switch ev.Kind {
		case window.PointerDown:
			if ev.Button == window.ButtonLeft {
				oc.BeginDrag(ev.X, ev.Y)
			}
		case window.PointerMove:
			oc.Drag(ev.X, ev.Y)
		case window.PointerUp:
			if ev.Button == window.ButtonLeft {
				oc.EndDrag()
			}
		}
	}
}

func (l *lifecycle) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateActive
}

func (l *lifecycle) ActiveHandles() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle != 0 {
		return 1
	}
	return 0
}

func (l *lifecycle) Scene() scene.Scene {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scene
}

func (l *lifecycle) Camera() camera.Camera {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.camera
}

func (l *lifecycle) Renderer() renderer.Renderer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.renderer
}
