package window

import (
	"errors"
	"sort"
	"sync"
)

// ErrContainerUnavailable is returned when a node is mounted into a container that is gone.
var ErrContainerUnavailable = errors.New("window: container unavailable")

// Node is a render surface mounted into a Container.
type Node interface {
	// Label identifies the node in logs.
	Label() string
}

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerButton identifies the button that produced a pointer event.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a press, move or release in container pixel coordinates.
type PointerEvent struct {
	Kind   PointerKind
	Button PointerButton
	X, Y   float32
}

// PointerListener receives pointer events from a Container.
type PointerListener func(ev PointerEvent)

// Container is the host a render surface mounts into: a desktop window or a headless target.
type Container interface {
	// Available reports whether the container can host a surface right now.
	//
	// Returns:
	//   - bool: false once the container was closed or removed
	Available() bool

	// Width returns the current client width in pixels.
	Width() int

	// Height returns the current client height in pixels.
	Height() int

	// AppendChild mounts a node.
	//
	// Parameters:
	//   - n: the node to mount
	//
	// Returns:
	//   - error: ErrContainerUnavailable if the container is gone
	AppendChild(n Node) error

	// RemoveChild unmounts a node. Unknown nodes are ignored.
	//
	// Parameters:
	//   - n: the node to unmount
	RemoveChild(n Node)

	// Contains reports whether the node is currently mounted.
	//
	// Parameters:
	//   - n: the node to look up
	//
	// Returns:
	//   - bool: true if mounted
	Contains(n Node) bool

	// AddPointerListener registers a pointer listener.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - int: id for RemovePointerListener
	AddPointerListener(fn PointerListener) int

	// RemovePointerListener unregisters a listener. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the id returned by AddPointerListener
	RemovePointerListener(id int)

	// PointerListenerCount returns the number of registered pointer listeners.
	PointerListenerCount() int
}

// mountState is the child and listener bookkeeping shared by Container implementations.
type mountState struct {
	mu        *sync.Mutex
	children  []Node
	listeners map[int]PointerListener
	nextID    int
}

func newMountState() *mountState {
	return &mountState{
		mu:        &sync.Mutex{},
		listeners: make(map[int]PointerListener),
	}
}

func (m *mountState) appendChild(n Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.children {
		if c == n {
			return
		}
	}
	m.children = append(m.children, n)
}

func (m *mountState) removeChild(n Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.children {
		if c == n {
			m.children = append(m.children[:i], m.children[i+1:]...)
			return
		}
	}
}

func (m *mountState) contains(n Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.children {
		if c == n {
			return true
		}
	}
	return false
}

func (m *mountState) clearChildren() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.children = nil
}

func (m *mountState) addListener(fn PointerListener) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.listeners[m.nextID] = fn
	return m.nextID
}

func (m *mountState) removeListener(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, id)
}

func (m *mountState) listenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// dispatch calls every listener in registration order. Listeners run without the lock held
// so they may remove themselves.
func (m *mountState) dispatch(ev PointerEvent) {
	m.mu.Lock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]PointerListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.listeners[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
