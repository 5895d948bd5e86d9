package window

import "sync"

// Headless is an in-memory Container for offscreen rendering and tests.
type Headless struct {
	*mountState

	sizeMu   *sync.Mutex
	width    int
	height   int
	removed  bool
	onResize func(width, height int)
}

var _ Container = &Headless{}

// NewHeadless creates an available container of the given size.
//
// Parameters:
//   - width, height: client size in pixels
//
// Returns:
//   - *Headless: the container
func NewHeadless(width, height int) *Headless {
	return &Headless{
		mountState: newMountState(),
		sizeMu:     &sync.Mutex{},
		width:      width,
		height:     height,
	}
}

func (h *Headless) Available() bool {
	h.sizeMu.Lock()
	defer h.sizeMu.Unlock()
	return !h.removed
}

func (h *Headless) Width() int {
	h.sizeMu.Lock()
	defer h.sizeMu.Unlock()
	return h.width
}

func (h *Headless) Height() int {
	h.sizeMu.Lock()
	defer h.sizeMu.Unlock()
	return h.height
}

func (h *Headless) AppendChild(n Node) error {
	if !h.Available() {
		return ErrContainerUnavailable
	}
	h.appendChild(n)
	return nil
}

func (h *Headless) RemoveChild(n Node) {
	h.removeChild(n)
}

func (h *Headless) Contains(n Node) bool {
	return h.contains(n)
}

func (h *Headless) AddPointerListener(fn PointerListener) int {
	return h.addListener(fn)
}

func (h *Headless) RemovePointerListener(id int) {
	h.removeListener(id)
}

func (h *Headless) PointerListenerCount() int {
	return h.listenerCount()
}

// Remove simulates the host tearing the container down: it becomes unavailable and
// drops every mounted node.
func (h *Headless) Remove() {
	h.sizeMu.Lock()
	h.removed = true
	h.sizeMu.Unlock()
	h.clearChildren()
}

// Dispatch delivers a pointer event to the registered listeners.
//
// Parameters:
//   - ev: the event
func (h *Headless) Dispatch(ev PointerEvent) {
	h.dispatch(ev)
}

// SetResizeCallback sets the function called by Resize.
//
// Parameters:
//   - callback: function receiving the new width and height
func (h *Headless) SetResizeCallback(callback func(width, height int)) {
	h.sizeMu.Lock()
	defer h.sizeMu.Unlock()
	h.onResize = callback
}

// Resize changes the client size and notifies the resize callback.
//
// Parameters:
//   - width, height: the new size in pixels
func (h *Headless) Resize(width, height int) {
	h.sizeMu.Lock()
	h.width, h.height = width, height
	cb := h.onResize
	h.sizeMu.Unlock()
	if cb != nil {
		cb(width, height)
	}
}
