package window

import "testing"

type testNode string

func (n testNode) Label() string { return string(n) }

func TestHeadlessMountAndRemove(t *testing.T) {
	h := NewHeadless(320, 240)
	if !h.Available() || h.Width() != 320 || h.Height() != 240 {
		t.Fatalf("unexpected headless state: available=%v %dx%d", h.Available(), h.Width(), h.Height())
	}

	a, b := testNode("a"), testNode("b")
	if err := h.AppendChild(a); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	_ = h.AppendChild(a)
	_ = h.AppendChild(b)
	if !h.Contains(a) || !h.Contains(b) {
		t.Fatal("mounted nodes not found")
	}
	h.RemoveChild(a)
	h.RemoveChild(a)
	if h.Contains(a) {
		t.Error("node still mounted after RemoveChild")
	}

	h.Remove()
	if h.Available() {
		t.Error("container available after Remove")
	}
	if h.Contains(b) {
		t.Error("Remove kept a mounted node")
	}
	if err := h.AppendChild(a); err != ErrContainerUnavailable {
		t.Errorf("AppendChild after Remove = %v, want ErrContainerUnavailable", err)
	}
}

func TestPointerListenersDispatchInOrder(t *testing.T) {
	h := NewHeadless(10, 10)
	var got []string
	first := h.AddPointerListener(func(ev PointerEvent) { got = append(got, "first") })
	h.AddPointerListener(func(ev PointerEvent) { got = append(got, "second") })
	if h.PointerListenerCount() != 2 {
		t.Fatalf("listener count = %d, want 2", h.PointerListenerCount())
	}

	h.Dispatch(PointerEvent{Kind: PointerDown, Button: ButtonLeft})
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("dispatch order = %v", got)
	}

	h.RemovePointerListener(first)
	h.RemovePointerListener(first)
	got = nil
	h.Dispatch(PointerEvent{Kind: PointerMove})
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("after removal dispatch = %v, want [second]", got)
	}
}

func TestListenerMayRemoveItself(t *testing.T) {
	h := NewHeadless(10, 10)
	calls := 0
	var id int
	id = h.AddPointerListener(func(ev PointerEvent) {
		calls++
		h.RemovePointerListener(id)
	})
	h.Dispatch(PointerEvent{})
	h.Dispatch(PointerEvent{})
	if calls != 1 || h.PointerListenerCount() != 0 {
		t.Errorf("calls=%d listeners=%d, want 1/0", calls, h.PointerListenerCount())
	}
}

func TestHeadlessResizeCallback(t *testing.T) {
	h := NewHeadless(10, 10)
	var w, ht int
	h.SetResizeCallback(func(width, height int) { w, ht = width, height })
	h.Resize(800, 600)
	if w != 800 || ht != 600 || h.Width() != 800 || h.Height() != 600 {
		t.Errorf("resize delivered %dx%d, container %dx%d", w, ht, h.Width(), h.Height())
	}
}
