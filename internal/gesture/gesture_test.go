package gesture

import "inkboard/internal/viewport"

// fakeHost is an in-memory viewport host for gesture tests.
type fakeHost struct {
	vp      viewport.State
	mounted bool
	sets    int
}

func (h *fakeHost) Viewport() (viewport.State, bool) { return h.vp, h.mounted }

func (h *fakeHost) SetViewport(vp viewport.State) {
	h.vp = vp
	h.sets++
}

// manualScheduler is a FrameScheduler ticked explicitly by the test, so frame
// coalescing can be observed deterministically.
type manualScheduler struct {
	pending  func()
	requests int
	cancels  int
}

func (m *manualScheduler) Request(fn func()) {
	m.pending = fn
	m.requests++
}

func (m *manualScheduler) Cancel() {
	m.pending = nil
	m.cancels++
}

func (m *manualScheduler) Flush() {
	if m.pending == nil {
		return
	}
	fn := m.pending
	m.pending = nil
	fn()
}

// fire runs the pending frame callback, as the timer would.
func (m *manualScheduler) fire() { m.Flush() }
