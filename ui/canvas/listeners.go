package canvas

import (
	"sync"

	"inkboard/internal/gesture"
)

// Listener registries backing the gesture.Surface implementation. Removed
// slots are nilled in place so removal is idempotent and safe while a
// dispatch is iterating.

type wheelListeners struct {
	mu    sync.Mutex
	funcs []func(gesture.WheelEvent)
}

func (l *wheelListeners) add(fn func(gesture.WheelEvent)) func() {
	l.mu.Lock()
	l.funcs = append(l.funcs, fn)
	idx := len(l.funcs) - 1
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.funcs[idx] = nil
		l.mu.Unlock()
	}
}

func (l *wheelListeners) dispatchWheel(ev gesture.WheelEvent) {
	l.mu.Lock()
	funcs := append(([]func(gesture.WheelEvent))(nil), l.funcs...)
	l.mu.Unlock()
	for _, fn := range funcs {
		if fn != nil {
			fn(ev)
		}
	}
}

type pointerListeners struct {
	mu    sync.Mutex
	funcs []func(gesture.PointerEvent)
}

func (l *pointerListeners) add(fn func(gesture.PointerEvent)) func() {
	l.mu.Lock()
	l.funcs = append(l.funcs, fn)
	idx := len(l.funcs) - 1
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.funcs[idx] = nil
		l.mu.Unlock()
	}
}

func (l *pointerListeners) dispatchPointer(ev gesture.PointerEvent) {
	l.mu.Lock()
	funcs := append(([]func(gesture.PointerEvent))(nil), l.funcs...)
	l.mu.Unlock()
	for _, fn := range funcs {
		if fn != nil {
			fn(ev)
		}
	}
}

type touchListeners struct {
	mu    sync.Mutex
	funcs []func([]gesture.TouchPoint)
}

func (l *touchListeners) add(fn func([]gesture.TouchPoint)) func() {
	l.mu.Lock()
	l.funcs = append(l.funcs, fn)
	idx := len(l.funcs) - 1
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.funcs[idx] = nil
		l.mu.Unlock()
	}
}

func (l *touchListeners) dispatchTouch(points []gesture.TouchPoint) {
	l.mu.Lock()
	funcs := append(([]func([]gesture.TouchPoint))(nil), l.funcs...)
	l.mu.Unlock()
	for _, fn := range funcs {
		if fn != nil {
			fn(points)
		}
	}
}
