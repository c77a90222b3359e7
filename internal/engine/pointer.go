package engine

import "sync/atomic"

// PointerState tracks whether the primary pointer is held. It owns its two
// host listeners until Close.
type PointerState struct {
	down atomic.Bool
	offs []func()
}

// TrackPointer registers pointer-down/up listeners on the host input.
func (e *Engine) TrackPointer() *PointerState {
	ps := &PointerState{}
	input := e.host.Input()
	ps.offs = append(ps.offs,
		input.On(PointerDown, func(Pointer) { ps.down.Store(true) }),
		input.On(PointerUp, func(Pointer) { ps.down.Store(false) }),
	)
	return ps
}

// Down reports whether the pointer is currently pressed.
func (ps *PointerState) Down() bool {
	return ps.down.Load()
}

// Close unregisters the listeners. It is safe to call more than once.
func (ps *PointerState) Close() {
	for _, off := range ps.offs {
		if off != nil {
			off()
		}
	}
	ps.offs = nil
}
