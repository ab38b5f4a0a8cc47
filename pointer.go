package texticles

// absentCoord is the sentinel pointer coordinate used while no pointer is
// over the surface.
const (
	absentCoord     = -9999.0
	presenceCeiling = -9990.0
	// pointerVelocityScale halves the raw frame-to-frame pointer delta.
	pointerVelocityScale = 0.5
)

// PointerState is the committed pointer position, the previous one, and the
// velocity derived from them.
type PointerState struct {
	Pos  Vec2
	Prev Vec2
	Vel  Vec2
}

// AbsentPointer returns the state used while no pointer is present.
func AbsentPointer() PointerState {
	absent := Vec2{absentCoord, absentCoord}
	return PointerState{Pos: absent, Prev: absent}
}

// Present reports whether the pointer is over the surface.
func (s PointerState) Present() bool {
	return s.Pos.X > presenceCeiling
}

// pointerEvent is one raw pointer update. leave marks the pointer exiting.
type pointerEvent struct {
	pos   Vec2
	leave bool
}

// PointerTracker coalesces raw pointer events so at most one is applied per
// tick, regardless of how fast they arrive.
type PointerTracker struct {
	state   PointerState
	pending Slot[pointerEvent]
}

// NewPointerTracker returns a tracker with an absent pointer.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{state: AbsentPointer()}
}

// Move records a raw pointer position, replacing any pending one.
func (t *PointerTracker) Move(x, y float64) {
	t.pending.Put(pointerEvent{pos: Vec2{x, y}})
}

// Leave records that the pointer left the surface.
func (t *PointerTracker) Leave() {
	t.pending.Put(pointerEvent{leave: true})
}

// Apply commits the pending event, if any, and returns the current state.
func (t *PointerTracker) Apply() PointerState {
	ev, ok := t.pending.Take()
	if !ok {
		return t.state
	}
	if ev.leave {
		t.state.Pos = Vec2{absentCoord, absentCoord}
		t.state.Vel = Vec2{}
		return t.state
	}
	t.state.Prev = t.state.Pos
	t.state.Pos = ev.pos
	if t.state.Prev.X > presenceCeiling {
		t.state.Vel = t.state.Pos.Sub(t.state.Prev).Scale(pointerVelocityScale)
	}
	return t.state
}

// State returns the committed state without applying pending events.
func (t *PointerTracker) State() PointerState {
	return t.state
}
