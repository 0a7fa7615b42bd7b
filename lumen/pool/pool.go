// Package pool holds a fixed number of reusable line-segment slots.
//
// The pool never grows: callers assign endpoints to the first k slots each
// tick and hide the rest with ReleaseRest. A Pool satisfies quarkgl.LineBatch
// so a single scene node draws all visible slots.
package pool

import "lumen/lumen/quarkgl"

// Slot is one reusable line segment.
type Slot struct {
	A, B    quarkgl.Vec3
	Visible bool
	// Opacity is in [0,1]. Hidden slots have opacity 0.
	Opacity float32
}

// Pool is a fixed-capacity sequence of slots.
type Pool struct {
	slots []Slot
}

// New allocates a pool. Negative capacities are treated as zero.
func New(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{slots: make([]Slot, capacity)}
}

// Cap returns the fixed capacity.
func (p *Pool) Cap() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Acquire marks slot i visible and returns it for assignment, or nil when i is out of range.
func (p *Pool) Acquire(i int) *Slot {
	if p == nil || i < 0 || i >= len(p.slots) {
		return nil
	}
	s := &p.slots[i]
	s.Visible = true
	return s
}

// ReleaseRest hides every slot at or beyond from.
func (p *Pool) ReleaseRest(from int) {
	if p == nil {
		return
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < len(p.slots); i++ {
		p.slots[i].Visible = false
		p.slots[i].Opacity = 0
	}
}

// Visible counts visible slots.
func (p *Pool) Visible() int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.slots {
		if p.slots[i].Visible {
			n++
		}
	}
	return n
}

// Slot returns a copy of slot i.
func (p *Pool) Slot(i int) (Slot, bool) {
	if p == nil || i < 0 || i >= len(p.slots) {
		return Slot{}, false
	}
	return p.slots[i], true
}

// Len implements quarkgl.LineBatch.
func (p *Pool) Len() int { return p.Cap() }

// Segment implements quarkgl.LineBatch. Hidden slots are reported as not ok.
func (p *Pool) Segment(i int) (a, b quarkgl.Vec3, alpha float32, ok bool) {
	s, ok := p.Slot(i)
	if !ok || !s.Visible {
		return quarkgl.Vec3{}, quarkgl.Vec3{}, 0, false
	}
	return s.A, s.B, s.Opacity, true
}
