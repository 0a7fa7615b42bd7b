// Package follow implements exponential smoothing toward a moving target.
package follow

import (
	"time"

	"github.com/chewxy/math32"
)

// Follower tracks a target value. Each Update moves the current value a
// fraction of the remaining distance toward the target.
//
// A fixed factor assumes a roughly constant tick rate (60 Hz in practice).
// A timed follower derives the factor from the elapsed time instead,
// factor = 1 - exp(-dt/tau), and is frame-rate independent.
type Follower struct {
	factor  float32
	tau     float32
	current float32
	target  float32
}

// New returns a follower with a fixed per-tick factor. Factors outside (0, 1]
// are clamped; a non-positive or NaN factor snaps to the target every tick.
func New(factor float32) *Follower {
	if math32.IsNaN(factor) || factor <= 0 || factor > 1 {
		factor = 1
	}
	return &Follower{factor: factor}
}

// NewTimed returns a follower with time constant tau. A non-positive tau
// snaps to the target every tick.
func NewTimed(tau time.Duration) *Follower {
	f := &Follower{factor: 1}
	if tau > 0 {
		f.tau = float32(tau.Seconds())
	}
	return f
}

// Update sets the target and advances one step. dt is ignored by fixed
// followers. Non-finite targets leave the state unchanged.
func (f *Follower) Update(target float32, dt time.Duration) float32 {
	if !finite(target) {
		return f.current
	}
	f.target = target
	f.current += (f.target - f.current) * f.step(dt)
	return f.current
}

// UpdateBy moves the target by delta and advances one step.
func (f *Follower) UpdateBy(delta float32, dt time.Duration) float32 {
	if !finite(delta) {
		return f.current
	}
	return f.Update(f.target+delta, dt)
}

// Value returns the current smoothed value.
func (f *Follower) Value() float32 { return f.current }

// Target returns the last accepted target.
func (f *Follower) Target() float32 { return f.target }

// Reset places both current and target at v.
func (f *Follower) Reset(v float32) {
	if !finite(v) {
		return
	}
	f.current = v
	f.target = v
}

func (f *Follower) step(dt time.Duration) float32 {
	if f.tau <= 0 {
		return f.factor
	}
	if dt <= 0 {
		return 0
	}
	k := 1 - math32.Exp(-float32(dt.Seconds())/f.tau)
	if k > 1 {
		k = 1
	}
	return k
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// Follower2 pairs two independent followers for X and Y.
type Follower2 struct {
	X, Y *Follower
}

// New2 returns a pair of fixed-factor followers.
func New2(factor float32) Follower2 {
	return Follower2{X: New(factor), Y: New(factor)}
}

// NewTimed2 returns a pair of timed followers.
func NewTimed2(tau time.Duration) Follower2 {
	return Follower2{X: NewTimed(tau), Y: NewTimed(tau)}
}

// Update advances both axes.
func (f Follower2) Update(x, y float32, dt time.Duration) (float32, float32) {
	return f.X.Update(x, dt), f.Y.Update(y, dt)
}

// Value returns both current values.
func (f Follower2) Value() (float32, float32) {
	return f.X.Value(), f.Y.Value()
}
