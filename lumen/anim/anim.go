// Package anim evaluates the closed set of per-object animation variants.
//
// Every variant is plain data. One function, Apply, advances a variant for a
// frame, so per-tick code never calls opaque closures.
package anim

import (
	"github.com/chewxy/math32"

	"lumen/lumen/quarkgl"
)

// Kind tags an animation variant.
type Kind uint8

const (
	None Kind = iota
	// Spin adds Rate to the channel every 60 Hz tick equivalent and persists it.
	Spin
	// Orbit offsets the channel by Rate*Time.
	Orbit
	// Float offsets the channel by Amp*sin(Freq*Time+Phase).
	Float
	// Swim eases between base and base+Amp and back, sine in-out, Duration
	// seconds per leg, starting after Delay seconds.
	Swim
	// Pulse scales uniformly by 1+Amp.X*sin(Freq*Time+Phase).
	Pulse
	// Follow offsets the channel by the smoothed pointer times Amp. Rotation
	// follows turn around the perpendicular axes: X from pointer Y, Y from pointer X.
	Follow
)

var kindNames = [...]string{"none", "spin", "orbit", "float", "swim", "pulse", "follow"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Channel selects the transform component an animation drives.
type Channel uint8

const (
	Position Channel = iota
	Rotation
	Scale
)

// Anim is one animation variant attached to an object.
type Anim struct {
	Kind    Kind
	Channel Channel

	Rate quarkgl.Vec3
	Amp  quarkgl.Vec3
	// Freq is in radians per second.
	Freq  float32
	Phase float32

	// Delay and Duration are in seconds (Swim).
	Delay    float32
	Duration float32
}

// Frame is the per-tick input shared by all animations.
type Frame struct {
	// Time is seconds since the loop started.
	Time float32
	// Delta is seconds since the previous tick.
	Delta float32
	// PointerX and PointerY are the smoothed pointer in [-1,1], Y pointing down.
	PointerX, PointerY float32
	// Interactive is false in reduced mode; Follow is then inert.
	Interactive bool
}

// ticks60 converts a frame delta into 60 Hz tick units.
func (f Frame) ticks60() float32 {
	if f.Delta <= 0 {
		return 0
	}
	return f.Delta * 60
}

// Apply advances a for frame f. Persistent changes (Spin) go into base;
// offsets go into out, which the caller seeds from base each tick.
func Apply(a *Anim, base, out *quarkgl.Transform, f Frame) {
	if a == nil || base == nil || out == nil {
		return
	}
	switch a.Kind {
	case Spin:
		d := a.Rate.Mul(f.ticks60())
		addChannel(base, a.Channel, d)
		addChannel(out, a.Channel, d)
	case Orbit:
		addChannel(out, a.Channel, a.Rate.Mul(f.Time))
	case Float:
		addChannel(out, a.Channel, a.Amp.Mul(math32.Sin(a.Freq*f.Time+a.Phase)))
	case Swim:
		addChannel(out, a.Channel, a.Amp.Mul(yoyo(f.Time-a.Delay, a.Duration)))
	case Pulse:
		s := 1 + a.Amp.X*math32.Sin(a.Freq*f.Time+a.Phase)
		out.Scale = unitScale(out.Scale).Mul(s)
	case Follow:
		if !f.Interactive {
			return
		}
		var d quarkgl.Vec3
		if a.Channel == Rotation {
			d = quarkgl.V3(f.PointerY*a.Amp.X, f.PointerX*a.Amp.Y, 0)
		} else {
			d = quarkgl.V3(f.PointerX*a.Amp.X, f.PointerY*a.Amp.Y, 0)
		}
		addChannel(out, a.Channel, d)
	}
}

// Evaluate applies every animation and returns the transform to draw.
func Evaluate(anims []Anim, base *quarkgl.Transform, f Frame) quarkgl.Transform {
	out := *base
	for i := range anims {
		Apply(&anims[i], base, &out, f)
	}
	return out
}

// yoyo returns the eased progress of a repeating there-and-back tween.
func yoyo(t, dur float32) float32 {
	if t <= 0 || dur <= 0 {
		return 0
	}
	p := math32.Mod(t, 2*dur) / dur
	if p > 1 {
		p = 2 - p
	}
	return SineInOut(p)
}

// SineInOut eases p in [0,1].
func SineInOut(p float32) float32 {
	return -(math32.Cos(math32.Pi*p) - 1) / 2
}

func addChannel(t *quarkgl.Transform, c Channel, d quarkgl.Vec3) {
	switch c {
	case Rotation:
		t.Rotation = t.Rotation.Add(d)
	case Scale:
		t.Scale = unitScale(t.Scale).Add(d)
	default:
		t.Position = t.Position.Add(d)
	}
}

func unitScale(s quarkgl.Vec3) quarkgl.Vec3 {
	if s == (quarkgl.Vec3{}) {
		return quarkgl.V3(1, 1, 1)
	}
	return s
}
