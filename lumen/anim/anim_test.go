package anim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"lumen/lumen/quarkgl"
)

func TestSpinAccumulatesPerTick(t *testing.T) {
	base := quarkgl.Identity()
	a := []Anim{{Kind: Spin, Channel: Rotation, Rate: quarkgl.V3(0.002, 0.005, 0)}}
	var out quarkgl.Transform
	for i := 0; i < 60; i++ {
		out = Evaluate(a, &base, Frame{Delta: 1.0 / 60})
	}
	assert.InDelta(t, 0.3, base.Rotation.Y, 1e-4)
	assert.InDelta(t, 0.12, base.Rotation.X, 1e-4)
	assert.Equal(t, base, out)
}

func TestOrbitIsAbsolute(t *testing.T) {
	base := quarkgl.Identity()
	a := []Anim{{Kind: Orbit, Channel: Rotation, Rate: quarkgl.V3(0.02, 0.05, 0)}}
	Evaluate(a, &base, Frame{Time: 1})
	out := Evaluate(a, &base, Frame{Time: 10})
	assert.InDelta(t, 0.5, out.Rotation.Y, 1e-6)
	assert.InDelta(t, 0.2, out.Rotation.X, 1e-6)
	assert.Zero(t, base.Rotation.Y)
}

func TestFloatAndPulse(t *testing.T) {
	base := quarkgl.Identity()
	a := []Anim{
		{Kind: Float, Channel: Position, Amp: quarkgl.V3(0, 0.5, 0), Freq: 1.5},
		{Kind: Pulse, Amp: quarkgl.V3(0.03, 0, 0), Freq: 1.5},
	}
	tm := math32.Pi / 3 // sin(1.5t) == 1
	out := Evaluate(a, &base, Frame{Time: tm})
	assert.InDelta(t, 0.5, out.Position.Y, 1e-5)
	assert.InDelta(t, 1.03, out.Scale.X, 1e-5)
	assert.InDelta(t, 1.03, out.Scale.Z, 1e-5)
}

func TestSwimYoyo(t *testing.T) {
	base := quarkgl.Identity()
	a := []Anim{{Kind: Swim, Amp: quarkgl.V3(10, -15, 0), Duration: 4, Delay: 0.6}}
	assert.Zero(t, Evaluate(a, &base, Frame{Time: 0.5}).Position.X)
	peak := Evaluate(a, &base, Frame{Time: 4.6})
	assert.InDelta(t, 10, peak.Position.X, 1e-4)
	assert.InDelta(t, -15, peak.Position.Y, 1e-4)
	back := Evaluate(a, &base, Frame{Time: 8.6})
	assert.InDelta(t, 0, back.Position.X, 1e-4)
	mid := Evaluate(a, &base, Frame{Time: 2.6})
	assert.InDelta(t, 5, mid.Position.X, 1e-4)
}

func TestFollowRespectsInteractive(t *testing.T) {
	base := quarkgl.Identity()
	a := []Anim{{Kind: Follow, Channel: Rotation, Amp: quarkgl.V3(0.15, 0.24, 0)}}
	off := Evaluate(a, &base, Frame{PointerX: 1, PointerY: 1})
	assert.Zero(t, off.Rotation)

	on := Evaluate(a, &base, Frame{PointerX: 1, PointerY: -1, Interactive: true})
	assert.InDelta(t, -0.15, on.Rotation.X, 1e-6)
	assert.InDelta(t, 0.24, on.Rotation.Y, 1e-6)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "swim", Swim.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
