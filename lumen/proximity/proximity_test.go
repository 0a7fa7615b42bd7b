package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/lumen/pool"
	"lumen/lumen/quarkgl"
)

func TestTwoClusters(t *testing.T) {
	p := pool.New(50)
	positions := []quarkgl.Vec3{
		quarkgl.V3(0, 0, 0),
		quarkgl.V3(10, 0, 0),
		quarkgl.V3(300, 0, 0),
		quarkgl.V3(305, 0, 0),
	}
	n := Builder{MaxDist: 50, OpacityScale: 0.4}.Build(positions, p)
	require.Equal(t, 2, n)
	assert.Equal(t, 2, p.Visible())

	s0, _ := p.Slot(0)
	assert.Equal(t, positions[0], s0.A)
	assert.Equal(t, positions[1], s0.B)
	assert.InDelta(t, (1-10.0/50)*0.4, s0.Opacity, 1e-6)

	s1, _ := p.Slot(1)
	assert.Equal(t, positions[2], s1.A)
	assert.Equal(t, positions[3], s1.B)
	assert.InDelta(t, (1-5.0/50)*0.4, s1.Opacity, 1e-6)

	for i := 2; i < p.Cap(); i++ {
		s, _ := p.Slot(i)
		assert.False(t, s.Visible, "slot %d", i)
	}
}

func TestOverSubscribedFillsCapacity(t *testing.T) {
	p := pool.New(5)
	positions := make([]quarkgl.Vec3, 10)
	for i := range positions {
		positions[i] = quarkgl.V3(float32(i), 0, 0)
	}
	n := Builder{MaxDist: 100, OpacityScale: 1}.Build(positions, p)
	assert.Equal(t, 5, n)
	assert.Equal(t, p.Cap(), p.Visible())
}

func TestMaxPairsBound(t *testing.T) {
	p := pool.New(10)
	positions := []quarkgl.Vec3{{}, {}, {}, {}}
	n := Builder{MaxDist: 1, OpacityScale: 1, MaxPairs: 2}.Build(positions, p)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, p.Visible())
}

func TestShrinkReleasesStaleSlots(t *testing.T) {
	p := pool.New(10)
	b := Builder{MaxDist: 50, OpacityScale: 1}
	near := []quarkgl.Vec3{{}, quarkgl.V3(1, 0, 0), quarkgl.V3(2, 0, 0)}
	require.Equal(t, 3, b.Build(near, p))

	far := []quarkgl.Vec3{{}, quarkgl.V3(1, 0, 0), quarkgl.V3(200, 0, 0)}
	require.Equal(t, 1, b.Build(far, p))
	assert.Equal(t, 1, p.Visible())
	for i := 1; i < 3; i++ {
		s, _ := p.Slot(i)
		assert.False(t, s.Visible)
		assert.Zero(t, s.Opacity)
	}
}

func TestInvalidThresholdIsEmpty(t *testing.T) {
	p := pool.New(4)
	positions := []quarkgl.Vec3{{}, {}}
	assert.Zero(t, Builder{MaxDist: 0, OpacityScale: 1}.Build(positions, p))
	assert.Zero(t, Builder{MaxDist: -3, OpacityScale: 1}.Build(positions, p))
	assert.Zero(t, p.Visible())
	assert.Zero(t, Builder{MaxDist: 10}.Build(nil, p))
}

func TestThresholdIsExclusive(t *testing.T) {
	p := pool.New(1)
	n := Builder{MaxDist: 10, OpacityScale: 1}.Build([]quarkgl.Vec3{{}, quarkgl.V3(10, 0, 0)}, p)
	assert.Zero(t, n)
}
