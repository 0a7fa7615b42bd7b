package backdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/lumen/config"
	"lumen/lumen/loop"
	"lumen/lumen/loop/looptest"
)

func TestBuildCounts(t *testing.T) {
	cases := []struct {
		name             string
		coarse           bool
		particles, stars int
	}{
		{"full", false, 2000, 100},
		{"reduced", true, 500, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := looptest.NewHost()
			s := New(config.Default())
			l := loop.New(h, loop.NewInput(960, 600, 1, tc.coarse), &looptest.Surface{}, s, s.Options())
			require.NoError(t, l.Start())
			defer l.Dispose()

			p, st := s.Counts()
			assert.Equal(t, tc.particles, p)
			assert.Equal(t, tc.stars, st)
			assert.Equal(t, 2, l.Objects())
		})
	}
}

func TestRendersOpaqueLayer(t *testing.T) {
	h := looptest.NewHost()
	out := &looptest.Surface{}
	s := New(config.Default())
	l := loop.New(h, loop.NewInput(320, 200, 1, false), out, s, s.Options())
	require.NoError(t, l.Start())
	defer l.Dispose()

	h.StepN(2)
	target := out.Layers[0]
	require.NotNil(t, target)
	img := target.Image()
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		assert.Equal(t, uint8(0xFF), img.Pix[i+3])
		if img.Pix[i] > 0x40 {
			lit++
		}
	}
	assert.Positive(t, lit, "particles drawn over the clear color")
}

func TestOpacity(t *testing.T) {
	assert.Equal(t, uint8(204), opacity(0.8))
	assert.Equal(t, uint8(255), opacity(2))
	assert.Equal(t, uint8(0), opacity(-1))
}
