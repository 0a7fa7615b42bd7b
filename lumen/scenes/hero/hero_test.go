package hero

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/lumen/anim"
	"lumen/lumen/asset"
	"lumen/lumen/config"
	"lumen/lumen/loop"
	"lumen/lumen/loop/looptest"
	"lumen/lumen/quarkgl"
)

func TestBuildsCoreShellParticlesRings(t *testing.T) {
	h := looptest.NewHost()
	s := New(config.Default())
	l := loop.New(h, loop.NewInput(960, 600, 1, false), &looptest.Surface{}, s, s.Options())
	require.NoError(t, l.Start())
	defer l.Dispose()
	assert.Equal(t, 5, l.Objects())
	require.NotNil(t, l.AssetSlot("img/logo.png"))
}

func TestMissingLogoFallsBackToDisc(t *testing.T) {
	h := looptest.NewHost()
	out := &looptest.Surface{}
	s := New(config.Default())
	l := loop.New(h, loop.NewInput(320, 200, 1, false), out, s, s.Options())
	require.NoError(t, l.Start())
	defer l.Dispose()

	slot := l.AssetSlot("img/logo.png")
	deadline := time.Now().Add(5 * time.Second)
	for slot.Kind() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		h.Step()
	}
	require.Equal(t, asset.KindFallback, slot.Kind())
	assert.Equal(t, 6, l.Objects())
	assert.True(t, h.Log.Contains("fallback"))

	// The disc is drawn last, opaque, in the middle of the layer.
	h.Step()
	img := out.Layers[1].Image()
	w, hh := l.TargetSize()
	off := (hh/2)*img.Stride + (w/2)*4
	assert.Equal(t, uint8(0xFF), img.Pix[off+3])
}

func TestLogoLoadsFromDisk(t *testing.T) {
	png, err := os.ReadFile("testdata/logo.png")
	require.NoError(t, err)
	h := looptest.NewHost()
	h.Source = looptest.Fetch(func(string) ([]byte, error) { return png, nil })
	s := New(config.Default())
	l := loop.New(h, loop.NewInput(320, 200, 1, false), &looptest.Surface{}, s, s.Options())
	require.NoError(t, l.Start())
	defer l.Dispose()

	slot := l.AssetSlot("img/logo.png")
	deadline := time.Now().Add(5 * time.Second)
	for slot.Kind() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		h.Step()
	}
	assert.Equal(t, asset.KindPrimary, slot.Kind())
}

func TestLogoSpecMotion(t *testing.T) {
	spec := LogoSpec(6, quarkgl.RGB(1, 2, 3))
	h := &asset.Handle{Base: quarkgl.Identity(), Anims: spec.Anims}
	tr := h.Animate(anim.Frame{Time: 1})
	assert.InDelta(t, 0.5*0.997495, tr.Position.Y, 1e-4)
	assert.InDelta(t, 0.1*0.479426, tr.Rotation.Y, 1e-4)
	assert.Equal(t, 1, spec.Order)
}
