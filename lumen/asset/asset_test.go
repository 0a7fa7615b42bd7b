package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/hal"
	"lumen/lumen/anim"
	"lumen/lumen/quarkgl"
)

type fetchFunc func(name string) ([]byte, error)

func (f fetchFunc) Fetch(name string) ([]byte, error) { return f(name) }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 0xFF, G: 0xC2, B: 0x22, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func await(t *testing.T, l *Loader, ref string) Result {
	t.Helper()
	ch := make(chan Result, 1)
	l.Load(context.Background(), ref, func(r Result) { ch <- r })
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("load never delivered")
		return Result{}
	}
}

var logoSpec = Spec{
	Size:  6,
	Color: quarkgl.RGB(0xFF, 0xC2, 0x22),
	Anims: []anim.Anim{{Kind: anim.Float, Channel: anim.Position, Amp: quarkgl.V3(0, 0.5, 0), Freq: 1.5}},
	Order: 1,
}

func TestAlwaysFailingLoadBindsFallback(t *testing.T) {
	l := NewLoader(fetchFunc(func(string) ([]byte, error) { return nil, hal.ErrAssetNotFound }))
	r := await(t, l, "logo.png")
	require.ErrorIs(t, r.Err, hal.ErrAssetNotFound)

	s := NewSlot("logo.png", logoSpec)
	h, err := s.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, KindFallback, h.Kind)
	assert.Equal(t, KindFallback, s.Kind())
	assert.Nil(t, h.Node.Material.Texture)
	assert.ErrorIs(t, s.Err(), hal.ErrAssetNotFound)

	tr := h.Animate(anim.Frame{Time: 3.14159265 / 3})
	assert.InDelta(t, 0.5, tr.Position.Y, 1e-4)

	_, err = s.Resolve(Result{Texture: &quarkgl.Texture{W: 1, H: 1, Pix: make([]quarkgl.Color, 1)}})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Equal(t, KindFallback, s.Kind())
}

func TestPrimaryAndFallbackShareMotion(t *testing.T) {
	l := NewLoader(fetchFunc(func(string) ([]byte, error) { return pngBytes(t, 8, 4), nil }))
	r := await(t, l, "logo.png")
	require.NoError(t, r.Err)

	p, err := NewSlot("logo.png", logoSpec).Resolve(r)
	require.NoError(t, err)
	require.Equal(t, KindPrimary, p.Kind)
	require.NotNil(t, p.Node.Material.Texture)
	assert.True(t, p.Node.Material.NoDepth)
	assert.Equal(t, 1, p.Node.Order)

	f := Fallback(logoSpec)
	for _, tm := range []float32{0, 0.7, 2.5} {
		assert.Equal(t, p.Animate(anim.Frame{Time: tm}), f.Animate(anim.Frame{Time: tm}))
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewLoader(fetchFunc(func(string) ([]byte, error) {
		<-release
		return nil, errors.New("late")
	}))
	l.Timeout = 20 * time.Millisecond
	r := await(t, l, "slow.png")
	assert.ErrorIs(t, r.Err, ErrTimeout)
	assert.Nil(t, r.Texture)
}

func TestCanceledContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewLoader(fetchFunc(func(string) ([]byte, error) {
		<-release
		return nil, nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan Result, 1)
	l.Load(ctx, "x.png", func(r Result) { ch <- r })
	cancel()
	r := <-ch
	assert.ErrorIs(t, r.Err, context.Canceled)
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode([]byte("hello, not an image"), 16)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeScalesPreservingAspect(t *testing.T) {
	tex, err := Decode(pngBytes(t, 40, 20), 16)
	require.NoError(t, err)
	require.Equal(t, 16, tex.W)
	require.Equal(t, 16, tex.H)
	// 16x8 image centered vertically: rows 0..3 transparent, middle opaque.
	assert.Zero(t, tex.Pix[0].A)
	mid := tex.Pix[8*16+8]
	assert.InDelta(t, 0xFF, int(mid.A), 1)
	assert.InDelta(t, 0xFF, int(mid.R), 1)
}

func TestNoSource(t *testing.T) {
	r := await(t, &Loader{}, "logo.png")
	assert.ErrorIs(t, r.Err, ErrNoSource)
}
