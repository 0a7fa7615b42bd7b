package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/hal"
)

func countColor(fb hal.Framebuffer, r, g, b uint8) int {
	buf := fb.Buffer()
	n := 0
	for i := 0; i+3 < len(buf); i += 4 {
		if buf[i] == r && buf[i+1] == g && buf[i+2] == b {
			n++
		}
	}
	return n
}

func TestDrawWritesText(t *testing.T) {
	fb := hal.New().Display().Framebuffer()
	require.NotNil(t, fb)
	fb.ClearRGB(0x10, 0x10, 0x10)

	h := New()
	h.Draw(fb, []string{"team", "lines 2"})

	assert.Positive(t, countColor(fb, 0xFF, 0xC2, 0x22), "glyph pixels drawn")
	assert.Positive(t, countColor(fb, 0, 0, 0), "background box drawn")
	// Far corner stays untouched.
	off := (fb.Height()-1)*fb.StrideBytes() + (fb.Width()-1)*4
	assert.Equal(t, uint8(0x10), fb.Buffer()[off])
}

func TestDrawNoLines(t *testing.T) {
	fb := hal.New().Display().Framebuffer()
	fb.ClearRGB(0x10, 0x10, 0x10)
	New().Draw(fb, nil)
	assert.Zero(t, countColor(fb, 0, 0, 0))
}

func TestSetPixelClips(t *testing.T) {
	fb := hal.New().Display().Framebuffer()
	d := &fbDisplayer{fb: fb}
	assert.NotPanics(t, func() {
		d.SetPixel(-1, 0, New().Color)
		d.SetPixel(int16(fb.Width()), 0, New().Color)
		d.FillRectangle(-10, -10, 5000, 5, New().Color)
	})
}
