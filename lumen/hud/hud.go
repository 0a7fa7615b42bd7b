// Package hud draws diagnostic text lines onto a host framebuffer.
package hud

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"lumen/hal"
)

// HUD writes small text in the top-left corner.
type HUD struct {
	font       tinyfont.Fonter
	lineHeight int16
	baseline   int16
	pad        int16

	Color      color.RGBA
	Background color.RGBA
}

// New returns a HUD using the TomThumb font.
func New() *HUD {
	return &HUD{
		font:       &tinyfont.TomThumb,
		lineHeight: 7,
		baseline:   5,
		pad:        2,
		Color:      color.RGBA{R: 0xFF, G: 0xC2, B: 0x22, A: 0xFF},
		Background: color.RGBA{A: 0xFF},
	}
}

// Draw writes lines onto fb. Only RGBA8888 framebuffers are supported.
func (h *HUD) Draw(fb hal.Framebuffer, lines []string) {
	if fb == nil || fb.Format() != hal.PixelFormatRGBA8888 || len(lines) == 0 {
		return
	}
	d := &fbDisplayer{fb: fb}

	var width uint32
	for _, s := range lines {
		if _, w := tinyfont.LineWidth(h.font, s); w > width {
			width = w
		}
	}
	d.FillRectangle(0, 0, int16(width)+2*h.pad, int16(len(lines))*h.lineHeight+2*h.pad, h.Background)

	y := h.pad + h.baseline
	for _, s := range lines {
		tinyfont.WriteLine(d, h.font, h.pad, y, s, h.Color)
		y += h.lineHeight
	}
}

// fbDisplayer adapts a framebuffer to drivers.Displayer.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if buf == nil || ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*4
	if off < 0 || off+3 >= len(buf) {
		return
	}
	buf[off] = c.R
	buf[off+1] = c.G
	buf[off+2] = c.B
	buf[off+3] = c.A
}

func (d *fbDisplayer) Display() error { return nil }

func (d *fbDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	w := d.fb.Width()
	h := d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.SetPixel(int16(px), int16(py), c)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
