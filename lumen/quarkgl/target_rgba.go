package quarkgl

import "image"

// RGBATarget renders into an alpha-premultiplied *image.RGBA.
//
// The backing image is owned by the target; callers may composite it with image/draw.
type RGBATarget struct {
	img *image.RGBA
}

// NewRGBATarget allocates a w*h target. Non-positive sizes produce an empty target.
func NewRGBATarget(w, h int) *RGBATarget {
	t := &RGBATarget{}
	t.Resize(w, h)
	return t
}

// Resize reallocates the backing image when the size changes and reports whether it did.
func (t *RGBATarget) Resize(w, h int) bool {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if t.img != nil && t.img.Rect.Dx() == w && t.img.Rect.Dy() == h {
		return false
	}
	t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return true
}

// Image returns the backing image, or nil after Release.
func (t *RGBATarget) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return t.img
}

// Release drops the backing image.
func (t *RGBATarget) Release() {
	if t == nil {
		return
	}
	t.img = nil
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.img == nil {
		return
	}
	p := c.Premultiplied()
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = p.R
		pix[i+1] = p.G
		pix[i+2] = p.B
		pix[i+3] = p.A
	}
}

// At returns the stored premultiplied color.
func (t *RGBATarget) At(x, y int) Color {
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}
	}
	pix := t.img.Pix
	return Color{R: pix[off], G: pix[off+1], B: pix[off+2], A: pix[off+3]}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := c.Premultiplied()
	pix := t.img.Pix
	pix[off] = p.R
	pix[off+1] = p.G
	pix[off+2] = p.B
	pix[off+3] = p.A
}

func (t *RGBATarget) BlendPixel(x, y int, c Color, mode BlendMode) {
	if c.A == 0 {
		return
	}
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := c.Premultiplied()
	pix := t.img.Pix
	switch mode {
	case BlendAdditive:
		pix[off] = addSat(pix[off], p.R)
		pix[off+1] = addSat(pix[off+1], p.G)
		pix[off+2] = addSat(pix[off+2], p.B)
		pix[off+3] = addSat(pix[off+3], p.A)
	default:
		inv := uint32(255 - p.A)
		pix[off] = p.R + uint8(uint32(pix[off])*inv/255)
		pix[off+1] = p.G + uint8(uint32(pix[off+1])*inv/255)
		pix[off+2] = p.B + uint8(uint32(pix[off+2])*inv/255)
		pix[off+3] = p.A + uint8(uint32(pix[off+3])*inv/255)
	}
}

func (t *RGBATarget) offset(x, y int) (int, bool) {
	if t == nil || t.img == nil {
		return 0, false
	}
	if x < 0 || y < 0 || x >= t.img.Rect.Dx() || y >= t.img.Rect.Dy() {
		return 0, false
	}
	off := y*t.img.Stride + x*4
	if off < 0 || off+3 >= len(t.img.Pix) {
		return 0, false
	}
	return off, true
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xFF {
		return 0xFF
	}
	return uint8(s)
}
