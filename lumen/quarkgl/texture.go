package quarkgl

import (
	"image"
	"image/color"
)

// Texture is a straight-alpha RGBA texel grid sampled with nearest filtering.
type Texture struct {
	W, H int
	Pix  []Color
}

// TextureFromImage copies an image into a texture.
func TextureFromImage(img image.Image) *Texture {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	t := &Texture{W: w, H: h, Pix: make([]Color, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.Pix[y*w+x] = Color{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return t
}

// Sample returns the texel at (u, v) in [0,1]², v pointing down. Coordinates are clamped.
func (t *Texture) Sample(u, v Scalar) Color {
	if t == nil || t.W <= 0 || t.H <= 0 || len(t.Pix) < t.W*t.H {
		return Color{}
	}
	x := int(Clamp01(u) * Scalar(t.W-1))
	y := int(Clamp01(v) * Scalar(t.H-1))
	return t.Pix[y*t.W+x]
}
