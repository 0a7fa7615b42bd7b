package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	presented uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 4
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presented++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xFF
	}
}

func (f *hostFramebuffer) resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.width && height == f.height {
		return
	}
	f.width = width
	f.height = height
	f.stride = width * 4
	if cap(f.buf) >= f.stride*height {
		f.buf = f.buf[:f.stride*height]
		clear(f.buf)
		return
	}
	f.buf = make([]byte, f.stride*height)
}

func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// FramebufferImage views an RGBA8888 framebuffer as an image without copying.
// It returns nil for other formats.
func FramebufferImage(fb Framebuffer) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGBA8888 {
		return nil
	}
	w, h := fb.Width(), fb.Height()
	buf := fb.Buffer()
	if w <= 0 || h <= 0 || len(buf) < fb.StrideBytes()*h {
		return nil
	}
	return &image.RGBA{Pix: buf, Stride: fb.StrideBytes(), Rect: image.Rect(0, 0, w, h)}
}
