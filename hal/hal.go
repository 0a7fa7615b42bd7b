package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrAssetNotFound is returned by Assets when a named resource does not exist.
var ErrAssetNotFound = errors.New("asset not found")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, alpha-premultiplied, R first.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
	// PixelRatio is the number of device pixels per viewport unit.
	PixelRatio() float32
}

// PointerEvent is a pointer position in viewport coordinates.
type PointerEvent struct {
	X, Y  float32
	Touch bool
}

// Pointer provides pointer/touch motion (best-effort on each platform).
type Pointer interface {
	Events() <-chan PointerEvent
}

// ViewportEvent reports a new viewport size.
type ViewportEvent struct {
	Width      int
	Height     int
	PixelRatio float32
}

// Viewport reports the current viewport size and its changes.
type Viewport interface {
	Size() (w, h int)
	Events() <-chan ViewportEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Pointer() Pointer
	Viewport() Viewport
	// Coarse reports a touch-first or otherwise coarse pointer.
	Coarse() bool
}

// Time provides a monotonic clock measured from host start.
type Time interface {
	Now() time.Duration
}

// Frames runs callbacks before the next display refresh.
//
// A callback requested while a frame is running is deferred to the next frame.
type Frames interface {
	RequestFrame(fn func()) uint64
	CancelFrame(id uint64)
}

// Assets fetches named resources.
type Assets interface {
	Fetch(name string) ([]byte, error)
}

// HAL provides the only contact point between the scenes and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
	Frames() Frames
	Assets() Assets
}
