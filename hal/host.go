package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig describes the host environment shared by every runner.
type HostConfig struct {
	Width      int
	Height     int
	PixelRatio float32
	Coarse     bool
	AssetDir   string
	LogWriter  io.Writer
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	ptr    *hostPointer
	vp     *hostViewport
	t      *hostTime
	frames *FrameQueue
	assets Assets
	coarse bool
	ratio  float32
}

// New returns a host HAL implementation with a 320x200 viewport.
func New() HAL {
	return newHost(HostConfig{})
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 200
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	var assets Assets = nullAssets{}
	if cfg.AssetDir != "" {
		assets = NewDirAssets(cfg.AssetDir)
	}
	return &hostHAL{
		logger: &hostLogger{w: cfg.LogWriter},
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		ptr:    newHostPointer(),
		vp:     newHostViewport(cfg.Width, cfg.Height),
		t:      newHostTime(),
		frames: NewFrameQueue(),
		assets: assets,
		coarse: cfg.Coarse,
		ratio:  cfg.PixelRatio,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input     { return hostInput{h: h} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Frames() Frames   { return h.frames }
func (h *hostHAL) Assets() Assets   { return h.assets }

// resize reallocates the framebuffer and notifies viewport listeners.
func (h *hostHAL) resize(w, hh int, ratio float32) {
	if w <= 0 || hh <= 0 {
		return
	}
	if ratio <= 0 {
		ratio = h.ratio
	}
	h.ratio = ratio
	h.fb.resize(w, hh)
	h.vp.set(w, hh, ratio)
}

// frame runs one display refresh: the app step, then every scheduled frame callback.
func (h *hostHAL) frame(step func() error) error {
	if step != nil {
		if err := step(); err != nil {
			return err
		}
	}
	h.frames.Run()
	return nil
}

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }
func (d hostDisplay) PixelRatio() float32      { return d.h.ratio }

type hostInput struct {
	h *hostHAL
}

func (in hostInput) Pointer() Pointer   { return in.h.ptr }
func (in hostInput) Viewport() Viewport { return in.h.vp }
func (in hostInput) Coarse() bool       { return in.h.coarse }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

type hostViewport struct {
	mu sync.Mutex
	w  int
	h  int
	ch chan ViewportEvent
}

func newHostViewport(w, h int) *hostViewport {
	return &hostViewport{w: w, h: h, ch: make(chan ViewportEvent, 8)}
}

func (v *hostViewport) Size() (w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h
}

func (v *hostViewport) Events() <-chan ViewportEvent { return v.ch }

func (v *hostViewport) set(w, h int, ratio float32) {
	v.mu.Lock()
	v.w, v.h = w, h
	v.mu.Unlock()
	select {
	case v.ch <- ViewportEvent{Width: w, Height: h, PixelRatio: ratio}:
	default:
	}
}
