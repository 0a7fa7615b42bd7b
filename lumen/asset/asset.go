// Package asset loads optional textures off the tick thread and resolves them
// into a primary visual or a procedural fallback with the same animation.
package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/h2non/filetype"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"lumen/hal"
	"lumen/lumen/quarkgl"
)

var (
	ErrTimeout         = errors.New("asset: timeout")
	ErrNotImage        = errors.New("asset: not an image")
	ErrAlreadyResolved = errors.New("asset: slot already resolved")
	ErrNoSource        = errors.New("asset: no source")
)

// DefaultTimeout bounds a load when the loader has none configured.
const DefaultTimeout = 3 * time.Second

// DefaultTextureSize is the edge length textures are scaled to.
const DefaultTextureSize = 128

// Result is the outcome of one load. Exactly one of Texture and Err is set.
type Result struct {
	Ref     string
	Texture *quarkgl.Texture
	Err     error
}

// Loader fetches and decodes textures asynchronously.
type Loader struct {
	src     hal.Assets
	Timeout time.Duration
	// TextureSize is the square texture edge in texels.
	TextureSize int
}

// NewLoader returns a loader reading from src.
func NewLoader(src hal.Assets) *Loader {
	return &Loader{src: src, Timeout: DefaultTimeout, TextureSize: DefaultTextureSize}
}

// Load starts loading ref and returns immediately. deliver is called exactly
// once, from another goroutine, with the texture or the failure reason.
func (l *Loader) Load(ctx context.Context, ref string, deliver func(Result)) {
	if deliver == nil {
		return
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan Result, 1)
		go func() {
			done <- l.fetch(ref)
		}()

		select {
		case r := <-done:
			deliver(r)
		case <-ctx.Done():
			err := ctx.Err()
			if errors.Is(err, context.DeadlineExceeded) {
				err = ErrTimeout
			}
			deliver(Result{Ref: ref, Err: fmt.Errorf("asset: %s: %w", ref, err)})
		}
	}()
}

func (l *Loader) fetch(ref string) Result {
	if l.src == nil {
		return Result{Ref: ref, Err: fmt.Errorf("asset: %s: %w", ref, ErrNoSource)}
	}
	data, err := l.src.Fetch(ref)
	if err != nil {
		return Result{Ref: ref, Err: fmt.Errorf("asset: %s: fetch: %w", ref, err)}
	}
	tex, err := Decode(data, l.TextureSize)
	if err != nil {
		return Result{Ref: ref, Err: fmt.Errorf("asset: %s: %w", ref, err)}
	}
	return Result{Ref: ref, Texture: tex}
}

// Decode sniffs, decodes and scales an image into a size x size texture,
// preserving aspect ratio and centering it on transparency.
func Decode(data []byte, size int) (*quarkgl.Texture, error) {
	if size <= 0 {
		size = DefaultTextureSize
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w (%s)", ErrNotImage, kind.Extension)
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}

	w, h := size, size
	if sb.Dx() > sb.Dy() {
		h = max(1, size*sb.Dy()/sb.Dx())
	} else if sb.Dy() > sb.Dx() {
		w = max(1, size*sb.Dx()/sb.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := image.Rect((size-w)/2, (size-h)/2, (size-w)/2+w, (size-h)/2+h)
	xdraw.CatmullRom.Scale(dst, r, src, sb, xdraw.Src, nil)
	return quarkgl.TextureFromImage(dst), nil
}
