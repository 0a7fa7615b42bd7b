//go:build cgo

package hal

import (
	"errors"

	"lumen/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title         string
	MaxPixelRatio float32
	Host          HostConfig
}

// RunWindow starts a desktop window that displays the framebuffer and forwards pointer input.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Host.Width <= 0 {
		cfg.Host.Width = 960
	}
	if cfg.Host.Height <= 0 {
		cfg.Host.Height = 600
	}
	if cfg.MaxPixelRatio <= 0 {
		cfg.MaxPixelRatio = 2
	}
	if cfg.Title == "" {
		cfg.Title = "Lumen"
	}
	cfg.Host.PixelRatio = viewportRatio(float32(ebiten.Monitor().DeviceScaleFactor()), cfg.MaxPixelRatio)

	h := newHost(cfg.Host)
	step := newApp(h)

	g := &hostGame{h: h, step: step, w: cfg.Host.Width, hh: cfg.Host.Height}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Host.Width, cfg.Host.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	fbImg *ebiten.Image
	pix   []byte
	step  func() error

	w, hh      int
	lastX      int
	lastY      int
	hasPointer bool
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollPointer()
	return g.h.frame(g.step)
}

func (g *hostGame) pollPointer() {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		g.h.coarse = true
		g.emitPointer(x, y, true)
		return
	}
	x, y := ebiten.CursorPosition()
	g.emitPointer(x, y, false)
}

func (g *hostGame) emitPointer(x, y int, touch bool) {
	if g.hasPointer && x == g.lastX && y == g.lastY {
		return
	}
	g.hasPointer = true
	g.lastX, g.lastY = x, y
	g.h.ptr.emit(PointerEvent{X: float32(x), Y: float32(y), Touch: touch})
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.pix = make([]byte, len(fb.buf))
	}

	fb.snapshot(g.pix)
	g.fbImg.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if fb.width > 0 && fb.height > 0 {
		op.GeoM.Scale(float64(sw)/float64(fb.width), float64(sh)/float64(fb.height))
	}
	screen.DrawImage(g.fbImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.hh {
		g.w, g.hh = outsideWidth, outsideHeight
		g.h.resize(outsideWidth, outsideHeight, 0)
	}
	return outsideWidth, outsideHeight
}
