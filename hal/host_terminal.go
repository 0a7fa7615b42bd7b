package hal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal runner. Each cell shows two vertically stacked pixels.
type TerminalConfig struct {
	Hz   int
	Host HostConfig
}

// RunTerminal renders the framebuffer into the terminal with half-block cells and
// forwards mouse motion as pointer input. It returns when ctx is done or on q/ESC/Ctrl-C.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	cols, rows := screen.Size()
	cfg.Host.Width = cols
	cfg.Host.Height = rows * 2
	cfg.Host.PixelRatio = 1
	h := newHost(cfg.Host)
	step := newApp(h)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				h.ptr.emit(PointerEvent{X: float32(x), Y: float32(y*2) + 0.5})
			case *tcell.EventResize:
				w, hh := ev.Size()
				h.resize(w, hh*2, 1)
				screen.Sync()
			}

		case <-t.C:
			if err := h.frame(step); err != nil {
				return err
			}
			drawHalfBlocks(screen, h.fb)
			screen.Show()
		}
	}
}

func drawHalfBlocks(screen tcell.Screen, fb *hostFramebuffer) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	cols, rows := screen.Size()
	for row := 0; row < rows; row++ {
		y := row * 2
		if y >= fb.height {
			break
		}
		for x := 0; x < cols && x < fb.width; x++ {
			tr, tg, tb := pixelRGB(fb.buf, fb.stride, x, y)
			br, bg, bb := pixelRGB(fb.buf, fb.stride, x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			screen.SetContent(x, row, '▀', nil, style)
		}
	}
}
