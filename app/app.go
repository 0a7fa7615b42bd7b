// Package app wires the scenes to a host: one loop per scene, input fanned
// out to each loop, layers composited into the host framebuffer.
package app

import (
	"fmt"

	"lumen/hal"
	"lumen/lumen/config"
	"lumen/lumen/loop"
	"lumen/lumen/scenes/backdrop"
	"lumen/lumen/scenes/hero"
	"lumen/lumen/scenes/team"
)

// Scene names accepted by Config.Scene.
const (
	SceneAll      = "all"
	SceneBackdrop = "backdrop"
	SceneHero     = "hero"
	SceneTeam     = "team"
)

type Config struct {
	// Scene selects one scene or all of them. Empty means all.
	Scene    string
	Settings config.Config
	// HUD draws scene diagnostics in the top-left corner.
	HUD bool
	// Seed fixes every scene's random source. Zero seeds randomly.
	Seed uint64
}

type scene interface {
	loop.Content
	Options() loop.Options
}

type entry struct {
	name string
	loop *loop.Loop
	in   *loop.Input
}

// App owns the scene loops of one host.
type App struct {
	h    hal.HAL
	cfg  Config
	err  error
	comp *compositor

	entries []*entry
	started bool
}

// New runs every scene with the default settings.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{Settings: config.Default()})
}

// NewWithConfig returns the per-frame step for the host runners.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	return NewApp(h, cfg).Step
}

// NewApp builds the loops for cfg. Loops start on the first Step.
func NewApp(h hal.HAL, cfg Config) *App {
	a := &App{h: h, cfg: cfg}
	scenes, err := selectScenes(cfg)
	if err != nil {
		a.err = err
		return a
	}
	mode, err := cfg.Settings.ReducedMode()
	if err != nil {
		a.err = err
		return a
	}

	a.comp = newCompositor(h, cfg.HUD)
	a.comp.lines = a.hudLines

	w, hh := 0, 0
	var ratio float32 = 1
	coarse := false
	if d := h.Display(); d != nil {
		ratio = d.PixelRatio()
	}
	if in := h.Input(); in != nil {
		if vp := in.Viewport(); vp != nil {
			w, hh = vp.Size()
		}
		coarse = in.Coarse()
	}

	for i, s := range scenes {
		opts := s.Options()
		if cfg.Seed != 0 {
			opts.Seed = cfg.Seed + uint64(i)
		}
		in := loop.NewInput(w, hh, ratio, coarse)
		in.Mode = mode
		e := &entry{name: opts.Name, in: in}
		e.loop = loop.New(&guardedHost{HAL: h, app: a, entry: e}, in, a.comp, s, opts)
		a.entries = append(a.entries, e)
	}
	return a
}

func selectScenes(cfg Config) ([]scene, error) {
	bg := backdrop.New(cfg.Settings)
	hr := hero.New(cfg.Settings)
	tm := team.New(cfg.Settings)
	switch cfg.Scene {
	case "", SceneAll:
		return []scene{bg, hr, tm}, nil
	case SceneBackdrop:
		return []scene{bg}, nil
	case SceneHero:
		return []scene{hr}, nil
	case SceneTeam:
		return []scene{tm}, nil
	default:
		return nil, fmt.Errorf("app: unknown scene %q", cfg.Scene)
	}
}

// Step stages host input on every loop, starts the loops on first use and
// schedules composition after this frame's ticks.
func (a *App) Step() error {
	if a.err != nil {
		return a.err
	}
	a.drainInput()
	if !a.started {
		a.started = true
		for _, e := range a.entries {
			// A loop that cannot start stays inert; the others still run.
			_ = e.loop.Start()
		}
	}
	a.comp.schedule()
	return nil
}

func (a *App) drainInput() {
	in := a.h.Input()
	if in == nil {
		return
	}
	coarse := in.Coarse()
	if p := in.Pointer(); p != nil {
	pointer:
		for {
			select {
			case ev := <-p.Events():
				for _, e := range a.entries {
					e.in.StagePointer(ev.X, ev.Y, ev.Touch || coarse)
				}
			default:
				break pointer
			}
		}
	}
	if vp := in.Viewport(); vp != nil {
	viewport:
		for {
			select {
			case ev := <-vp.Events():
				for _, e := range a.entries {
					e.in.StageViewport(ev.Width, ev.Height, ev.PixelRatio)
				}
			default:
				break viewport
			}
		}
	}
}

// Close disposes every loop.
func (a *App) Close() {
	for _, e := range a.entries {
		e.loop.Dispose()
	}
}

// Loop returns the loop running the named scene, or nil.
func (a *App) Loop(name string) *loop.Loop {
	for _, e := range a.entries {
		if e.name == name {
			return e.loop
		}
	}
	return nil
}

func (a *App) hudLines() []string {
	lines := make([]string, 0, len(a.entries)+2)
	for _, e := range a.entries {
		l := e.loop
		s := fmt.Sprintf("%s %s %d obj", e.name, l.State(), l.Objects())
		if n := l.VisibleLines(); n > 0 {
			s += fmt.Sprintf(" %d lines", n)
		}
		if l.Reduced() {
			s += " reduced"
		}
		lines = append(lines, s)
	}
	return lines
}
