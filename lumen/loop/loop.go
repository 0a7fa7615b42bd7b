// Package loop drives a scene: one frame callback per display refresh that
// reads time and pointer, advances animations and the constellation, renders
// into an owned target and submits it.
//
// Everything runs on the goroutine that executes frame callbacks. Pointer and
// viewport changes are staged on the Input context; asset results arrive on
// an inbox drained at the start of a tick. Only the tick mutates visual state.
package loop

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"lumen/hal"
	"lumen/lumen/anim"
	"lumen/lumen/asset"
	"lumen/lumen/follow"
	"lumen/lumen/quarkgl"
)

// Host is the part of the HAL a loop uses.
type Host interface {
	Logger() hal.Logger
	Frames() hal.Frames
	Time() hal.Time
	Assets() hal.Assets
}

// Surface receives rendered layers. A nil target removes the layer.
type Surface interface {
	Submit(layer int, t *quarkgl.RGBATarget)
}

// Options configures a loop.
type Options struct {
	Name  string
	Layer int

	Camera     quarkgl.Camera
	ClearColor quarkgl.Color
	Light      quarkgl.Light
	Mode       quarkgl.RenderMode
	Depth      bool
	// OrthoPixels keeps an orthographic camera in viewport units: OrthoSize
	// tracks half the viewport height.
	OrthoPixels bool

	// MaxNodes bounds scene nodes. Zero means 64.
	MaxNodes int

	// PointerFactor is the fixed per-tick pointer smoothing factor.
	// PointerTau, when set, selects time-scaled smoothing instead.
	PointerFactor float32
	PointerTau    time.Duration

	// RootAnims animate the whole scene (tilt).
	RootAnims []anim.Anim

	// MaxPixelRatio caps the render resolution multiplier. Reduced mode caps it at 1.
	MaxPixelRatio float32

	// Seed fixes the random source. Zero seeds randomly.
	Seed uint64

	AssetTimeout time.Duration
	TextureSize  int
}

func (o *Options) defaults() {
	if o.Name == "" {
		o.Name = "scene"
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = 64
	}
	if o.PointerFactor <= 0 {
		o.PointerFactor = 0.05
	}
	if o.MaxPixelRatio <= 0 {
		o.MaxPixelRatio = 2
	}
}

// Loop is one scene instance.
type Loop struct {
	host    Host
	in      *Input
	out     Surface
	content Content
	opts    Options

	state   State
	reduced bool

	scene    *quarkgl.Scene
	renderer *quarkgl.Renderer
	target   *quarkgl.RGBATarget
	stage    *Stage

	objects []*Object
	graph   *graph
	root    quarkgl.Transform
	pointer follow.Follower2
	rng     *rand.Rand

	loader *asset.Loader
	slots  map[string]*asset.Slot
	loads  []string
	inbox  chan asset.Result

	ctx      context.Context
	cancel   context.CancelFunc
	disposed atomic.Bool

	frameID uint64
	start   time.Duration
	last    time.Duration
	ticks   uint64

	vw, vh int
	ratio  float32
}

// New returns an uninitialized loop. Nothing happens until Start.
func New(h Host, in *Input, out Surface, c Content, opts Options) *Loop {
	opts.defaults()
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	l := &Loop{
		host:    h,
		in:      in,
		out:     out,
		content: c,
		opts:    opts,
		root:    quarkgl.Identity(),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		slots:   make(map[string]*asset.Slot),
	}
	if opts.PointerTau > 0 {
		l.pointer = follow.NewTimed2(opts.PointerTau)
	} else {
		l.pointer = follow.New2(opts.PointerFactor)
	}
	l.stage = &Stage{l: l}
	return l
}

// State returns the lifecycle state.
func (l *Loop) State() State { return l.state }

// Start builds the scene and schedules the first tick. Without a surface,
// frame scheduler or viewport the loop stays inert and Start returns
// ErrNoDisplay. Starting a disposed loop returns ErrDisposed.
func (l *Loop) Start() error {
	switch l.state {
	case Running:
		return nil
	case Disposed:
		return ErrDisposed
	}
	if l.host == nil || l.host.Frames() == nil || l.in == nil || l.out == nil {
		l.logf("inert (%v)", ErrNoDisplay)
		return ErrNoDisplay
	}
	w, h, ratio := l.in.Viewport()
	if w <= 0 || h <= 0 {
		l.logf("inert (%v)", ErrNoDisplay)
		return ErrNoDisplay
	}

	l.reduced = l.in.Reduced()
	l.scene = quarkgl.CreateScene(l.opts.MaxNodes)
	l.scene.Camera = l.opts.Camera
	l.scene.Light = l.opts.Light
	l.renderer = quarkgl.NewRenderer(0, 0, false)
	l.renderer.Mode = l.opts.Mode
	l.renderer.ClearColor = l.opts.ClearColor
	l.renderer.Depth = l.opts.Depth
	l.target = quarkgl.NewRGBATarget(0, 0)
	l.Resize(w, h, ratio)

	if l.content != nil {
		if err := l.content.Build(l.stage); err != nil {
			l.target.Release()
			return fmt.Errorf("loop: %s: build: %w", l.opts.Name, err)
		}
	}

	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.state = Running
	l.start = l.host.Time().Now()
	l.last = l.start
	l.startLoads()
	l.frameID = l.host.Frames().RequestFrame(l.tick)
	l.logf("running %dx%d objects=%d reduced=%v", w, h, len(l.objects), l.reduced)
	return nil
}

// Stop disposes the loop.
func (l *Loop) Stop() { l.Dispose() }

// Dispose cancels the scheduled tick, releases the render target and turns
// late asset results into no-ops. It is idempotent.
func (l *Loop) Dispose() {
	if l.state == Disposed {
		return
	}
	l.disposed.Store(true)
	wasRunning := l.state == Running
	l.state = Disposed
	if l.frameID != 0 {
		l.host.Frames().CancelFrame(l.frameID)
		l.frameID = 0
	}
	if l.cancel != nil {
		l.cancel()
	}
	if l.target != nil {
		l.target.Release()
	}
	if wasRunning {
		l.out.Submit(l.opts.Layer, nil)
		l.logf("disposed after %d ticks", l.ticks)
	}
}

// Resize reconciles the camera and render target with a viewport size. It is
// idempotent: repeating a size changes nothing.
func (l *Loop) Resize(w, h int, ratio float32) {
	if w <= 0 || h <= 0 || l.target == nil || l.state == Disposed {
		return
	}
	pr := l.pixelRatio(ratio)
	if w == l.vw && h == l.vh && pr == l.ratio {
		return
	}
	l.vw, l.vh, l.ratio = w, h, pr
	if l.opts.OrthoPixels {
		l.scene.Camera.OrthoSize = float32(h) / 2
	}
	l.renderer.PixelRatio = pr
	tw := int(float32(w)*pr + 0.5)
	th := int(float32(h)*pr + 0.5)
	l.target.Resize(tw, th)
	if l.renderer.Depth {
		l.renderer.EnableDepth(true, tw, th)
	}
}

func (l *Loop) pixelRatio(ratio float32) float32 {
	if ratio <= 0 {
		ratio = 1
	}
	limit := l.opts.MaxPixelRatio
	if l.reduced {
		limit = 1
	}
	return min(ratio, limit)
}

// tick is the frame callback.
func (l *Loop) tick() {
	l.frameID = 0
	if l.state != Running {
		return
	}

	now := l.host.Time().Now()
	dt := now - l.last
	l.last = now

	l.drainInbox()

	w, h, ratio := l.in.Viewport()
	l.Resize(w, h, ratio)

	nx, ny := l.in.NormalizedPointer()
	px, py := l.pointer.Update(nx, ny, dt)
	f := anim.Frame{
		Time:        float32((now - l.start).Seconds()),
		Delta:       float32(dt.Seconds()),
		PointerX:    px,
		PointerY:    py,
		Interactive: !l.reduced,
	}

	l.scene.Root = anim.Evaluate(l.opts.RootAnims, &l.root, f).Matrix()
	for _, o := range l.objects {
		o.animate(f)
	}
	if u, ok := l.content.(Updater); ok {
		u.Update(l.stage, f)
	}
	for _, o := range l.objects {
		l.scene.UpdateNodeTransform(o.node, o.Current.Matrix())
	}
	if l.graph != nil {
		l.graph.update(l.objects)
	}

	l.renderer.Render(l.target, l.scene)
	l.out.Submit(l.opts.Layer, l.target)
	l.ticks++

	if l.state == Running {
		l.frameID = l.host.Frames().RequestFrame(l.tick)
	}
}

func (l *Loop) add(o Object, a Animator) (int, error) {
	if o.Base.Scale == (quarkgl.Vec3{}) {
		o.Base.Scale = quarkgl.V3(1, 1, 1)
	}
	o.Current = o.Base
	o.Visual.Transform = o.Base.Matrix()
	id := l.scene.AddNode(o.Visual)
	if id < 0 {
		return -1, fmt.Errorf("loop: %s: add %q: %w", l.opts.Name, o.Name, errSceneFull)
	}
	o.node = id
	o.animator = a
	l.objects = append(l.objects, &o)
	return len(l.objects) - 1, nil
}

func (l *Loop) startLoads() {
	if len(l.loads) == 0 {
		return
	}
	l.inbox = make(chan asset.Result, len(l.loads))
	l.loader = asset.NewLoader(l.host.Assets())
	if l.opts.AssetTimeout > 0 {
		l.loader.Timeout = l.opts.AssetTimeout
	}
	if l.opts.TextureSize > 0 {
		l.loader.TextureSize = l.opts.TextureSize
	}
	for _, ref := range l.loads {
		l.loader.Load(l.ctx, ref, l.deliver)
	}
}

// deliver runs on the loader goroutine and only stages the result.
func (l *Loop) deliver(r asset.Result) {
	if l.disposed.Load() {
		return
	}
	select {
	case l.inbox <- r:
	default:
	}
}

func (l *Loop) drainInbox() {
	for {
		select {
		case r := <-l.inbox:
			l.bind(r)
		default:
			return
		}
	}
}

func (l *Loop) bind(r asset.Result) {
	slot, ok := l.slots[r.Ref]
	if !ok {
		return
	}
	h, err := slot.Resolve(r)
	if err != nil {
		l.logf("asset %s: %v", r.Ref, err)
		return
	}
	if r.Err != nil {
		l.logf("asset %s: fallback (%v)", r.Ref, r.Err)
	}
	if _, err := l.add(Object{Name: r.Ref, Visual: h.Node, Base: h.Base, Anims: h.Anims}, h); err != nil {
		l.logf("asset %s: %v", r.Ref, err)
	}
}

// Camera returns the current camera.
func (l *Loop) Camera() quarkgl.Camera {
	if l.scene == nil {
		return l.opts.Camera
	}
	return l.scene.Camera
}

// TargetSize returns the render target size in pixels.
func (l *Loop) TargetSize() (w, h int) { return l.target.Size() }

// PixelRatio returns the effective render pixel ratio.
func (l *Loop) PixelRatio() float32 { return l.ratio }

// VisibleLines returns the number of visible constellation lines.
func (l *Loop) VisibleLines() int {
	if l.graph == nil {
		return 0
	}
	return l.graph.pool.Visible()
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Reduced reports whether the loop started in reduced mode.
func (l *Loop) Reduced() bool { return l.reduced }

// Objects returns the number of scene objects.
func (l *Loop) Objects() int { return len(l.objects) }

// AssetSlot returns the slot for ref, or nil.
func (l *Loop) AssetSlot(ref string) *asset.Slot { return l.slots[ref] }

// Name returns the loop name.
func (l *Loop) Name() string { return l.opts.Name }

func (l *Loop) logf(format string, args ...any) {
	if l.host == nil || l.host.Logger() == nil {
		return
	}
	l.host.Logger().WriteLineString(fmt.Sprintf("loop: %s: ", l.opts.Name) + fmt.Sprintf(format, args...))
}
