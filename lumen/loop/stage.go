package loop

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"lumen/hal"
	"lumen/lumen/anim"
	"lumen/lumen/asset"
	"lumen/lumen/pool"
	"lumen/lumen/proximity"
	"lumen/lumen/quarkgl"
)

var errSceneFull = errors.New("loop: scene full")

// Content populates a loop when it starts.
type Content interface {
	Build(s *Stage) error
}

// Updater is implemented by content that adjusts objects every tick, after
// animations are evaluated and before transforms are committed.
type Updater interface {
	Update(s *Stage, f anim.Frame)
}

// Animator produces an object's transform for a frame.
type Animator interface {
	Animate(f anim.Frame) quarkgl.Transform
}

// Object is a scene entity owned by the loop.
type Object struct {
	Name string
	// Visual is the node drawn for the object. Its transform is set every tick.
	Visual quarkgl.Node
	// Base is the persistent transform; Spin animations accumulate into it.
	Base  quarkgl.Transform
	Anims []anim.Anim

	// Current is the transform drawn this tick. Updaters may adjust it.
	Current quarkgl.Transform

	animator Animator
	node     int
}

// Node returns the scene node id.
func (o *Object) Node() int { return o.node }

func (o *Object) animate(f anim.Frame) {
	if o.animator != nil {
		o.Current = o.animator.Animate(f)
		return
	}
	o.Current = anim.Evaluate(o.Anims, &o.Base, f)
}

// Stage is the view of a loop handed to content.
type Stage struct {
	l *Loop
}

// Name returns the loop name.
func (s *Stage) Name() string { return s.l.opts.Name }

// Rand returns the loop's random source.
func (s *Stage) Rand() *rand.Rand { return s.l.rng }

// Reduced reports reduced interaction, fixed when the loop starts.
func (s *Stage) Reduced() bool { return s.l.reduced }

// Viewport returns the current viewport size in viewport units.
func (s *Stage) Viewport() (w, h int) { return s.l.vw, s.l.vh }

// Pointer returns the raw staged pointer in viewport coordinates.
func (s *Stage) Pointer() (x, y float32, ok bool) { return s.l.in.Pointer() }

// Camera returns the scene camera for adjustment during Build.
func (s *Stage) Camera() *quarkgl.Camera { return &s.l.scene.Camera }

// Logger returns the host logger.
func (s *Stage) Logger() hal.Logger { return s.l.host.Logger() }

// SetRootAnims replaces the whole-scene animations.
func (s *Stage) SetRootAnims(a []anim.Anim) {
	s.l.opts.RootAnims = append([]anim.Anim(nil), a...)
}

// Add registers an object and returns its index.
func (s *Stage) Add(o Object) (int, error) {
	return s.l.add(o, nil)
}

// Object returns the object at index i, or nil.
func (s *Stage) Object(i int) *Object {
	if i < 0 || i >= len(s.l.objects) {
		return nil
	}
	return s.l.objects[i]
}

// Len returns the number of objects.
func (s *Stage) Len() int { return len(s.l.objects) }

// Connect draws proximity lines between the given objects every tick using a
// pool of the given capacity. A loop holds at most one constellation.
func (s *Stage) Connect(objects []int, b proximity.Builder, capacity int, mat quarkgl.Material) error {
	l := s.l
	if l.graph != nil {
		return fmt.Errorf("loop: %s: constellation already connected", l.opts.Name)
	}
	for _, i := range objects {
		if i < 0 || i >= len(l.objects) {
			return fmt.Errorf("loop: %s: connect: object %d out of range", l.opts.Name, i)
		}
	}
	p := pool.New(capacity)
	id := l.scene.AddLines(p, mat)
	if id < 0 {
		return errSceneFull
	}
	l.graph = &graph{
		objects:   append([]int(nil), objects...),
		builder:   b,
		pool:      p,
		positions: make([]quarkgl.Vec3, len(objects)),
	}
	return nil
}

// Load requests an asset. The loop starts the load once Build returns and
// binds the primary or fallback visual at the start of the tick that
// receives the result.
func (s *Stage) Load(ref string, spec asset.Spec) {
	l := s.l
	if _, ok := l.slots[ref]; ok {
		return
	}
	l.slots[ref] = asset.NewSlot(ref, spec)
	l.loads = append(l.loads, ref)
}

// graph is the constellation state: tracked objects and the line pool.
type graph struct {
	objects   []int
	builder   proximity.Builder
	pool      *pool.Pool
	positions []quarkgl.Vec3
}

func (g *graph) update(objects []*Object) {
	for i, idx := range g.objects {
		g.positions[i] = objects[idx].Current.Position
	}
	g.builder.Build(g.positions, g.pool)
}
