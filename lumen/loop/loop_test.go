package loop

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/lumen/anim"
	"lumen/lumen/asset"
	"lumen/lumen/loop/looptest"
	"lumen/lumen/proximity"
	"lumen/lumen/quarkgl"
)

type content struct {
	positions []quarkgl.Vec3
	connect   bool
	load      string
	updates   int
}

func (c *content) Build(s *Stage) error {
	ids := make([]int, 0, len(c.positions))
	for _, p := range c.positions {
		i, err := s.Add(Object{
			Name:   "node",
			Visual: quarkgl.Node{Kind: quarkgl.NodeMesh, Mesh: quarkgl.NewDiscMesh(1, 8)},
			Base:   quarkgl.Transform{Position: p},
		})
		if err != nil {
			return err
		}
		ids = append(ids, i)
	}
	if c.connect {
		if err := s.Connect(ids, proximity.Builder{MaxDist: 50, OpacityScale: 0.4}, 50, quarkgl.Material{}); err != nil {
			return err
		}
	}
	if c.load != "" {
		s.Load(c.load, asset.Spec{Size: 6})
	}
	return nil
}

func (c *content) Update(*Stage, anim.Frame) { c.updates++ }

func start(t *testing.T, h *looptest.Host, c Content, opts Options) (*Loop, *Input, *looptest.Surface) {
	t.Helper()
	in := NewInput(960, 600, 1, false)
	out := &looptest.Surface{}
	l := New(h, in, out, c, opts)
	require.NoError(t, l.Start())
	return l, in, out
}

func TestLifecycle(t *testing.T) {
	h := looptest.NewHost()
	c := &content{}
	l, _, out := start(t, h, c, Options{Name: "test"})
	assert.Equal(t, Running, l.State())
	assert.Equal(t, 1, h.Queue.Pending())

	for i := 0; i < 3; i++ {
		h.Step()
	}
	assert.Equal(t, uint64(3), l.Ticks())
	assert.Equal(t, 3, c.updates)
	assert.Equal(t, 3, out.Submits)
	assert.Equal(t, 1, h.Queue.Pending(), "exactly one tick scheduled at a time")

	l.Dispose()
	assert.Equal(t, Disposed, l.State())
	assert.Zero(t, h.Queue.Pending())
	assert.Empty(t, out.Layers, "layer removed on dispose")

	h.Step()
	assert.Equal(t, uint64(3), l.Ticks())
	assert.ErrorIs(t, l.Start(), ErrDisposed)
	assert.True(t, h.Log.Contains("disposed after 3 ticks"))

	l.Dispose()
}

func TestInertWithoutSurface(t *testing.T) {
	h := looptest.NewHost()
	l := New(h, NewInput(960, 600, 1, false), nil, &content{}, Options{})
	assert.ErrorIs(t, l.Start(), ErrNoDisplay)
	assert.Equal(t, Uninitialized, l.State())
	assert.Zero(t, h.Queue.Pending())

	l = New(h, NewInput(0, 0, 1, false), &looptest.Surface{}, &content{}, Options{})
	assert.ErrorIs(t, l.Start(), ErrNoDisplay)
}

func TestBuildErrorPropagates(t *testing.T) {
	h := looptest.NewHost()
	positions := make([]quarkgl.Vec3, 5)
	l := New(h, NewInput(960, 600, 1, false), &looptest.Surface{}, &content{positions: positions}, Options{MaxNodes: 2})
	err := l.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, errSceneFull)
	assert.Zero(t, h.Queue.Pending())
}

func TestResizeIdempotent(t *testing.T) {
	h := looptest.NewHost()
	opts := Options{Camera: quarkgl.Camera{Type: quarkgl.CameraOrtho, Near: 0.1, Far: 100}, OrthoPixels: true}

	once, _, _ := start(t, h, &content{}, opts)
	once.Resize(800, 500, 1.5)

	twice, _, _ := start(t, h, &content{}, opts)
	twice.Resize(800, 500, 1.5)
	twice.Resize(800, 500, 1.5)

	assert.Equal(t, once.Camera(), twice.Camera())
	w1, h1 := once.TargetSize()
	w2, h2 := twice.TargetSize()
	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1200, w2)
	assert.Equal(t, 750, h2)
	assert.Equal(t, float32(250), twice.Camera().OrthoSize)
}

func TestStagedViewportAppliedOnTick(t *testing.T) {
	h := looptest.NewHost()
	l, in, _ := start(t, h, &content{}, Options{})
	in.StageViewport(400, 300, 1)

	w, hh := l.TargetSize()
	assert.Equal(t, 960, w)
	assert.Equal(t, 600, hh)

	h.Step()
	w, hh = l.TargetSize()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, hh)
}

func TestConstellationEndToEnd(t *testing.T) {
	h := looptest.NewHost()
	c := &content{
		positions: []quarkgl.Vec3{
			quarkgl.V3(0, 0, 0),
			quarkgl.V3(10, 0, 0),
			quarkgl.V3(300, 0, 0),
			quarkgl.V3(305, 0, 0),
		},
		connect: true,
	}
	l, _, _ := start(t, h, c, Options{})
	assert.Zero(t, l.VisibleLines())
	h.Step()
	assert.Equal(t, 2, l.VisibleLines())
}

func TestFailingAssetBindsFallbackOnTick(t *testing.T) {
	h := looptest.NewHost()
	l, _, _ := start(t, h, &content{load: "logo.png"}, Options{})
	slot := l.AssetSlot("logo.png")
	require.NotNil(t, slot)

	deadline := time.Now().Add(5 * time.Second)
	for slot.Kind() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		h.Step()
	}
	require.Equal(t, asset.KindFallback, slot.Kind())
	assert.Equal(t, 1, l.Objects())
	assert.True(t, h.Log.Contains("fallback"))

	// The fallback keeps animating like any other object.
	h.Step()
	assert.NotPanics(t, h.Step)
}

func TestLateAssetIgnoredAfterDispose(t *testing.T) {
	h := looptest.NewHost()
	release := make(chan struct{})
	defer close(release)
	h.Source = looptest.Fetch(func(string) ([]byte, error) {
		<-release
		return nil, errors.New("late")
	})
	l, _, _ := start(t, h, &content{load: "logo.png"}, Options{})
	l.Dispose()

	l.deliver(asset.Result{Ref: "logo.png", Err: errors.New("late")})
	assert.Zero(t, len(l.inbox))
	h.Step()
	assert.Zero(t, l.AssetSlot("logo.png").Kind())
	assert.Zero(t, l.Objects())
}

func TestPointerTilt(t *testing.T) {
	tilt := []anim.Anim{{Kind: anim.Follow, Channel: anim.Rotation, Amp: quarkgl.V3(0.15, 0.24, 0)}}

	h := looptest.NewHost()
	l, in, _ := start(t, h, &content{}, Options{RootAnims: tilt, PointerFactor: 1})
	in.StagePointer(960, 0, false)
	h.Step()
	want := quarkgl.Transform{Rotation: quarkgl.V3(-0.15, 0.24, 0), Scale: quarkgl.V3(1, 1, 1)}.Matrix()
	assert.InDeltaSlice(t, want[:], l.scene.Root[:], 1e-5)

	reduced := NewInput(960, 600, 1, true)
	rl := New(h, reduced, &looptest.Surface{}, &content{}, Options{RootAnims: tilt, PointerFactor: 1})
	require.NoError(t, rl.Start())
	reduced.StagePointer(960, 0, true)
	h.Step()
	assert.Equal(t, quarkgl.Mat4Identity(), rl.scene.Root)
}

func TestReducedCapsPixelRatio(t *testing.T) {
	h := looptest.NewHost()
	l := New(h, NewInput(960, 600, 2, true), &looptest.Surface{}, &content{}, Options{})
	require.NoError(t, l.Start())
	assert.True(t, l.Reduced())
	assert.Equal(t, float32(1), l.PixelRatio())

	full := New(h, NewInput(960, 600, 3, false), &looptest.Surface{}, &content{}, Options{})
	require.NoError(t, full.Start())
	assert.Equal(t, float32(2), full.PixelRatio())
}
