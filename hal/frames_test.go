package hal

import "testing"

func TestFrameQueueDefersRequestsMadeDuringRun(t *testing.T) {
	q := NewFrameQueue()
	runs := 0
	var tick func()
	tick = func() {
		runs++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	if n := q.Run(); n != 1 {
		t.Fatalf("first run: got %d callbacks, want 1", n)
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}
	q.Run()
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	if n := q.Run(); n != 0 {
		t.Fatalf("got %d callbacks after cancel", n)
	}
	if ran {
		t.Fatal("canceled callback ran")
	}
}

func TestFrameQueueCancelWithinFrame(t *testing.T) {
	q := NewFrameQueue()
	var second uint64
	ran := false
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })
	q.Run()
	if ran {
		t.Fatal("callback canceled earlier in the same frame still ran")
	}
}

func TestFrameQueueIgnoresNil(t *testing.T) {
	q := NewFrameQueue()
	if id := q.RequestFrame(nil); id != 0 {
		t.Fatalf("nil callback id = %d", id)
	}
	q.CancelFrame(0)
	q.CancelFrame(42)
	if q.Pending() != 0 {
		t.Fatal("expected empty queue")
	}
}

func TestHostResizeNotifiesViewport(t *testing.T) {
	h := newHost(HostConfig{Width: 10, Height: 8})
	h.resize(20, 16, 2)
	if h.fb.Width() != 20 || h.fb.Height() != 16 {
		t.Fatalf("framebuffer = %dx%d", h.fb.Width(), h.fb.Height())
	}
	if len(h.fb.Buffer()) != 20*16*4 {
		t.Fatalf("buffer len = %d", len(h.fb.Buffer()))
	}
	select {
	case ev := <-h.vp.Events():
		if ev.Width != 20 || ev.Height != 16 || ev.PixelRatio != 2 {
			t.Fatalf("unexpected event %+v", ev)
		}
	default:
		t.Fatal("expected viewport event")
	}
	if h.Display().PixelRatio() != 2 {
		t.Fatalf("pixel ratio = %v", h.Display().PixelRatio())
	}
}

func TestDirAssetsRejectsEscape(t *testing.T) {
	a := NewDirAssets(t.TempDir())
	if _, err := a.Fetch("../../etc/passwd"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := a.Fetch(""); err == nil {
		t.Fatal("expected error for empty name")
	}
}
