// Package looptest provides a manual-clock host and a recording surface for
// driving loops in tests.
package looptest

import (
	"strings"
	"sync"
	"time"

	"lumen/hal"
	"lumen/lumen/quarkgl"
)

// Log records logged lines.
type Log struct {
	mu    sync.Mutex
	lines []string
}

func (l *Log) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *Log) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// Contains reports whether any line contains sub.
func (l *Log) Contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Fetch adapts a function to hal.Assets.
type Fetch func(name string) ([]byte, error)

func (f Fetch) Fetch(name string) ([]byte, error) { return f(name) }

// Host is a loop host whose clock only moves on Step.
type Host struct {
	Log    *Log
	Queue  *hal.FrameQueue
	Source hal.Assets
	now    time.Duration
}

// NewHost returns a host whose asset source finds nothing.
func NewHost() *Host {
	return &Host{
		Log:    &Log{},
		Queue:  hal.NewFrameQueue(),
		Source: Fetch(func(string) ([]byte, error) { return nil, hal.ErrAssetNotFound }),
	}
}

func (h *Host) Logger() hal.Logger { return h.Log }
func (h *Host) Frames() hal.Frames { return h.Queue }
func (h *Host) Time() hal.Time     { return h }
func (h *Host) Assets() hal.Assets { return h.Source }
func (h *Host) Now() time.Duration { return h.now }

// Step advances the clock one 60 Hz tick and runs the frame queue.
func (h *Host) Step() {
	h.now += time.Second / 60
	h.Queue.Run()
}

// StepN calls Step n times.
func (h *Host) StepN(n int) {
	for i := 0; i < n; i++ {
		h.Step()
	}
}

// Surface records submitted layers.
type Surface struct {
	Submits int
	Layers  map[int]*quarkgl.RGBATarget
}

func (s *Surface) Submit(layer int, t *quarkgl.RGBATarget) {
	s.Submits++
	if s.Layers == nil {
		s.Layers = make(map[int]*quarkgl.RGBATarget)
	}
	if t == nil {
		delete(s.Layers, layer)
		return
	}
	s.Layers[layer] = t
}
