package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"lumen/hal"
)

// guardedHost hands a loop frame callbacks that recover panics. A panicking
// scene is disposed and its panic is logged and shown on screen; the other
// scenes keep running.
type guardedHost struct {
	hal.HAL
	app   *App
	entry *entry
}

func (g *guardedHost) Frames() hal.Frames {
	f := g.HAL.Frames()
	if f == nil {
		return nil
	}
	return guardedFrames{Frames: f, g: g}
}

type guardedFrames struct {
	hal.Frames
	g *guardedHost
}

func (f guardedFrames) RequestFrame(fn func()) uint64 {
	if fn == nil {
		return 0
	}
	return f.Frames.RequestFrame(func() {
		defer func() {
			if v := recover(); v != nil {
				f.g.recovered(v, debug.Stack())
			}
		}()
		fn()
	})
}

func (g *guardedHost) recovered(v any, stack []byte) {
	lines := []string{
		"Lumen Panic:",
		fmt.Sprintf("scene: %s", g.entry.name),
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := g.HAL.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	g.entry.loop.Dispose()
	if g.app.comp != nil {
		g.app.comp.showPanic(lines)
	}
}

// wrap breaks lines to the framebuffer width in TomThumb columns.
func wrap(lines []string, width int) []string {
	cols := (width - 4) / 4
	if cols <= 0 {
		cols = 1
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for len(line) > 0 {
			chunk, rest := takeRunes(line, cols)
			out = append(out, chunk)
			line = strings.TrimLeft(rest, " ")
		}
	}
	return out
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
