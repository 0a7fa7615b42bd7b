package app

import (
	"image"
	"sort"

	xdraw "golang.org/x/image/draw"

	"lumen/hal"
	"lumen/internal/buildinfo"
	"lumen/lumen/hud"
	"lumen/lumen/quarkgl"
)

// compositor stacks submitted layers into the host framebuffer once per
// frame, after the loops have ticked.
type compositor struct {
	h     hal.HAL
	hud   *hud.HUD
	lines func() []string

	layers map[int]*quarkgl.RGBATarget
	order  []int
	panics []string

	frameID  uint64
	composed uint64
}

func newCompositor(h hal.HAL, showHUD bool) *compositor {
	c := &compositor{h: h, layers: make(map[int]*quarkgl.RGBATarget)}
	if showHUD {
		c.hud = hud.New()
	}
	return c
}

// Submit implements loop.Surface.
func (c *compositor) Submit(layer int, t *quarkgl.RGBATarget) {
	if t == nil {
		if _, ok := c.layers[layer]; ok {
			delete(c.layers, layer)
			c.sortLayers()
		}
		return
	}
	if _, ok := c.layers[layer]; !ok {
		c.layers[layer] = t
		c.sortLayers()
		return
	}
	c.layers[layer] = t
}

func (c *compositor) sortLayers() {
	c.order = c.order[:0]
	for k := range c.layers {
		c.order = append(c.order, k)
	}
	sort.Ints(c.order)
}

// schedule requests composition behind every tick already queued.
func (c *compositor) schedule() {
	f := c.h.Frames()
	if f == nil || c.frameID != 0 {
		return
	}
	c.frameID = f.RequestFrame(c.compose)
}

// showPanic records a recovered tick failure for the HUD.
func (c *compositor) showPanic(lines []string) {
	c.panics = append(c.panics, lines...)
}

func (c *compositor) compose() {
	c.frameID = 0
	d := c.h.Display()
	if d == nil {
		return
	}
	fb := d.Framebuffer()
	dst := hal.FramebufferImage(fb)
	if dst == nil {
		return
	}
	fb.ClearRGB(0, 0, 0)

	for _, layer := range c.order {
		src := c.layers[layer].Image()
		if src == nil {
			continue
		}
		if src.Bounds().Size() == dst.Bounds().Size() {
			xdraw.Draw(dst, dst.Bounds(), src, image.Point{}, xdraw.Over)
			continue
		}
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	}

	if len(c.panics) > 0 {
		hud.New().Draw(fb, wrap(c.panics, fb.Width()))
	} else if c.hud != nil {
		var lines []string
		if c.lines != nil {
			lines = c.lines()
		}
		lines = append(lines, "lumen "+buildinfo.Short())
		c.hud.Draw(fb, lines)
	}

	_ = fb.Present()
	c.composed++
}
