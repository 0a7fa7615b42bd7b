package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color
	// PixelRatio scales non-attenuated point sizes.
	PixelRatio Scalar

	depthBuf []float32
}

// clipEpsilon rejects vertices at or behind the camera plane.
const clipEpsilon = 1e-5

// ndcLimit rejects primitives far outside the view volume before rasterizing.
const ndcLimit = 4

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
		PixelRatio: 1,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// frame carries per-render constants.
type frame struct {
	t     Target
	w, h  int
	vp    Mat4
	light Light
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := float32(w) / float32(h)
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)
	root := s.Root
	if root == (Mat4{}) {
		root = Mat4Identity()
	}

	f := frame{
		t:     t,
		w:     w,
		h:     h,
		vp:    Mat4Mul(proj, Mat4Mul(view, root)),
		light: s.Light,
	}

	s.eachNode(func(n *Node) {
		if !n.Enabled {
			return
		}
		switch n.Kind {
		case NodePoints:
			r.renderPoints(f, n)
		case NodeLines:
			r.renderLines(f, n)
		default:
			r.renderMesh(f, n)
		}
	})
}

func (r *Renderer) renderMesh(f frame, n *Node) {
	m := n.Mesh
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	mat := n.Material
	mvp := Mat4Mul(f.vp, n.Transform)
	opaque := mat.Opacity == 0xFF && mat.Blend == BlendNormal
	alpha := Scalar(mat.Opacity) / 255

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		ndc0, ok0 := project(mvp, v0.Pos)
		ndc1, ok1 := project(mvp, v1.Pos)
		ndc2, ok2 := project(mvp, v2.Pos)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, f.w, f.h)
		x1, y1 := ndcToScreen(ndc1, f.w, f.h)
		x2, y2 := ndcToScreen(ndc2, f.w, f.h)

		base := mat.BaseColor
		if f.light.Mode == LightAmbientDirectional {
			nrm := triangleNormal(v0.Pos, v1.Pos, v2.Pos)
			base = base.MulScalar(lightIntensity(f.light, nrm))
		}

		if mat.Wireframe || r.Mode == RenderWireframe {
			c := base.Fade(alpha)
			r.drawLine(f.t, x0, y0, x1, y1, c, mat.Blend)
			r.drawLine(f.t, x1, y1, x2, y2, c, mat.Blend)
			r.drawLine(f.t, x2, y2, x0, y0, c, mat.Blend)
			continue
		}

		tri := screenTri{
			x: [3]int{x0, x1, x2},
			y: [3]int{y0, y1, y2},
			z: [3]float32{ndc0.Z, ndc1.Z, ndc2.Z},
		}

		switch {
		case mat.Texture != nil:
			tint := base.WithAlpha(0xFF)
			u := [3]Scalar{v0.U, v1.U, v2.U}
			v := [3]Scalar{v0.V, v1.V, v2.V}
			r.fillTriangle(f, tri, mat.NoDepth, false, func(x, y int, a0, a1, a2 float32) {
				tex := mat.Texture.Sample(a0*u[0]+a1*u[1]+a2*u[2], a0*v[0]+a1*v[1]+a2*v[2])
				f.t.BlendPixel(x, y, tex.Tint(tint).Fade(alpha), mat.Blend)
			})
		case r.Mode == RenderSolidVertexColor:
			c0, c1, c2 := v0.Color, v1.Color, v2.Color
			r.fillTriangle(f, tri, mat.NoDepth, opaque, func(x, y int, a0, a1, a2 float32) {
				c := Color{
					R: uint8(clampF32(a0*float32(c0.R)+a1*float32(c1.R)+a2*float32(c2.R), 0, 255)),
					G: uint8(clampF32(a0*float32(c0.G)+a1*float32(c1.G)+a2*float32(c2.G), 0, 255)),
					B: uint8(clampF32(a0*float32(c0.B)+a1*float32(c1.B)+a2*float32(c2.B), 0, 255)),
					A: mat.Opacity,
				}
				f.t.BlendPixel(x, y, c, mat.Blend)
			})
		default:
			c := base.Fade(alpha)
			r.fillTriangle(f, tri, mat.NoDepth, opaque, func(x, y int, _, _, _ float32) {
				if opaque {
					f.t.SetPixel(x, y, c)
					return
				}
				f.t.BlendPixel(x, y, c, mat.Blend)
			})
		}
	}
}

func (r *Renderer) renderPoints(f frame, n *Node) {
	pc := n.Points
	if pc == nil || len(pc.Positions) == 0 {
		return
	}
	mat := n.Material
	mvp := Mat4Mul(f.vp, n.Transform)
	alpha := Scalar(mat.Opacity) / 255
	ratio := r.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}

	for i, p := range pc.Positions {
		clip := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
		if clip.W <= clipEpsilon {
			continue
		}
		inv := 1 / clip.W
		ndc := ndcPoint{X: clip.X * inv, Y: clip.Y * inv, Z: clip.Z * inv}
		if ndc.Z < -1 || ndc.Z > 1 || ndc.X < -1.1 || ndc.X > 1.1 || ndc.Y < -1.1 || ndc.Y > 1.1 {
			continue
		}

		size := pc.Size
		if i < len(pc.Sizes) {
			size = pc.Sizes[i]
		}
		var px float32
		if pc.Attenuate {
			// Same falloff as a perspective point sprite: half the target height per unit depth.
			px = size * float32(f.h) * 0.5 / clip.W
		} else {
			px = size * ratio
		}
		side := int(px + 0.5)
		if side < 1 {
			side = 1
		}

		c := mat.BaseColor
		if i < len(pc.Colors) {
			c = c.Tint(pc.Colors[i])
		}
		c = c.Fade(alpha)

		cx, cy := ndcToScreen(ndc, f.w, f.h)
		x0 := cx - side/2
		y0 := cy - side/2
		for y := y0; y < y0+side; y++ {
			if y < 0 || y >= f.h {
				continue
			}
			for x := x0; x < x0+side; x++ {
				if x < 0 || x >= f.w {
					continue
				}
				if !mat.NoDepth && !r.depthTest(f.w, x, y, ndc.Z, false) {
					continue
				}
				f.t.BlendPixel(x, y, c, mat.Blend)
			}
		}
	}
}

func (r *Renderer) renderLines(f frame, n *Node) {
	lb := n.Lines
	if lb == nil {
		return
	}
	mat := n.Material
	mvp := Mat4Mul(f.vp, n.Transform)
	opacity := Scalar(mat.Opacity) / 255

	for i := 0; i < lb.Len(); i++ {
		a, b, alpha, ok := lb.Segment(i)
		if !ok || alpha <= 0 {
			continue
		}
		na, okA := project(mvp, a)
		nb, okB := project(mvp, b)
		if !okA || !okB {
			continue
		}
		x0, y0 := ndcToScreen(na, f.w, f.h)
		x1, y1 := ndcToScreen(nb, f.w, f.h)
		r.drawLine(f.t, x0, y0, x1, y1, mat.BaseColor.Fade(opacity*alpha), mat.Blend)
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// project maps a model-space point to NDC and rejects points behind the
// camera or far outside the frustum.
func project(mvp Mat4, p Vec3) (ndcPoint, bool) {
	clip := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	n, ok := clipToNDC(clip)
	if !ok {
		return ndcPoint{}, false
	}
	if n.X < -ndcLimit || n.X > ndcLimit || n.Y < -ndcLimit || n.Y > ndcLimit {
		return ndcPoint{}, false
	}
	return n, true
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= clipEpsilon {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{
		X: p.X * invW,
		Y: p.Y * invW,
		Z: p.Z * invW,
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

// depthTest reports whether z is in front of the stored depth, storing it when write is set.
func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color, mode BlendMode) {
	if c.A == 0 {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.BlendPixel(x0, y0, c, mode)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

type screenTri struct {
	x, y [3]int
	z    [3]float32
}

// fillTriangle rasterizes both windings and calls shade for every covered
// pixel that passes the depth test, with barycentric weights.
func (r *Renderer) fillTriangle(f frame, tri screenTri, noDepth, writeDepth bool, shade func(x, y int, a0, a1, a2 float32)) {
	x0, x1, x2 := tri.x[0], tri.x[1], tri.x[2]
	y0, y1, y2 := tri.y[0], tri.y[1], tri.y[2]

	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= f.w {
		maxX = f.w - 1
	}
	if maxY >= f.h {
		maxY = f.h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	sign := 1
	if area < 0 {
		sign = -1
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if w0*sign < 0 || w1*sign < 0 || w2*sign < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			if !noDepth {
				z := a0*tri.z[0] + a1*tri.z[1] + a2*tri.z[2]
				if !r.depthTest(f.w, x, y, z, writeDepth) {
					continue
				}
			}
			shade(x, y, a0, a1, a2)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
