package quarkgl

import "github.com/chewxy/math32"

// NewTorusMesh builds a torus around the Z axis (major radius in the XY plane).
func NewTorusMesh(major, minor Scalar, segU, segV int) Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 2 {
		segV = 2
	}

	verts := make([]Vertex, 0, segU*segV)
	indices := make([]uint16, 0, segU*segV*6)

	twoPi := 2 * math32.Pi
	for u := 0; u < segU; u++ {
		theta := twoPi * Scalar(u) / Scalar(segU)
		ct, st := math32.Cos(theta), math32.Sin(theta)
		for v := 0; v < segV; v++ {
			phi := twoPi * Scalar(v) / Scalar(segV)
			cp, sp := math32.Cos(phi), math32.Sin(phi)

			r := major + minor*cp
			verts = append(verts, Vertex{
				Pos:    V3(r*ct, r*st, minor*sp),
				Normal: V3(cp*ct, cp*st, sp),
			})
		}
	}

	idx := func(u, v int) uint16 {
		return uint16((u%segU)*segV + v%segV)
	}
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)
			indices = append(indices, i0, i1, i2, i0, i2, i3)
		}
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// NewIcosphereMesh builds an icosahedron subdivided detail times and projected onto a sphere.
func NewIcosphereMesh(radius Scalar, detail int) Mesh {
	if detail < 0 {
		detail = 0
	}
	if detail > 4 {
		detail = 4
	}
	t := (1 + math32.Sqrt(5)) / 2
	pos := []Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for d := 0; d < detail; d++ {
		cache := make(map[[2]int]int, len(faces)*3/2)
		mid := func(a, b int) int {
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if i, ok := cache[key]; ok {
				return i
			}
			pos = append(pos, pos[a].Add(pos[b]).Mul(0.5))
			cache[key] = len(pos) - 1
			return len(pos) - 1
		}
		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			a := mid(f[0], f[1])
			b := mid(f[1], f[2])
			c := mid(f[2], f[0])
			next = append(next,
				[3]int{f[0], a, c},
				[3]int{f[1], b, a},
				[3]int{f[2], c, b},
				[3]int{a, b, c},
			)
		}
		faces = next
	}

	verts := make([]Vertex, len(pos))
	for i, p := range pos {
		n := Normalize(p)
		verts[i] = Vertex{Pos: n.Mul(radius), Normal: n}
	}
	indices := make([]uint16, 0, len(faces)*3)
	for _, f := range faces {
		indices = append(indices, uint16(f[0]), uint16(f[1]), uint16(f[2]))
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// NewDiscMesh builds a flat disc in the XY plane facing +Z.
func NewDiscMesh(radius Scalar, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vertex, 0, segments+1)
	indices := make([]uint16, 0, segments*3)
	verts = append(verts, Vertex{Normal: V3(0, 0, 1), U: 0.5, V: 0.5})
	for i := 0; i < segments; i++ {
		a := 2 * math32.Pi * Scalar(i) / Scalar(segments)
		c, s := math32.Cos(a), math32.Sin(a)
		verts = append(verts, Vertex{
			Pos:    V3(c*radius, s*radius, 0),
			Normal: V3(0, 0, 1),
			U:      0.5 + c*0.5,
			V:      0.5 - s*0.5,
		})
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		indices = append(indices, 0, uint16(i+1), uint16(next))
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// NewQuadMesh builds a size x size plane in the XY plane with UVs covering the texture.
func NewQuadMesh(size Scalar) Mesh {
	h := size / 2
	n := V3(0, 0, 1)
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-h, -h, 0), Normal: n, U: 0, V: 1},
			{Pos: V3(h, -h, 0), Normal: n, U: 1, V: 1},
			{Pos: V3(h, h, 0), Normal: n, U: 1, V: 0},
			{Pos: V3(-h, h, 0), Normal: n, U: 0, V: 0},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}
