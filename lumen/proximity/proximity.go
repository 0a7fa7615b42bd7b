// Package proximity connects nearby points with pooled line segments.
//
// Build enumerates all unordered pairs, O(m²) per call. Constellations hold
// tens of nodes, so no spatial index is used.
package proximity

import (
	"lumen/lumen/pool"
	"lumen/lumen/quarkgl"
)

// Builder assigns qualifying pairs to pool slots.
type Builder struct {
	// MaxDist is the exclusive distance threshold. Non-positive values qualify nothing.
	MaxDist float32
	// OpacityScale is the opacity of a zero-length pair.
	OpacityScale float32
	// MaxPairs optionally bounds assignments below the pool capacity. Zero means the capacity.
	MaxPairs int
}

// Build writes pairs closer than MaxDist into p, first found first served,
// hides every slot beyond the last assignment and returns the number assigned.
func (b Builder) Build(positions []quarkgl.Vec3, p *pool.Pool) int {
	limit := p.Cap()
	if b.MaxPairs > 0 && b.MaxPairs < limit {
		limit = b.MaxPairs
	}

	n := 0
	if b.MaxDist > 0 && quarkgl.Finite(b.MaxDist) {
	pairs:
		for i := 0; i < len(positions); i++ {
			for j := i + 1; j < len(positions); j++ {
				if n >= limit {
					break pairs
				}
				d := quarkgl.Dist(positions[i], positions[j])
				if !(d < b.MaxDist) {
					continue
				}
				s := p.Acquire(n)
				s.A = positions[i]
				s.B = positions[j]
				s.Opacity = b.opacity(d)
				n++
			}
		}
	}
	p.ReleaseRest(n)
	return n
}

func (b Builder) opacity(d float32) float32 {
	scale := b.OpacityScale
	if scale < 0 {
		scale = 0
	}
	o := (1 - d/b.MaxDist) * scale
	if o < 0 {
		return 0
	}
	if o > scale {
		return scale
	}
	return o
}
