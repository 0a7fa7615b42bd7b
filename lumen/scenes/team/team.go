// Package team is the team constellation: floating avatars connected by
// lines whose opacity fades with distance, pushed away by the pointer.
//
// The scene works in viewport units: the camera is orthographic, one world
// unit per viewport unit, origin at the viewport center, Y up.
package team

import (
	"time"

	"github.com/chewxy/math32"

	"lumen/lumen/anim"
	"lumen/lumen/config"
	"lumen/lumen/follow"
	"lumen/lumen/loop"
	"lumen/lumen/proximity"
	"lumen/lumen/quarkgl"
)

const (
	avatarRadius = 28
	// repelPush is the offset, in viewport units, of an avatar touching the pointer.
	repelPush  = 40
	hoverScale = 1.3
	dimScale   = 0.9
)

// Scene is the constellation content.
type Scene struct {
	profile config.Config
	cfg     config.Team

	members []int
	vw, vh  int
	springX springField
	springY springField
	scales  []*follow.Follower
	hovered int
}

// New returns the team scene for a profile.
func New(cfg config.Config) *Scene {
	return &Scene{
		profile: cfg,
		cfg:     cfg.Team,
		springX: newSpringField(60, 10, 1),
		springY: newSpringField(60, 10, 1),
		hovered: -1,
	}
}

// Options returns the loop options for the constellation layer.
func (s *Scene) Options() loop.Options {
	return loop.Options{
		Name:  "team",
		Layer: 2,
		Camera: quarkgl.Camera{
			Type:     quarkgl.CameraOrtho,
			Position: quarkgl.V3(0, 0, 10),
			Up:       quarkgl.V3(0, 1, 0),
			Near:     0.1,
			Far:      100,
		},
		OrthoPixels:   true,
		ClearColor:    quarkgl.RGBA(0, 0, 0, 0),
		MaxNodes:      s.cfg.Members + 2,
		PointerFactor: s.profile.Pointer.Factor,
		PointerTau:    s.profile.PointerTau(),
	}
}

func (s *Scene) Build(st *loop.Stage) error {
	rng := st.Rand()
	color := config.Color(s.cfg.Color)
	w, h := st.Viewport()
	s.vw, s.vh = w, h
	layout := Layout(s.cfg.Members, float32(w), float32(h))

	s.members = s.members[:0]
	s.scales = s.scales[:0]
	disc := quarkgl.NewDiscMesh(avatarRadius, 24)
	for i, p := range layout {
		idx, err := st.Add(loop.Object{
			Name: "avatar",
			Visual: quarkgl.Node{
				Kind:     quarkgl.NodeMesh,
				Mesh:     disc,
				Material: quarkgl.Material{BaseColor: color, Opacity: 230},
				Order:    1,
			},
			Base: quarkgl.Transform{Position: p, Scale: quarkgl.V3(1, 1, 1)},
			Anims: []anim.Anim{{
				Kind:     anim.Swim,
				Channel:  anim.Position,
				Amp:      quarkgl.V3(rng.Float32()*20-10, rng.Float32()*30-15, 0),
				Duration: 3 + rng.Float32()*2,
				Delay:    float32(i) * 0.3,
			}},
		})
		if err != nil {
			return err
		}
		s.members = append(s.members, idx)
		scale := follow.NewTimed(120 * time.Millisecond)
		scale.Reset(1)
		s.scales = append(s.scales, scale)
	}
	s.springX.resize(len(s.members))
	s.springY.resize(len(s.members))

	return st.Connect(s.members, proximity.Builder{
		MaxDist:      s.cfg.Threshold,
		OpacityScale: s.cfg.OpacityScale,
	}, s.cfg.PoolCapacity, quarkgl.Material{BaseColor: color, Opacity: 0xFF})
}

// Update pushes avatars away from the pointer and scales the hovered one.
func (s *Scene) Update(st *loop.Stage, f anim.Frame) {
	w, h := st.Viewport()
	if w != s.vw || h != s.vh {
		s.relayout(st, w, h)
	}
	px, py, ok := st.Pointer()
	interactive := ok && f.Interactive
	pointer := quarkgl.V3(px-float32(w)/2, float32(h)/2-py, 0)
	dt := time.Duration(f.Delta * float32(time.Second))

	s.hovered = -1
	for i, idx := range s.members {
		o := st.Object(idx)
		var tx, ty float32
		if interactive {
			tx, ty = Repel(o.Current.Position, pointer, s.cfg.RepelRadius)
			if quarkgl.Dist(o.Current.Position, pointer) < avatarRadius {
				s.hovered = i
			}
		}
		o.Current.Position.X += float32(s.springX.step(i, float64(tx)))
		o.Current.Position.Y += float32(s.springY.step(i, float64(ty)))
	}

	for i, idx := range s.members {
		target := float32(1)
		switch {
		case s.hovered < 0:
		case i == s.hovered:
			target = hoverScale
		default:
			target = dimScale
		}
		k := s.scales[i].Update(target, dt)
		o := st.Object(idx)
		o.Current.Scale = o.Current.Scale.Mul(k)
	}
}

// relayout moves the grid for a new viewport. Avatars reach it next tick.
func (s *Scene) relayout(st *loop.Stage, w, h int) {
	s.vw, s.vh = w, h
	for i, p := range Layout(len(s.members), float32(w), float32(h)) {
		st.Object(s.members[i]).Base.Position = p
	}
}

// Hovered returns the index of the hovered member, or -1.
func (s *Scene) Hovered() int { return s.hovered }

// Repel returns the offset pushing p away from the pointer. It is zero
// outside radius and grows linearly to repelPush at the pointer.
func Repel(p, pointer quarkgl.Vec3, radius float32) (dx, dy float32) {
	d := quarkgl.Dist(p, pointer)
	if radius <= 0 || d >= radius || d == 0 {
		return 0, 0
	}
	force := (radius - d) / radius
	angle := math32.Atan2(p.Y-pointer.Y, p.X-pointer.X)
	return math32.Cos(angle) * force * repelPush, math32.Sin(angle) * force * repelPush
}

// Layout places n members on a centered grid of up to four columns.
func Layout(n int, w, h float32) []quarkgl.Vec3 {
	if n <= 0 {
		return nil
	}
	cols := min(n, 4)
	rows := (n + cols - 1) / cols
	dx := w / float32(cols+1)
	dy := h / float32(rows+1)
	out := make([]quarkgl.Vec3, n)
	for i := range out {
		c := i % cols
		r := i / cols
		// Stagger odd rows by half a cell.
		off := float32(0)
		if r%2 == 1 {
			off = dx / 4
		}
		out[i] = quarkgl.V3(
			dx*float32(c+1)-w/2+off,
			h/2-dy*float32(r+1),
			0,
		)
	}
	return out
}
