// Package backdrop is the ambient particle field behind every other scene.
package backdrop

import (
	"github.com/chewxy/math32"

	"lumen/lumen/anim"
	"lumen/lumen/config"
	"lumen/lumen/loop"
	"lumen/lumen/quarkgl"
	"lumen/lumen/sampler"
)

// Scene builds a gold and white particle shell and a sparse star cube.
type Scene struct {
	profile config.Config
	cfg     config.Backdrop

	particles *quarkgl.PointCloud
	stars     *quarkgl.PointCloud
}

// New returns the backdrop scene for a profile.
func New(cfg config.Config) *Scene {
	return &Scene{profile: cfg, cfg: cfg.Backdrop}
}

// Options returns the loop options for the backdrop layer.
func (s *Scene) Options() loop.Options {
	return loop.Options{
		Name:  "backdrop",
		Layer: 0,
		Camera: quarkgl.Camera{
			Type:     quarkgl.CameraPerspective,
			Position: quarkgl.V3(0, 0, s.cfg.CameraZ),
			Up:       quarkgl.V3(0, 1, 0),
			FOVYRad:  75 * math32.Pi / 180,
			Near:     0.1,
			Far:      1000,
		},
		ClearColor:    quarkgl.RGB(0x05, 0x05, 0x07),
		MaxNodes:      4,
		PointerFactor: s.profile.Pointer.Factor,
		PointerTau:    s.profile.PointerTau(),
	}
}

func (s *Scene) Build(st *loop.Stage) error {
	rng := st.Rand()
	count, stars := s.cfg.Particles, s.cfg.Stars
	if st.Reduced() {
		count, stars = s.cfg.ReducedParticles, s.cfg.ReducedStars
	}

	gold := config.Color(s.cfg.Gold)
	white := config.Color(s.cfg.White)

	pts := sampler.SphereSurface(rng, count, s.cfg.RadiusMin, s.cfg.RadiusMax)
	colors := make([]quarkgl.Color, len(pts))
	sizes := make([]float32, len(pts))
	for i := range pts {
		colors[i] = white
		if rng.Float32() < s.cfg.GoldShare {
			colors[i] = gold
		}
		sizes[i] = rng.Float32()*3 + 1
	}
	s.particles = &quarkgl.PointCloud{
		Positions: pts,
		Colors:    colors,
		Sizes:     sizes,
		Size:      2,
		Attenuate: true,
	}
	if _, err := st.Add(loop.Object{
		Name: "particles",
		Visual: quarkgl.Node{
			Kind:   quarkgl.NodePoints,
			Points: s.particles,
			Material: quarkgl.Material{
				BaseColor: quarkgl.RGB(0xFF, 0xFF, 0xFF),
				Opacity:   opacity(s.cfg.Opacity),
				Blend:     quarkgl.BlendAdditive,
			},
		},
		Anims: []anim.Anim{
			{Kind: anim.Orbit, Channel: anim.Rotation, Rate: quarkgl.V3(0.02, 0.05, 0)},
			{Kind: anim.Follow, Channel: anim.Rotation, Amp: quarkgl.V3(0.0005, 0.0005, 0)},
			{Kind: anim.Float, Channel: anim.Position, Amp: quarkgl.V3(0, 2, 0), Freq: 0.3},
		},
	}); err != nil {
		return err
	}

	s.stars = &quarkgl.PointCloud{
		Positions: sampler.Cube(rng, stars, s.cfg.StarHalfExtent),
		Size:      4,
		Attenuate: true,
	}
	_, err := st.Add(loop.Object{
		Name: "stars",
		Visual: quarkgl.Node{
			Kind:   quarkgl.NodePoints,
			Points: s.stars,
			Material: quarkgl.Material{
				BaseColor: gold,
				Opacity:   0xFF,
				Blend:     quarkgl.BlendAdditive,
			},
		},
		Anims: []anim.Anim{
			{Kind: anim.Orbit, Channel: anim.Rotation, Rate: quarkgl.V3(0.01, -0.03, 0)},
		},
	})
	return err
}

// Counts returns the number of particles and stars built.
func (s *Scene) Counts() (particles, stars int) {
	if s.particles != nil {
		particles = len(s.particles.Positions)
	}
	if s.stars != nil {
		stars = len(s.stars.Positions)
	}
	return particles, stars
}

func opacity(v float32) uint8 {
	return uint8(quarkgl.Clamp01(v)*255 + 0.5)
}
