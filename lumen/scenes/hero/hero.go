// Package hero is the "digital biosphere": a wireframe core and shell,
// orbiting data particles, two rings and a floating logo, tilted by the pointer.
package hero

import (
	"github.com/chewxy/math32"

	"lumen/lumen/anim"
	"lumen/lumen/asset"
	"lumen/lumen/config"
	"lumen/lumen/loop"
	"lumen/lumen/quarkgl"
	"lumen/lumen/sampler"
)

// tiltPerPixel is the scene tilt in radians per viewport unit of pointer offset from center.
const tiltPerPixel = 0.0005

// Scene is the hero content.
type Scene struct {
	profile config.Config
	cfg     config.Hero
}

// New returns the hero scene for a profile.
func New(cfg config.Config) *Scene {
	return &Scene{profile: cfg, cfg: cfg.Hero}
}

// Options returns the loop options for the hero layer.
func (s *Scene) Options() loop.Options {
	return loop.Options{
		Name:  "hero",
		Layer: 1,
		Camera: quarkgl.Camera{
			Type:     quarkgl.CameraPerspective,
			Position: quarkgl.V3(0, 0, s.cfg.CameraZ),
			Up:       quarkgl.V3(0, 1, 0),
			FOVYRad:  75 * math32.Pi / 180,
			Near:     0.1,
			Far:      1000,
		},
		ClearColor:    quarkgl.RGBA(0, 0, 0, 0),
		MaxNodes:      8,
		PointerFactor: s.profile.Pointer.Factor,
		PointerTau:    s.profile.PointerTau(),
		AssetTimeout:  s.profile.AssetTimeout(),
		TextureSize:   s.profile.Assets.TextureSize,
	}
}

func (s *Scene) Build(st *loop.Stage) error {
	gold := config.Color(s.cfg.Color)

	// Pointer offsets of half the viewport map to the full tilt.
	w, h := st.Viewport()
	st.SetRootAnims([]anim.Anim{{
		Kind:    anim.Follow,
		Channel: anim.Rotation,
		Amp:     quarkgl.V3(float32(h)/2*tiltPerPixel, float32(w)/2*tiltPerPixel, 0),
	}})

	objects := []loop.Object{
		{
			Name: "core",
			Visual: quarkgl.Node{
				Kind: quarkgl.NodeMesh,
				Mesh: quarkgl.NewIcosphereMesh(s.cfg.CoreRadius, 2),
				Material: quarkgl.Material{
					BaseColor: gold,
					Opacity:   38,
					Wireframe: true,
				},
			},
			Anims: []anim.Anim{
				{Kind: anim.Spin, Channel: anim.Rotation, Rate: quarkgl.V3(0.002, 0.005, 0)},
				{Kind: anim.Pulse, Amp: quarkgl.V3(0.03, 0, 0), Freq: 1.5},
			},
		},
		{
			Name: "shell",
			Visual: quarkgl.Node{
				Kind: quarkgl.NodeMesh,
				Mesh: quarkgl.NewIcosphereMesh(s.cfg.ShellRadius, 1),
				Material: quarkgl.Material{
					BaseColor: config.Color(s.cfg.ShellColor),
					Opacity:   13,
					Blend:     quarkgl.BlendAdditive,
					Wireframe: true,
				},
			},
			Anims: []anim.Anim{
				{Kind: anim.Spin, Channel: anim.Rotation, Rate: quarkgl.V3(-0.001, -0.003, 0)},
			},
		},
		{
			Name: "particles",
			Visual: quarkgl.Node{
				Kind: quarkgl.NodePoints,
				Points: &quarkgl.PointCloud{
					Positions: sampler.SphereSpiral(st.Rand(), s.cfg.Particles, 18, 23),
					Size:      0.15,
					Attenuate: true,
				},
				Material: quarkgl.Material{BaseColor: gold, Opacity: 153},
			},
			Anims: []anim.Anim{
				{Kind: anim.Spin, Channel: anim.Rotation, Rate: quarkgl.V3(0, 0.002, 0)},
			},
		},
		ring("ring-inner", 22, quarkgl.V3(math32.Pi/2, -math32.Pi/8, 0), 0.002, gold),
		ring("ring-outer", 26, quarkgl.V3(math32.Pi/1.8, math32.Pi/6, 0), -0.003, gold),
	}
	for _, o := range objects {
		if _, err := st.Add(o); err != nil {
			return err
		}
	}

	if s.cfg.Logo != "" {
		st.Load(s.cfg.Logo, LogoSpec(s.cfg.LogoSize, gold))
	}
	return nil
}

// LogoSpec is the floating logo: y = sin(1.5t)*0.5, rotY = sin(0.5t)*0.1.
// The fallback disc uses the same motion.
func LogoSpec(size float32, fill quarkgl.Color) asset.Spec {
	return asset.Spec{
		Size:  size,
		Fill:  fill,
		Order: 1,
		Anims: []anim.Anim{
			{Kind: anim.Float, Channel: anim.Position, Amp: quarkgl.V3(0, 0.5, 0), Freq: 1.5},
			{Kind: anim.Float, Channel: anim.Rotation, Amp: quarkgl.V3(0, 0.1, 0), Freq: 0.5},
		},
	}
}

func ring(name string, radius float32, tilt quarkgl.Vec3, spin float32, c quarkgl.Color) loop.Object {
	return loop.Object{
		Name: name,
		Visual: quarkgl.Node{
			Kind: quarkgl.NodeMesh,
			Mesh: quarkgl.NewTorusMesh(radius, 0.1, 100, 2),
			Material: quarkgl.Material{
				BaseColor: c,
				Opacity:   51,
				Wireframe: true,
			},
		},
		Base: quarkgl.Transform{Rotation: tilt, Scale: quarkgl.V3(1, 1, 1)},
		Anims: []anim.Anim{
			{Kind: anim.Spin, Channel: anim.Rotation, Rate: quarkgl.V3(0, 0, spin)},
		},
	}
}
