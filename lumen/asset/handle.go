package asset

import (
	"lumen/lumen/anim"
	"lumen/lumen/quarkgl"
)

// Kind tells which visual a slot resolved to.
type Kind uint8

const (
	KindPrimary Kind = iota + 1
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindFallback:
		return "fallback"
	default:
		return "unresolved"
	}
}

// Spec describes the visual bound to a slot and its motion.
type Spec struct {
	// Size is the quad edge, and the fallback disc diameter.
	Size float32
	// Color tints the primary texture. White when unset.
	Color quarkgl.Color
	// Fill colors the fallback disc. Color when unset.
	Fill  quarkgl.Color
	Base  quarkgl.Transform
	Anims []anim.Anim
	// Order sorts the node against the rest of the scene.
	Order int
}

// Handle is a resolved visual. Primary and fallback animate identically.
type Handle struct {
	Kind  Kind
	Node  quarkgl.Node
	Base  quarkgl.Transform
	Anims []anim.Anim
}

// Animate returns the transform for frame f.
func (h *Handle) Animate(f anim.Frame) quarkgl.Transform {
	return anim.Evaluate(h.Anims, &h.Base, f)
}

func newHandle(kind Kind, spec Spec, node quarkgl.Node) *Handle {
	base := spec.Base
	if base.Scale == (quarkgl.Vec3{}) {
		base.Scale = quarkgl.V3(1, 1, 1)
	}
	node.Order = spec.Order
	return &Handle{
		Kind:  kind,
		Node:  node,
		Base:  base,
		Anims: append([]anim.Anim(nil), spec.Anims...),
	}
}

// Primary builds a textured quad.
func Primary(tex *quarkgl.Texture, spec Spec) *Handle {
	return newHandle(KindPrimary, spec, quarkgl.Node{
		Kind: quarkgl.NodeMesh,
		Mesh: quarkgl.NewQuadMesh(edge(spec)),
		Material: quarkgl.Material{
			BaseColor: whiteIfZero(spec.Color),
			Opacity:   0xFF,
			Texture:   tex,
			NoDepth:   true,
		},
	})
}

// Fallback builds a flat disc with the primary's size and motion.
func Fallback(spec Spec) *Handle {
	return newHandle(KindFallback, spec, quarkgl.Node{
		Kind: quarkgl.NodeMesh,
		Mesh: quarkgl.NewDiscMesh(edge(spec)/2, 32),
		Material: quarkgl.Material{
			BaseColor: fill(spec),
			Opacity:   0xFF,
			NoDepth:   true,
		},
	})
}

func edge(spec Spec) float32 {
	if spec.Size <= 0 {
		return 1
	}
	return spec.Size
}

func fill(spec Spec) quarkgl.Color {
	if spec.Fill != (quarkgl.Color{}) {
		return spec.Fill
	}
	return whiteIfZero(spec.Color)
}

func whiteIfZero(c quarkgl.Color) quarkgl.Color {
	if c == (quarkgl.Color{}) {
		return quarkgl.RGB(0xFF, 0xFF, 0xFF)
	}
	return c
}

// Slot binds the outcome of one load. It resolves at most once.
type Slot struct {
	Ref  string
	spec Spec

	handle *Handle
	err    error
}

// NewSlot returns an unresolved slot.
func NewSlot(ref string, spec Spec) *Slot {
	return &Slot{Ref: ref, spec: spec}
}

// Resolve binds the primary visual for a texture result and the fallback
// otherwise. A second call returns ErrAlreadyResolved and changes nothing.
func (s *Slot) Resolve(r Result) (*Handle, error) {
	if s.handle != nil {
		return nil, ErrAlreadyResolved
	}
	if r.Err == nil && r.Texture != nil {
		s.handle = Primary(r.Texture, s.spec)
		return s.handle, nil
	}
	s.err = r.Err
	s.handle = Fallback(s.spec)
	return s.handle, nil
}

// Handle returns the bound visual, or nil before resolution.
func (s *Slot) Handle() *Handle { return s.handle }

// Kind returns the bound variant, or 0 before resolution.
func (s *Slot) Kind() Kind {
	if s.handle == nil {
		return 0
	}
	return s.handle.Kind
}

// Err returns the load failure that selected the fallback, if any.
func (s *Slot) Err() error { return s.err }
