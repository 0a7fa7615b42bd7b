package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	BlendPixel(x, y int, c Color, mode BlendMode)
	Clear(c Color)
}

// RenderMode selects the rasterization mode for meshes without their own override.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
	RenderSolidVertexColor
)

// BlendMode selects how translucent fragments combine with the target.
type BlendMode uint8

const (
	// BlendNormal is source-over.
	BlendNormal BlendMode = iota
	// BlendAdditive adds the premultiplied source to the destination.
	BlendAdditive
)
