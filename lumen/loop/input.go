package loop

// ReducedMode overrides the reduced-interaction heuristic.
type ReducedMode uint8

const (
	ReducedAuto ReducedMode = iota
	ReducedOn
	ReducedOff
)

// SmallViewport is the width below which reduced mode turns on automatically.
const SmallViewport = 768

// Input is the per-loop input context. Hosts stage pointer and viewport
// values into it; only the loop's tick reads them.
//
// Input is not safe for concurrent use. Stage values from the goroutine that
// runs frame callbacks.
type Input struct {
	Mode ReducedMode

	px, py     float32
	hasPointer bool

	w, h   int
	ratio  float32
	coarse bool
}

// NewInput returns an input context for a w x h viewport.
func NewInput(w, h int, ratio float32, coarse bool) *Input {
	if ratio <= 0 {
		ratio = 1
	}
	return &Input{w: w, h: h, ratio: ratio, coarse: coarse}
}

// StagePointer records the latest pointer position in viewport coordinates.
// A touch marks the pointer as coarse.
func (in *Input) StagePointer(x, y float32, touch bool) {
	in.px, in.py = x, y
	in.hasPointer = true
	if touch {
		in.coarse = true
	}
}

// StageViewport records a new viewport size. Non-positive sizes are ignored.
func (in *Input) StageViewport(w, h int, ratio float32) {
	if w <= 0 || h <= 0 {
		return
	}
	in.w, in.h = w, h
	if ratio > 0 {
		in.ratio = ratio
	}
}

// Viewport returns the staged viewport size and pixel ratio.
func (in *Input) Viewport() (w, h int, ratio float32) {
	return in.w, in.h, in.ratio
}

// Pointer returns the staged pointer in viewport coordinates.
func (in *Input) Pointer() (x, y float32, ok bool) {
	return in.px, in.py, in.hasPointer
}

// NormalizedPointer maps the pointer to [-1,1] on both axes, Y pointing
// down. Without a pointer or viewport it reports the center.
func (in *Input) NormalizedPointer() (x, y float32) {
	if !in.hasPointer || in.w <= 0 || in.h <= 0 {
		return 0, 0
	}
	return in.px/float32(in.w)*2 - 1, in.py/float32(in.h)*2 - 1
}

// Coarse reports a touch-first pointer.
func (in *Input) Coarse() bool { return in.coarse }

// Reduced reports whether particle counts and pointer effects should be scaled down.
func (in *Input) Reduced() bool {
	switch in.Mode {
	case ReducedOn:
		return true
	case ReducedOff:
		return false
	}
	return in.coarse || (in.w > 0 && in.w < SmallViewport)
}
