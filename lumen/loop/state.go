package loop

import "errors"

var (
	ErrDisposed  = errors.New("loop: disposed")
	ErrNoDisplay = errors.New("loop: no display")
)

// State is the loop lifecycle.
type State uint8

const (
	Uninitialized State = iota
	Running
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}
