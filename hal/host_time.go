package hal

import "time"

type hostTime struct {
	start time.Time
}

func newHostTime() *hostTime {
	return &hostTime{start: time.Now()}
}

// Now returns the monotonic time since the host started.
func (t *hostTime) Now() time.Duration { return time.Since(t.start) }
