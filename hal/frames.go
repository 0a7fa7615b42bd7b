package hal

import "sync"

type frameRequest struct {
	id uint64
	fn func()
}

// FrameQueue is the host side of Frames. Hosts call Run once per display refresh.
type FrameQueue struct {
	mu      sync.Mutex
	seq     uint64
	pending []frameRequest
	running []frameRequest
	frame   uint64
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make([]frameRequest, 0, 8),
		running: make([]frameRequest, 0, 8),
	}
}

// RequestFrame schedules fn for the next Run and returns its id (never 0).
func (q *FrameQueue) RequestFrame(fn func()) uint64 {
	if fn == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	q.pending = append(q.pending, frameRequest{id: q.seq, fn: fn})
	return q.seq
}

// CancelFrame drops a scheduled callback. Unknown or already-run ids are ignored.
func (q *FrameQueue) CancelFrame(id uint64) {
	if id == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending[i].fn = nil
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending reports the number of live callbacks waiting for the next Run.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, r := range q.pending {
		if r.fn != nil {
			n++
		}
	}
	return n
}

// Frame returns the number of completed Run calls.
func (q *FrameQueue) Frame() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frame
}

// Run executes every callback requested before this call, in request order,
// and returns how many ran.
func (q *FrameQueue) Run() int {
	q.mu.Lock()
	q.running, q.pending = q.pending, q.running[:0]
	n := len(q.running)
	q.mu.Unlock()

	ran := 0
	for i := 0; i < n; i++ {
		q.mu.Lock()
		fn := q.running[i].fn
		q.running[i].fn = nil
		q.mu.Unlock()
		if fn == nil {
			continue
		}
		fn()
		ran++
	}

	q.mu.Lock()
	q.running = q.running[:0]
	q.frame++
	q.mu.Unlock()
	return ran
}
