package host

import "sync"

// FlapQueue collects flap inputs from any goroutine until the next frame.
// Several flaps in one frame collapse to the same effect as one, but are
// still counted.
type FlapQueue struct {
	mu      sync.Mutex
	pending int
}

// Push records one flap.
func (q *FlapQueue) Push() {
	q.mu.Lock()
	q.pending++
	q.mu.Unlock()
}

// Drain returns the number of pending flaps and clears the queue.
func (q *FlapQueue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.pending
	q.pending = 0
	return n
}
