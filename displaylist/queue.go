package displaylist

import (
	"sync"

	"github.com/sunjay/kale"
)

// Queue serializes edits submitted from any goroutine so that a single
// writer can apply them to a Store between frames.
//
// Queue is safe for concurrent use. Drain must only be called from the
// goroutine that owns the Store.
type Queue struct {
	mu      sync.Mutex
	pending []Command
	spare   []Command
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Submit enqueues cmds, preserving their order. Nil commands are dropped.
func (q *Queue) Submit(cmds ...Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, c := range cmds {
		if c != nil {
			q.pending = append(q.pending, c)
		}
	}
}

// Len returns the number of commands waiting to be drained.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain applies every pending command to s in submission order and
// returns how many were applied. Commands submitted while Drain runs are
// left for the next call.
func (q *Queue) Drain(s *Store) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for _, c := range batch {
		s.Apply(c)
	}
	if n := len(batch); n > 0 {
		kale.Logger().Debug("displaylist: drained queue", "commands", n)
	}

	n := len(batch)
	clear(batch)

	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return n
}
