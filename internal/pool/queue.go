package pool

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// item is one unit of work waiting in the queue.
type item[R any] struct {
	id         ID
	fn         func() R
	enqueuedAt time.Time
}

// taskQueue is a FIFO buffer of pending work with monotonic id assignment.
// Ids keep increasing for the lifetime of the owning pool, including across
// restarts; clear discards pending items without disturbing ids that were
// already handed out.
//
// All methods are safe for concurrent use. The pool additionally sequences
// every call through its coordination lock so queue mutations and worker
// wakeups cannot be reordered against each other.
type taskQueue[R any] struct {
	mu     sync.Mutex
	buf    *queue.Queue
	nextID ID
}

func newTaskQueue[R any]() *taskQueue[R] {
	return &taskQueue[R]{buf: queue.New()}
}

// push appends fn at the back and returns its freshly assigned id.
func (q *taskQueue[R]) push(fn func() R) ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextID
	q.nextID++
	q.buf.Add(&item[R]{id: id, fn: fn, enqueuedAt: time.Now()})

	return id
}

// pop removes and returns the front item, reporting false when empty.
func (q *taskQueue[R]) pop() (*item[R], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() == 0 {
		return nil, false
	}
	return q.buf.Remove().(*item[R]), true
}

// size returns the number of pending items.
func (q *taskQueue[R]) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}

// clear discards all pending items without executing them and returns the
// ids that were dropped. Used only by immediate shutdown.
func (q *taskQueue[R]) clear() []ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	discarded := make([]ID, 0, q.buf.Length())
	for q.buf.Length() > 0 {
		discarded = append(discarded, q.buf.Remove().(*item[R]).id)
	}
	return discarded
}
