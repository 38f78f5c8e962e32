package actor

import (
	"sync"

	"github.com/gammazero/deque"
)

// runQueue is the bounded, blocking FIFO of ready ActorIds shared by the
// whole worker pool (spec.md §4.3). It is backed by gammazero/deque (a
// teacher dependency) rather than a bare buffered channel: a channel
// cannot report how many pushers are currently parked on a full queue
// (this queue does not count them either, and the dispatcher keeps no
// backpressure metric), and the mutex+cond pair gives close a single
// place to wake every blocked pusher and popper at once.
type runQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items    deque.Deque[ActorId]
	capacity int
	closed   bool
}

func newRunQueue(capacity int) *runQueue {
	if capacity < 1 {
		panic("actor: run queue capacity must be >= 1")
	}
	q := &runQueue{capacity: capacity}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// push blocks until the queue has room, then appends aid. It returns
// ErrRunQueueClosed if the queue is closed before or while waiting.
func (q *runQueue) push(aid ActorId) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.items.Len() >= q.capacity {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrRunQueueClosed
	}

	q.items.PushBack(aid)
	q.notEmpty.Signal()
	return nil
}

// popBlocking blocks until an ActorId is available or the queue is
// closed, in which case ok is false.
func (q *runQueue) popBlocking() (aid ActorId, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.items.Len() == 0 {
		q.notEmpty.Wait()
	}
	if q.items.Len() == 0 {
		return ActorId{}, false
	}

	aid = q.items.PopFront()
	q.notFull.Signal()
	return aid, true
}

// close wakes every blocked pusher and popper; subsequent push calls
// return ErrRunQueueClosed and popBlocking returns ok=false once
// drained.
func (q *runQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

func (q *runQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
