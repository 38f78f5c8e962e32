package actor

import "sync"

// nilNode marks the absence of a next node in the pooled chain.
const nilNode = -1

// node is one slot in the preallocated node pool. Nodes are threaded
// into exactly one of two singly-linked chains at any time: the live
// FIFO chain (messages in arrival order) or the free chain (recycled
// slots available to the next Push). This is the "pooled linked list"
// representation spec.md §4.1/§9 names as a conforming alternative to a
// ring buffer, chosen here because the skip cursor needs O(1) removal
// of a node that is not the chain head — something a contiguous ring
// buffer cannot give without shifting.
type node struct {
	msg  Message
	next int
}

// Mailbox is a bounded, single-consumer, multi-producer FIFO with a
// movable skip cursor. See spec.md §3 and §4.1 for the full contract.
//
// The zero value is not usable; construct with NewMailbox.
type Mailbox struct {
	mu      sync.Mutex
	notFull *sync.Cond

	nodes []node
	free  int // head of the free chain, or nilNode if exhausted

	head int // true head: the oldest message still in the mailbox
	tail int // placeholder node with no value; the next slot a Push fills

	cursor     int // next deliverable node; == head when no skip is set
	cursorPrev int // predecessor of cursor in the chain; valid only when cursor != head

	capacity  int
	sent      uint64
	received  uint64
	deliverable int
}

// NewMailbox returns a new Mailbox with the given capacity. Capacity
// must be at least 1.
func NewMailbox(capacity int) *Mailbox {
	if capacity < 1 {
		panic("actor: mailbox capacity must be >= 1")
	}

	// One node is always in circulation as the empty tail placeholder;
	// `capacity` more are pooled as free nodes, giving capacity+1 nodes
	// total. This differs from original_source/src/pooled_queue.rs's
	// capacity+2, which reserved an extra node purely to keep a raw
	// free-list pointer from ever observing a nil next; a Go slice-index
	// free stack has no such pointer-aliasing hazard, so that reserved
	// node isn't needed here.
	nodes := make([]node, capacity+1)
	nodes[0] = node{next: nilNode}
	nodes[1] = node{next: nilNode}
	for i := 2; i < len(nodes); i++ {
		nodes[i] = node{next: i - 1}
	}

	m := &Mailbox{
		nodes:      nodes,
		free:       len(nodes) - 1,
		head:       0,
		tail:       0,
		cursor:     0,
		cursorPrev: nilNode,
		capacity:   capacity,
	}
	m.notFull = sync.NewCond(&m.mu)
	return m
}

// Push appends msg to the tail of the mailbox. It returns the new
// deliverable count on success, or ErrFull if the mailbox is at
// capacity. The scheduling contract (spec.md §4.4) hinges on the caller
// observing a returned deliverable count of exactly 1: that is the
// 0→1 readiness edge that must trigger a run-queue enqueue.
//
// Push never blocks; it is the component-level operation spec.md §4.1
// describes. The blocking backpressure spec.md §5/§6 describes for
// `send` is layered on top by System.Send, which waits for capacity in
// pushBlocking.
func (m *Mailbox) Push(msg Message) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.free == nilNode {
		return 0, ErrFull
	}
	return m.pushLocked(msg), nil
}

// pushBlocking waits for free capacity and then pushes, returning the
// resulting deliverable count. Used only by System.Send's blocking
// backpressure contract; never exported, since Mailbox itself has no
// concept of blocking per spec.md §4.1.
func (m *Mailbox) pushBlocking(msg Message) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.free == nilNode {
		m.notFull.Wait()
	}
	return m.pushLocked(msg)
}

// pushLocked performs the actual node-splice; callers must hold m.mu
// and have already confirmed m.free != nilNode.
func (m *Mailbox) pushLocked(msg Message) int {
	newTail := m.free
	m.free = m.nodes[newTail].next

	m.nodes[m.tail].msg = msg
	m.nodes[m.tail].next = newTail
	m.nodes[newTail] = node{next: nilNode}
	m.tail = newTail

	m.sent++
	m.deliverable++
	return m.deliverable
}

// Peek returns the message at the current read position — the first
// message after the skip cursor if one is set, else the true head —
// without removing it. It returns ErrEmpty when deliverable is 0.
func (m *Mailbox) Peek() (Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peekLocked()
}

func (m *Mailbox) peekLocked() (Message, error) {
	if m.cursor == m.tail {
		return nil, ErrEmpty
	}
	return m.nodes[m.cursor].msg, nil
}

// Pop removes the message Peek would currently return and advances
// received. It returns ErrEmpty when deliverable is 0.
func (m *Mailbox) Pop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == m.tail {
		return ErrEmpty
	}

	removed := m.cursor
	next := m.nodes[removed].next

	if removed == m.head {
		// No skip active (or the cursor has caught back up to the true
		// head): removing the head is a plain dequeue, no splice needed.
		m.head = next
		m.cursor = next
	} else {
		// The cursor sits past one or more skipped nodes. Splice the
		// deliverable node out of the chain via its tracked predecessor,
		// leaving the skipped prefix exactly as it was.
		m.nodes[m.cursorPrev].next = next
		m.cursor = next
	}

	m.nodes[removed] = node{next: m.free}
	m.free = removed

	m.received++
	m.deliverable--
	m.notFull.Broadcast()
	return nil
}

// Skip advances the skip cursor past the message Peek currently
// returns, hiding it and everything before it until ResetSkip. It
// returns ErrEmpty when deliverable is 0.
func (m *Mailbox) Skip() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == m.tail {
		return ErrEmpty
	}

	m.cursorPrev = m.cursor
	m.cursor = m.nodes[m.cursor].next
	m.deliverable--
	return nil
}

// ResetSkip clears the skip cursor, restoring visibility of every
// message from the true head. It is a no-op success if no cursor is
// set. It does not pop the message that was current when called; see
// spec.md §9's Open Question resolution.
func (m *Mailbox) ResetSkip() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == m.head {
		return nil
	}
	m.cursor = m.head
	m.cursorPrev = nilNode
	m.deliverable = int(m.sent - m.received)
	return nil
}

// Sent returns the total number of messages ever pushed.
func (m *Mailbox) Sent() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

// Received returns the total number of messages ever popped.
func (m *Mailbox) Received() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.received
}

// Pending returns the number of messages currently stored, whether or
// not they are deliverable (i.e. sent - received).
func (m *Mailbox) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(m.sent - m.received)
}

// Deliverable returns the number of messages currently visible to the
// consumer (pending minus those hidden behind the skip cursor). Called
// `receivable` in original_source/src/actors.rs.
func (m *Mailbox) Deliverable() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deliverable
}

// Capacity returns the configured maximum pending count.
func (m *Mailbox) Capacity() int {
	return m.capacity
}
