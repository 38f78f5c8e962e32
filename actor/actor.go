package actor

import "go.uber.org/zap"

// Handler processes one message for an actor owning state of type S. It
// is invoked with a mutable reference to the actor's private state, the
// actor's own id (so it can spawn children or send to itself), and the
// message being processed, and returns the Status that drives what
// happens to that message in the mailbox. This mirrors the Processor
// trait in original_source/src/actors.rs, minus the trait machinery Go
// doesn't need: a plain generic function type is enough.
type Handler[S any] func(state *S, self ActorId, msg Message) Status

// Actor binds a mailbox to a type-erased handler closure over private
// state. Exactly one turn executes at a time per actor; that guarantee
// comes from the scheduling invariant in spec.md §4.4, not from a lock
// here — an ActorId is only ever present on the run queue once per
// readiness edge, so at most one worker can be running a given actor's
// turn at any moment.
type Actor struct {
	id      ActorId
	mailbox *Mailbox
	step    func(self ActorId, msg Message) Status
	logger  *zap.Logger

	consecutiveFaults int
}

// maxConsecutiveFaults bounds how many times in a row turn() will retry
// the same head-of-mailbox message after a handler panic. Without a
// cap, a message that always faults is never popped or skipped, so the
// actor reports stillReady forever and busy-spins whichever worker
// keeps drawing it — fatal with WithWorkerCount(1), since that worker
// never gets to service any other actor. Once the cap is hit the
// message is force-skipped instead of retried indefinitely.
const maxConsecutiveFaults = 5

// newActor erases State by capturing it in the closure passed to step,
// exactly as Actor::new in original_source/src/actors.rs captures
// `state` in its handler closure.
func newActor[S any](id ActorId, mbx *Mailbox, state S, handler Handler[S], logger *zap.Logger) *Actor {
	st := state
	return &Actor{
		id:      id,
		mailbox: mbx,
		logger:  logger,
		step: func(self ActorId, msg Message) Status {
			return handler(&st, self, msg)
		},
	}
}

// ID returns the actor's identity.
func (a *Actor) ID() ActorId { return a.id }

// Mailbox returns the actor's mailbox.
func (a *Actor) Mailbox() *Mailbox { return a.mailbox }

// turn consumes at most one message, per spec.md §4.2. It returns true
// if the actor still has deliverable messages afterward and so must be
// re-enqueued on the run queue.
func (a *Actor) turn() (stillReady bool) {
	if a.mailbox.Deliverable() == 0 {
		// Spurious schedule: nothing to do.
		return false
	}

	msg, err := a.mailbox.Peek()
	if err != nil {
		// Raced to empty between the Deliverable() check and Peek();
		// another consumer can't exist (single-consumer contract), so
		// this only happens if Deliverable() itself raced with a Skip
		// from this same turn, which can't happen either. Defensive only.
		return false
	}

	status, faulted := a.invoke(msg)
	if faulted {
		a.consecutiveFaults++
		if a.consecutiveFaults < maxConsecutiveFaults {
			// spec.md §7: a handler fault must not drain the mailbox.
			// Leave the message exactly where Peek found it.
			return a.mailbox.Deliverable() > 0
		}
		// Budget exhausted: this message will never process cleanly.
		// Skip it so the actor (and the worker that keeps drawing it)
		// isn't pinned on it forever; later messages still get a turn.
		a.consecutiveFaults = 0
		if a.logger != nil {
			a.logger.Warn("actor skipping message after repeated handler faults",
				zap.Stringer("actor", a.id),
				zap.Int("consecutive_faults", maxConsecutiveFaults),
			)
		}
		_ = a.mailbox.Skip()
		return a.mailbox.Deliverable() > 0
	}
	a.consecutiveFaults = 0

	switch status {
	case Processed:
		_ = a.mailbox.Pop()
	case Skipped:
		_ = a.mailbox.Skip()
	case ResetSkip:
		_ = a.mailbox.ResetSkip()
	}

	return a.mailbox.Deliverable() > 0
}

// invoke calls the handler, recovering any panic into a HandlerFault so
// that a faulting actor can never take its worker thread down with it.
func (a *Actor) invoke(msg Message) (status Status, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			faulted = true
			fault := newHandlerFault(a.id, r)
			if a.logger != nil {
				a.logger.Error("actor handler fault",
					zap.Stringer("actor", a.id),
					zap.Error(fault),
				)
			}
		}
	}()
	return a.step(a.id, msg), false
}
