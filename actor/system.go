package actor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// System is the embedding façade: it owns the Registry, the run queue
// and the worker pool (spec.md §6's ActorSystem). It is the one stateful
// handle a caller holds; ActorIds reference it only indirectly via the
// local mailbox handle they carry, which sidesteps the ActorId ↔
// ActorSystem reference cycle spec.md §9 calls out.
type System struct {
	nodeID uuid.UUID
	logger *zap.Logger

	registry *registry
	runQueue *runQueue

	mailboxCapacity int

	workerCount int
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	shutdownOnce sync.Once
}

// New creates an ActorSystem and starts its worker pool. Both the run
// queue capacity and worker count default to sane values and can be
// overridden with Option; New panics if an option sets either below 1,
// matching spec.md §6's precondition ("both ≥1").
func New(opts ...Option) *System {
	o := newOptions(opts)
	if o.workerCount < 1 {
		panic("actor: worker count must be >= 1")
	}
	if o.runQueueCapacity < 1 {
		panic("actor: run queue capacity must be >= 1")
	}

	ctx, cancel := context.WithCancel(context.Background())

	sys := &System{
		nodeID:          uuid.New(),
		logger:          o.logger,
		registry:        newRegistry(),
		runQueue:        newRunQueue(o.runQueueCapacity),
		mailboxCapacity: o.mailboxCapacity,
		workerCount:     o.workerCount,
		cancel:          cancel,
	}

	// spec.md §9 flags the original's `thread_pool_size - 1` off-by-one;
	// this starts exactly workerCount workers.
	sys.wg.Add(o.workerCount)
	for i := 0; i < o.workerCount; i++ {
		go sys.runWorker(ctx)
	}

	return sys
}

// Shutdown cancels the worker pool and closes the run queue, then waits
// for every worker goroutine to exit. It never interrupts a turn already
// in progress; workers only observe cancellation between turns.
func (s *System) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.cancel()
		s.runQueue.close()
	})
	s.wg.Wait()
}

func (s *System) runWorker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		aid, ok := s.runQueue.popBlocking()
		if !ok {
			// Run queue closed and drained: shutting down.
			return
		}

		// Reader borrow released before the turn runs, per spec.md §4.5 /
		// §9: spawning from inside a handler must not deadlock against
		// this lookup's own reader discipline.
		a, found := s.registry.lookup(aid)
		if !found {
			continue
		}

		stillReady := a.turn()
		if stillReady {
			if err := s.runQueue.push(aid); err != nil {
				// Queue closed mid-shutdown; drop the re-enqueue, the
				// worker pool is tearing down anyway.
				return
			}
		}
	}
}

// Spawn registers a new actor with the system's default mailbox
// capacity and returns its identity.
func Spawn[S any](sys *System, state S, handler Handler[S]) ActorId {
	return SpawnWithCapacity(sys, state, handler, sys.mailboxCapacity)
}

// SpawnWithCapacity registers a new actor with an explicit mailbox
// capacity and returns its identity.
func SpawnWithCapacity[S any](sys *System, state S, handler Handler[S], capacity int) ActorId {
	mbx := NewMailbox(capacity)
	id := newLocalActorId(sys.nodeID, mbx)
	a := newActor(id, mbx, state, handler, sys.logger)
	sys.registry.insert(a)
	return id
}

// Send appends msg to aid's mailbox, blocking while the mailbox is at
// capacity, and schedules the actor on the run queue exactly when the
// push causes a 0→1 deliverable transition (spec.md §4.4's central
// scheduling invariant). Send itself may also block if the run queue is
// at capacity, per spec.md §5.
func Send(sys *System, aid ActorId, msg Message) error {
	switch aid.sender.kind {
	case senderRemote:
		panic("actor: remote actors not implemented")
	case senderLocal:
		deliverable := aid.sender.mbx.pushBlocking(msg)
		if deliverable == 1 {
			return sys.runQueue.push(aid)
		}
		return nil
	default:
		return ErrUnknownActor
	}
}

// TrySend is the non-blocking variant of Send: it returns ErrFull
// immediately instead of waiting for mailbox space, surfacing
// Mailbox.Push's error to a caller that opted out of backpressure
// blocking (spec.md §7: "Full is observable only to nonblocking
// producers"). Only the mailbox side is non-blocking: like Send, it
// still blocks when the push raises a 0→1 edge and the run queue is at
// capacity.
func TrySend(sys *System, aid ActorId, msg Message) error {
	switch aid.sender.kind {
	case senderRemote:
		panic("actor: remote actors not implemented")
	case senderLocal:
		deliverable, err := aid.sender.mbx.Push(msg)
		if err != nil {
			return err
		}
		if deliverable == 1 {
			return sys.runQueue.push(aid)
		}
		return nil
	default:
		return ErrUnknownActor
	}
}

// ActorCount returns the number of actors currently registered. Useful
// for tests and for the CLI demo's status output.
func (s *System) ActorCount() int {
	return s.registry.len()
}

// RunQueueLen returns the current number of ready ActorIds waiting to be
// dispatched. Diagnostic only; not part of the scheduling contract.
func (s *System) RunQueueLen() int {
	return s.runQueue.len()
}
