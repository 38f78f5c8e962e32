package actor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrFull is returned by Mailbox.Push when the mailbox has reached its
// configured capacity.
var ErrFull = errors.New("actor: mailbox full")

// ErrEmpty is returned by Mailbox.Peek, Pop and Skip when there is no
// deliverable message.
var ErrEmpty = errors.New("actor: mailbox empty")

// ErrRunQueueClosed is returned by the run queue once the dispatcher has
// been shut down. It is not reachable during normal operation.
var ErrRunQueueClosed = errors.New("actor: run queue closed")

// ErrUnknownActor is returned by Send and TrySend when an ActorId carries
// a sender kind they do not recognise. Neither consults the Registry, so
// an ActorId the Registry has no record of does not produce it.
var ErrUnknownActor = errors.New("actor: unknown actor id")

// HandlerFault wraps a panic recovered from a handler turn. It is never
// surfaced to other actors or to send callers; the dispatcher only logs
// it.
type HandlerFault struct {
	AID   ActorId
	Cause error
}

func (f *HandlerFault) Error() string {
	return fmt.Sprintf("actor: handler fault on %s: %v", f.AID, f.Cause)
}

func (f *HandlerFault) Unwrap() error {
	return f.Cause
}

// Format prints the cause's stack trace under %+v, which is the form
// zap.Error records as the log line's verbose error; every other verb
// prints Error().
func (f *HandlerFault) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "actor: handler fault on %s: %+v", f.AID, f.Cause)
		return
	}
	fmt.Fprint(s, f.Error())
}

// newHandlerFault builds a HandlerFault from a recovered panic value,
// attaching a stack trace via pkg/errors so the log line carries one.
func newHandlerFault(aid ActorId, recovered any) *HandlerFault {
	var cause error
	switch v := recovered.(type) {
	case error:
		cause = errors.WithStack(v)
	default:
		cause = errors.WithStack(fmt.Errorf("%v", v))
	}
	return &HandlerFault{AID: aid, Cause: cause}
}
