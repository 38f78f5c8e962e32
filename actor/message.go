package actor

// Message is an opaque, immutable value carried by an actor's mailbox.
// The runtime never inspects a Message's contents; only the receiving
// actor's handler interprets it. This mirrors the original source's
// `dyn Any + Send + Sync` message type.
type Message any

// Dispatch attempts to narrow msg to the payload type T and, on success,
// calls f with the ActorId, the mutable actor state and the narrowed
// payload, returning its result and true. On a type mismatch it returns
// the zero value of R and false, letting callers chain several Dispatch
// calls to fan out on payload variants, as spec.md's dispatch<T> helper
// describes.
func Dispatch[T any, S any, R any](aid ActorId, state *S, msg Message, f func(ActorId, *S, T) R) (R, bool) {
	var zero R
	payload, ok := msg.(T)
	if !ok {
		return zero, false
	}
	return f(aid, state, payload), true
}
