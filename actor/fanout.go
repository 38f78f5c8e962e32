package actor

import "sync"

// FanOut concurrently sends msg to every actor in targets, blocking on
// each target's own backpressure the same way Send does, and returns one
// error per target in the same order (nil where the send succeeded).
// This supplements spec.md's core (which explicitly leaves multi-target
// delivery and remote fan-out unimplemented, §1) with a local multicast
// convenience, adapted from the teacher package's FanOut helper — there
// it forwarded channel values to a set of channel senders; here it
// forwards one message to a set of actor mailboxes concurrently instead
// of relaying a stream, since actor mailboxes aren't raw channels.
func FanOut(sys *System, msg Message, targets []ActorId) []error {
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	wg.Add(len(targets))
	for i, aid := range targets {
		go func(i int, aid ActorId) {
			defer wg.Done()
			errs[i] = Send(sys, aid, msg)
		}(i, aid)
	}
	wg.Wait()

	return errs
}
