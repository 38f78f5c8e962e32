// Package actor implements an in-process actor runtime: a scheduler
// that dispatches messages from per-actor mailboxes to a shared pool of
// worker goroutines, and a bounded mailbox supporting a skip protocol
// that lets an actor transiently defer messages without discarding
// them.
package actor
