package actor

import "go.uber.org/zap"

const (
	defaultWorkerCount      = 4
	defaultRunQueueCapacity = 256
	defaultMailboxCapacity  = 32
)

type options struct {
	workerCount      int
	runQueueCapacity int
	mailboxCapacity  int
	logger           *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{
		workerCount:      defaultWorkerCount,
		runQueueCapacity: defaultRunQueueCapacity,
		mailboxCapacity:  defaultMailboxCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Option configures a System at construction time, following the
// functional-options idiom the teacher package uses for its own
// Mailbox/Option construction.
type Option func(*options)

// WithWorkerCount sets the number of dispatcher worker goroutines.
// Must be >= 1; New panics otherwise.
func WithWorkerCount(n int) Option {
	return func(o *options) { o.workerCount = n }
}

// WithRunQueueCapacity sets the bounded run queue's capacity. Must be
// >= 1; New panics otherwise.
func WithRunQueueCapacity(n int) Option {
	return func(o *options) { o.runQueueCapacity = n }
}

// WithMailboxCapacity sets the default mailbox capacity new actors get
// from Spawn when no explicit capacity is given via SpawnWithCapacity.
func WithMailboxCapacity(n int) Option {
	return func(o *options) { o.mailboxCapacity = n }
}

// WithLogger sets the structured logger used for handler-fault and
// lifecycle logging. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}
