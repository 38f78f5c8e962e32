package actor

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestSystem_SingleProducerThreeIncrements reproduces spec.md §8's first
// concrete scenario.
func TestSystem_SingleProducerThreeIncrements(t *testing.T) {
	defer goleak.VerifyNone(t)

	sys := New(WithWorkerCount(2), WithRunQueueCapacity(8))
	defer sys.Shutdown()

	var mu sync.Mutex
	state := 0
	done := make(chan struct{}, 3)

	aid := Spawn(sys, 0, Handler[int](func(s *int, self ActorId, msg Message) Status {
		mu.Lock()
		*s += msg.(int)
		state = *s
		mu.Unlock()
		done <- struct{}{}
		return Processed
	}))

	require.NoError(t, Send(sys, aid, 1))
	require.NoError(t, Send(sys, aid, 2))
	require.NoError(t, Send(sys, aid, 3))

	waitN(t, done, 3)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 6, state)
}

// TestSystem_ZeroToOneSchedulingEdge reproduces spec.md §8's 0→1 edge
// scenario: three sends from an idle single producer into a capacity-4
// mailbox should each have their handler invoked exactly once. It counts
// handler invocations only; the number of run-queue enqueues is not
// checked.
func TestSystem_ZeroToOneSchedulingEdge(t *testing.T) {
	defer goleak.VerifyNone(t)

	sys := New(WithWorkerCount(1), WithRunQueueCapacity(4))
	defer sys.Shutdown()

	var turns int64
	done := make(chan struct{}, 3)

	aid := SpawnWithCapacity(sys, struct{}{}, Handler[struct{}](func(s *struct{}, self ActorId, msg Message) Status {
		atomic.AddInt64(&turns, 1)
		done <- struct{}{}
		return Processed
	}), 4)

	for i := 0; i < 3; i++ {
		require.NoError(t, Send(sys, aid, i))
	}

	waitN(t, done, 3)
	assert.Equal(t, int64(3), atomic.LoadInt64(&turns))
}

// TestSystem_Backpressure reproduces spec.md §8's backpressure scenario:
// a capacity-2 mailbox whose handler is slow, fed by four concurrent
// producers, must deliver all four messages without ever exceeding
// capacity.
func TestSystem_Backpressure(t *testing.T) {
	defer goleak.VerifyNone(t)

	sys := New(WithWorkerCount(1), WithRunQueueCapacity(4))
	defer sys.Shutdown()

	var received int64
	done := make(chan struct{}, 4)

	aid := SpawnWithCapacity(sys, struct{}{}, Handler[struct{}](func(s *struct{}, self ActorId, msg Message) Status {
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&received, 1)
		done <- struct{}{}
		return Processed
	}), 2)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, Send(sys, aid, i))
		}(i)
	}
	wg.Wait()

	waitN(t, done, 4)
	assert.Equal(t, int64(4), atomic.LoadInt64(&received))
}

// TestSystem_ManyActorsManyProducers reproduces spec.md §8's fan-in
// scenario: 20 actors, 5 producer goroutines each sending 100 messages
// uniformly across actors; every actor's final counter must equal the
// number of messages targeted at it, and the grand total must match.
func TestSystem_ManyActorsManyProducers(t *testing.T) {
	defer goleak.VerifyNone(t)

	const (
		actorCount    = 20
		producerCount = 5
		perProducer   = 100
	)

	sys := New(WithWorkerCount(4), WithRunQueueCapacity(64))
	defer sys.Shutdown()

	type counter struct {
		mu  sync.Mutex
		n   int
		got chan struct{}
	}

	counters := make([]*counter, actorCount)
	aids := make([]ActorId, actorCount)
	for i := range counters {
		c := &counter{got: make(chan struct{}, producerCount*perProducer)}
		counters[i] = c
		idx := i
		aids[i] = SpawnWithCapacity(sys, 0, Handler[int](func(s *int, self ActorId, msg Message) Status {
			*s++
			counters[idx].mu.Lock()
			counters[idx].n++
			counters[idx].mu.Unlock()
			counters[idx].got <- struct{}{}
			return Processed
		}), 32)
	}

	var wg sync.WaitGroup
	targetOf := make([][]int, producerCount)
	for p := 0; p < producerCount; p++ {
		targetOf[p] = make([]int, perProducer)
		for i := range targetOf[p] {
			targetOf[p][i] = (p*perProducer + i) % actorCount
		}
	}

	for p := 0; p < producerCount; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for _, target := range targetOf[p] {
				require.NoError(t, Send(sys, aids[target], 1))
			}
		}(p)
	}
	wg.Wait()

	for i, c := range counters {
		want := 0
		for p := 0; p < producerCount; p++ {
			for _, target := range targetOf[p] {
				if target == i {
					want++
				}
			}
		}
		waitN(t, c.got, want)
		c.mu.Lock()
		assert.Equal(t, want, c.n, "actor %d", i)
		c.mu.Unlock()
	}
}

// TestSystem_FaultIsolation reproduces spec.md §8's fault-isolation
// scenario: one actor panics on every message, a sibling actor does not;
// the sibling must process all of its messages regardless.
func TestSystem_FaultIsolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	sys := New(WithWorkerCount(2), WithRunQueueCapacity(32))
	defer sys.Shutdown()

	faulting := SpawnWithCapacity(sys, 0, Handler[int](func(s *int, self ActorId, msg Message) Status {
		panic("always faults")
	}), 16)

	var mu sync.Mutex
	healthyCount := 0
	done := make(chan struct{}, 10)
	healthy := SpawnWithCapacity(sys, 0, Handler[int](func(s *int, self ActorId, msg Message) Status {
		mu.Lock()
		healthyCount++
		mu.Unlock()
		done <- struct{}{}
		return Processed
	}), 16)

	for i := 0; i < 10; i++ {
		require.NoError(t, Send(sys, faulting, i))
		require.NoError(t, Send(sys, healthy, i))
	}

	waitN(t, done, 10)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, healthyCount)
}

// TestSystem_AtMostOneTurn verifies no two handler invocations on the
// same actor ever overlap, spec.md §8's fourth invariant.
func TestSystem_AtMostOneTurn(t *testing.T) {
	defer goleak.VerifyNone(t)

	sys := New(WithWorkerCount(8), WithRunQueueCapacity(64))
	defer sys.Shutdown()

	var inFlight int32
	var violated int32
	done := make(chan struct{}, 200)

	aid := SpawnWithCapacity(sys, struct{}{}, Handler[struct{}](func(s *struct{}, self ActorId, msg Message) Status {
		if atomic.AddInt32(&inFlight, 1) > 1 {
			atomic.StoreInt32(&violated, 1)
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		done <- struct{}{}
		return Processed
	}), 200)

	for i := 0; i < 200; i++ {
		require.NoError(t, Send(sys, aid, i))
	}

	waitN(t, done, 200)
	assert.Equal(t, int32(0), atomic.LoadInt32(&violated))
}

func waitN(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-timeout:
			t.Fatalf("timed out waiting for %d signals, got %d", n, i)
		}
	}
}
