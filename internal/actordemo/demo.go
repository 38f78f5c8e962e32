// Package actordemo wires the actor runtime into a small, self-contained
// workload used by the actorctl CLI to exercise a live System end to end:
// a configurable number of counter actors, fed by a configurable number
// of concurrent producers, each sending a configurable number of
// increments.
package actordemo

import (
	"fmt"
	"sync"
	"time"

	"github.com/markintheabyss/actorsys/actor"
	"go.uber.org/zap"
)

// Config controls the shape of a demo run. Field names mirror the keys
// of actorctl.yaml, which can also be set as ACTORCTL_* environment
// variables.
type Config struct {
	WorkerCount      int           `mapstructure:"worker_count"`
	RunQueueCapacity int           `mapstructure:"run_queue_capacity"`
	MailboxCapacity  int           `mapstructure:"mailbox_capacity"`
	ActorCount       int           `mapstructure:"actor_count"`
	ProducerCount    int           `mapstructure:"producer_count"`
	MessagesEach     int           `mapstructure:"messages_each"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

// Result summarizes a completed demo run for the CLI to print.
type Result struct {
	ActorCount   int
	TotalSent    int
	TotalCounted int64
	Elapsed      time.Duration
}

// Run spawns Config.ActorCount counter actors under a fresh System, drives
// Config.ProducerCount concurrent goroutines each sending Config.MessagesEach
// increments spread round-robin across the actors, waits for every send to
// be acknowledged, and shuts the system down cleanly before returning.
func Run(cfg Config, logger *zap.Logger) (Result, error) {
	if cfg.ActorCount < 1 {
		return Result{}, fmt.Errorf("actordemo: actor_count must be >= 1, got %d", cfg.ActorCount)
	}
	if cfg.ProducerCount < 1 {
		return Result{}, fmt.Errorf("actordemo: producer_count must be >= 1, got %d", cfg.ProducerCount)
	}

	sys := actor.New(
		actor.WithWorkerCount(cfg.WorkerCount),
		actor.WithRunQueueCapacity(cfg.RunQueueCapacity),
		actor.WithMailboxCapacity(cfg.MailboxCapacity),
		actor.WithLogger(logger),
	)
	defer sys.Shutdown()

	type counterState struct {
		total int64
	}

	var totalMu sync.Mutex
	var grandTotal int64
	acks := make(chan struct{}, cfg.ActorCount*cfg.MessagesEach*cfg.ProducerCount)

	ids := make([]actor.ActorId, cfg.ActorCount)
	for i := range ids {
		ids[i] = actor.Spawn(sys, counterState{}, actor.Handler[counterState](
			func(s *counterState, self actor.ActorId, msg actor.Message) actor.Status {
				s.total += msg.(int64)
				totalMu.Lock()
				grandTotal++
				totalMu.Unlock()
				acks <- struct{}{}
				return actor.Processed
			},
		))
	}

	start := time.Now()

	var wg sync.WaitGroup
	for p := 0; p < cfg.ProducerCount; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < cfg.MessagesEach; i++ {
				target := ids[(p+i)%len(ids)]
				if err := actor.Send(sys, target, int64(1)); err != nil {
					logger.Warn("send failed", zap.Error(err))
				}
			}
		}(p)
	}
	wg.Wait()

	totalSent := cfg.ProducerCount * cfg.MessagesEach
	deadline := time.After(cfg.ShutdownTimeout)
	received := 0
	for received < totalSent {
		select {
		case <-acks:
			received++
		case <-deadline:
			return Result{}, fmt.Errorf("actordemo: timed out waiting for delivery, got %d/%d", received, totalSent)
		}
	}

	elapsed := time.Since(start)

	totalMu.Lock()
	defer totalMu.Unlock()
	return Result{
		ActorCount:   cfg.ActorCount,
		TotalSent:    totalSent,
		TotalCounted: grandTotal,
		Elapsed:      elapsed,
	}, nil
}
