/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package fetcher runs bounded-concurrency multi-slot fetches. One
// orchestrator owns one run at a time: it spawns a worker pool, dispatches
// one focused fetch per slot, aggregates outcomes as they land, and emits
// throttled progress to an injected EventSink.
package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/models"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

const (
	// maxPoolSize caps the worker pool; small batches get one worker per
	// slot.
	maxPoolSize = 8

	// progressInterval throttles progress events on wall-clock time. The
	// final completion always fires regardless.
	progressInterval = 200 * time.Millisecond

	// quiesceTimeout bounds how long Stop waits for in-flight tasks.
	quiesceTimeout = 2 * time.Second

	workChannelMultiplier = 2
)

// State is the orchestrator lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// Orchestrator coordinates one multi-slot fetch run at a time. It is
// reusable after a run reaches a terminal state.
type Orchestrator struct {
	fetcher shelfapi.SlotFetcher
	sink    EventSink
	logger  logger.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an orchestrator. A nil sink is replaced with NoopSink.
func New(slotFetcher shelfapi.SlotFetcher, sink EventSink, log logger.Logger) *Orchestrator {
	if sink == nil {
		sink = NoopSink{}
	}

	return &Orchestrator{
		fetcher: slotFetcher,
		sink:    sink,
		logger:  log,
		state:   StateIdle,
	}
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Start begins a run fetching the given slots concurrently. It returns
// immediately; results flow through the EventSink. Starting while a run is
// active is a no-op.
func (o *Orchestrator) Start(ctx context.Context, slots []models.SlotID) error {
	if len(slots) == 0 {
		return ErrNoSlots
	}

	o.mu.Lock()

	if o.state == StateRunning {
		o.mu.Unlock()
		o.logger.Warn().Msg("Fetch already in progress, ignoring start request")

		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	o.state = StateRunning
	o.cancel = cancel
	o.done = done

	o.mu.Unlock()

	o.logger.Info().Int("slots", len(slots)).Msg("Starting multi-slot fetch")

	go func() {
		defer close(done)
		defer cancel()

		o.run(runCtx, slots)
	}()

	return nil
}

// Stop cancels the active run. In-flight tasks finish but their results are
// discarded; Stop waits up to quiesceTimeout for the pool to drain. A
// cancelled run never emits OnComplete.
func (o *Orchestrator) Stop() {
	o.mu.Lock()

	if o.state != StateRunning {
		o.mu.Unlock()
		return
	}

	cancel := o.cancel
	done := o.done

	o.mu.Unlock()

	o.logger.Info().Msg("Stopping multi-slot fetch")

	cancel()

	select {
	case <-done:
	case <-time.After(quiesceTimeout):
		o.logger.Warn().Msg("Worker pool did not quiesce within the stop deadline")
	}
}

// Wait blocks until the active run finishes. Returns immediately when no
// run was ever started.
func (o *Orchestrator) Wait() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()

	if done == nil {
		return
	}

	<-done
}

func (o *Orchestrator) run(ctx context.Context, slots []models.SlotID) {
	start := time.Now()
	total := len(slots)

	workers := total
	if workers > maxPoolSize {
		workers = maxPoolSize
	}

	workCh := make(chan models.SlotID, workers*workChannelMultiplier)
	resultCh := make(chan models.FetchOutcome, total)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			o.worker(ctx, workCh, resultCh)
		}()
	}

	go func() {
		defer close(workCh)

		for _, slot := range slots {
			select {
			case <-ctx.Done():
				return
			case workCh <- slot:
			}
		}
	}()

	go func() {
		wg.Wait()

		close(resultCh)
	}()

	outcomes := make(map[models.SlotID]models.FetchOutcome, total)

	var (
		completed    int
		succeeded    int
		lastProgress time.Time
	)

	for outcome := range resultCh {
		if ctx.Err() != nil {
			// Cancelled: drain the pool but discard everything.
			continue
		}

		outcomes[outcome.Slot] = outcome
		completed++

		if outcome.Success() {
			succeeded++
		} else {
			o.logger.Warn().
				Int("slot", int(outcome.Slot)).
				Err(outcome.Err).
				Msg("Slot fetch failed")
		}

		o.sink.OnSlotResult(outcome.Slot, outcome)

		if completed == total || time.Since(lastProgress) >= progressInterval {
			o.sink.OnProgress(completed, total)
			lastProgress = time.Now()
		}
	}

	o.finish(ctx, outcomes, succeeded, completed, time.Since(start))
}

func (o *Orchestrator) finish(ctx context.Context, outcomes map[models.SlotID]models.FetchOutcome, succeeded, completed int, elapsed time.Duration) {
	o.mu.Lock()

	if ctx.Err() != nil {
		o.state = StateCancelled
		o.mu.Unlock()

		o.logger.Info().Dur("elapsed", elapsed).Msg("Multi-slot fetch cancelled")

		return
	}

	o.state = StateCompleted
	o.mu.Unlock()

	status := models.BatchStatusFor(succeeded, completed-succeeded)

	o.logger.Info().
		Int("succeeded", succeeded).
		Int("failed", completed-succeeded).
		Str("status", status.String()).
		Dur("elapsed", elapsed).
		Msg("Multi-slot fetch complete")

	o.sink.OnComplete(models.BatchResult{
		Outcomes: outcomes,
		Status:   status,
		Elapsed:  elapsed,
	})
}

func (o *Orchestrator) worker(ctx context.Context, workCh <-chan models.SlotID, resultCh chan<- models.FetchOutcome) {
	for slot := range workCh {
		outcome := o.fetchSlot(ctx, slot)

		select {
		case <-ctx.Done():
			return
		case resultCh <- outcome:
		}
	}
}

// fetchSlot runs one task. A panic in the fetch path is recorded as that
// slot's failure rather than tearing down the pool.
func (o *Orchestrator) fetchSlot(ctx context.Context, slot models.SlotID) (outcome models.FetchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Int("slot", int(slot)).Interface("panic", r).Msg("Fetch task panicked")

			outcome = models.FetchOutcome{Slot: slot, Err: fmt.Errorf("%w: %v", errTaskPanic, r)}
		}
	}()

	payload, err := o.fetcher.FetchFocused(ctx, slot)
	if err != nil {
		return models.FetchOutcome{Slot: slot, Err: err}
	}

	return models.FetchOutcome{Slot: slot, Payload: payload}
}
