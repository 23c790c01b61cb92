package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/logger"
	"github.com/osse101/seedling/internal/sse"
	"github.com/osse101/seedling/internal/tree"
)

// StateReader is the part of tree.Service the worker needs
type StateReader interface {
	GetState(ctx context.Context) (*domain.TreeState, error)
}

// DayRolloverWorker broadcasts the seedling state at 00:00 UTC, when watering opens again
type DayRolloverWorker struct {
	trees       StateReader
	broadcaster tree.Broadcaster
	clock       clock.Clock
	timer       *time.Timer
	shutdown    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	mu          sync.Mutex
}

// NewDayRolloverWorker creates a new DayRolloverWorker
func NewDayRolloverWorker(trees StateReader, broadcaster tree.Broadcaster, clk clock.Clock) *DayRolloverWorker {
	return &DayRolloverWorker{
		trees:       trees,
		broadcaster: broadcaster,
		clock:       clk,
		shutdown:    make(chan struct{}),
	}
}

// Start schedules the first rollover
func (w *DayRolloverWorker) Start() {
	w.scheduleNext()
}

func (w *DayRolloverWorker) scheduleNext() {
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	now := w.clock.Now()
	duration := timeUntilNextDay(now)

	if duration > standbyThreshold {
		wait := duration - standbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgRolloverStandby, "next_check_at", now.UTC().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Timer fired early; reschedule for the remainder
		rem := timeUntilNextDay(w.clock.Now())
		if rem > earlyFireSlack && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.execute(context.Background())
		w.scheduleNext()
	})
	log.Info(LogMsgRolloverApproach, "next_rollover_at", now.UTC().Add(duration))
}

// Trigger runs a rollover broadcast immediately
func (w *DayRolloverWorker) Trigger(ctx context.Context) {
	logger.FromContext(ctx).Info(LogMsgRolloverManualTrigger)
	w.execute(ctx)
}

// execute reads the state and broadcasts it in a tracked goroutine
func (w *DayRolloverWorker) execute(parent context.Context) {
	w.mu.Lock()
	select {
	case <-w.shutdown:
		w.mu.Unlock()
		return
	default:
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), rolloverTimeout)
		defer cancel()
		log := logger.FromContext(ctx)

		today := domain.DayOf(w.clock.Now())
		log.Info(LogMsgRolloverStarting, "day", today)

		st, err := w.trees.GetState(ctx)
		if err != nil {
			log.Error(LogMsgRolloverFailed, "error", err)
			return
		}

		w.broadcaster.Broadcast(sse.EventTypeDayRollover, sse.TreePayload{
			State: *st,
			Cause: tree.CauseRollover,
			Day:   today,
		})
		log.Info(LogMsgRolloverCompleted, "day", today, "watered_count", st.WateredCount, "ready", st.ReadyForHarvest)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight broadcast
func (w *DayRolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverShutdown)

	w.mu.Lock()
	w.stopOnce.Do(func() { close(w.shutdown) })
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgRolloverShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRolloverShutdownSlow)
		return ctx.Err()
	}
}

// timeUntilNextDay is the duration from now until the next 00:00 UTC
func timeUntilNextDay(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return next.Sub(now)
}
