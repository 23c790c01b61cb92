package tree

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/logger"
	"github.com/osse101/seedling/internal/metrics"
	"github.com/osse101/seedling/internal/repository"
	"github.com/osse101/seedling/internal/sse"
)

// Service is the authoritative seedling. All clients share its single state.
type Service interface {
	GetState(ctx context.Context) (*domain.TreeState, error)
	Water(ctx context.Context) (*domain.WaterResult, error)
	Harvest(ctx context.Context, credential string) (*domain.HarvestResult, error)
	Reset(ctx context.Context, credential string) (*domain.TreeState, error)
	Shutdown(ctx context.Context) error
}

// Broadcaster pushes state changes to connected clients
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// Notifier announces milestones to an outside channel
type Notifier interface {
	SeedlingRipe(ctx context.Context, state domain.TreeState) error
	SeedlingHarvested(ctx context.Context, state domain.TreeState) error
}

type service struct {
	repo        repository.Tree
	clock       clock.Clock
	secret      admin.Secret
	broadcaster Broadcaster
	notifier    Notifier
	timeout     time.Duration
	engine      *Engine
	cache       *stateCache
	wg          sync.WaitGroup
}

// NewService creates the tree service. broadcaster and notifier may be nil.
// storageTimeout bounds every repository call.
func NewService(
	repo repository.Tree,
	clk clock.Clock,
	secret admin.Secret,
	broadcaster Broadcaster,
	notifier Notifier,
	storageTimeout time.Duration,
) Service {
	return &service{
		repo:        repo,
		clock:       clk,
		secret:      secret,
		broadcaster: broadcaster,
		notifier:    notifier,
		timeout:     storageTimeout,
		engine:      NewEngine(),
		cache:       newStateCache(StateCacheTTL),
	}
}

// GetState returns the current singleton, served from cache when fresh
func (s *service) GetState(ctx context.Context) (*domain.TreeState, error) {
	if st, ok := s.cache.Get(); ok {
		metrics.StateCacheHits.Inc()
		return &st, nil
	}

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(st)
	return &st, nil
}

// Water applies one watering for today's UTC date.
// Rejections come back as a result with Allowed=false, never as an error.
func (s *service) Water(ctx context.Context) (*domain.WaterResult, error) {
	log := logger.FromContext(ctx)
	today := domain.DayOf(s.clock.Now())

	st, err := s.load(ctx)
	if err != nil {
		metrics.WaterAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	next, res := s.engine.Water(st, today)
	if !res.Allowed {
		metrics.WaterAttempts.WithLabelValues(res.Reason).Inc()
		log.Debug(LogMsgWaterRejected, "reason", res.Reason, "watered_count", res.WaterCount)
		return &res, nil
	}

	err = s.call(ctx, opRecordWatering, func(ctx context.Context) error {
		return s.repo.RecordWatering(ctx, next.WateredCount, today, next.ReadyForHarvest)
	})
	if err != nil {
		s.cache.Invalidate()
		metrics.WaterAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	metrics.WaterAttempts.WithLabelValues(metrics.OutcomeAllowed).Inc()
	log.Info(LogMsgWatered, "watered_count", next.WateredCount, "ready", next.ReadyForHarvest, "day", today)

	s.committed(next, CauseWater, today)
	if next.ReadyForHarvest {
		s.notify(func(ctx context.Context) error { return s.notifier.SeedlingRipe(ctx, next) })
	}

	return &res, nil
}

// Harvest resets a ripe seedling. The credential is checked before anything is read.
func (s *service) Harvest(ctx context.Context, credential string) (*domain.HarvestResult, error) {
	log := logger.FromContext(ctx)

	if err := s.secret.Check(credential); err != nil {
		metrics.HarvestAttempts.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
		log.Warn(LogMsgUnauthorized, "operation", CauseHarvest)
		return nil, err
	}

	st, err := s.load(ctx)
	if err != nil {
		metrics.HarvestAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	next, res := s.engine.Harvest(st)
	if !res.OK {
		metrics.HarvestAttempts.WithLabelValues(res.Message).Inc()
		log.Debug(LogMsgHarvestNotReady, "watered_count", st.WateredCount)
		return &res, nil
	}

	err = s.call(ctx, opRecordHarvest, func(ctx context.Context) error {
		return s.repo.RecordHarvest(ctx, next.HarvestCount)
	})
	if err != nil {
		s.cache.Invalidate()
		metrics.HarvestAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	metrics.HarvestAttempts.WithLabelValues(metrics.OutcomeHarvested).Inc()
	log.Info(LogMsgHarvested, "harvest_count", next.HarvestCount)

	s.committed(next, CauseHarvest, domain.DayOf(s.clock.Now()))
	s.notify(func(ctx context.Context) error { return s.notifier.SeedlingHarvested(ctx, next) })

	return &res, nil
}

// Reset returns the singleton to a freshly planted seedling, lifetime count included
func (s *service) Reset(ctx context.Context, credential string) (*domain.TreeState, error) {
	log := logger.FromContext(ctx)

	if err := s.secret.Check(credential); err != nil {
		log.Warn(LogMsgUnauthorized, "operation", CauseReset)
		return nil, err
	}

	if err := s.call(ctx, opResetState, s.repo.ResetTreeState); err != nil {
		s.cache.Invalidate()
		return nil, err
	}

	zero := domain.ZeroTreeState()
	log.Info(LogMsgReset)
	s.committed(zero, CauseReset, domain.DayOf(s.clock.Now()))

	return &zero, nil
}

// Shutdown waits for in-flight notifications
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load reads the row from storage, recreating it once if it has gone missing
func (s *service) load(ctx context.Context) (domain.TreeState, error) {
	var st *domain.TreeState
	get := func(ctx context.Context) error {
		var err error
		st, err = s.repo.GetTreeState(ctx)
		return err
	}

	err := s.call(ctx, opGetState, get)
	if errors.Is(err, domain.ErrNotFound) {
		logger.FromContext(ctx).Warn(LogMsgStateRecreated)
		if err = s.call(ctx, opEnsureState, s.repo.EnsureTreeState); err == nil {
			err = s.call(ctx, opGetState, get)
		}
	}
	if err != nil {
		return domain.TreeState{}, err
	}

	metrics.ObserveTreeState(st.WateredCount, st.HarvestCount)
	return *st, nil
}

// call runs one repository operation under the storage timeout and tags failures as storage errors
func (s *service) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		metrics.StorageErrors.WithLabelValues(op).Inc()
		return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
	}
	return nil
}

// committed refreshes the cache, gauges and stream after a successful write
func (s *service) committed(st domain.TreeState, cause string, day domain.Day) {
	s.cache.Set(st)
	metrics.ObserveTreeState(st.WateredCount, st.HarvestCount)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(sse.EventTypeTreeUpdated, sse.TreePayload{
			State: cloneState(st),
			Cause: cause,
			Day:   day,
		})
	}
}

// notify sends in the background so a slow webhook never delays a response
func (s *service) notify(send func(ctx context.Context) error) {
	if s.notifier == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			logger.FromContext(ctx).Warn(LogMsgNotifyFailed, "error", err)
		}
	}()
}
