package tree

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/sse"
	"github.com/osse101/seedling/mocks"
)

const testSecret = "971314"

var day1 = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestService(repo *fakeRepository, clk clock.Clock) Service {
	return NewService(repo, clk, admin.NewSecret(testSecret), nil, nil, time.Second)
}

func TestService_Scenario_WaterTwiceThenNextDay(t *testing.T) {
	repo := newFakeRepository()
	clk := clock.NewSimulatedClock(day1)
	svc := newTestService(repo, clk)
	ctx := context.Background()

	res, err := svc.Water(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WaterResult{Allowed: true, WaterCount: 1}, *res)

	clk.Advance(10 * time.Hour)
	res, err = svc.Water(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WaterResult{Allowed: false, Reason: domain.ReasonAlreadyToday, WaterCount: 1}, *res)
	assert.Equal(t, 1, repo.writes, "rejection must not write")

	clk.AdvanceDays(1)
	res, err = svc.Water(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WaterResult{Allowed: true, WaterCount: 2}, *res)

	st, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.WateredCount)
	assert.Equal(t, domain.DayOf(clk.Now()), *st.LastWatered)
}

func TestService_FullCycle(t *testing.T) {
	repo := newFakeRepository()
	clk := clock.NewSimulatedClock(day1)
	svc := newTestService(repo, clk)
	ctx := context.Background()

	res, err := svc.Harvest(ctx, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.HarvestResult{OK: false, Message: domain.HarvestMsgNotReady, HarvestCount: 0}, *res)

	for i := 1; i <= domain.HarvestThreshold; i++ {
		w, err := svc.Water(ctx)
		require.NoError(t, err)
		require.True(t, w.Allowed)
		assert.Equal(t, i, w.WaterCount)
		clk.AdvanceDays(1)
	}

	w, err := svc.Water(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WaterResult{Allowed: false, Reason: domain.ReasonNeedHarvest, WaterCount: 10, ReadyForHarvest: true}, *w)

	res, err = svc.Harvest(ctx, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.HarvestResult{OK: true, HarvestCount: 1}, *res)
	assert.Equal(t, domain.TreeState{HarvestCount: 1}, repo.snapshot())

	res, err = svc.Harvest(ctx, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.HarvestMsgNotReady, res.Message)
	assert.Equal(t, 1, res.HarvestCount)
}

func TestService_HarvestWrongCredentialNeverTouchesStore(t *testing.T) {
	for _, credential := range []string{"", "wrong", testSecret + " "} {
		repo := mocks.NewMockRepositoryTree(t)
		svc := NewService(repo, clock.NewSimulatedClock(day1), admin.NewSecret(testSecret), nil, nil, time.Second)

		res, err := svc.Harvest(context.Background(), credential)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "GetTreeState", mock.Anything)
	}
}

func TestService_ResetRequiresCredential(t *testing.T) {
	repo := newFakeRepository()
	clk := clock.NewSimulatedClock(day1)
	svc := newTestService(repo, clk)
	ctx := context.Background()

	_, err := svc.Water(ctx)
	require.NoError(t, err)

	_, err = svc.Reset(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, repo.snapshot().WateredCount)

	st, err := svc.Reset(ctx, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)
	assert.Equal(t, domain.ZeroTreeState(), repo.snapshot())

	// cache must reflect the reset immediately
	got, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *got)
}

func TestService_StorageErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	ctx := context.Background()

	t.Run("get state", func(t *testing.T) {
		repo := mocks.NewMockRepositoryTree(t)
		repo.On("GetTreeState", mock.Anything).Return(nil, boom).Once()
		svc := NewService(repo, clock.NewRealClock(), admin.NewSecret(testSecret), nil, nil, time.Second)

		st, err := svc.GetState(ctx)
		assert.Nil(t, st)
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("water write", func(t *testing.T) {
		repo := mocks.NewMockRepositoryTree(t)
		repo.On("GetTreeState", mock.Anything).Return(&domain.TreeState{}, nil).Once()
		repo.On("RecordWatering", mock.Anything, 1, domain.DayOf(day1), false).Return(boom).Once()
		svc := NewService(repo, clock.NewSimulatedClock(day1), admin.NewSecret(testSecret), nil, nil, time.Second)

		res, err := svc.Water(ctx)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})

	t.Run("harvest write", func(t *testing.T) {
		repo := mocks.NewMockRepositoryTree(t)
		repo.On("GetTreeState", mock.Anything).Return(&domain.TreeState{WateredCount: 10, ReadyForHarvest: true, HarvestCount: 4}, nil).Once()
		repo.On("RecordHarvest", mock.Anything, 5).Return(boom).Once()
		svc := NewService(repo, clock.NewRealClock(), admin.NewSecret(testSecret), nil, nil, time.Second)

		res, err := svc.Harvest(ctx, testSecret)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestService_StorageTimeoutBoundsCalls(t *testing.T) {
	repo := mocks.NewMockRepositoryTree(t)
	repo.On("GetTreeState", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()
	svc := NewService(repo, clock.NewRealClock(), admin.NewSecret(testSecret), nil, nil, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.Water(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestService_RecreatesMissingRow(t *testing.T) {
	repo := newFakeRepository()
	repo.state = nil
	svc := newTestService(repo, clock.NewSimulatedClock(day1))

	st, err := svc.GetState(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)
}

func TestService_GetStateUsesCache(t *testing.T) {
	repo := mocks.NewMockRepositoryTree(t)
	repo.On("GetTreeState", mock.Anything).Return(&domain.TreeState{WateredCount: 3}, nil).Once()
	svc := NewService(repo, clock.NewRealClock(), admin.NewSecret(testSecret), nil, nil, time.Second)

	for i := 0; i < 3; i++ {
		st, err := svc.GetState(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, st.WateredCount)
		// mutating the returned copy must not leak into the cache
		st.WateredCount = 99
	}
}

func TestService_FailedWriteDropsCachedState(t *testing.T) {
	boom := errors.New("write timed out")
	repo := mocks.NewMockRepositoryTree(t)
	repo.On("GetTreeState", mock.Anything).Return(&domain.TreeState{WateredCount: 3}, nil).Twice()
	repo.On("RecordWatering", mock.Anything, 4, domain.DayOf(day1), false).Return(boom).Once()
	repo.On("GetTreeState", mock.Anything).Return(&domain.TreeState{WateredCount: 4, LastWatered: dayPtr(domain.DayOf(day1))}, nil).Once()
	svc := NewService(repo, clock.NewSimulatedClock(day1), admin.NewSecret(testSecret), nil, nil, time.Second)
	ctx := context.Background()

	st, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.WateredCount)

	_, err = svc.Water(ctx)
	require.ErrorIs(t, err, domain.ErrStorage)

	st, err = svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.WateredCount)
}

func TestService_BroadcastsAndNotifies(t *testing.T) {
	repo := newFakeRepository()
	repo.state = &domain.TreeState{WateredCount: 9, HarvestCount: 2}
	clk := clock.NewSimulatedClock(day1)
	today := domain.DayOf(day1)

	broadcaster := mocks.NewMockBroadcaster(t)
	notifier := mocks.NewMockNotifier(t)

	ripe := domain.TreeState{WateredCount: 10, LastWatered: &today, HarvestCount: 2, ReadyForHarvest: true}
	harvested := domain.TreeState{HarvestCount: 3}

	broadcaster.On("Broadcast", sse.EventTypeTreeUpdated, sse.TreePayload{State: ripe, Cause: CauseWater, Day: today}).Once()
	broadcaster.On("Broadcast", sse.EventTypeTreeUpdated, sse.TreePayload{State: harvested, Cause: CauseHarvest, Day: today}).Once()
	notifier.On("SeedlingRipe", mock.Anything, ripe).Return(nil).Once()
	notifier.On("SeedlingHarvested", mock.Anything, harvested).Return(errors.New("webhook down")).Once()

	svc := NewService(repo, clk, admin.NewSecret(testSecret), broadcaster, notifier, time.Second)
	ctx := context.Background()

	w, err := svc.Water(ctx)
	require.NoError(t, err)
	assert.True(t, w.ReadyForHarvest)

	h, err := svc.Harvest(ctx, testSecret)
	require.NoError(t, err)
	assert.True(t, h.OK)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(shutdownCtx))
}
