package tree

import (
	"context"
	"sync"

	"github.com/osse101/seedling/internal/domain"
)

// fakeRepository is an in-memory repository.Tree mirroring the SQL statements column for column
type fakeRepository struct {
	mu      sync.Mutex
	state   *domain.TreeState
	writes  int
	failGet error
}

func newFakeRepository() *fakeRepository {
	zero := domain.ZeroTreeState()
	return &fakeRepository{state: &zero}
}

func (f *fakeRepository) EnsureTreeState(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == nil {
		zero := domain.ZeroTreeState()
		f.state = &zero
	}
	return nil
}

func (f *fakeRepository) GetTreeState(_ context.Context) (*domain.TreeState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	if f.state == nil {
		return nil, domain.ErrNotFound
	}
	st := cloneState(*f.state)
	return &st, nil
}

func (f *fakeRepository) RecordWatering(_ context.Context, wateredCount int, day domain.Day, ready bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.state.WateredCount = wateredCount
	f.state.LastWatered = &day
	f.state.ReadyForHarvest = ready
	return nil
}

func (f *fakeRepository) RecordHarvest(_ context.Context, harvestCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.state.WateredCount = 0
	f.state.LastWatered = nil
	f.state.ReadyForHarvest = false
	f.state.HarvestCount = harvestCount
	return nil
}

func (f *fakeRepository) ResetTreeState(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	zero := domain.ZeroTreeState()
	f.state = &zero
	return nil
}

func (f *fakeRepository) snapshot() domain.TreeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneState(*f.state)
}
