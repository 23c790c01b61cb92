package repository

import (
	"context"

	"github.com/osse101/seedling/internal/domain"
)

// Tree defines data access for the singleton seedling row.
// Each method is a single statement; there is no cross-call locking.
type Tree interface {
	// EnsureTreeState inserts the zero row if it does not exist yet
	EnsureTreeState(ctx context.Context) error
	GetTreeState(ctx context.Context) (*domain.TreeState, error)

	// RecordWatering writes the three watering columns. harvest_count is left alone.
	RecordWatering(ctx context.Context, wateredCount int, day domain.Day, ready bool) error
	// RecordHarvest clears the watering columns and stores the new lifetime count
	RecordHarvest(ctx context.Context, harvestCount int) error
	// ResetTreeState zeroes every column including harvest_count
	ResetTreeState(ctx context.Context) error
}
