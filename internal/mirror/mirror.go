package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/tree"
)

// Mirror is the client-local copy of the seedling. It runs the same
// transitions as the server against its own cache, with no credential check.
// A single caller drives it; it does no locking of its own.
type Mirror struct {
	store  Store
	clock  clock.Clock
	engine *tree.Engine
}

// New creates a mirror over store
func New(store Store, clk clock.Clock) *Mirror {
	return &Mirror{
		store:  store,
		clock:  clk,
		engine: tree.NewEngine(),
	}
}

// Today is the client's UTC calendar day
func (m *Mirror) Today() domain.Day {
	return domain.DayOf(m.clock.Now())
}

// Read returns the cached state. A missing or unreadable cache reads as a
// freshly planted seedling, never as an error.
func (m *Mirror) Read() domain.TreeState {
	raw, err := m.store.Get(StateKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn(LogMsgCacheCorrupt, "error", err)
		}
		return domain.ZeroTreeState()
	}

	st, err := decodeState(raw)
	if err != nil {
		slog.Warn(LogMsgCacheCorrupt, "error", err)
		return domain.ZeroTreeState()
	}
	return st
}

// Water waters the cached seedling for today
func (m *Mirror) Water() (domain.WaterResult, error) {
	next, res := m.engine.Water(m.Read(), m.Today())
	if res.Allowed {
		if err := m.write(next); err != nil {
			return domain.WaterResult{}, err
		}
	}
	return res, nil
}

// CompleteHarvest harvests the cached seedling if it is ripe
func (m *Mirror) CompleteHarvest() (domain.HarvestResult, error) {
	next, res := m.engine.Harvest(m.Read())
	if res.OK {
		if err := m.write(next); err != nil {
			return domain.HarvestResult{}, err
		}
	}
	return res, nil
}

// Reset overwrites the cache with the zero state
func (m *Mirror) Reset() (domain.TreeState, error) {
	st := domain.ZeroTreeState()
	if err := m.write(st); err != nil {
		return domain.TreeState{}, err
	}
	return st, nil
}

// CanWaterToday reports whether a local watering would be accepted now
func (m *Mirror) CanWaterToday() bool {
	return m.engine.CanWater(m.Read(), m.Today())
}

// Overwrite replaces the cache with st verbatim (after sanitising)
func (m *Mirror) Overwrite(st domain.TreeState) error {
	return m.write(sanitize(st))
}

func (m *Mirror) write(st domain.TreeState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode tree state: %w", err)
	}
	if err := m.store.Set(StateKey, raw); err != nil {
		return fmt.Errorf("write local tree state: %w", err)
	}
	return nil
}

// cachedState tolerates missing or null fields
type cachedState struct {
	WateredCount    *int    `json:"wateredCount"`
	LastWatered     *string `json:"lastWatered"`
	HarvestCount    *int    `json:"harvestCount"`
	ReadyForHarvest *bool   `json:"readyForHarvest"`
}

func decodeState(raw []byte) (domain.TreeState, error) {
	var c cachedState
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.TreeState{}, err
	}

	var st domain.TreeState
	if c.WateredCount != nil {
		st.WateredCount = *c.WateredCount
	}
	if c.HarvestCount != nil {
		st.HarvestCount = *c.HarvestCount
	}
	if c.ReadyForHarvest != nil {
		st.ReadyForHarvest = *c.ReadyForHarvest
	}
	if c.LastWatered != nil && *c.LastWatered != "" {
		if day, err := domain.ParseDay(*c.LastWatered); err == nil {
			st.LastWatered = &day
		}
	}
	return sanitize(st), nil
}

// sanitize clamps counters into range
func sanitize(st domain.TreeState) domain.TreeState {
	st.WateredCount = max(0, min(st.WateredCount, domain.HarvestThreshold))
	st.HarvestCount = max(0, st.HarvestCount)
	return st
}
