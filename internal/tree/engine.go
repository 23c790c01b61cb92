package tree

import "github.com/osse101/seedling/internal/domain"

// Engine provides pure seedling transition logic (no storage dependencies).
// The authoritative service and the client mirror both run their decisions through it.
type Engine struct{}

// NewEngine creates a new tree engine
func NewEngine() *Engine {
	return &Engine{}
}

// Water applies one watering attempt on the given day and returns the next state.
// A rejected attempt returns the input state unchanged.
func (e *Engine) Water(st domain.TreeState, today domain.Day) (domain.TreeState, domain.WaterResult) {
	if st.ReadyForHarvest {
		return st, domain.WaterResult{
			Allowed:         false,
			Reason:          domain.ReasonNeedHarvest,
			WaterCount:      st.WateredCount,
			ReadyForHarvest: true,
		}
	}
	if st.WateredOn(today) {
		return st, domain.WaterResult{
			Allowed:         false,
			Reason:          domain.ReasonAlreadyToday,
			WaterCount:      st.WateredCount,
			ReadyForHarvest: false,
		}
	}

	next := min(st.WateredCount+1, domain.HarvestThreshold)
	day := today
	out := domain.TreeState{
		WateredCount:    next,
		LastWatered:     &day,
		HarvestCount:    st.HarvestCount,
		ReadyForHarvest: next == domain.HarvestThreshold,
	}

	return out, domain.WaterResult{
		Allowed:         true,
		WaterCount:      out.WateredCount,
		ReadyForHarvest: out.ReadyForHarvest,
	}
}

// Harvest resets a ripe seedling and bumps the lifetime counter.
// A seedling that is still growing is returned unchanged with "not_ready".
func (e *Engine) Harvest(st domain.TreeState) (domain.TreeState, domain.HarvestResult) {
	if !st.ReadyForHarvest {
		return st, domain.HarvestResult{
			OK:           false,
			Message:      domain.HarvestMsgNotReady,
			HarvestCount: st.HarvestCount,
		}
	}

	out := domain.TreeState{
		WateredCount:    0,
		LastWatered:     nil,
		HarvestCount:    st.HarvestCount + 1,
		ReadyForHarvest: false,
	}
	return out, domain.HarvestResult{OK: true, HarvestCount: out.HarvestCount}
}

// CanWater reports whether a watering on today would be accepted
func (e *Engine) CanWater(st domain.TreeState, today domain.Day) bool {
	return !st.WateredOn(today) && !st.ReadyForHarvest
}
