package mirror

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/seedling/internal/domain"
)

// Wire shapes of the server's 2xx bodies. Pointer fields tell a missing key
// apart from a zero value; a body missing any required key is malformed.

type wireTree struct {
	WateredCount    *int            `json:"wateredCount"`
	LastWatered     json.RawMessage `json:"lastWatered"`
	HarvestCount    *int            `json:"harvestCount"`
	ReadyForHarvest *bool           `json:"readyForHarvest"`
}

func (w wireTree) state() (*domain.TreeState, error) {
	if w.WateredCount == nil || w.HarvestCount == nil || w.ReadyForHarvest == nil || len(w.LastWatered) == 0 {
		return nil, fmt.Errorf("%w: tree state is missing fields", ErrMalformedResponse)
	}

	st := &domain.TreeState{
		WateredCount:    *w.WateredCount,
		HarvestCount:    *w.HarvestCount,
		ReadyForHarvest: *w.ReadyForHarvest,
	}

	var raw *string
	if err := json.Unmarshal(w.LastWatered, &raw); err != nil {
		return nil, fmt.Errorf("%w: lastWatered: %v", ErrMalformedResponse, err)
	}
	if raw != nil {
		day, err := domain.ParseDay(*raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lastWatered: %v", ErrMalformedResponse, err)
		}
		st.LastWatered = &day
	}
	return st, nil
}

type wireWater struct {
	Allowed         *bool  `json:"allowed"`
	Reason          string `json:"reason"`
	WaterCount      *int   `json:"waterCount"`
	ReadyForHarvest *bool  `json:"readyForHarvest"`
}

func (w wireWater) result() (*domain.WaterResult, error) {
	if w.Allowed == nil || w.WaterCount == nil || w.ReadyForHarvest == nil {
		return nil, fmt.Errorf("%w: water result is missing fields", ErrMalformedResponse)
	}
	if !*w.Allowed && w.Reason == "" {
		return nil, fmt.Errorf("%w: water rejection without reason", ErrMalformedResponse)
	}
	return &domain.WaterResult{
		Allowed:         *w.Allowed,
		Reason:          w.Reason,
		WaterCount:      *w.WaterCount,
		ReadyForHarvest: *w.ReadyForHarvest,
	}, nil
}

type wireHarvest struct {
	OK           *bool  `json:"ok"`
	Message      string `json:"message"`
	HarvestCount *int   `json:"harvestCount"`
}

func (w wireHarvest) result() (*domain.HarvestResult, error) {
	if w.OK == nil || w.HarvestCount == nil {
		return nil, fmt.Errorf("%w: harvest result is missing fields", ErrMalformedResponse)
	}
	if !*w.OK && w.Message == "" {
		return nil, fmt.Errorf("%w: harvest refusal without message", ErrMalformedResponse)
	}
	return &domain.HarvestResult{
		OK:           *w.OK,
		Message:      w.Message,
		HarvestCount: *w.HarvestCount,
	}, nil
}
