package domain

import (
	"fmt"
	"time"
)

// HarvestThreshold is the number of waterings after which the seedling is ripe
const HarvestThreshold = 10

// DayLayout is the calendar-day format stored for LastWatered (UTC)
const DayLayout = "2006-01-02"

// Day is a UTC calendar date formatted as YYYY-MM-DD
type Day string

// DayOf returns the UTC calendar day of t. Hour, minute and zone are discarded.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(DayLayout))
}

// ParseDay validates s as a calendar day
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fmt.Errorf("%w: bad day %q", ErrInvalidInput, s)
	}
	return Day(s), nil
}

// Time returns midnight UTC of the day
func (d Day) Time() (time.Time, error) {
	return time.Parse(DayLayout, string(d))
}

func (d Day) String() string {
	return string(d)
}

// Water rejection reasons
const (
	ReasonNeedHarvest  = "need_harvest"
	ReasonAlreadyToday = "already_today"
)

// Harvest outcome messages
const (
	HarvestMsgNotReady = "not_ready"
	HarvestMsgNetwork  = "network"
	HarvestMsgServer   = "server"
)

// Seedling phases
const (
	PhaseGrowing = "growing"
	PhaseRipe    = "ripe"
)

// TreeState is the shared seedling. The server holds exactly one; each client caches a copy.
type TreeState struct {
	WateredCount    int  `json:"wateredCount"`
	LastWatered     *Day `json:"lastWatered"`
	HarvestCount    int  `json:"harvestCount"`
	ReadyForHarvest bool `json:"readyForHarvest"`
}

// ZeroTreeState returns a freshly planted seedling
func ZeroTreeState() TreeState {
	return TreeState{}
}

// WateredOn reports whether the last watering happened on day
func (s TreeState) WateredOn(day Day) bool {
	return s.LastWatered != nil && *s.LastWatered == day
}

// Phase returns "ripe" while awaiting harvest, otherwise "growing"
func (s TreeState) Phase() string {
	if s.ReadyForHarvest {
		return PhaseRipe
	}
	return PhaseGrowing
}

// WaterResult is the outcome of a watering attempt. Rejections are not errors.
type WaterResult struct {
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason,omitempty"`
	WaterCount      int    `json:"waterCount"`
	ReadyForHarvest bool   `json:"readyForHarvest"`
}

// HarvestResult is the outcome of a harvest attempt. "not_ready" is not an error.
type HarvestResult struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
	HarvestCount int    `json:"harvestCount"`
}
