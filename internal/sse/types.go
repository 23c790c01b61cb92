package sse

import "github.com/osse101/seedling/internal/domain"

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TreePayload is the payload of tree.updated and tree.day_rollover
type TreePayload struct {
	State domain.TreeState `json:"state"`
	// Cause names the operation that produced the state ("water", "harvest", "reset", "rollover")
	Cause string     `json:"cause"`
	Day   domain.Day `json:"day"`
}

// ConnectedPayload is sent once when a client subscribes
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters"`
}
