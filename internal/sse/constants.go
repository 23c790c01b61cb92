package sse

import "time"

// Channel capacities. A full client buffer drops events for that client only.
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 16
)

// KeepaliveInterval keeps idle proxies from closing the stream
const KeepaliveInterval = 30 * time.Second

// Event types for SSE
const (
	// EventTypeTreeUpdated carries the new state after a water, harvest or reset
	EventTypeTreeUpdated = "tree.updated"

	// EventTypeDayRollover is sent at UTC midnight when watering opens again
	EventTypeDayRollover = "tree.day_rollover"

	// EventTypeConnected is the first event every client receives
	EventTypeConnected = "connected"

	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes lists the event types a client wants, comma separated
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
)
