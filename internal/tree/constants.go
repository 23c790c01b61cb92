package tree

import "time"

// Cache settings for the singleton state
const (
	stateCacheKey  = "tree"
	stateCacheSize = 1
	// StateCacheTTL bounds staleness when something outside the service writes the row
	StateCacheTTL = 2 * time.Second
)

// NotifyTimeout bounds each outgoing notification
const NotifyTimeout = 10 * time.Second

// Storage operation names used in errors and metrics
const (
	opGetState       = "get_tree_state"
	opEnsureState    = "ensure_tree_state"
	opRecordWatering = "record_watering"
	opRecordHarvest  = "record_harvest"
	opResetState     = "reset_tree_state"
)

// Causes attached to broadcast events
const (
	CauseWater    = "water"
	CauseHarvest  = "harvest"
	CauseReset    = "reset"
	CauseRollover = "rollover"
)

// Log messages
const (
	LogMsgWatered         = "Seedling watered"
	LogMsgWaterRejected   = "Watering rejected"
	LogMsgHarvested       = "Seedling harvested"
	LogMsgHarvestNotReady = "Harvest attempted before ripe"
	LogMsgUnauthorized    = "Admin credential rejected"
	LogMsgReset           = "Seedling reset"
	LogMsgStateRecreated  = "Tree state row was missing, recreated"
	LogMsgNotifyFailed    = "Failed to send notification"
)
