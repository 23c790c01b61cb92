package mirror

import "time"

// StateKey is the fixed key the cached TreeState lives under
const StateKey = "tree_state_v1"

// Keyring entry holding the locally-known admin secret
const (
	KeyringService = "seedling"
	KeyringUser    = "admin"
)

// Remote API paths
const (
	PathTree    = "/api/tree"
	PathWater   = "/api/water"
	PathHarvest = "/api/harvest"
	PathEvents  = "/api/events"
)

const (
	HeaderAdminPassword = "X-Admin-Pw"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	ContentTypeJSON     = "application/json"
	ContentTypeStream   = "text/event-stream"
)

// DefaultTimeout bounds a single remote call. There are no retries.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a non-2xx body is read for the error code
const maxErrorBody = 4 << 10

// Event stream tuning
const (
	watchInitialBackoff    = 1 * time.Second
	watchMaxBackoff        = 30 * time.Second
	watchBackoffMultiplier = 2.0
	watchBufferSize        = 64 << 10
)

// Log messages
const (
	LogMsgCacheCorrupt      = "Local tree cache unreadable, using zero state"
	LogMsgRemoteWaterFailed = "Remote water failed, watering locally"
	LogMsgRemoteHarvestDown = "Remote harvest unreachable"
	LogMsgLocalHarvest      = "Harvesting locally with provisioned admin secret"
	LogMsgSyncFailed        = "Sync from server failed"
	LogMsgWatchConnected    = "Connected to seedling event stream"
	LogMsgWatchFailed       = "Event stream connection failed"
	LogMsgWatchStopped      = "Event stream watcher stopped"
	LogMsgWatchParseError   = "Failed to parse seedling event"
	LogMsgWatchApplyError   = "Failed to apply seedling event to local cache"
)
