package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Tree metric names
const (
	MetricNameWaterAttempts   = "seedling_water_attempts_total"
	MetricNameHarvestAttempts = "seedling_harvest_attempts_total"
	MetricNameWateredCount    = "seedling_watered_count"
	MetricNameHarvestCount    = "seedling_harvest_count"
	MetricNameStorageErrors   = "seedling_storage_errors_total"
	MetricNameStateCacheHits  = "seedling_state_cache_hits_total"
)

// Message board metric names
const (
	MetricNameMessagesPosted  = "seedling_messages_posted_total"
	MetricNameMessagesDeleted = "seedling_messages_deleted_total"
)

// Event stream metric names
const (
	MetricNameEventsBroadcast = "seedling_events_broadcast_total"
	MetricNameSSEClients      = "seedling_sse_clients"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Tree metric help text
const (
	HelpTextWaterAttempts   = "Total number of watering attempts by outcome"
	HelpTextHarvestAttempts = "Total number of harvest attempts by outcome"
	HelpTextWateredCount    = "Current watered count of the shared seedling"
	HelpTextHarvestCount    = "Lifetime number of harvests"
	HelpTextStorageErrors   = "Total number of failed storage calls by operation"
	HelpTextStateCacheHits  = "Total number of tree state reads served from cache"
)

// Message board metric help text
const (
	HelpTextMessagesPosted  = "Total number of messages posted"
	HelpTextMessagesDeleted = "Total number of admin message deletions by scope"
)

// Event stream metric help text
const (
	HelpTextEventsBroadcast = "Total number of events broadcast to stream clients"
	HelpTextSSEClients      = "Current number of connected event stream clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelScope     = "scope"
)

// Outcome label values that are not business rejection reasons
const (
	OutcomeAllowed      = "allowed"
	OutcomeHarvested    = "harvested"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// Path label used when no chi route matched
const PathUnmatched = "unmatched"

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
