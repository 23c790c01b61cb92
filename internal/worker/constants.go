package worker

import "time"

// Log messages for the day rollover worker
const (
	LogMsgRolloverStarting      = "Day rollover starting"
	LogMsgRolloverCompleted     = "Day rollover broadcast"
	LogMsgRolloverFailed        = "Day rollover failed"
	LogMsgRolloverStandby       = "Day rollover standby"
	LogMsgRolloverApproach      = "Day rollover scheduled"
	LogMsgRolloverManualTrigger = "Day rollover manually triggered"
	LogMsgRolloverShutdown      = "Shutting down day rollover worker"
	LogMsgRolloverShutdownDone  = "Day rollover worker shutdown complete"
	LogMsgRolloverShutdownSlow  = "Day rollover worker shutdown timeout"
)

// Scheduling windows. Long waits park until standbyLead before midnight, then arm the real timer.
const (
	standbyThreshold = 1 * time.Hour
	standbyLead      = 45 * time.Minute
	earlyFireSlack   = 10 * time.Second
	rolloverTimeout  = 10 * time.Second
)
