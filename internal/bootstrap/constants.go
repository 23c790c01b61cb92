package bootstrap

import "time"

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFileName is the rotating log file under LOG_DIR
	LogFileName = "seedling.log"

	// Rotation limits for the log file
	LogMaxSizeMB  = 10
	LogMaxBackups = 9
	LogMaxAgeDays = 28
)

// ShutdownTimeout bounds graceful shutdown after a signal
const ShutdownTimeout = 15 * time.Second

// Log messages
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting seedling"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgNotifierEnabled     = "Discord webhook notifications enabled"
	LogMsgNotifierDisabled    = "Discord webhook not configured, notifications disabled"
	LogMsgConfigWarning       = "Configuration warning"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Day rollover worker shutdown failed"
	LogMsgStoreCloseFailed     = "Store close failed"

	LogMsgServiceShutdownFailed = " service shutdown failed"
	ServiceNameTree             = "tree"
)
