package config

import "time"

// Default values applied when the environment does not set a key
const (
	DefaultPort           = 3000
	DefaultAdminPassword  = "971314"
	DefaultDBDriver       = DriverSQLite
	DefaultDBPath         = "data.sqlite"
	DefaultDBHost         = "localhost"
	DefaultDBPort         = "5432"
	DefaultDBUser         = "postgres"
	DefaultDBName         = "seedling"
	DefaultDBMaxConns     = 10
	DefaultDBIdleTime     = 5 * time.Minute
	DefaultDBLifetime     = time.Hour
	DefaultStorageTimeout = 5 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultLogDir         = "logs"
	DefaultEnvironment    = "dev"
	DefaultVersion        = "dev"
)

// Supported DB_DRIVER values
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variable names
const (
	EnvPort                = "PORT"
	EnvAdminPassword       = "ADMIN_PW"
	EnvDBDriver            = "DB_DRIVER"
	EnvDBPath              = "DB_PATH"
	EnvDBUser              = "DB_USER"
	EnvDBPassword          = "DB_PASSWORD"
	EnvDBHost              = "DB_HOST"
	EnvDBPort              = "DB_PORT"
	EnvDBName              = "DB_NAME"
	EnvDBMaxConns          = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime   = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime   = "DB_MAX_CONN_LIFETIME"
	EnvStorageTimeout      = "STORAGE_TIMEOUT"
	EnvStaticDir           = "STATIC_DIR"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvLogDir              = "LOG_DIR"
	EnvEnvironment         = "ENVIRONMENT"
	EnvVersion             = "VERSION"
	EnvTrustedProxies      = "TRUSTED_PROXIES"
	EnvCORSOrigins         = "CORS_ORIGINS"
	EnvDiscordWebhookID    = "DISCORD_WEBHOOK_ID"
	EnvDiscordWebhookToken = "DISCORD_WEBHOOK_TOKEN"
)
