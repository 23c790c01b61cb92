package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port          int
	AdminPassword string

	DBDriver          string
	DBPath            string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	StorageTimeout    time.Duration

	StaticDir      string
	TrustedProxies []string
	CORSOrigins    []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	DiscordWebhookID    string
	DiscordWebhookToken string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AdminPassword:       getEnv(EnvAdminPassword, DefaultAdminPassword),
		DBDriver:            strings.ToLower(getEnv(EnvDBDriver, DefaultDBDriver)),
		DBPath:              getEnv(EnvDBPath, DefaultDBPath),
		DBUser:              getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:          getEnv(EnvDBPassword, ""),
		DBHost:              getEnv(EnvDBHost, DefaultDBHost),
		DBPort:              getEnv(EnvDBPort, DefaultDBPort),
		DBName:              getEnv(EnvDBName, DefaultDBName),
		StaticDir:           getEnv(EnvStaticDir, ""),
		TrustedProxies:      getEnvList(EnvTrustedProxies),
		CORSOrigins:         getEnvList(EnvCORSOrigins),
		LogLevel:            strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:           strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:              getEnv(EnvLogDir, DefaultLogDir),
		Environment:         getEnv(EnvEnvironment, DefaultEnvironment),
		Version:             getEnv(EnvVersion, DefaultVersion),
		DiscordWebhookID:    getEnv(EnvDiscordWebhookID, ""),
		DiscordWebhookToken: getEnv(EnvDiscordWebhookToken, ""),
	}

	var err error
	if cfg.Port, err = getEnvInt(EnvPort, DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt(EnvDBMaxConns, DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnIdleTime, err = getEnvDuration(EnvDBMaxConnIdleTime, DefaultDBIdleTime); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnLifetime, err = getEnvDuration(EnvDBMaxConnLifetime, DefaultDBLifetime); err != nil {
		return nil, err
	}
	if cfg.StorageTimeout, err = getEnvDuration(EnvStorageTimeout, DefaultStorageTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordWebhookEnabled reports whether both webhook credentials are set
func (c *Config) DiscordWebhookEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
