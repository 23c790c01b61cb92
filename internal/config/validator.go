package config

import (
	"errors"
	"fmt"
)

// Validate checks values that would make the server unusable
func (c *Config) Validate() error {
	var errs []error

	if c.AdminPassword == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", EnvAdminPassword))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, fmt.Errorf("%s must be set when %s=%s", EnvDBPath, EnvDBDriver, DriverSQLite))
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, fmt.Errorf("%s and %s must be set when %s=%s", EnvDBHost, EnvDBName, EnvDBDriver, DriverPostgres))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported %s %q (want %s or %s)", EnvDBDriver, c.DBDriver, DriverSQLite, DriverPostgres))
	}

	if c.StorageTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvStorageTimeout))
	}

	if (c.DiscordWebhookID == "") != (c.DiscordWebhookToken == "") {
		errs = append(errs, fmt.Errorf("%s and %s must be set together", EnvDiscordWebhookID, EnvDiscordWebhookToken))
	}

	return errors.Join(errs...)
}

// Warnings returns non-fatal issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.AdminPassword == DefaultAdminPassword {
		warnings = append(warnings, "ADMIN_PW is using the built-in default - set it before exposing the server")
	}

	if c.Port < 1 || c.Port > 65535 {
		warnings = append(warnings, fmt.Sprintf("PORT %d is outside the valid TCP range", c.Port))
	}

	return warnings
}
