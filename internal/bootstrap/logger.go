package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/logger"
)

// SetupLogger initializes slog writing to stdout and a rotating file under cfg.LogDir.
// An empty LogDir logs to stdout only. The returned closer must be closed on exit.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	out, closer, err := logWriter(cfg.LogDir, os.Stdout)
	if err != nil {
		return nil, err
	}

	addSource := cfg.Environment == logger.EnvironmentDev
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, addSource)
	logger.InitLogger(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "dir", cfg.LogDir)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_driver", cfg.DBDriver,
		"db_path", cfg.DBPath,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"port", cfg.Port)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	return closer, nil
}

func logWriter(dir string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if dir == "" {
		return stdout, nopCloser{}, nil
	}

	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFileName),
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(stdout, file), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
