package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/logger"
	"github.com/osse101/seedling/internal/mirror"
)

const (
	envServer   = "SEEDLING_SERVER"
	envCacheDir = "SEEDLING_CACHE_DIR"

	defaultServer   = "http://localhost:3000"
	cacheDirName    = "seedling"
	serviceName     = "seedling-cli"
	defaultLogLevel = logger.LogLevelWarn
)

// secretStore is the keyring-held admin secret as the CLI manages it
type secretStore interface {
	mirror.SecretSource
	Set(secret string) error
	Clear() error
}

// deps are the pieces tests swap out
type deps struct {
	openStore func(cacheDir string) (mirror.Store, error)
	secrets   secretStore
	clock     clock.Clock
	stderr    io.Writer
}

func defaultDeps() deps {
	return deps{
		openStore: func(dir string) (mirror.Store, error) {
			return mirror.OpenBadgerStore(mirror.BadgerConfig{Dir: dir})
		},
		secrets: mirror.NewKeyringSecrets(),
		clock:   clock.NewRealClock(),
		stderr:  os.Stderr,
	}
}

type options struct {
	server   string
	cacheDir string
	timeout  time.Duration
	logLevel string
	json     bool
}

type cli struct {
	deps deps
	opts options
	root *cobra.Command

	store  mirror.Store
	client *mirror.Client
	syncer *mirror.Syncer
}

func newCLI(d deps) *cli {
	c := &cli{deps: d}
	c.root = c.newRootCmd()
	return c
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seedling",
		Short:         "Water the shared seedling, online or off",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logger.NewConfig(c.opts.logLevel, logger.LogFormatText, serviceName, "", logger.EnvironmentDev, false)
			logger.InitLogger(cfg, c.deps.stderr)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.server, "server", envOr(envServer, defaultServer), "seedling server URL (env "+envServer+")")
	flags.StringVar(&c.opts.cacheDir, "cache-dir", envOr(envCacheDir, defaultCacheDir()), "local cache directory (env "+envCacheDir+")")
	flags.DurationVar(&c.opts.timeout, "timeout", mirror.DefaultTimeout, "timeout for a single server call")
	flags.StringVar(&c.opts.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&c.opts.json, "json", false, "print results as JSON")

	root.AddCommand(
		c.newStatusCmd(),
		c.newSyncCmd(),
		c.newWaterCmd(),
		c.newHarvestCmd(),
		c.newResetCmd(),
		c.newCanWaterCmd(),
		c.newWatchCmd(),
		c.newSecretCmd(),
	)
	return root
}

// execute runs the command line and releases the local cache afterwards
func (c *cli) execute(args []string) error {
	c.root.SetArgs(args)
	err := c.root.Execute()
	if closeErr := c.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(c.root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// open lazily opens the cache and builds the remote-first syncer
func (c *cli) open() (*mirror.Syncer, error) {
	if c.syncer != nil {
		return c.syncer, nil
	}

	store, err := c.deps.openStore(c.opts.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}
	c.store = store
	c.client = mirror.NewClient(c.opts.server, c.opts.timeout)
	c.syncer = mirror.NewSyncer(mirror.New(store, c.deps.clock), c.client, c.deps.secrets)
	return c.syncer, nil
}

func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	c.syncer = nil
	return err
}

// print writes v as JSON with --json, otherwise the human line
func (c *cli) print(cmd *cobra.Command, v interface{}, human string) error {
	out := cmd.OutOrStdout()
	if c.opts.json {
		enc := json.NewEncoder(out)
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(out, human)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "."+cacheDirName)
	}
	return filepath.Join(base, cacheDirName)
}
