package mirror

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/osse101/seedling/internal/domain"
)

const cacheDirPermission = 0o750

// BadgerConfig configures the on-disk cache
type BadgerConfig struct {
	// Dir is ignored when InMemory is set
	Dir      string
	InMemory bool
	// Logger receives badger's own output. Nil silences it.
	Logger   *slog.Logger
}

// BadgerStore persists the mirror cache in an embedded badger database
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if needed) the cache database
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("%w: cache dir is required", domain.ErrInvalidInput)
		}
		if err := os.MkdirAll(cfg.Dir, cacheDirPermission); err != nil {
			return nil, fmt.Errorf("create cache dir %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger cache: %v", domain.ErrStorage, err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStorage, key, err)
	}
	return out, nil
}

func (s *BadgerStore) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts slog to badger.Logger
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
