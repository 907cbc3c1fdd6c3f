// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package store is the demo-mode downstream: a BadgerDB-backed
// implementation of every downstream interface, serving seeded
// fixtures when the gateway runs without real service URLs. It exists
// so the console is fully navigable in a self-contained deployment;
// production deployments never construct it.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Config holds configuration for the demo store's BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory
	// is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Used by
	// tests and throwaway demo runs.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger for BadgerDB's internal messages. Nil disables them.
	Logger *slog.Logger

	// GCInterval is how often to run value log garbage collection.
	// Zero disables GC (in-memory mode never runs it).
	GCInterval time.Duration
}

// DefaultConfig returns the persistent-demo defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
		GCInterval: 5 * time.Minute,
	}
}

// InMemoryConfig returns the test/throwaway configuration.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog to BadgerDB's Logger interface.
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

func openDB(cfg Config) (*badger.DB, chan struct{}, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("store path required for persistent mode")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open badger at %q: %w", cfg.Path, err)
	}

	stop := make(chan struct{})
	if !cfg.InMemory && cfg.GCInterval > 0 {
		go runGC(db, cfg.GCInterval, stop)
	}
	return db, stop, nil
}

func runGC(db *badger.DB, interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Rerun until GC finds nothing to collect.
			for db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}
