// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package flags serves feature flags from a YAML file with hot reload.
//
// # Description
//
// The gateway gates optional console features (new meeting flows,
// survey screens, demo banners) on named flags. Flags live in a YAML
// file next to the gateway config; edits are picked up without a
// restart via fsnotify, debounced so editors that write in multiple
// syscalls trigger one reload.
//
// # File format
//
//	flags:
//	  meetings-v2:
//	    enabled: true
//	    description: New meeting creation flow
//	  surveys:
//	    enabled: false
//	    projects: [proj-k8s]
//
// A flag with a projects list is only enabled for those project UIDs.
//
// # Thread Safety
//
// Safe for concurrent use. Reads take a read lock; reloads swap the
// flag map under a write lock.
package flags

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// reloadDebounce batches rapid successive writes into one reload.
const reloadDebounce = 100 * time.Millisecond

// Flag is one named feature gate.
type Flag struct {
	Enabled     bool     `yaml:"enabled"`
	Description string   `yaml:"description,omitempty"`
	Projects    []string `yaml:"projects,omitempty"`
}

type flagFile struct {
	Flags map[string]Flag `yaml:"flags"`
}

// Provider evaluates feature flags.
type Provider struct {
	path string
	log  *slog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once

	mu    sync.RWMutex
	flags map[string]Flag
}

// Open loads the flag file and begins watching it for changes.
//
// # Inputs
//
//   - path: Path to the YAML flag file. Must exist.
//   - log: Logger for reload outcomes. Nil uses slog.Default.
//
// # Outputs
//
//   - *Provider: Ready-to-use provider. Call Close when done.
//   - error: Non-nil if the file cannot be read or parsed, or the
//     watcher cannot be created.
func Open(path string, log *slog.Logger) (*Provider, error) {
	if log == nil {
		log = slog.Default()
	}
	p := &Provider{
		path:  path,
		log:   log,
		done:  make(chan struct{}),
		flags: map[string]Flag{},
	}
	if err := p.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create flag watcher: %w", err)
	}
	// Watch the directory, not the file: editors that rename-over the
	// file would otherwise orphan the watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(path), err)
	}
	p.watcher = watcher
	go p.watch()
	return p, nil
}

// Static returns a provider with a fixed flag set and no file backing.
// Used by tests and demo mode.
func Static(enabled map[string]bool) *Provider {
	flags := make(map[string]Flag, len(enabled))
	for name, on := range enabled {
		flags[name] = Flag{Enabled: on}
	}
	return &Provider{flags: flags, log: slog.Default(), done: make(chan struct{})}
}

// Close stops the file watcher.
func (p *Provider) Close() error {
	p.stopOnce.Do(func() {
		close(p.done)
		if p.watcher != nil {
			p.watcher.Close()
		}
	})
	return nil
}

// Enabled reports whether the named flag is on globally.
func (p *Provider) Enabled(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	flag, ok := p.flags[name]
	return ok && flag.Enabled && len(flag.Projects) == 0
}

// EnabledForProject reports whether the named flag is on for the given
// project. Flags without a projects list apply to every project.
func (p *Provider) EnabledForProject(name, projectUID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	flag, ok := p.flags[name]
	if !ok || !flag.Enabled {
		return false
	}
	if len(flag.Projects) == 0 {
		return true
	}
	for _, uid := range flag.Projects {
		if uid == projectUID {
			return true
		}
	}
	return false
}

// All returns a snapshot of every flag, for the admin listing endpoint.
func (p *Provider) All() map[string]Flag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Flag, len(p.flags))
	for name, flag := range p.flags {
		out[name] = flag
	}
	return out
}

func (p *Provider) reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read flag file: %w", err)
	}
	var file flagFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse flag file: %w", err)
	}
	if file.Flags == nil {
		file.Flags = map[string]Flag{}
	}
	p.mu.Lock()
	p.flags = file.Flags
	p.mu.Unlock()
	return nil
}

func (p *Provider) watch() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-p.done:
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(p.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerC = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			if err := p.reload(); err != nil {
				// Keep serving the previous flag set on a bad edit.
				p.log.Error("flag reload failed", "path", p.path, "error", err)
				continue
			}
			p.log.Info("flags reloaded", "path", p.path, "count", len(p.All()))
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.log.Warn("flag watcher error", "error", err)
		}
	}
}
