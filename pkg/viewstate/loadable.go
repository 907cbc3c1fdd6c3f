// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package viewstate

import (
	"context"
	"log/slog"
	"sync"
)

// State is the load state of a remote-backed value.
type State int

const (
	// StateIdle means no fetch has been triggered yet.
	StateIdle State = iota

	// StateLoading means a fetch is in flight. The previous value is
	// still visible while loading.
	StateLoading

	// StateReady means the value reflects the newest completed fetch.
	// A failed fetch also lands here, with the zero (empty) value.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Loadable pairs a remote-backed value with its load state.
type Loadable[T any] struct {
	State State
	Value T
}

// Fetcher ties a Loadable signal to a fetch function with
// switch-to-latest semantics: each Refresh supersedes any in-flight
// fetch, and a superseded fetch's result is discarded when it lands.
// Fetch errors are logged and degrade to a ready-but-empty value; the
// screen never sees an error state.
type Fetcher[T any] struct {
	store  *Store
	signal *Signal[Loadable[T]]
	fetch  func(ctx context.Context) (T, error)
	log    *slog.Logger

	mu  sync.Mutex
	gen uint64
}

// NewFetcher creates a fetcher whose state starts idle. The fetch
// function is called on a fresh goroutine per Refresh.
func NewFetcher[T any](store *Store, log *slog.Logger, fetch func(ctx context.Context) (T, error)) *Fetcher[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher[T]{
		store:  store,
		signal: NewSignal(store, Loadable[T]{State: StateIdle}),
		fetch:  fetch,
		log:    log,
	}
}

// Signal exposes the loadable for deriving display values.
func (f *Fetcher[T]) Signal() *Signal[Loadable[T]] {
	return f.signal
}

// Get returns the current loadable.
func (f *Fetcher[T]) Get() Loadable[T] {
	return f.signal.Get()
}

// Refresh triggers a fetch. The state moves to loading immediately
// (keeping the previous value visible) and to ready when the newest
// fetch lands. Returns a channel closed when this particular fetch
// has completed, whether or not its result was applied.
//
// Lock order is always f.mu before the store's update pipeline, so
// the staleness check and the state application are atomic with
// respect to a newer Refresh.
func (f *Fetcher[T]) Refresh(ctx context.Context) <-chan struct{} {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	current := f.signal.Get()
	f.signal.Set(Loadable[T]{State: StateLoading, Value: current.Value})
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		value, err := f.fetch(ctx)

		f.mu.Lock()
		defer f.mu.Unlock()
		if gen != f.gen {
			// A newer refresh superseded this one.
			return
		}

		if err != nil {
			f.log.Error("fetch failed, presenting empty state", "error", err)
			var empty T
			f.signal.Set(Loadable[T]{State: StateReady, Value: empty})
			return
		}
		f.signal.Set(Loadable[T]{State: StateReady, Value: value})
	}()
	return done
}
