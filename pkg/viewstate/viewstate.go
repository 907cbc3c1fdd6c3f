// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package viewstate implements the screen-state pattern used across
// the PCC console as an explicit dataflow graph, decoupled from any
// UI framework's reactivity primitives.
//
// A screen owns one Store. Source values (selected project, search
// query, refresh trigger) are Signals; display values (filtered lists,
// option lists, booleans gating sections) are Computeds derived from
// them. Setting any signal synchronously recomputes every derived
// value in declaration order and then notifies store subscribers, so
// a subscriber always observes a consistent snapshot.
//
//	selected := viewstate.NewSignal(store, "")
//	query := viewstate.NewSignal(store, "")
//	meetings := viewstate.NewFetcher(store, nil, fetchMeetings)
//	visible := viewstate.Derive(store, func() []datatypes.Meeting {
//	    return viewstate.FilterContains(meetings.Get().Value, query.Get(), meetingFields)
//	})
//
// Asynchronous loads go through a Fetcher, which applies only the
// newest in-flight request's result: a refresh triggered while an
// older fetch is pending supersedes it, and the stale result is
// discarded when it lands ("switch to latest"). Read failures degrade
// to a ready-but-empty state; they never surface to the screen.
//
// # Concurrency
//
// Writers (Set, Refresh, fetch completions) are serialized by the
// store, and derived recomputation happens on the writer's goroutine.
// User-provided compute functions and subscribers run without any
// store lock held, so they may freely read signals. Reads are safe
// from any goroutine.
package viewstate

import "sync"

// Store owns one screen's dataflow graph.
type Store struct {
	// updateMu serializes writers: a Set runs the full
	// set → recompute → notify pipeline before the next Set starts.
	updateMu sync.Mutex

	// valueMu guards individual value slots. Never held while user
	// code (compute functions, subscribers) runs.
	valueMu sync.Mutex

	version     uint64
	computeds   []recomputable
	subscribers []func()
}

type recomputable interface {
	recompute()
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Version returns the number of applied updates, for tests and
// snapshot tagging.
func (s *Store) Version() uint64 {
	s.valueMu.Lock()
	defer s.valueMu.Unlock()
	return s.version
}

// Subscribe registers fn to run after every applied update, on the
// writer's goroutine. Subscriptions cannot be removed; a screen's
// store dies with the screen.
func (s *Store) Subscribe(fn func()) {
	s.valueMu.Lock()
	defer s.valueMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// apply runs one update: mutate under valueMu via set, then recompute
// every derived value in declaration order, then notify subscribers.
func (s *Store) apply(set func()) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.valueMu.Lock()
	set()
	s.version++
	computeds := s.computeds
	subscribers := s.subscribers
	s.valueMu.Unlock()

	for _, c := range computeds {
		c.recompute()
	}
	for _, fn := range subscribers {
		fn()
	}
}

func (s *Store) register(c recomputable) {
	s.valueMu.Lock()
	s.computeds = append(s.computeds, c)
	s.valueMu.Unlock()
}
