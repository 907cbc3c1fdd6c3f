// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package viewstate

// Signal is a source value of a screen's dataflow graph. Setting it
// recomputes every derived value of the owning store.
type Signal[T any] struct {
	store *Store
	value T
}

// NewSignal creates a source signal with an initial value.
func NewSignal[T any](store *Store, initial T) *Signal[T] {
	return &Signal[T]{store: store, value: initial}
}

// Get returns the current value. Safe from any goroutine, including
// compute functions and subscribers.
func (s *Signal[T]) Get() T {
	s.store.valueMu.Lock()
	defer s.store.valueMu.Unlock()
	return s.value
}

// Set replaces the value and synchronously recomputes the store's
// derived values before returning.
func (s *Signal[T]) Set(value T) {
	s.store.apply(func() {
		s.value = value
	})
}

// Computed is a derived, read-only display value. It is recomputed
// synchronously whenever any signal of the owning store changes.
type Computed[T any] struct {
	store *Store
	fn    func() T
	value T
}

// Derive registers a computed value on the store and computes it once
// immediately. Declare computeds after the signals and computeds they
// read; recomputation runs in declaration order.
func Derive[T any](store *Store, fn func() T) *Computed[T] {
	c := &Computed[T]{store: store, fn: fn}
	c.value = fn()
	store.register(c)
	return c
}

// Get returns the cached derived value.
func (c *Computed[T]) Get() T {
	c.store.valueMu.Lock()
	defer c.store.valueMu.Unlock()
	return c.value
}

func (c *Computed[T]) recompute() {
	value := c.fn()
	c.store.valueMu.Lock()
	c.value = value
	c.store.valueMu.Unlock()
}
