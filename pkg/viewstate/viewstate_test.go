// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package viewstate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_SetRecomputesDerived(t *testing.T) {
	store := NewStore()
	query := NewSignal(store, "")
	items := NewSignal(store, []string{"Kubernetes", "Prometheus", "Envoy"})

	visible := Derive(store, func() []string {
		return FilterContains(items.Get(), query.Get(), func(s string) []string { return []string{s} })
	})

	require.Len(t, visible.Get(), 3)

	query.Set("prome")
	assert.Equal(t, []string{"Prometheus"}, visible.Get())

	query.Set("")
	assert.Len(t, visible.Get(), 3)
}

func TestDerive_DeclarationOrderChaining(t *testing.T) {
	store := NewStore()
	n := NewSignal(store, 1)
	doubled := Derive(store, func() int { return n.Get() * 2 })
	quadrupled := Derive(store, func() int { return doubled.Get() * 2 })

	n.Set(5)
	assert.Equal(t, 10, doubled.Get())
	assert.Equal(t, 20, quadrupled.Get())
}

func TestStore_SubscriberSeesConsistentSnapshot(t *testing.T) {
	store := NewStore()
	n := NewSignal(store, 0)
	doubled := Derive(store, func() int { return n.Get() * 2 })

	var seen []int
	store.Subscribe(func() {
		seen = append(seen, doubled.Get())
	})

	n.Set(1)
	n.Set(2)
	assert.Equal(t, []int{2, 4}, seen)
}

func TestStore_ConcurrentWritersSerialized(t *testing.T) {
	store := NewStore()
	n := NewSignal(store, 0)
	var count int
	store.Subscribe(func() { count++ })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			n.Set(v)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, count)
	assert.Equal(t, uint64(50), store.Version())
}

func TestFetcher_IdleUntilFirstRefresh(t *testing.T) {
	store := NewStore()
	f := NewFetcher(store, nil, func(ctx context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	assert.Equal(t, StateIdle, f.Get().State)
}

func TestFetcher_RefreshLands(t *testing.T) {
	store := NewStore()
	f := NewFetcher(store, nil, func(ctx context.Context) ([]string, error) {
		return []string{"tsc", "board"}, nil
	})

	<-f.Refresh(context.Background())
	loadable := f.Get()
	assert.Equal(t, StateReady, loadable.State)
	assert.Equal(t, []string{"tsc", "board"}, loadable.Value)
}

func TestFetcher_ErrorDegradesToEmptyReady(t *testing.T) {
	store := NewStore()
	f := NewFetcher(store, nil, func(ctx context.Context) ([]string, error) {
		return nil, errors.New("downstream unavailable")
	})

	<-f.Refresh(context.Background())
	loadable := f.Get()
	assert.Equal(t, StateReady, loadable.State)
	assert.Empty(t, loadable.Value)
}

func TestFetcher_StaleResultDiscarded(t *testing.T) {
	store := NewStore()
	release := make(chan struct{})
	var calls atomic.Int32
	f := NewFetcher(store, nil, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	first := f.Refresh(context.Background())
	second := f.Refresh(context.Background())
	<-second

	// Let the superseded fetch land; its result must not be applied.
	close(release)
	<-first

	loadable := f.Get()
	assert.Equal(t, StateReady, loadable.State)
	assert.Equal(t, []string{"fresh"}, loadable.Value)
}

func TestFetcher_LoadingKeepsPreviousValue(t *testing.T) {
	store := NewStore()
	block := make(chan struct{})
	first := true
	f := NewFetcher(store, nil, func(ctx context.Context) ([]string, error) {
		if first {
			first = false
			return []string{"existing"}, nil
		}
		<-block
		return []string{"new"}, nil
	})

	<-f.Refresh(context.Background())
	done := f.Refresh(context.Background())

	loadable := f.Get()
	assert.Equal(t, StateLoading, loadable.State)
	assert.Equal(t, []string{"existing"}, loadable.Value)

	close(block)
	<-done
	assert.Equal(t, []string{"new"}, f.Get().Value)
}

func TestFilterContains_Property(t *testing.T) {
	type row struct{ name, email string }
	rows := []row{
		{"Ada Lovelace", "ada@example.org"},
		{"Grace Hopper", "grace@navy.mil"},
		{"Linus", "linus@kernel.org"},
	}
	fields := func(r row) []string { return []string{r.name, r.email} }

	got := FilterContains(rows, "ORG", fields)
	require.Len(t, got, 2)
	for _, r := range got {
		matched := strings.Contains(strings.ToLower(r.name), "org") ||
			strings.Contains(strings.ToLower(r.email), "org")
		assert.True(t, matched)
	}

	assert.Len(t, FilterContains(rows, "", fields), 3)
	assert.Empty(t, FilterContains(rows, "zzz", fields))
}

func TestComparePriority(t *testing.T) {
	priority := map[string]int{"open": 0, "submitted": 1, "closed": 2}

	assert.Negative(t, ComparePriority(priority, "open", "submitted"))
	assert.Positive(t, ComparePriority(priority, "closed", "open"))
	assert.Zero(t, ComparePriority(priority, "open", "open"))
	// Undeclared statuses sort after every declared one.
	assert.Negative(t, ComparePriority(priority, "closed", "draft"))
}

func TestSortStable_PriorityWithDateTiebreak(t *testing.T) {
	type vote struct {
		status string
		due    time.Time
	}
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	votes := []vote{
		{"closed", day(1)},
		{"open", day(9)},
		{"submitted", day(5)},
		{"open", day(2)},
		{"closed", day(3)},
	}
	priority := map[string]int{"open": 0, "submitted": 1, "closed": 2}

	SortStable(votes, func(a, b vote) int {
		if c := ComparePriority(priority, a.status, b.status); c != 0 {
			return c
		}
		return a.due.Compare(b.due)
	})

	want := []vote{
		{"open", day(2)},
		{"open", day(9)},
		{"submitted", day(5)},
		{"closed", day(1)},
		{"closed", day(3)},
	}
	assert.Equal(t, want, votes)
}
