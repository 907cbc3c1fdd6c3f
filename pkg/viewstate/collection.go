// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package viewstate

import (
	"slices"
	"strings"
)

// FilterContains returns the items whose searched fields contain the
// query as a case-insensitive substring. An empty query returns all
// items. The input slice is never mutated; the result is never nil.
func FilterContains[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]T{}, items...)
	}
	out := []T{}
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// SortStable sorts items in place with a stable, total order.
func SortStable[T any](items []T, cmp func(a, b T) int) {
	slices.SortStableFunc(items, cmp)
}

// ComparePriority orders two keys by a declared priority map. Lower
// priority values sort first; keys absent from the map sort after all
// declared keys. Equal priorities compare as 0 so a secondary
// comparison can break the tie.
func ComparePriority(priority map[string]int, a, b string) int {
	pa, oka := priority[a]
	pb, okb := priority[b]
	if !oka {
		pa = len(priority) + 1
	}
	if !okb {
		pb = len(priority) + 1
	}
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}
