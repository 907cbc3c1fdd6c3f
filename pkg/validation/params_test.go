// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug_Valid(t *testing.T) {
	for _, slug := range []string{"kubernetes", "open-telemetry", "lfx1", "a", "cncf-tag-security"} {
		assert.NoError(t, ValidateSlug(slug), "slug %q should be valid", slug)
	}
}

func TestValidateSlug_Invalid(t *testing.T) {
	cases := []string{"", "UpperCase", "has space", "-leading", "trailing-", "double--hyphen", "slash/slug", strings.Repeat("a", 64)}
	for _, slug := range cases {
		assert.Error(t, ValidateSlug(slug), "slug %q should be rejected", slug)
	}
}

func TestValidateUID(t *testing.T) {
	require.NoError(t, ValidateUID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	require.NoError(t, ValidateUID("proj-k8s"))
	assert.Error(t, ValidateUID(""))
	assert.Error(t, ValidateUID("has space"))
	assert.Error(t, ValidateUID("../escape"))
	assert.Error(t, ValidateUID(strings.Repeat("a", 80)))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("jdoe"))
	assert.NoError(t, ValidateUsername("j.doe-42"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername(".leadingdot"))
	assert.Error(t, ValidateUsername("has space"))
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "tsc meeting", SanitizeQuery("  tsc meeting  "))
	assert.Equal(t, "abc", SanitizeQuery("a\x00b\x1fc"))

	long := strings.Repeat("x", MaxQueryLength+50)
	assert.Len(t, SanitizeQuery(long), MaxQueryLength)
}

func TestSanitizeQuery_TruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the byte limit is dropped whole,
	// never split into an invalid tail.
	q := strings.Repeat("x", MaxQueryLength-1) + "é"
	got := SanitizeQuery(q)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", MaxQueryLength-1), got)

	multi := strings.Repeat("日", MaxQueryLength)
	got = SanitizeQuery(multi)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), MaxQueryLength)
}
