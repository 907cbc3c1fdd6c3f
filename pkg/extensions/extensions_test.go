// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_AllNops(t *testing.T) {
	opts := DefaultOptions()
	require.NotNil(t, opts.AuthProvider)
	require.NotNil(t, opts.AuthzProvider)
	require.NotNil(t, opts.AuditLogger)
}

func TestNormalize_FillsNilFields(t *testing.T) {
	opts := ServiceOptions{}.Normalize()
	assert.NotNil(t, opts.AuthProvider)
	assert.NotNil(t, opts.AuthzProvider)
	assert.NotNil(t, opts.AuditLogger)
}

func TestNormalize_KeepsProvidedFields(t *testing.T) {
	custom := &NopAuthProvider{}
	opts := ServiceOptions{AuthProvider: custom}.Normalize()
	assert.Same(t, custom, opts.AuthProvider.(*NopAuthProvider))
}

func TestNopAuthProvider_ReturnsLocalAdmin(t *testing.T) {
	info, err := (&NopAuthProvider{}).Validate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "local-admin", info.Username)
	assert.True(t, info.HasRole("admin"))
	assert.False(t, info.HasRole("auditor"))
}

type countingAudit struct{ events []AuditEvent }

func (c *countingAudit) Record(_ context.Context, event AuditEvent) {
	c.events = append(c.events, event)
}

func TestMultiAuditLogger_FansOutInOrder(t *testing.T) {
	first := &countingAudit{}
	second := &countingAudit{}
	multi := MultiAuditLogger{first, second}

	multi.Record(context.Background(), AuditEvent{EventType: "committee.create"})

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.Equal(t, "committee.create", second.events[0].EventType)
}

func TestNopAuthzProvider_AllowsEverything(t *testing.T) {
	err := (&NopAuthzProvider{}).Authorize(context.Background(), AuthzRequest{
		Username:   "anyone",
		ProjectUID: "p-1",
		Resource:   "committees",
		Action:     "manage",
	})
	assert.NoError(t, err)
}
