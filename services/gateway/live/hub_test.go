// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package live

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
)

func writeEvent(projectUID, outcome string) extensions.AuditEvent {
	return extensions.AuditEvent{
		EventType:    "meeting.update",
		ProjectUID:   projectUID,
		ResourceType: "meeting",
		Outcome:      outcome,
	}
}

func TestHub_DeliversSuccessfulWrites(t *testing.T) {
	hub := NewHub()
	var got []string
	cancel := hub.Subscribe(func(projectUID string) { got = append(got, projectUID) })
	defer cancel()

	hub.Record(context.Background(), writeEvent("proj-k8s", "success"))
	hub.Record(context.Background(), writeEvent("proj-k8s", "failure"))
	hub.Record(context.Background(), writeEvent("", "success"))

	assert.Equal(t, []string{"proj-k8s"}, got)
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	calls := 0
	cancel := hub.Subscribe(func(string) { calls++ })

	hub.Record(context.Background(), writeEvent("proj-k8s", "success"))
	cancel()
	hub.Record(context.Background(), writeEvent("proj-k8s", "success"))

	assert.Equal(t, 1, calls)
}

func TestSession_WatchRefreshesExactlyOncePerWrite(t *testing.T) {
	d := &countingDownstream{}
	session := newTestSession(d)
	hub := NewHub()
	defer session.Watch(hub)()

	<-session.SelectProject(context.Background(), "proj-k8s")
	require.Equal(t, int32(1), d.meetingCalls.Load())

	hub.Record(context.Background(), writeEvent("proj-k8s", "success"))

	assert.Eventually(t, func() bool {
		return d.meetingCalls.Load() == 2
	}, time.Second, 10*time.Millisecond, "one write should trigger one refresh")

	// Writes to other projects leave this session alone.
	hub.Record(context.Background(), writeEvent("proj-other", "success"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), d.meetingCalls.Load())
}
