// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
)

func TestEventPoint_TagsAndFields(t *testing.T) {
	ts := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	point := eventPoint(extensions.AuditEvent{
		EventType:    "committee.create",
		Timestamp:    ts,
		Username:     "jlawrence",
		ProjectUID:   "proj-k8s",
		ResourceType: "committee",
		ResourceID:   "comm-1",
		Outcome:      "success",
	})

	assert.Equal(t, "audit_events", point.Name())
	assert.Equal(t, ts, point.Time())

	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "committee.create", tags["event_type"])
	assert.Equal(t, "success", tags["outcome"])

	fields := map[string]interface{}{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	assert.Equal(t, "jlawrence", fields["username"])
	assert.Equal(t, "proj-k8s", fields["project_uid"])
}

func TestEventPoint_DefaultsTimestamp(t *testing.T) {
	point := eventPoint(extensions.AuditEvent{EventType: "meeting.delete"})
	assert.WithinDuration(t, time.Now().UTC(), point.Time(), 5*time.Second)
}

func TestSlogLogger_Record(t *testing.T) {
	var buf bytes.Buffer
	logger := &SlogLogger{Log: slog.New(slog.NewJSONHandler(&buf, nil))}

	logger.Record(context.Background(), extensions.AuditEvent{
		EventType: "permission.put",
		Username:  "admin",
		Outcome:   "success",
	})

	out := buf.String()
	assert.Contains(t, out, "permission.put")
	assert.Contains(t, out, "admin")
}
