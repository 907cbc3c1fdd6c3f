// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"time"
)

// AuditEvent is one entry of the administrative activity trail.
//
// Events are recorded for every write operation the gateway performs
// on behalf of a user. Event types follow "resource.action":
// "committee.create", "meeting.delete", "permission.put", ...
type AuditEvent struct {
	// EventType categorizes the event, format "resource.action".
	EventType string

	// Timestamp is when the event occurred, UTC. Implementations set
	// it to time.Now().UTC() when zero.
	Timestamp time.Time

	// Username identifies who performed the action. "system" for
	// automated actions.
	Username string

	// ProjectUID scopes the event to a project, when known.
	ProjectUID string

	// ResourceType is the resource class ("committee", "meeting", ...).
	ResourceType string

	// ResourceID is the specific resource UID, when known.
	ResourceID string

	// Outcome is "success" or "failure".
	Outcome string
}

// AuditLogger records audit events. Recording is best-effort: the
// gateway logs a failed Record call and carries on; an audit outage
// never fails a user's request.
//
// Implementations must be safe for concurrent use and should buffer
// internally rather than block the request goroutine.
type AuditLogger interface {
	Record(ctx context.Context, event AuditEvent)
}

// NopAuditLogger discards all events.
type NopAuditLogger struct{}

// Record does nothing.
func (l *NopAuditLogger) Record(_ context.Context, _ AuditEvent) {}

// MultiAuditLogger fans every event out to each logger in order. Used
// to chain the durable audit sink with in-process consumers of write
// events.
type MultiAuditLogger []AuditLogger

// Record delivers the event to every logger.
func (m MultiAuditLogger) Record(ctx context.Context, event AuditEvent) {
	for _, l := range m {
		l.Record(ctx, event)
	}
}
