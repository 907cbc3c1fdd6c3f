// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package audit provides the gateway's audit trail sinks.
//
// Every administrative write (committee edits, permission grants,
// meeting deletions) produces one event. Sinks are best-effort by
// contract: a sink outage is logged and the user's request proceeds.
package audit

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
)

// InfluxConfig locates the audit bucket.
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxLogger writes audit events to an InfluxDB bucket using the
// non-blocking write API. Points are buffered and flushed in the
// background; Record never blocks the request goroutine.
type InfluxLogger struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	log      *slog.Logger
}

var _ extensions.AuditLogger = (*InfluxLogger)(nil)

// NewInfluxLogger connects the audit sink. The connection is lazy:
// failures surface on the sink's error channel, not here.
func NewInfluxLogger(cfg InfluxConfig, log *slog.Logger) *InfluxLogger {
	if log == nil {
		log = slog.Default()
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	writeAPI := client.WriteAPI(cfg.Org, cfg.Bucket)

	l := &InfluxLogger{client: client, writeAPI: writeAPI, log: log}
	go func() {
		for err := range writeAPI.Errors() {
			l.log.Warn("audit write failed", "error", err)
		}
	}()
	return l
}

// Record buffers one event for asynchronous delivery.
func (l *InfluxLogger) Record(_ context.Context, event extensions.AuditEvent) {
	l.writeAPI.WritePoint(eventPoint(event))
}

// Close flushes buffered events and closes the client.
func (l *InfluxLogger) Close() {
	l.writeAPI.Flush()
	l.client.Close()
}

func eventPoint(event extensions.AuditEvent) *write.Point {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return influxdb2.NewPoint(
		"audit_events",
		map[string]string{
			"event_type":    event.EventType,
			"resource_type": event.ResourceType,
			"outcome":       event.Outcome,
		},
		map[string]interface{}{
			"username":    event.Username,
			"project_uid": event.ProjectUID,
			"resource_id": event.ResourceID,
		},
		ts,
	)
}

// SlogLogger writes audit events to the structured log. Demo mode and
// tests use it in place of the Influx sink.
type SlogLogger struct {
	Log *slog.Logger
}

var _ extensions.AuditLogger = (*SlogLogger)(nil)

// Record emits the event at info level.
func (l *SlogLogger) Record(_ context.Context, event extensions.AuditEvent) {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("audit",
		"event_type", event.EventType,
		"username", event.Username,
		"project_uid", event.ProjectUID,
		"resource_type", event.ResourceType,
		"resource_id", event.ResourceID,
		"outcome", event.Outcome,
	)
}
