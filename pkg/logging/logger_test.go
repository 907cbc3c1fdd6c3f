// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureExporter records every exported entry for assertions.
type captureExporter struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

func (e *captureExporter) Export(_ context.Context, entry Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry)
	return nil
}

func (e *captureExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf, JSON: true})

	logger.Debug("dropped debug")
	logger.Info("dropped info")
	logger.Warn("kept warn")
	logger.Error("kept error")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept warn")
	assert.Contains(t, out, "kept error")
}

func TestLogger_JSONOutputWithServiceTag(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Service: "gateway", Output: &buf, JSON: true})

	logger.Info("committee created", "committee_uid", "c-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "committee created", record["msg"])
	assert.Equal(t, "gateway", record["service"])
	assert.Equal(t, "c-1", record["committee_uid"])
}

func TestLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Service: "gateway", LogDir: dir, Output: &buf, JSON: true})

	logger.Info("written to file")
	require.NoError(t, logger.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "gateway_"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLogger_ExporterReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	exp := &captureExporter{}
	logger := New(Config{Level: LevelInfo, Service: "gateway", Output: &buf, JSON: true, Exporter: exp})

	logger.Info("meeting deleted", "meeting_uid", "m-1")
	logger.Debug("below level, not exported")

	require.Len(t, exp.entries, 1)
	assert.Equal(t, "INFO", exp.entries[0].Level)
	assert.Equal(t, "meeting deleted", exp.entries[0].Message)
	assert.Equal(t, "m-1", exp.entries[0].Attrs["meeting_uid"])

	require.NoError(t, logger.Close())
	assert.True(t, exp.closed)
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, JSON: true})

	logger.With("project_uid", "p-1").Info("scoped")

	assert.Contains(t, buf.String(), "p-1")
}

func TestLogger_CloseIdempotent(t *testing.T) {
	logger := New(Config{Level: LevelInfo, Output: &bytes.Buffer{}, JSON: true})
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}
