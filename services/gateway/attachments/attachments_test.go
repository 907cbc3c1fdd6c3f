// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package attachments

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Put(ctx, "meet-1", "att-1", "application/pdf", strings.NewReader("agenda bytes"))
	require.NoError(t, err)

	reader, err := store.Get(ctx, "meet-1", "att-1")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "agenda bytes", string(data))

	require.NoError(t, store.Delete(ctx, "meet-1", "att-1"))
	_, err = store.Get(ctx, "meet-1", "att-1")
	assert.True(t, datatypes.NotFound(err))
}

func TestLocalStore_MissingAttachment(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "meet-1", "never-uploaded")
	se, ok := datatypes.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ATTACHMENT_NOT_FOUND", se.Code)

	err = store.Delete(context.Background(), "meet-1", "never-uploaded")
	assert.True(t, datatypes.NotFound(err))
}

func TestLocalStore_IsolatesMeetings(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "meet-1", "att-1", "", strings.NewReader("one")))
	require.NoError(t, store.Put(ctx, "meet-2", "att-1", "", strings.NewReader("two")))

	reader, err := store.Get(ctx, "meet-2", "att-1")
	require.NoError(t, err)
	defer reader.Close()
	data, _ := io.ReadAll(reader)
	assert.Equal(t, "two", string(data))
}
