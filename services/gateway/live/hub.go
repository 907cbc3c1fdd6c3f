// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package live

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
)

// Hub fans successful write events out to dashboard sessions so each
// mutation triggers exactly one refresh of the lists that show it.
//
// The hub plugs into the audit chain (it implements
// extensions.AuditLogger): every gateway write already records an
// audit event carrying the project UID and outcome, so chaining the
// hub behind the durable sink gives live sessions change
// notifications without any extra plumbing in the handlers.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(projectUID string)
}

var _ extensions.AuditLogger = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(projectUID string))}
}

// Record forwards successful, project-scoped writes to subscribers.
// Failed writes change nothing, so no refresh is owed.
func (h *Hub) Record(_ context.Context, event extensions.AuditEvent) {
	if event.Outcome != "success" || event.ProjectUID == "" {
		return
	}
	h.mu.Lock()
	subs := make([]func(string), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(event.ProjectUID)
	}
}

// Subscribe registers a callback invoked once per successful write,
// with the project UID the write belongs to. The callback must not
// block. The returned cancel removes the subscription.
func (h *Hub) Subscribe(fn func(projectUID string)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}
