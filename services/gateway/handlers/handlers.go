// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers implements the gateway's /api surface.
//
// Handlers are thin: validate input, call exactly one downstream
// operation (plus the occasional declared best-effort fan-out), attach
// errors to the Gin context for the centralized error middleware, and
// record an audit event for writes. They hold no state of their own.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/forms"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/middleware"
)

// bindJSON decodes and validates a request body. Validation runs
// through pkg/forms, so 400 bodies carry the same field names and
// messages the form screens show inline. On failure it attaches a
// ValidationError to the context and returns false; the caller just
// returns.
func bindJSON[T any](c *gin.Context, out *T) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.Error(&datatypes.ValidationError{Fields: map[string]string{
			"body": "Request body must be valid JSON",
		}})
		return false
	}
	if fields := forms.Check(out); len(fields) > 0 {
		c.Error(&datatypes.ValidationError{Fields: fields})
		return false
	}
	return true
}

// badParam attaches a 400 for an invalid path or query parameter.
func badParam(c *gin.Context, name string, err error) {
	c.Error(&datatypes.ValidationError{Fields: map[string]string{name: err.Error()}})
}

// recordAudit emits one audit event for a write operation, attributed
// to the authenticated caller.
func recordAudit(c *gin.Context, logger extensions.AuditLogger, eventType, resourceType, resourceID, projectUID string, err error) {
	username := "system"
	if info := middleware.GetAuthInfo(c); info != nil {
		username = info.Username
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	logger.Record(c.Request.Context(), extensions.AuditEvent{
		EventType:    eventType,
		Username:     username,
		ProjectUID:   projectUID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Outcome:      outcome,
	})
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
