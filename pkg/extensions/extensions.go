// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package extensions defines the gateway's pluggable integration points.
//
// The gateway runs in two shapes: a self-contained demo deployment with
// no identity infrastructure, and a production deployment wired to the
// platform's SSO and audit pipeline. These interfaces are the seam
// between the two. The demo deployment uses the no-op defaults; a
// production deployment injects concrete implementations via
// ServiceOptions.
//
// # Extension Categories
//
//   - auth.go: token validation and permission checks (AuthProvider,
//     AuthzProvider)
//   - audit.go: activity recording for the audit trail (AuditLogger)
//
// # Thread Safety
//
// All implementations must be safe for concurrent use; the gateway
// calls them from request goroutines without coordination.
package extensions

// ServiceOptions groups the extension points handed to the gateway at
// startup. Nil fields are replaced by no-op defaults.
type ServiceOptions struct {
	// AuthProvider validates bearer tokens.
	// Default: NopAuthProvider (every request is the local admin).
	AuthProvider AuthProvider

	// AuthzProvider answers permission checks.
	// Default: NopAuthzProvider (everything is allowed).
	AuthzProvider AuthzProvider

	// AuditLogger records write operations.
	// Default: NopAuditLogger (events are discarded).
	AuditLogger AuditLogger
}

// DefaultOptions returns ServiceOptions with no-op defaults, the
// configuration used by the demo deployment.
func DefaultOptions() ServiceOptions {
	return ServiceOptions{
		AuthProvider:  &NopAuthProvider{},
		AuthzProvider: &NopAuthzProvider{},
		AuditLogger:   &NopAuditLogger{},
	}
}

// Normalize fills nil fields of opts with no-op defaults.
func (o ServiceOptions) Normalize() ServiceOptions {
	if o.AuthProvider == nil {
		o.AuthProvider = &NopAuthProvider{}
	}
	if o.AuthzProvider == nil {
		o.AuthzProvider = &NopAuthzProvider{}
	}
	if o.AuditLogger == nil {
		o.AuditLogger = &NopAuditLogger{}
	}
	return o
}
