// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package extensions

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when authentication fails. Concrete
// providers should wrap this error with additional context:
//
//	if !validToken {
//	    return nil, fmt.Errorf("token expired: %w", extensions.ErrUnauthorized)
//	}
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated user lacks permission
// for the requested action.
var ErrForbidden = errors.New("forbidden")

// AuthInfo is the identity attached to a request after successful
// token validation.
//
// Required fields (always populated):
//   - Username: the platform username
//
// Optional fields (may be empty):
//   - Email, Name
//   - Roles: coarse platform roles ("admin", "auditor")
type AuthInfo struct {
	// Username is the unique platform username. Never empty.
	Username string

	// Email is the user's primary email, if the provider exposes it.
	Email string

	// Name is the display name, if the provider exposes it.
	Name string

	// Roles holds coarse platform roles. Per-project grants are not
	// carried here; those come from the identity service's permission
	// records.
	Roles []string
}

// HasRole reports whether the user carries a platform role.
func (a *AuthInfo) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthProvider validates bearer tokens and returns the caller's
// identity. Implementations must be safe for concurrent use.
//
// The demo deployment uses NopAuthProvider, which accepts any token
// (including none) and returns a local admin identity. Production
// deployments validate against the platform SSO.
type AuthProvider interface {
	// Validate checks a bearer token and returns the identity it
	// represents. An invalid token returns an error wrapping
	// ErrUnauthorized.
	Validate(ctx context.Context, token string) (*AuthInfo, error)
}

// AuthzRequest describes one permission check: may Username perform
// Action on the Resource of the project identified by ProjectUID?
type AuthzRequest struct {
	// Username of the caller. Required.
	Username string

	// ProjectUID scopes the check. Required.
	ProjectUID string

	// Resource is the resource class: "committees", "meetings",
	// "mailing-lists", "votes", "permissions", "settings".
	Resource string

	// Action is "view" or "manage".
	Action string
}

// AuthzProvider answers permission checks. A denied check returns an
// error wrapping ErrForbidden; nil means allowed.
type AuthzProvider interface {
	Authorize(ctx context.Context, req AuthzRequest) error
}

// NopAuthProvider authenticates every request as the local admin. It
// is the default for demo deployments, where the gateway runs with no
// identity infrastructure.
type NopAuthProvider struct{}

// Validate always succeeds with the local admin identity.
func (p *NopAuthProvider) Validate(_ context.Context, _ string) (*AuthInfo, error) {
	return &AuthInfo{
		Username: "local-admin",
		Name:     "Local Administrator",
		Roles:    []string{"admin"},
	}, nil
}

// NopAuthzProvider allows every action.
type NopAuthzProvider struct{}

// Authorize always returns nil.
func (p *NopAuthzProvider) Authorize(_ context.Context, _ AuthzRequest) error {
	return nil
}
