// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package validation provides input validation for user-provided
// identifiers before they reach a downstream service.
//
// Every path and query parameter that ends up in a downstream request
// URL goes through one of these validators first, so a malformed
// identifier is rejected with a structured 400 instead of being
// forwarded.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// slugPattern matches project slugs: lowercase alphanumeric segments
// separated by single hyphens, 1-63 characters (DNS-label shaped).
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// usernamePattern matches identity-service usernames.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-]{0,63}$`)

// uidPattern matches resource UIDs. Downstream services issue UUIDs,
// but the identifier space is deliberately wider so demo fixtures and
// legacy records with readable ids ("proj-k8s") pass too.
var uidPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-]{0,63}$`)

// MaxQueryLength bounds free-text search input.
const MaxQueryLength = 256

// ValidateSlug validates a project slug path parameter.
//
// Valid slugs are 1-63 characters of lowercase letters, digits, and
// single interior hyphens (e.g. "kubernetes", "open-telemetry").
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(slug) > 63 {
		return fmt.Errorf("slug too long: %d characters (max 63)", len(slug))
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid slug format: %q (lowercase alphanumerics and hyphens only)", slug)
	}
	return nil
}

// ValidateUID validates a resource UID path parameter.
func ValidateUID(uid string) error {
	if uid == "" {
		return fmt.Errorf("uid cannot be empty")
	}
	if !uidPattern.MatchString(uid) {
		return fmt.Errorf("invalid uid format: %q", uid)
	}
	return nil
}

// ValidateUsername validates an identity-service username.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("invalid username format: %q", username)
	}
	return nil
}

// SanitizeQuery trims and bounds a free-text search query. Control
// characters are stripped; the result may be empty. Truncation lands
// on a rune boundary so the result stays valid UTF-8.
func SanitizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLength {
		cut := MaxQueryLength
		for cut > 0 && !utf8.RuneStart(q[cut]) {
			cut--
		}
		q = q[:cut]
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, q)
}
