// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package clients

import (
	"fmt"
	"net/http"

	"github.com/awnumar/memguard"
)

// Token holds the downstream M2M bearer token in a memguard enclave
// so it is encrypted at rest in process memory and never sits in a
// long-lived Go string. The plaintext exists only for the duration of
// header injection.
type Token struct {
	enclave *memguard.Enclave
}

// NewToken seals a raw token. Returns nil for an empty token (the
// demo deployment runs without downstream auth).
func NewToken(raw string) *Token {
	if raw == "" {
		return nil
	}
	return &Token{enclave: memguard.NewEnclave([]byte(raw))}
}

// Authorize sets the Authorization header on req from the sealed
// token and wipes the plaintext immediately after.
func (t *Token) Authorize(req *http.Request) error {
	buf, err := t.enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open token enclave: %w", err)
	}
	defer buf.Destroy()
	req.Header.Set("Authorization", "Bearer "+buf.String())
	return nil
}
