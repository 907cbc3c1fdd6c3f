// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package clients wraps the downstream REST services behind the
// gateway's downstream interfaces. One method per backend operation;
// no retry, no backoff, no caching. List reads degrade to an empty
// collection on failure (logged); single-record reads and writes
// surface typed service errors so handlers can react.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

const defaultTimeout = 30 * time.Second

// Config configures a REST client for one downstream service.
type Config struct {
	// BaseURL is the downstream service root, e.g.
	// "http://project-service:8080/v1".
	BaseURL string

	// Token is the M2M bearer token for downstream calls. Optional;
	// it is moved into a locked enclave and the string should not be
	// retained by the caller.
	Token string

	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration

	// Logger for request failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// rest is the shared HTTP plumbing of the concrete service clients.
type rest struct {
	base  string
	http  *http.Client
	token *Token
	log   *slog.Logger
}

func newREST(cfg Config) (*rest, error) {
	base := strings.TrimSuffix(strings.Trim(cfg.BaseURL, "\"' "), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid downstream base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &rest{
		base:  base,
		http:  &http.Client{Timeout: timeout},
		token: NewToken(cfg.Token),
		log:   log,
	}, nil
}

// httpError carries a non-2xx downstream response.
type httpError struct {
	Status int
	Body   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("downstream returned status %d: %s", e.Status, e.Body)
}

// do issues one request and decodes a JSON response into out (out may
// be nil for responses without a useful body).
func (r *rest) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := r.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != nil {
		if err := r.token.Authorize(req); err != nil {
			return fmt.Errorf("failed to attach downstream token: %w", err)
		}
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("downstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &httpError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode downstream response: %w", err)
	}
	return nil
}

func (r *rest) get(ctx context.Context, path string, query url.Values, out any) error {
	return r.do(ctx, http.MethodGet, path, query, nil, out)
}

func (r *rest) post(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPost, path, nil, body, out)
}

func (r *rest) put(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPut, path, nil, body, out)
}

func (r *rest) delete(ctx context.Context, path string) error {
	return r.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// listFallback implements the read policy for collections: log the
// failure and present an empty list.
func listFallback[T any](log *slog.Logger, what string, err error) []T {
	log.Error("list read failed, returning empty collection", "resource", what, "error", err)
	return []T{}
}

// mapStatus converts a downstream error to the gateway's error
// taxonomy: 404 becomes notFound, 403 becomes ErrForbidden, anything
// else wraps ErrInternal with the original error attached.
func mapStatus(err error, notFound *datatypes.ServiceError) error {
	var he *httpError
	if errors.As(err, &he) {
		switch he.Status {
		case http.StatusNotFound:
			if notFound != nil {
				return notFound
			}
		case http.StatusForbidden:
			return datatypes.ErrForbidden
		}
	}
	return fmt.Errorf("%w: %w", datatypes.ErrInternal, err)
}
