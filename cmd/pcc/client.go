// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// getJSON fetches a gateway endpoint and decodes the JSON body into out.
func getJSON(path string, out any) error {
	url := strings.TrimSuffix(gatewayURL, "/") + path
	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("gateway unreachable at %s: %w", gatewayURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// bold wraps s in ANSI bold when stdout is a terminal.
func bold(s string) string {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "\033[1m" + s + "\033[0m"
	}
	return s
}
