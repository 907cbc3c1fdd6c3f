// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config loads the gateway's configuration: defaults, then an
// optional YAML file (~/.pcc/pcc.yaml or $PCC_CONFIG), then environment
// variables. Later sources win.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the gateway's full configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	// Downstream service base URLs. All empty means demo mode: the
	// gateway serves seeded fixtures from an embedded store instead.
	ProjectServiceURL string `yaml:"project_service_url"`
	MeetingServiceURL string `yaml:"meeting_service_url"`
	IdentityURL       string `yaml:"identity_service_url"`
	OrganizationURL   string `yaml:"organization_service_url"`

	// M2MToken authenticates the gateway to the downstream services.
	M2MToken string `yaml:"m2m_token"`

	// DemoDataDir is where demo mode persists its store. Empty keeps
	// the demo store in memory.
	DemoDataDir string `yaml:"demo_data_dir"`

	// FlagsFile is the feature-flag YAML file. Empty disables flags.
	FlagsFile string `yaml:"flags_file"`

	// AttachmentBucket is the GCS bucket for attachment bytes. Empty
	// falls back to AttachmentDir.
	AttachmentBucket string `yaml:"attachment_bucket"`
	GCSKeyFile       string `yaml:"gcs_key_file"`
	AttachmentDir    string `yaml:"attachment_dir"`

	// Audit sink. Empty URL means audit events go to the log.
	InfluxURL    string `yaml:"influx_url"`
	InfluxToken  string `yaml:"influx_token"`
	InfluxOrg    string `yaml:"influx_org"`
	InfluxBucket string `yaml:"influx_bucket"`

	// OTLPEndpoint enables trace export when set (host:port of an OTLP
	// gRPC collector).
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// Rate limiting for /api.
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
}

// Defaults returns the demo-ready configuration.
func Defaults() Config {
	return Config{
		Addr:               ":8080",
		LogLevel:           "info",
		AttachmentDir:      filepath.Join(os.TempDir(), "pcc-attachments"),
		InfluxBucket:       "pcc-audit",
		RateLimitPerSecond: 50,
		RateLimitBurst:     200,
	}
}

// DemoMode reports whether no downstream URL is configured.
func (c Config) DemoMode() bool {
	return c.ProjectServiceURL == "" && c.MeetingServiceURL == "" &&
		c.IdentityURL == "" && c.OrganizationURL == ""
}

// Load builds the configuration from defaults, file, and environment.
func Load() (Config, error) {
	cfg := Defaults()

	path := os.Getenv("PCC_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".pcc", "pcc.yaml")
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.loadEnv()
	return cfg, nil
}

// loadFile merges a YAML file into cfg. A missing file is not an
// error; a malformed one is.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	setString(&c.Addr, "PCC_ADDR")
	setString(&c.LogLevel, "PCC_LOG_LEVEL")
	setString(&c.ProjectServiceURL, "PCC_PROJECT_SERVICE_URL")
	setString(&c.MeetingServiceURL, "PCC_MEETING_SERVICE_URL")
	setString(&c.IdentityURL, "PCC_IDENTITY_SERVICE_URL")
	setString(&c.OrganizationURL, "PCC_ORGANIZATION_SERVICE_URL")
	setString(&c.M2MToken, "PCC_M2M_TOKEN")
	setString(&c.DemoDataDir, "PCC_DEMO_DATA_DIR")
	setString(&c.FlagsFile, "PCC_FLAGS_FILE")
	setString(&c.AttachmentBucket, "PCC_ATTACHMENT_BUCKET")
	setString(&c.GCSKeyFile, "PCC_GCS_KEY_FILE")
	setString(&c.AttachmentDir, "PCC_ATTACHMENT_DIR")
	setString(&c.InfluxURL, "PCC_INFLUX_URL")
	setString(&c.InfluxToken, "PCC_INFLUX_TOKEN")
	setString(&c.InfluxOrg, "PCC_INFLUX_ORG")
	setString(&c.InfluxBucket, "PCC_INFLUX_BUCKET")
	setString(&c.OTLPEndpoint, "PCC_OTLP_ENDPOINT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
