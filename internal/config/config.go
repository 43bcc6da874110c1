// Package config loads the quicklaunch configuration file.
//
// The file is expanded as a text/template (with the sprig function map, so
// credentials can be pulled from the environment) and the result is parsed
// as YAML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	AWS  AWSConfig  `yaml:"aws"`
	OTEL OTELConfig `yaml:"otel"`
	Log  LogConfig  `yaml:"log"`
}

// AWSConfig holds provider credentials and region settings.
type AWSConfig struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	Region          string `yaml:"region"`
	Profile         string `yaml:"profile"`
	Endpoint        string `yaml:"endpoint"`
}

// HasStaticCredentials reports whether the file carries an access key pair.
func (c AWSConfig) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// OTELConfig holds OpenTelemetry settings.
type OTELConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Insecure    bool          `yaml:"insecure"`
	ServiceName string        `yaml:"service_name"`
	Traces      TracesConfig  `yaml:"traces"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// TracesConfig holds tracing settings.
type TracesConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate float64 `yaml:"sample_rate"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Textfile, when set, receives the Prometheus exposition of all metrics
	// on shutdown (node_exporter textfile collector format).
	Textfile string `yaml:"textfile"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads, expands and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded, err := Expand(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Expand renders data as a text/template with the sprig functions available.
func Expand(name string, data []byte) ([]byte, error) {
	tpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("expand config template: %w", err)
	}
	return buf.Bytes(), nil
}

func applyDefaults(cfg *Config) {
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "quicklaunch"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	// An enabled tracer with no rate samples everything.
	if cfg.OTEL.Traces.Enabled && cfg.OTEL.Traces.SampleRate == 0 {
		cfg.OTEL.Traces.SampleRate = 1.0
	}
}

// Validate checks the configuration is valid.
func (c *Config) Validate() error {
	if c.AWS.Region == "" {
		return fmt.Errorf("aws: region is required")
	}
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("aws: access_key_id and secret_access_key must be set together")
	}
	if c.OTEL.Traces.SampleRate < 0.0 || c.OTEL.Traces.SampleRate > 1.0 {
		return fmt.Errorf("otel: traces.sample_rate must be between 0.0 and 1.0 (got %v)", c.OTEL.Traces.SampleRate)
	}
	return nil
}
