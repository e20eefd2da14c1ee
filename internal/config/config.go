// Package config loads the mediation engine's own small workspace
// configuration, following the load/save/env-override shape used
// throughout this codebase's config layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the mediation engine's tunables. It is intentionally
// small: almost everything the spec describes is either fixed
// behavior or derived from the workspace itself.
//
// Load and Save only read and write these values. Nothing else in this
// module calls Load: the CLI takes debug mode from its --debug flag, and
// NewFacade takes its ledger path and VCS probe from its arguments.
type Config struct {
	// Debug enables verbose category logging.
	Debug bool `yaml:"debug"`

	// VCSTimeoutMS overrides the VCS probe's hard timeout (default 3000ms
	// per spec §4.B / §5).
	VCSTimeoutMS int `yaml:"vcs_timeout_ms"`

	// LedgerPath overrides the default agent_trace.jsonl location,
	// relative to the workspace root.
	LedgerPath string `yaml:"ledger_path,omitempty"`
}

// DefaultConfig returns the zero-config defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		VCSTimeoutMS: 3000,
		LedgerPath:   filepath.Join(".orchestration", "agent_trace.jsonl"),
	}
}

// VCSTimeout returns the configured VCS probe timeout as a duration.
func (c *Config) VCSTimeout() time.Duration {
	if c.VCSTimeoutMS <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.VCSTimeoutMS) * time.Millisecond
}

// Load reads <workspace>/.orchestration/config.yaml. A missing file is
// not an error — it yields defaults, mirroring the rest of this
// codebase's tolerant config loading.
func Load(workspace string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(workspace, ".orchestration", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the config back to <workspace>/.orchestration/config.yaml.
func Save(workspace string, cfg *Config) error {
	dir := filepath.Join(workspace, ".orchestration")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets INTENTGUARD_DEBUG and INTENTGUARD_VCS_TIMEOUT_MS
// override the file-loaded config, mirroring the env-override pattern
// used elsewhere in this codebase's config layer.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INTENTGUARD_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("INTENTGUARD_VCS_TIMEOUT_MS"); v != "" {
		var ms int
		if _, err := fmt.Sscanf(v, "%d", &ms); err == nil && ms > 0 {
			cfg.VCSTimeoutMS = ms
		}
	}
}
