// Package config handles TOML (and legacy YAML) configuration loading with
// environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel string           `toml:"log_level" yaml:"log_level"`
	Database []DatabaseConfig `toml:"database" yaml:"database"`
	Paths    []RootConfig     `toml:"paths" yaml:"paths"`
	Scan     ScanConfig       `toml:"scan" yaml:"scan"`
	Report   ReportConfig     `toml:"report" yaml:"report"`
}

// DatabaseConfig is one candidate catalog database. The first enabled entry
// is used.
type DatabaseConfig struct {
	Connect string `toml:"connect" yaml:"connect"`
	Enabled *bool  `toml:"enabled" yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the entry is enabled.
func (d DatabaseConfig) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// RootConfig is a directory tree to synchronize.
type RootConfig struct {
	Path    string    `toml:"path" yaml:"path"`
	Type    string    `toml:"type" yaml:"type"`
	Enabled *bool     `toml:"enabled" yaml:"enabled"` // nil means enabled
	Tags    []TagRule `toml:"tags" yaml:"tags"`
}

// IsEnabled reports whether the root is enabled.
func (r RootConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// TagRule classifies files whose full path matches Pattern from its start.
type TagRule struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Tag     string `toml:"tag" yaml:"tag"`
}

type ScanConfig struct {
	Extensions    []string      `toml:"extensions" yaml:"extensions"`
	Workers       int           `toml:"workers" yaml:"workers"`
	ProbeTimeout  time.Duration `toml:"probe_timeout" yaml:"probe_timeout"`
	FFProbe       string        `toml:"ffprobe" yaml:"ffprobe"`
	WatchDebounce time.Duration `toml:"watch_debounce" yaml:"watch_debounce"`
}

type ReportConfig struct {
	Category     string  `toml:"category" yaml:"category"`
	ThresholdPct float64 `toml:"threshold_pct" yaml:"threshold_pct"`
	OptionsFile  string  `toml:"options_file" yaml:"options_file"`
	DetailsFile  string  `toml:"details_file" yaml:"details_file"`
}

// Defaults applied by Load for unset keys.
var (
	DefaultExtensions    = []string{".mkv", ".mp4", ".avi", ".m4v"}
	DefaultProbeTimeout  = 2 * time.Minute
	DefaultWatchDebounce = 5 * time.Second
)

const (
	DefaultCategory     = "tv"
	DefaultThresholdPct = 40.0
	DefaultOptionsFile  = "mediaopts.json"
	DefaultDetailsFile  = "details.txt"
)

// Load reads, substitutes, decodes, defaults and validates the configuration
// file at path. Files ending in .yml or .yaml are decoded as YAML, everything
// else as TOML. Any failure after reading is reported as *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}

	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else {
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &Error{Path: path, Errors: errs}
	}
	return &cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range c.Scan.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.Extensions[i] = ext
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 1
	}
	if c.Scan.ProbeTimeout == 0 {
		c.Scan.ProbeTimeout = DefaultProbeTimeout
	}
	if c.Scan.FFProbe == "" {
		c.Scan.FFProbe = "ffprobe"
	}
	if c.Scan.WatchDebounce == 0 {
		c.Scan.WatchDebounce = DefaultWatchDebounce
	}
	if c.Report.Category == "" {
		c.Report.Category = DefaultCategory
	}
	if c.Report.ThresholdPct == 0 {
		c.Report.ThresholdPct = DefaultThresholdPct
	}
	if c.Report.OptionsFile == "" {
		c.Report.OptionsFile = DefaultOptionsFile
	}
	if c.Report.DetailsFile == "" {
		c.Report.DetailsFile = DefaultDetailsFile
	}
}

// DatabaseConnect returns the connect string of the first enabled database.
func (c *Config) DatabaseConnect() (string, bool) {
	for _, db := range c.Database {
		if db.IsEnabled() && db.Connect != "" {
			return db.Connect, true
		}
	}
	return "", false
}

// EnabledRoots returns the enabled roots in configured order.
func (c *Config) EnabledRoots() []RootConfig {
	var roots []RootConfig
	for _, r := range c.Paths {
		if r.IsEnabled() {
			roots = append(roots, r)
		}
	}
	return roots
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with environment values. Unset variables
// without a default are left in place and returned as missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, hasDefault := m[1], strings.Contains(match, ":-")
		if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return m[2]
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
