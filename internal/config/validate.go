package config

import (
	"fmt"
	"regexp"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if _, ok := c.DatabaseConnect(); !ok {
		errs = append(errs, "database: no enabled database configured")
	}

	if len(c.EnabledRoots()) == 0 {
		errs = append(errs, "paths: no paths defined to scan")
	}
	for i, root := range c.Paths {
		if root.Path == "" {
			errs = append(errs, fmt.Sprintf("paths[%d].path: required", i))
		}
		if root.Type == "" {
			errs = append(errs, fmt.Sprintf("paths[%d].type: required", i))
		}
		for j, rule := range root.Tags {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				errs = append(errs, fmt.Sprintf("paths[%d].tags[%d].pattern: %v", i, j, err))
			}
			if rule.Tag == "" {
				errs = append(errs, fmt.Sprintf("paths[%d].tags[%d].tag: required", i, j))
			}
		}
	}

	if c.Scan.Workers < 0 {
		errs = append(errs, fmt.Sprintf("scan.workers: must be at least 1, got %d", c.Scan.Workers))
	}
	if c.Scan.ProbeTimeout < 0 {
		errs = append(errs, "scan.probe_timeout: must be positive")
	}
	if c.Report.ThresholdPct < 0 {
		errs = append(errs, fmt.Sprintf("report.threshold_pct: must not be negative, got %v", c.Report.ThresholdPct))
	}

	return errs
}
