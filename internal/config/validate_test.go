package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func validConfig() *Config {
	return &Config{
		Database: []DatabaseConfig{{Connect: "sqlite:///media.db"}},
		Paths:    []RootConfig{{Path: "/media/tv", Type: "tv"}},
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := validConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_NoDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database = nil
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "no enabled database"), "got %v", errs)
}

func TestValidate_AllDatabasesDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Database[0].Enabled = ptr(false)
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "no enabled database"), "got %v", errs)
}

func TestValidate_NoRoots(t *testing.T) {
	cfg := validConfig()
	cfg.Paths[0].Enabled = ptr(false)
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "no paths defined"), "got %v", errs)
}

func TestValidate_RootFields(t *testing.T) {
	cfg := validConfig()
	cfg.Paths = append(cfg.Paths, RootConfig{})
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "paths[1].path: required"), "got %v", errs)
	assert.True(t, containsError(errs, "paths[1].type: required"), "got %v", errs)
}

func TestValidate_InvalidTagPattern(t *testing.T) {
	cfg := validConfig()
	cfg.Paths[0].Tags = []TagRule{{Pattern: "([unclosed", Tag: "x"}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "paths[0].tags[0].pattern"), "got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log_level"), "got %v", errs)
}

func TestValidate_NegativeThreshold(t *testing.T) {
	cfg := validConfig()
	cfg.Report.ThresholdPct = -1
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "report.threshold_pct"), "got %v", errs)
}
