package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./mediascan.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mediascan", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. MEDIASCAN_CONFIG environment variable
//  2. ./mediascan.toml
//  3. ./mediascan.yml (legacy)
//  4. $XDG_CONFIG_HOME/mediascan/config.toml
//  5. /etc/mediascan/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("MEDIASCAN_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("MEDIASCAN_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./mediascan.toml",
		"./mediascan.yml",
		DefaultPath(),
		"/etc/mediascan/config.toml",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
