package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediascan", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[[database]]")
	assert.Contains(t, string(content), "[[paths]]")
	assert.Contains(t, string(content), "[[paths.tags]]")
	assert.Contains(t, string(content), "threshold_pct")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	_, err := os.Stat(path)
	assert.False(t, os.IsNotExist(err), "file was not created")
}
