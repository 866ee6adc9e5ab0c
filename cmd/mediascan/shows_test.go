package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediascan/internal/options"
)

func TestPrintShows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Firefly": {"locked": true}, "Angel": {"locked": false}}`), 0644))
	opts, err := options.Load(path, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	printShows(&buf, opts)
	out := buf.String()

	assert.Regexp(t, `Angel\s+│ no`, out)
	assert.Regexp(t, `Firefly\s+│ yes`, out)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Angel")), bytes.Index(buf.Bytes(), []byte("Firefly")))
}

func TestPrintShows_Empty(t *testing.T) {
	opts, err := options.Load(filepath.Join(t.TempDir(), "mediaopts.json"), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	printShows(&buf, opts)
	assert.Contains(t, buf.String(), "No shows registered")
}

func TestSetLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	opts, err := options.Load(path, nil)
	require.NoError(t, err)

	setLocked(opts, []string{"Firefly", "Angel"}, true)
	setLocked(opts, []string{"Angel"}, false)
	require.NoError(t, opts.Save())

	reloaded, err := options.Load(path, nil)
	require.NoError(t, err)
	assert.True(t, reloaded.IsLocked("Firefly"))
	assert.False(t, reloaded.IsLocked("Angel"))
	assert.Equal(t, []string{"Angel", "Firefly"}, reloaded.Names())
}
