package options

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "mediaopts.json"), testLogger())
	require.NoError(t, err)
	assert.Empty(t, f.Names())
}

func TestLoad_NullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0644))

	f, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.Empty(t, f.Names())

	assert.True(t, f.Ensure("Firefly"))
	f.SetLocked("The Wire", true)
	assert.True(t, f.IsLocked("The Wire"))
	assert.Equal(t, []string{"Firefly", "The Wire"}, f.Names())
}

func TestLoad_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Firefly": {"locked": true}, "The Wire": {"locked": false}}`), 0644))

	f, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.True(t, f.IsLocked("Firefly"))
	assert.False(t, f.IsLocked("The Wire"))
	assert.False(t, f.IsLocked("Unknown"))
	assert.Equal(t, []string{"Firefly", "The Wire"}, f.Names())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse options")
}

func TestEnsure(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "mediaopts.json"), testLogger())
	require.NoError(t, err)

	assert.True(t, f.Ensure("Firefly"), "first ensure creates")
	assert.False(t, f.Ensure("Firefly"), "second ensure is a no-op")

	s, ok := f.Get("Firefly")
	require.True(t, ok)
	assert.False(t, s.Locked)
}

func TestEnsure_KeepsLocked(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "mediaopts.json"), testLogger())
	require.NoError(t, err)

	f.SetLocked("Firefly", true)
	assert.False(t, f.Ensure("Firefly"))
	assert.True(t, f.IsLocked("Firefly"))
}

func TestEnsure_RenameHintLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	f, err := Load(filepath.Join(t.TempDir(), "mediaopts.json"), logger)
	require.NoError(t, err)
	f.SetLocked("Battlestar Galactica", true)

	f.Ensure("Battlestar Galactica (2004)")
	assert.Contains(t, buf.String(), "resembles a locked show")
	assert.Contains(t, buf.String(), "locked_show=\"Battlestar Galactica\"")
}

func TestRenameHint_IgnoresUnlocked(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "mediaopts.json"), testLogger())
	require.NoError(t, err)
	f.Ensure("Battlestar Galactica")

	_, ok := f.RenameHint("Battlestar Galactica (2004)")
	assert.False(t, ok)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediaopts.json")
	f, err := Load(path, testLogger())
	require.NoError(t, err)

	f.Ensure("The Wire")
	f.SetLocked("Firefly", true)
	require.NoError(t, f.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"Firefly\": {\n        \"locked\": true\n    },\n    \"The Wire\": {\n        \"locked\": false\n    }\n}\n", string(data))

	reloaded, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.True(t, reloaded.IsLocked("Firefly"))
	assert.Equal(t, []string{"Firefly", "The Wire"}, reloaded.Names())
}
