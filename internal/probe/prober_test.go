package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFProbe writes a shell script standing in for ffprobe.
func fakeFFProbe(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestFFProbe_Probe(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleMP4), 0o644))
	bin := fakeFFProbe(t, "cat "+jsonPath)

	r, err := NewFFProbe(bin, time.Minute).Probe(context.Background(), "/media/Show.S01E01.mp4")
	require.NoError(t, err)
	require.Len(t, r.Streams, 2)
	assert.Equal(t, "h264", r.Streams[0].CodecName)
}

func TestFFProbe_ProcessFailure(t *testing.T) {
	bin := fakeFFProbe(t, "exit 1")

	_, err := NewFFProbe(bin, time.Minute).Probe(context.Background(), "/media/broken.mkv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.mkv")
}

func TestFFProbe_MalformedOutput(t *testing.T) {
	bin := fakeFFProbe(t, "echo 'not json'")

	_, err := NewFFProbe(bin, time.Minute).Probe(context.Background(), "/media/x.mkv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse ffprobe JSON")
}

func TestFFProbe_Timeout(t *testing.T) {
	bin := fakeFFProbe(t, "exec sleep 10")

	start := time.Now()
	_, err := NewFFProbe(bin, 100*time.Millisecond).Probe(context.Background(), "/media/hung.mkv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}
