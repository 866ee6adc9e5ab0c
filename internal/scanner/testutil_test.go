package scanner

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/internal/probe"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, _ := setupStoreDB(t)
	return store
}

// setupStoreDB also returns the handle so tests can alter the schema.
func setupStoreDB(t *testing.T) (*catalog.Store, *sql.DB) {
	t.Helper()
	db, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return catalog.NewStore(db), db
}

var testModTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// writeMedia creates a file of size bytes under root and pins its mtime.
func writeMedia(t *testing.T, root, rel string, size int) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	require.NoError(t, os.Chtimes(path, testModTime, testModTime))
	return path
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func sampleResult(audioLangs ...string) *probe.Result {
	r := &probe.Result{Streams: []probe.Stream{{
		Index:      0,
		CodecType:  "video",
		CodecName:  "h264",
		Width:      1920,
		Height:     1080,
		RFrameRate: "24000/1001",
		PixFmt:     "yuv420p",
		BitRate:    "4300000",
		Duration:   "2640.5",
		Tags:       map[string]string{"language": "eng"},
	}}}
	for i, lang := range audioLangs {
		r.Streams = append(r.Streams, probe.Stream{
			Index:         i + 1,
			CodecType:     "audio",
			CodecName:     "aac",
			ChannelLayout: "stereo",
			Tags:          map[string]string{"language": lang},
		})
	}
	return r
}

func tvConfig(root string) Config {
	return Config{
		Roots:      []Root{{Path: root, Type: catalog.MediaTypeTV}},
		Extensions: []string{".mkv", ".mp4"},
		Workers:    1,
	}
}
