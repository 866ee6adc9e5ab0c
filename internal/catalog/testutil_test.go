package catalog

import (
	"database/sql"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func testItem(pathID int64, filename string) *Item {
	return &Item{
		PathID:       pathID,
		Filename:     filename,
		VideoCodec:   "hevc",
		Width:        1920,
		Height:       1080,
		DurationMin:  42,
		FPS:          23,
		ColorSpace:   ptr("bt709"),
		PixFormat:    "yuv420p10le",
		BitRate:      ptr(int64(4200)),
		FileSizeMB:   1350,
		LastModified: time.Unix(1700000000, 123456789),
		Audio: []AudioTrack{
			{Lang: "eng", Codec: "eac3", ChannelLayout: ptr("5.1(side)"), BitRate: ptr(int64(640000)), IsDefault: true},
			{Lang: "jpn", Codec: "aac", ChannelLayout: ptr("stereo")},
		},
		Subtitles: []SubtitleTrack{
			{Lang: "eng", Format: "subrip", IsDefault: false},
		},
	}
}
