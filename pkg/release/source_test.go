package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Show.S01E01.1080p.BluRay.x264.mkv", "bluray"},
		{"Show.S01E01.DVDRip.mkv", "dvd"},
		{"Show.S01E01.WEBDL.mkv", "webdl"},
		{"Show.S01E01.WEBRip.mkv", "webrip"},
		{"Show.S01E01.SDTV.avi", "sdtv"},
		{"Show.S01E01.HDTV.mkv", "hdtv"},
		{"Show.S01E01.WEB-DL.mkv", UnknownSource},
		{"Show.S01E01.mkv", UnknownSource},
		// Priority follows the Sources order, not position in the name.
		{"Show.HDTV.BluRay.mkv", "bluray"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSource(tt.filename))
		})
	}
}

func TestIsPhysicalSource(t *testing.T) {
	assert.True(t, IsPhysicalSource("bluray"))
	assert.True(t, IsPhysicalSource("dvd"))
	assert.False(t, IsPhysicalSource("webdl"))
	assert.False(t, IsPhysicalSource(UnknownSource))
}
