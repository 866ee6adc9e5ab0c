package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediascan/internal/analysis"
	"github.com/vmunix/mediascan/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

func sampleReport() *analysis.Report {
	season := &analysis.Season{
		Dir:    "/tv/Firefly/Season 1",
		Number: 1,
		Items: []*catalog.Item{
			{Filename: "Firefly.S01E01.BluRay.mkv", FileSizeMB: 1000, Width: 1920, Height: 1080, FPS: 23, DurationMin: 44, BitRate: ptr(int64(4199)), ColorSpace: ptr("bt709"), PixFormat: "yuv420p"},
			{Filename: "Firefly.S01E02.WEBDL.mkv", FileSizeMB: 2072, Width: 1280, Height: 720, FPS: 23, DurationMin: 43, PixFormat: "yuv420p"},
		},
		Gaps:              []int{3, 4},
		OutOfPlace:        []string{"Firefly.S02E06.mkv"},
		Sources:           []string{"bluray", "webdl"},
		Resolutions:       []string{"1280x720", "1920x1080"},
		VideoCodecs:       []string{"h264", "hevc"},
		PixFormats:        []string{"yuv420p"},
		DefaultAudioLangs: []string{"eng", "jpn"},
		ChannelLayouts:    []string{"5.1", "stereo"},
		Size:              analysis.Stats{N: 2, Mean: 1536, StdDev: 536, Min: 1000, Max: 2072},
		SizeInconsistent:  true,
	}
	quiet := &analysis.Season{Dir: "/tv/Firefly/Season 2", Number: 2, PixFormats: []string{"yuv420p"}}

	return &analysis.Report{
		Shows: []*analysis.Show{
			{
				Name:        "Firefly",
				Dir:         "/tv/Firefly",
				Seasons:     []*analysis.Season{season, quiet},
				Sources:     []string{"bluray", "webdl"},
				Resolutions: []string{"1280x720", "1920x1080"},
				VideoCodecs: []string{"h264", "hevc"},
				PixFormats:  []string{"yuv420p"},
			},
			{Name: "The Wire", Dir: "/tv/The Wire", Locked: true},
		},
		Warnings: []string{"missing size data in Tiny, Season 1 - skipped"},
	}
}

func TestWrite_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), Options{}))

	want := strings.Join([]string{
		"Firefly:",
		"   Mixture of video sources: {bluray, webdl}",
		"   Mixture of resolutions: {1280x720, 1920x1080}",
		"   Season 1 (2 files, 3.0 GiB)",
		"     Inconsistent file sizes (stddev=536, min=1000, max=2072, avg=1536)",
		"     Out of place: Firefly.S02E06.mkv",
		"     Missing: 3,4",
		"     Sources: {bluray, webdl}",
		"     Resolutions: {1280x720, 1920x1080}",
		"The Wire (locked)",
		"warning: missing size data in Tiny, Season 1 - skipped",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWrite_OptionalFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), Options{Codecs: true, DefaultLanguages: true}))
	out := buf.String()

	assert.Contains(t, out, "   Mixture of video codecs: {h264, hevc}\n")
	assert.Contains(t, out, "     Video codecs: {h264, hevc}\n")
	assert.Contains(t, out, "     Multiple audio languages set to default: {eng, jpn}\n")
	assert.NotContains(t, out, "stereo", "channel layouts are never reported")
	assert.NotContains(t, out, "Season 2", "seasons without findings are omitted")
}

func TestWriteDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDetails(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "/tv/Firefly/Season 1:\n")
	assert.Contains(t, out, "S01E01.BluRay.mkv")
	assert.NotContains(t, out, "Firefly.S01E01", "names are trimmed to the episode marker")
	assert.Contains(t, out, "1000 MiB")
	assert.Contains(t, out, "2.0 GiB")
	assert.Contains(t, out, "4199")
	assert.Contains(t, out, "bt709")
	assert.Contains(t, out, "+--", "non-terminal output uses ASCII borders")
}
