// Package report renders analysis results as text grouped by show then
// season, and writes per-item detail tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vmunix/mediascan/internal/analysis"
)

// Options selects optional finding categories.
type Options struct {
	Codecs           bool // video and audio codec mixtures
	DefaultLanguages bool // more than one default audio language
}

func (o Options) include(k analysis.Kind) bool {
	switch k {
	case analysis.KindVideoCodecs, analysis.KindAudioCodecs:
		return o.Codecs
	case analysis.KindDefaultLanguages:
		return o.DefaultLanguages
	}
	return true
}

// Write renders r to w. Locked shows print a single line; seasons without
// findings are omitted.
func Write(w io.Writer, r *analysis.Report, opts Options) error {
	var b strings.Builder
	for _, show := range r.Shows {
		if show.Locked {
			fmt.Fprintf(&b, "%s (locked)\n", show.Name)
			continue
		}

		fmt.Fprintf(&b, "%s:\n", show.Name)
		for _, f := range show.Findings() {
			if opts.include(f.Kind) {
				fmt.Fprintf(&b, "   %s\n", showLine(f))
			}
		}

		for _, s := range show.Seasons {
			var lines []string
			for _, f := range s.Findings() {
				if opts.include(f.Kind) {
					lines = append(lines, seasonLine(f))
				}
			}
			if len(lines) == 0 {
				continue
			}
			fmt.Fprintf(&b, "   Season %d (%s)\n", s.Number, seasonSummary(s))
			for _, l := range lines {
				fmt.Fprintf(&b, "     %s\n", l)
			}
		}
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warn)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func showLine(f analysis.Finding) string {
	switch f.Kind {
	case analysis.KindVideoCodecs:
		return "Mixture of video codecs: " + list(f.Values)
	case analysis.KindPixelFormats:
		return "Mixture of pixel formats: " + list(f.Values)
	case analysis.KindSources:
		return "Mixture of video sources: " + list(f.Values)
	case analysis.KindResolutions:
		return "Mixture of resolutions: " + list(f.Values)
	}
	return string(f.Kind) + ": " + list(f.Values)
}

func seasonLine(f analysis.Finding) string {
	switch f.Kind {
	case analysis.KindPixelFormats:
		return "Mixture of pixel formats: " + list(f.Values)
	case analysis.KindFileSizes:
		return "Inconsistent file sizes " + statsText(f.Stats)
	case analysis.KindBitRates:
		return "Inconsistent bit rates " + statsText(f.Stats)
	case analysis.KindDefaultLanguages:
		return "Multiple audio languages set to default: " + list(f.Values)
	case analysis.KindOutOfPlace:
		return "Out of place: " + strings.Join(f.Values, ", ")
	case analysis.KindMissing:
		return "Missing: " + strings.Join(f.Values, ",")
	case analysis.KindUnparsed:
		return "Unparsed: " + strings.Join(f.Values, ", ")
	case analysis.KindSources:
		return "Sources: " + list(f.Values)
	case analysis.KindVideoCodecs:
		return "Video codecs: " + list(f.Values)
	case analysis.KindAudioCodecs:
		return "Audio codecs: " + list(f.Values)
	case analysis.KindResolutions:
		return "Resolutions: " + list(f.Values)
	}
	return string(f.Kind) + ": " + list(f.Values)
}

func statsText(st *analysis.Stats) string {
	if st == nil {
		return ""
	}
	return fmt.Sprintf("(stddev=%d, min=%d, max=%d, avg=%d)", st.StdDev, st.Min, st.Max, st.Mean)
}

func seasonSummary(s *analysis.Season) string {
	var total int64
	for _, it := range s.Items {
		total += it.FileSizeMB
	}
	return fmt.Sprintf("%d files, %s", len(s.Items), humanize.IBytes(uint64(total)<<20))
}

func list(values []string) string {
	return "{" + strings.Join(values, ", ") + "}"
}
