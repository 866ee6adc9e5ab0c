package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/vmunix/mediascan/internal/analysis"
	"github.com/vmunix/mediascan/pkg/release"
)

var detailHeaders = []string{"Episode", "Dur", "Size(MB)", "Size", "FPS", "Bit Rate", "Resolution", "Color", "Pixel Fmt"}

// WriteDetails writes one table per season directory listing every item.
// Rounded box drawing is used on terminals, plain ASCII otherwise.
func WriteDetails(w io.Writer, r *analysis.Report) error {
	style := table.StyleDefault
	if isTerminal(w) {
		style = table.StyleRounded
	}

	for _, show := range r.Shows {
		for _, s := range show.Seasons {
			if _, err := fmt.Fprintf(w, "%s:\n%s\n\n", s.Dir, seasonTable(s, style)); err != nil {
				return err
			}
		}
	}
	return nil
}

func seasonTable(s *analysis.Season, style table.Style) string {
	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, len(detailHeaders))
	for i, h := range detailHeaders {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, it := range s.Items {
		var bitRate int64
		if it.BitRate != nil {
			bitRate = *it.BitRate
		}
		color := ""
		if it.ColorSpace != nil {
			color = *it.ColorSpace
		}
		tw.AppendRow(table.Row{
			release.TrimToEpisode(it.Filename),
			strconv.Itoa(it.DurationMin),
			strconv.FormatInt(it.FileSizeMB, 10),
			humanize.IBytes(uint64(it.FileSizeMB) << 20),
			strconv.Itoa(it.FPS),
			strconv.FormatInt(bitRate, 10),
			it.Resolution(),
			color,
			it.PixFormat,
		})
	}

	configs := make([]table.ColumnConfig, 0, len(detailHeaders))
	for i := range detailHeaders {
		align := text.AlignRight
		if i == 0 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
