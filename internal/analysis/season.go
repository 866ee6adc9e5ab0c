package analysis

import (
	"log/slog"
	"slices"
	"sort"
	"strconv"

	"github.com/vmunix/mediascan/internal/catalog"
	"github.com/vmunix/mediascan/pkg/release"
)

// Season is the analysis of one "<show>/Season N" directory.
type Season struct {
	Dir    string
	Number int
	Items  []*catalog.Item

	Size    Stats // MB
	BitRate Stats // kbps, items without a bit rate are left out

	Episodes   []int    // distinct, ascending
	Gaps       []int    // ascending
	OutOfPlace []string // filenames whose season differs from Number
	Unparsed   []string // filenames without a season/episode marker

	Sources           []string
	Resolutions       []string
	VideoCodecs       []string
	PixFormats        []string
	AudioCodecs       []string
	DefaultAudioLangs []string
	ChannelLayouts    []string

	SizeInconsistent    bool
	BitRateInconsistent bool
}

// MixedSources reports whether the season mixes disc and other sources.
func (s *Season) MixedSources() bool { return mixedSources(s.Sources) }

func mixedSources(sources []string) bool {
	if len(sources) < 2 {
		return false
	}
	return slices.ContainsFunc(sources, release.IsPhysicalSource)
}

// analyzeSeason aggregates one season directory. Items without a
// season/episode marker are logged and left out of episode statistics only.
func analyzeSeason(dir string, number int, items []*catalog.Item, thresholdPct float64, logger *slog.Logger) *Season {
	s := &Season{Dir: dir, Number: number, Items: items}

	var sizes, bitRates []int64
	episodes := make(map[int]bool)
	sources, res, vcodecs, pixfmts := make(set), make(set), make(set), make(set)
	acodecs, alangs, layouts := make(set), make(set), make(set)

	for _, it := range items {
		sizes = append(sizes, it.FileSizeMB)
		if it.BitRate != nil {
			bitRates = append(bitRates, *it.BitRate)
		}

		sources.add(release.DetectSource(it.Filename))
		res.add(it.Resolution())
		vcodecs.add(it.VideoCodec)
		pixfmts.add(it.PixFormat)
		for _, a := range it.Audio {
			acodecs.add(a.Codec)
			if a.IsDefault {
				alangs.add(a.Lang)
			}
			if a.ChannelLayout != nil {
				layouts.add(*a.ChannelLayout)
			}
		}

		ref := release.ParseEpisodes(it.Filename)
		if !ref.OK() {
			logger.Warn("unable to parse season/episode, skipped", "file", it.Filename, "dir", dir)
			s.Unparsed = append(s.Unparsed, it.Filename)
			continue
		}
		if ref.Season != number {
			s.OutOfPlace = append(s.OutOfPlace, it.Filename)
		}
		for _, e := range ref.Episodes {
			episodes[e] = true
		}
	}

	for e := range episodes {
		s.Episodes = append(s.Episodes, e)
	}
	sort.Ints(s.Episodes)
	s.Gaps = gaps(s.Episodes)

	s.Size = computeStats(sizes)
	s.BitRate = computeStats(bitRates)
	s.SizeInconsistent = s.Size.Inconsistent(thresholdPct)
	s.BitRateInconsistent = s.BitRate.StdDev > 0 && s.BitRate.Inconsistent(thresholdPct)

	s.Sources = sources.sorted()
	s.Resolutions = res.sorted()
	s.VideoCodecs = vcodecs.sorted()
	s.PixFormats = pixfmts.sorted()
	s.AudioCodecs = acodecs.sorted()
	s.DefaultAudioLangs = alangs.sorted()
	s.ChannelLayouts = layouts.sorted()
	return s
}

// GapStrings formats Gaps for display.
func (s *Season) GapStrings() []string {
	out := make([]string, len(s.Gaps))
	for i, g := range s.Gaps {
		out[i] = strconv.Itoa(g)
	}
	return out
}
