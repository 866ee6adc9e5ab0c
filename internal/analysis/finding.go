package analysis

// Kind names a category of finding.
type Kind string

const (
	KindPixelFormats     Kind = "pixel_formats"
	KindFileSizes        Kind = "file_sizes"
	KindBitRates         Kind = "bit_rates"
	KindDefaultLanguages Kind = "default_languages"
	KindOutOfPlace       Kind = "out_of_place"
	KindMissing          Kind = "missing_episodes"
	KindUnparsed         Kind = "unparsed"
	KindSources          Kind = "sources"
	KindVideoCodecs      Kind = "video_codecs"
	KindAudioCodecs      Kind = "audio_codecs"
	KindResolutions      Kind = "resolutions"
)

// Finding is one anomaly in a season or show. Values holds the offending set
// or list; Stats is set for size and bit-rate findings.
type Finding struct {
	Kind   Kind
	Values []string
	Stats  *Stats
}

// Findings returns the season's anomalies in display order. Channel layouts
// are never reported.
func (s *Season) Findings() []Finding {
	var out []Finding
	if len(s.PixFormats) > 1 {
		out = append(out, Finding{Kind: KindPixelFormats, Values: s.PixFormats})
	}
	if s.SizeInconsistent {
		st := s.Size
		out = append(out, Finding{Kind: KindFileSizes, Stats: &st})
	}
	if s.BitRateInconsistent {
		st := s.BitRate
		out = append(out, Finding{Kind: KindBitRates, Stats: &st})
	}
	if len(s.DefaultAudioLangs) > 1 {
		out = append(out, Finding{Kind: KindDefaultLanguages, Values: s.DefaultAudioLangs})
	}
	if len(s.OutOfPlace) > 0 {
		out = append(out, Finding{Kind: KindOutOfPlace, Values: s.OutOfPlace})
	}
	if len(s.Gaps) > 0 {
		out = append(out, Finding{Kind: KindMissing, Values: s.GapStrings()})
	}
	if len(s.Unparsed) > 0 {
		out = append(out, Finding{Kind: KindUnparsed, Values: s.Unparsed})
	}
	if s.MixedSources() {
		out = append(out, Finding{Kind: KindSources, Values: s.Sources})
	}
	if len(s.VideoCodecs) > 1 {
		out = append(out, Finding{Kind: KindVideoCodecs, Values: s.VideoCodecs})
	}
	if len(s.AudioCodecs) > 1 {
		out = append(out, Finding{Kind: KindAudioCodecs, Values: s.AudioCodecs})
	}
	if len(s.Resolutions) > 1 {
		out = append(out, Finding{Kind: KindResolutions, Values: s.Resolutions})
	}
	return out
}

// Findings returns the show-level mixtures across all seasons.
func (s *Show) Findings() []Finding {
	var out []Finding
	if len(s.VideoCodecs) > 1 {
		out = append(out, Finding{Kind: KindVideoCodecs, Values: s.VideoCodecs})
	}
	if len(s.PixFormats) > 1 {
		out = append(out, Finding{Kind: KindPixelFormats, Values: s.PixFormats})
	}
	if mixedSources(s.Sources) {
		out = append(out, Finding{Kind: KindSources, Values: s.Sources})
	}
	if len(s.Resolutions) > 1 {
		out = append(out, Finding{Kind: KindResolutions, Values: s.Resolutions})
	}
	return out
}
