package probe

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalid marks a probe result that cannot produce a usable descriptor.
var ErrInvalid = errors.New("invalid media")

// UnknownLanguage is stored when neither a stream nor the video stream names a language.
const UnknownLanguage = "???"

const bytesPerMB = 1024 * 1024

// Normalize converts a probe result into a Descriptor.
//
// Only the first video stream is used. The video stream's language becomes
// the fallback for every later audio or subtitle stream without its own.
// A result without a stream list, without a video stream, or without any
// audio track is rejected with an error wrapping ErrInvalid.
func Normalize(r *Result, st FileStat) (*Descriptor, error) {
	if r == nil || r.Streams == nil {
		return nil, fmt.Errorf("%w: no stream list", ErrInvalid)
	}

	d := &Descriptor{}
	videoFound := false
	defaultLang := UnknownLanguage

	for i := range r.Streams {
		s := &r.Streams[i]
		switch s.CodecType {
		case "video":
			if videoFound {
				continue
			}
			videoFound = true
			normalizeVideo(d, s, st)
			if lang, ok := s.Tags["language"]; ok && lang != "" {
				defaultLang = lang
			}
		case "audio":
			d.Audio = append(d.Audio, AudioTrack{
				StreamIndex:   s.Index,
				Lang:          streamLanguage(s, defaultLang),
				Codec:         s.CodecName,
				ChannelLayout: channelLayout(s),
				BitRate:       optionalInt(s.BitRate),
				IsDefault:     s.Disposition["default"] != 0,
			})
		case "subtitle":
			d.Subtitles = append(d.Subtitles, SubtitleTrack{
				StreamIndex: s.Index,
				Lang:        streamLanguage(s, defaultLang),
				Format:      s.CodecName,
				IsDefault:   s.Disposition["default"] != 0,
			})
		}
	}

	if !videoFound {
		return nil, fmt.Errorf("%w: no video stream", ErrInvalid)
	}
	if len(d.Audio) == 0 {
		return nil, fmt.Errorf("%w: no audio track", ErrInvalid)
	}

	// A lone audio track is always the default one.
	if len(d.Audio) == 1 {
		d.Audio[0].IsDefault = true
	}
	return d, nil
}

func normalizeVideo(d *Descriptor, s *Stream, st FileStat) {
	d.StreamIndex = s.Index
	d.VideoCodec = s.CodecName
	d.Width = s.Width
	d.Height = s.Height
	d.FPS = frameRate(s.RFrameRate)
	d.PixFormat = s.PixFmt
	if s.ColorSpace != "" {
		cs := s.ColorSpace
		d.ColorSpace = &cs
	}
	d.FileSizeMB = st.SizeBytes / bytesPerMB
	d.ModTime = st.ModTime

	if kbps, ok := toKbps(s.BitRate); ok {
		d.BitRate = &kbps
	} else if tag, ok := firstTag(s.Tags, func(name string) bool {
		return name == "BPS" || strings.HasPrefix(name, "BPS-")
	}); ok {
		if kbps, ok := toKbps(s.Tags[tag]); ok {
			d.BitRate = &kbps
		}
	}

	if secs, err := strconv.ParseFloat(strings.TrimSpace(s.Duration), 64); err == nil {
		d.DurationMin = int(secs / 60)
	} else if tag, ok := firstTag(s.Tags, func(name string) bool {
		return strings.HasPrefix(name, "DURATION")
	}); ok {
		d.DurationMin = clockMinutes(s.Tags[tag])
	}
}

// frameRate evaluates a "num/den" rational by integer division.
func frameRate(rational string) int {
	num, den, ok := strings.Cut(rational, "/")
	if !ok {
		n, _ := strconv.Atoi(strings.TrimSpace(rational))
		return n
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0
	}
	dd, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil || dd == 0 {
		return 0
	}
	return n / dd
}

// clockMinutes converts "hh:mm:ss[.frac]" to hh*60+mm. Seconds are dropped.
func clockMinutes(v string) int {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) < 2 {
		return 0
	}
	hh, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	mm, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0
	}
	return int(hh)*60 + int(mm)
}

func toKbps(v string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n / 1024, true
}

func optionalInt(v string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func channelLayout(s *Stream) *string {
	if s.ChannelLayout != "" {
		cl := s.ChannelLayout
		return &cl
	}
	if s.Channels > 0 {
		cl := strconv.Itoa(s.Channels) + " channels"
		return &cl
	}
	return nil
}

// streamLanguage returns the stream's language tag, a language recovered from a
// "DURATION-<lang>" tag, or fallback.
func streamLanguage(s *Stream, fallback string) string {
	if len(s.Tags) == 0 {
		return fallback
	}
	if lang, ok := s.Tags["language"]; ok && lang != "" {
		return lang
	}
	if tag, ok := firstTag(s.Tags, func(name string) bool {
		return strings.HasPrefix(name, "DURATION-") && len(name) > len("DURATION-")
	}); ok {
		return strings.TrimPrefix(tag, "DURATION-")
	}
	return fallback
}

// firstTag returns the first tag name, in sorted order, accepted by match.
// ffprobe tags arrive as a JSON object so sorting gives a stable order.
func firstTag(tags map[string]string, match func(string) bool) (string, bool) {
	if len(tags) == 0 {
		return "", false
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if match(name) {
			return name, true
		}
	}
	return "", false
}
