package probe

import "time"

// Result is the stream section of one ffprobe call.
// Streams is nil when ffprobe reported no stream list at all.
type Result struct {
	Streams []Stream `json:"streams"`
}

// Stream is one elementary stream as reported by ffprobe. Numeric values that
// ffprobe emits as strings are kept as strings and parsed during
// normalization.
type Stream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecType     string            `json:"codec_type"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	RFrameRate    string            `json:"r_frame_rate"`
	PixFmt        string            `json:"pix_fmt"`
	ColorSpace    string            `json:"color_space"`
	BitRate       string            `json:"bit_rate"`
	Duration      string            `json:"duration"`
	Channels      int               `json:"channels"`
	ChannelLayout string            `json:"channel_layout"`
	Disposition   map[string]int    `json:"disposition"`
	Tags          map[string]string `json:"tags"`
}

// FileStat carries the filesystem facts Normalize needs.
type FileStat struct {
	SizeBytes int64
	ModTime   time.Time
}

// Descriptor is the normalized metadata of one media file.
type Descriptor struct {
	StreamIndex int
	VideoCodec  string
	Width       int
	Height      int
	FPS         int
	ColorSpace  *string
	PixFormat   string
	BitRate     *int64 // kbps
	DurationMin int
	FileSizeMB  int64
	ModTime     time.Time

	Audio     []AudioTrack
	Subtitles []SubtitleTrack
}

// AudioTrack is a normalized audio stream.
type AudioTrack struct {
	StreamIndex   int
	Lang          string
	Codec         string
	ChannelLayout *string
	BitRate       *int64 // bits/sec as reported
	IsDefault     bool
}

// SubtitleTrack is a normalized subtitle stream.
type SubtitleTrack struct {
	StreamIndex int
	Lang        string
	Format      string
	IsDefault   bool
}
