// Package catalog manages the persisted media catalog (paths, items, tracks).
package catalog

import (
	"path/filepath"
	"strconv"
	"time"
)

// MediaType classifies a scanned directory.
type MediaType string

const (
	MediaTypeTV    MediaType = "tv"
	MediaTypeMovie MediaType = "movie"
)

// Path is a directory that contained at least one scanned media file.
type Path struct {
	ID        int64
	FilePath  string
	Title     *string // derived from ".../<Show>/Season N", nil otherwise
	MediaType MediaType
}

// Item is one media file inside a Path.
type Item struct {
	ID           int64
	PathID       int64
	Filename     string
	VideoCodec   string
	Width        int
	Height       int
	DurationMin  int
	FPS          int
	ColorSpace   *string
	PixFormat    string
	BitRate      *int64 // kbps, nil when unknown
	FileSizeMB   int64
	LastModified time.Time
	Tag          *string

	Audio     []AudioTrack
	Subtitles []SubtitleTrack
}

// Resolution returns "WxH" for the item's video stream.
func (i *Item) Resolution() string {
	return strconv.Itoa(i.Width) + "x" + strconv.Itoa(i.Height)
}

// AudioTrack is an audio stream owned by an Item.
type AudioTrack struct {
	ID            int64
	ItemID        int64
	Lang          string
	Codec         string
	ChannelLayout *string
	BitRate       *int64 // bits/sec as reported by the probe
	IsDefault     bool
}

// SubtitleTrack is a subtitle stream owned by an Item.
type SubtitleTrack struct {
	ID        int64
	ItemID    int64
	Lang      string
	Format    string
	IsDefault bool
}

// Location identifies a stored item by its on-disk position.
// It is the lightweight row used to build the synchronizer's index.
type Location struct {
	ItemID       int64
	PathID       int64
	Dir          string
	Filename     string
	LastModified time.Time
}

// FullPath joins the directory and filename.
func (l Location) FullPath() string {
	return filepath.Join(l.Dir, l.Filename)
}
