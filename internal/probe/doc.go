// Package probe runs ffprobe against media files and normalizes its stream
// list into a Descriptor: one primary video stream plus audio and subtitle
// tracks.
//
// Normalize is pure; callers supply the on-disk size and modification time.
// A stream list that cannot yield a usable descriptor is reported through
// ErrInvalid, which callers treat as a per-file skip rather than a failure.
package probe
