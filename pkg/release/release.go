// Package release extracts season/episode numbering and source hints from
// scene-style media filenames, and normalizes show titles for matching.
package release

// Pattern identifies which filename convention produced an EpisodeRef.
type Pattern int

const (
	PatternNone        Pattern = iota // no season/episode marker found
	PatternRange                      // S01E09-10
	PatternRangeDashE                 // S01E09-E10
	PatternMultiConcat                // S01E02E03E04
	PatternSingle                     // S01E07
)

func (p Pattern) String() string {
	switch p {
	case PatternRange:
		return "range"
	case PatternRangeDashE:
		return "range-dash-e"
	case PatternMultiConcat:
		return "multi"
	case PatternSingle:
		return "single"
	default:
		return "none"
	}
}

// EpisodeRef is the tagged outcome of ParseEpisodes.
// Episodes keeps encounter order; ranges carry only their two endpoints.
type EpisodeRef struct {
	Pattern  Pattern
	Season   int
	Episodes []int
}

// OK reports whether a season/episode marker was found.
func (r EpisodeRef) OK() bool {
	return r.Pattern != PatternNone
}
