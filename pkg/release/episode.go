package release

import (
	"regexp"
	"strconv"
)

var (
	rangeRegex       = regexp.MustCompile(`(?i)S(\d+)E(\d+)-(\d+)`)
	rangeDashERegex  = regexp.MustCompile(`(?i)S(\d+)E(\d+)-E(\d+)`)
	multiConcatRegex = regexp.MustCompile(`(?i)S(\d+)((?:E\d+){2,})`)
	singleRegex      = regexp.MustCompile(`(?i)S(\d+)E(\d+)`)
	episodeRegex     = regexp.MustCompile(`(?i)E(\d+)`)
)

type episodeMatcher struct {
	pattern Pattern
	match   func(name string) (season int, episodes []int, ok bool)
}

// episodeMatchers are tried in order; the first match wins.
var episodeMatchers = []episodeMatcher{
	{PatternRange, matchEndpoints(rangeRegex)},
	{PatternRangeDashE, matchEndpoints(rangeDashERegex)},
	{PatternMultiConcat, matchMultiConcat},
	{PatternSingle, matchSingle},
}

// ParseEpisodes extracts the season and episode numbers from a filename.
// Matching is case-insensitive. A filename without any S<n>E<n> marker
// yields an EpisodeRef with PatternNone.
func ParseEpisodes(name string) EpisodeRef {
	for _, m := range episodeMatchers {
		if season, episodes, ok := m.match(name); ok {
			return EpisodeRef{Pattern: m.pattern, Season: season, Episodes: episodes}
		}
	}
	return EpisodeRef{Pattern: PatternNone}
}

func matchEndpoints(re *regexp.Regexp) func(string) (int, []int, bool) {
	return func(name string) (int, []int, bool) {
		m := re.FindStringSubmatch(name)
		if m == nil {
			return 0, nil, false
		}
		nums, ok := atoiAll(m[1], m[2], m[3])
		if !ok {
			return 0, nil, false
		}
		return nums[0], nums[1:], true
	}
}

func matchMultiConcat(name string) (int, []int, bool) {
	m := multiConcatRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, nil, false
	}
	season, ok := atoiAll(m[1])
	if !ok {
		return 0, nil, false
	}
	var episodes []int
	for _, em := range episodeRegex.FindAllStringSubmatch(m[2], -1) {
		n, err := strconv.Atoi(em[1])
		if err != nil {
			return 0, nil, false
		}
		episodes = append(episodes, n)
	}
	return season[0], episodes, true
}

func matchSingle(name string) (int, []int, bool) {
	m := singleRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, nil, false
	}
	nums, ok := atoiAll(m[1], m[2])
	if !ok {
		return 0, nil, false
	}
	return nums[0], nums[1:], true
}

func atoiAll(ss ...string) ([]int, bool) {
	out := make([]int, 0, len(ss))
	for _, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// episodeMarkerRegex locates the start of the S<n>E<n> marker.
var episodeMarkerRegex = regexp.MustCompile(`(?i)S\d+E\d+.*`)

// TrimToEpisode returns the filename from its S<n>E<n> marker onward, or the
// whole name when there is no marker. Used to shorten names in listings.
func TrimToEpisode(name string) string {
	if loc := episodeMarkerRegex.FindStringIndex(name); loc != nil {
		return name[loc[0]:]
	}
	return name
}
