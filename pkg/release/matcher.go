package release

import (
	"github.com/hbollon/go-edlib"
)

// MatchConfidence represents the confidence level of a show-name match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate found by MatchShow.
type MatchResult struct {
	Name       string
	Score      float64 // Jaro-Winkler similarity of the cleaned names
	Confidence MatchConfidence
}

// Similar reports whether the match is at least medium confidence.
func (r MatchResult) Similar() bool {
	return r.Confidence >= ConfidenceMedium
}

// MatchShow finds the candidate show name most similar to name.
// Both sides go through CleanTitle; identical raw names are skipped so a show
// never matches itself. Returns ConfidenceNone and an empty Name when nothing
// scores at least 0.70.
func MatchShow(name string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	cleaned := CleanTitle(name)
	if cleaned == "" {
		return best
	}

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(cleaned, CleanTitle(candidate)))
		if score > best.Score {
			best.Name = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Name = ""
	}
	return best
}
