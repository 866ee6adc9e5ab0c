package analysis

import (
	"math"
	"sort"
)

// Stats are integer aggregates of one numeric attribute. Mean and StdDev are
// truncated toward zero; StdDev is the population standard deviation.
type Stats struct {
	N      int
	Mean   int64
	StdDev int64
	Min    int64
	Max    int64
}

func computeStats(values []int64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	st := Stats{N: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += float64(v)
		st.Min = min(st.Min, v)
		st.Max = max(st.Max, v)
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	st.Mean = int64(mean)
	st.StdDev = int64(math.Sqrt(sq / float64(len(values))))
	return st
}

// Inconsistent reports whether the spread is large: the deviation exceeds the
// smallest value, or the coefficient of variation exceeds thresholdPct.
func (s Stats) Inconsistent(thresholdPct float64) bool {
	if s.N == 0 || s.Mean == 0 {
		return false
	}
	if s.StdDev > s.Min {
		return true
	}
	return float64(s.StdDev)/float64(s.Mean)*100 > thresholdPct
}

// gaps returns the numbers in [1, max(episodes)] that are absent, ascending.
func gaps(episodes []int) []int {
	if len(episodes) == 0 {
		return nil
	}
	present := make(map[int]bool, len(episodes))
	highest := 0
	for _, e := range episodes {
		present[e] = true
		highest = max(highest, e)
	}
	var missing []int
	for e := 1; e <= highest; e++ {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	return missing
}

// set collects distinct strings.
type set map[string]struct{}

func (s set) add(v string) { s[v] = struct{}{} }

func (s set) merge(values []string) {
	for _, v := range values {
		s.add(v)
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
