package matching

import (
	"sort"
	"time"
)

// Rank returns a new, sorted slice; results is left untouched. The order is
// total: overall score desc, strengths desc, posted_at desc (missing sorts
// oldest), job id asc. maxResults <= 0 keeps everything.
func Rank(results []MatchResult, maxResults int) []MatchResult {
	out := make([]MatchResult, len(results))
	copy(out, results)

	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i], out[j])
	})

	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func rankLess(a, b MatchResult) bool {
	if a.OverallScore != b.OverallScore {
		return a.OverallScore > b.OverallScore
	}
	if len(a.Strengths) != len(b.Strengths) {
		return len(a.Strengths) > len(b.Strengths)
	}
	ta, tb := postedAt(a), postedAt(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.JobID < b.JobID
}

func postedAt(r MatchResult) time.Time {
	if r.PostedAt == nil {
		return time.Time{}
	}
	return *r.PostedAt
}
