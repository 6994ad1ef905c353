package usecase

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"
)

const matchCachePrefix = "match:request:"

type matchCacheKeyInput struct {
	Strategy   string                `json:"strategy"`
	MaxResults int                   `json:"max_results"`
	Profile    matching.UserProfile  `json:"profile"`
	Jobs       []matching.JobPosting `json:"jobs"`
}

// MatchCacheKey hashes the request after skill normalization, so any change
// to the profile or the postings yields a new key. ok is false when the
// request cannot be encoded; such requests are not cached.
func MatchCacheKey(v *skill.Vocabulary, req matching.Request) (key string, ok bool) {
	st := req.Strategy
	if st == 0 {
		st = matching.DefaultStrategy
	}

	profile := req.Profile
	profile.Skills = make([]matching.UserSkill, len(req.Profile.Skills))
	for i, s := range req.Profile.Skills {
		s.Skill = v.Normalize(label(s.Skill))
		profile.Skills[i] = s
	}
	slices.SortStableFunc(profile.Skills, func(a, b matching.UserSkill) int {
		return cmp.Compare(a.Skill.CanonicalID, b.Skill.CanonicalID)
	})

	jobs := make([]matching.JobPosting, len(req.Jobs))
	for i, j := range req.Jobs {
		reqs := make([]matching.JobRequirement, len(j.Requirements))
		for k, r := range j.Requirements {
			r.Skill = v.Normalize(label(r.Skill))
			reqs[k] = r
		}
		j.Requirements = reqs
		jobs[i] = j
	}

	maxResults := req.MaxResults
	if maxResults < 0 {
		maxResults = 0
	}

	b, err := json.Marshal(matchCacheKeyInput{
		Strategy:   st.String(),
		MaxResults: maxResults,
		Profile:    profile,
		Jobs:       jobs,
	})
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(b)
	return matchCachePrefix + hex.EncodeToString(sum[:]), true
}

func label(s skill.Skill) string {
	if s.Name != "" {
		return s.Name
	}
	return s.CanonicalID
}
