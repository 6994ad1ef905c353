package matching

import (
	"math"
	"strings"

	"skillmatch/internal/domain/skill"
)

// validateRequest rejects malformed input before any scoring starts, so a
// request is never partially processed.
func validateRequest(req Request) error {
	if len(req.Jobs) == 0 {
		return invalidf("job list is empty")
	}
	if err := validateProfile(req.Profile); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(req.Jobs))
	for i, j := range req.Jobs {
		id := strings.TrimSpace(j.ID)
		if id == "" {
			return invalidf("job[%d]: id is required", i)
		}
		if _, dup := seen[id]; dup {
			return invalidf("job[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}

		if err := validateRange(j.ExperienceMin, j.ExperienceMax); err != nil {
			return invalidf("job %q: experience %v", id, err)
		}
		if err := validateRange(j.SalaryMin, j.SalaryMax); err != nil {
			return invalidf("job %q: salary %v", id, err)
		}
		for k, r := range j.Requirements {
			if skillLabel(r.Skill) == "" {
				return invalidf("job %q requirement[%d]: skill name is required", id, k)
			}
			if r.Importance < 1 || r.Importance > 10 {
				return invalidf("job %q requirement[%d]: importance %d outside 1-10", id, k, r.Importance)
			}
			if !finiteNonNegative(r.YearsRequired) {
				return invalidf("job %q requirement[%d]: years_required must be >= 0", id, k)
			}
		}
	}
	return nil
}

func validateProfile(p UserProfile) error {
	for i, s := range p.Skills {
		if skillLabel(s.Skill) == "" {
			return invalidf("skill[%d]: name is required", i)
		}
		if math.IsNaN(s.Confidence) || s.Confidence < 0 || s.Confidence > 1 {
			return invalidf("skill[%d]: confidence must be within [0,1]", i)
		}
		if !finiteNonNegative(s.YearsExperience) {
			return invalidf("skill[%d]: years_experience must be >= 0", i)
		}
	}
	if p.ExperienceYears != nil && !finiteNonNegative(*p.ExperienceYears) {
		return invalidf("experience_years must be >= 0")
	}
	if err := validateRange(p.PreferredSalaryMin, p.PreferredSalaryMax); err != nil {
		return invalidf("preferred salary %v", err)
	}
	return nil
}

type rangeError string

func (e rangeError) Error() string { return string(e) }

func validateRange(lo, hi *float64) error {
	if lo != nil && !finiteNonNegative(*lo) {
		return rangeError("minimum must be >= 0")
	}
	if hi != nil && !finiteNonNegative(*hi) {
		return rangeError("maximum must be >= 0")
	}
	if lo != nil && hi != nil && *lo > *hi {
		return rangeError("minimum exceeds maximum")
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func skillLabel(s skill.Skill) string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return strings.TrimSpace(s.CanonicalID)
}

// normalizeSkill resolves s through the vocabulary. A category supplied by
// the caller survives only for skills the vocabulary does not know.
func normalizeSkill(v *skill.Vocabulary, s skill.Skill) skill.Skill {
	out := v.Normalize(skillLabel(s))
	if !out.Known() && s.Category != "" && s.Category != skill.CategoryOther {
		out.Category = s.Category
	}
	return out
}

func normalizeProfile(v *skill.Vocabulary, p UserProfile) UserProfile {
	out := p
	out.Skills = make([]UserSkill, 0, len(p.Skills))
	for _, s := range p.Skills {
		s.Skill = normalizeSkill(v, s.Skill)
		out.Skills = append(out.Skills, s)
	}
	return out
}

// normalizeJob canonicalizes requirement skills and merges duplicates,
// keeping the strictest demand.
func normalizeJob(v *skill.Vocabulary, j JobPosting) JobPosting {
	out := j
	out.ID = strings.TrimSpace(j.ID)
	out.Requirements = make([]JobRequirement, 0, len(j.Requirements))
	index := make(map[string]int, len(j.Requirements))
	for _, r := range j.Requirements {
		r.Skill = normalizeSkill(v, r.Skill)
		if at, ok := index[r.Skill.CanonicalID]; ok {
			prev := &out.Requirements[at]
			prev.IsRequired = prev.IsRequired || r.IsRequired
			if r.Importance > prev.Importance {
				prev.Importance = r.Importance
			}
			if r.YearsRequired > prev.YearsRequired {
				prev.YearsRequired = r.YearsRequired
			}
			continue
		}
		index[r.Skill.CanonicalID] = len(out.Requirements)
		out.Requirements = append(out.Requirements, r)
	}
	return out
}
