package matching

import (
	"fmt"
	"math"
	"strings"
)

const (
	neutralScore = 5.0
	fullScore    = 10.0

	// Experience decays to zero this many years outside the range.
	experienceDecayYears = 5.0
	// Salary decays to zero once the ask exceeds the ceiling by this ratio.
	salaryDecayRatio = 0.30
	// Semantic score a profile should reach to not be reported as a gap.
	semanticTarget = 7.5
	// Nominal demand for a preferred skill that states no years.
	preferredNominalYears = 1.0
)

// ScoreSkillCoverage returns the coverage dimension and one row per
// requirement. Each row's user score is 10x the user's confidence; the
// required score is derived from the requirement's years. Coverage is the
// importance-weighted mean of per-row satisfaction.
func ScoreSkillCoverage(p UserProfile, job JobPosting) (MatchCriterion, []MatchCriterion) {
	if len(job.Requirements) == 0 {
		return MatchCriterion{
			Name:          string(CriterionCoverage),
			Kind:          CriterionCoverage,
			UserScore:     fullScore,
			RequiredScore: 0,
			Status:        StatusMatch,
			Detail:        "job lists no skill requirements",
		}, nil
	}

	confidence := make(map[string]float64, len(p.Skills))
	for _, us := range p.Skills {
		id := us.Skill.CanonicalID
		c := clamp(us.Confidence, 0, 1)
		if prev, ok := confidence[id]; !ok || c > prev {
			confidence[id] = c
		}
	}

	rows := make([]MatchCriterion, 0, len(job.Requirements))
	var weighted, totalImportance float64
	met := 0
	for _, r := range job.Requirements {
		imp := clampInt(r.Importance, 1, 10)
		user := fullScore * confidence[r.Skill.CanonicalID]
		required := requiredSkillScore(r)
		sat := satisfaction(user, required)

		weighted += float64(imp) * sat
		totalImportance += float64(imp)

		st := statusFor(user, required)
		if st == StatusMatch {
			met++
		}
		name := r.Skill.Name
		if name == "" {
			name = r.Skill.CanonicalID
		}
		rows = append(rows, MatchCriterion{
			Name:          name,
			Kind:          CriterionSkill,
			UserScore:     user,
			RequiredScore: required,
			Status:        st,
			Importance:    imp,
			IsRequired:    r.IsRequired,
			Detail:        skillDetail(r),
		})
	}

	coverage := weighted / totalImportance
	return MatchCriterion{
		Name:          string(CriterionCoverage),
		Kind:          CriterionCoverage,
		UserScore:     coverage,
		RequiredScore: fullScore,
		Status:        statusFor(coverage, fullScore),
		Detail:        fmt.Sprintf("%d of %d skill requirements met", met, len(rows)),
	}, rows
}

func requiredSkillScore(r JobRequirement) float64 {
	years := math.Max(r.YearsRequired, 0)
	if years == 0 {
		if r.IsRequired {
			return fullScore
		}
		years = preferredNominalYears
	}
	return math.Min(fullScore, years*2)
}

// satisfaction is on the 0-10 scale: full once the requirement is met.
func satisfaction(user, required float64) float64 {
	if required <= 0 {
		return fullScore
	}
	return fullScore * clamp(user/required, 0, 1)
}

func skillDetail(r JobRequirement) string {
	kind := "preferred"
	if r.IsRequired {
		kind = "required"
	}
	if r.YearsRequired > 0 {
		return fmt.Sprintf("%s, %g+ years", kind, r.YearsRequired)
	}
	return kind
}

// profileYears prefers the explicit profile field, then the longest
// experience claimed on any single skill.
func profileYears(p UserProfile) float64 {
	if p.ExperienceYears != nil {
		return math.Max(*p.ExperienceYears, 0)
	}
	years := 0.0
	for _, s := range p.Skills {
		if s.YearsExperience > years {
			years = s.YearsExperience
		}
	}
	return years
}

func ScoreExperience(p UserProfile, job JobPosting) MatchCriterion {
	c := MatchCriterion{Name: string(CriterionExperience), Kind: CriterionExperience}
	if job.ExperienceMin == nil && job.ExperienceMax == nil {
		c.UserScore = neutralScore
		c.Status = StatusMatch
		c.Detail = "job states no experience range"
		return c
	}

	years := profileYears(p)
	lo := 0.0
	if job.ExperienceMin != nil {
		lo = math.Max(*job.ExperienceMin, 0)
	}
	hi := math.Inf(1)
	if job.ExperienceMax != nil {
		hi = *job.ExperienceMax
	}

	var distance float64
	switch {
	case years < lo:
		distance = lo - years
	case years > hi:
		distance = years - hi
	}

	c.UserScore = clamp(fullScore*(1-distance/experienceDecayYears), 0, fullScore)
	c.RequiredScore = fullScore
	c.Status = statusFor(c.UserScore, c.RequiredScore)
	c.Detail = fmt.Sprintf("%g years against %s", years, rangeLabel(job.ExperienceMin, job.ExperienceMax, "years"))
	return c
}

func ScoreLocation(p UserProfile, job JobPosting) MatchCriterion {
	c := MatchCriterion{Name: string(CriterionLocation), Kind: CriterionLocation}
	if job.Remote {
		c.UserScore = fullScore
		c.RequiredScore = fullScore
		c.Status = StatusMatch
		c.Detail = "remote-compatible"
		return c
	}

	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	prefs := make([]string, 0, len(p.PreferredLocations))
	for _, l := range p.PreferredLocations {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			prefs = append(prefs, l)
		}
	}
	if jobLoc == "" || len(prefs) == 0 {
		c.UserScore = neutralScore
		c.Status = StatusMatch
		c.Detail = "location not stated"
		return c
	}

	c.RequiredScore = fullScore
	best := 0.0
	for _, l := range prefs {
		if l == jobLoc {
			best = fullScore
			break
		}
		if strings.Contains(jobLoc, l) || strings.Contains(l, jobLoc) {
			best = neutralScore
		}
	}
	c.UserScore = best
	c.Status = statusFor(c.UserScore, c.RequiredScore)
	switch best {
	case fullScore:
		c.Detail = "exact location match"
	case neutralScore:
		c.Detail = "same metro region"
	default:
		c.Detail = "location outside preferences"
	}
	return c
}

func ScoreSalary(p UserProfile, job JobPosting) MatchCriterion {
	c := MatchCriterion{Name: string(CriterionSalary), Kind: CriterionSalary}
	if p.PreferredSalaryMin == nil || *p.PreferredSalaryMin <= 0 || (job.SalaryMin == nil && job.SalaryMax == nil) {
		c.UserScore = neutralScore
		c.Status = StatusMatch
		c.Detail = "salary not stated"
		return c
	}

	ask := *p.PreferredSalaryMin
	c.RequiredScore = fullScore
	switch {
	case job.SalaryMax == nil:
		c.UserScore = fullScore
		c.Detail = "job has no salary ceiling"
	case ask <= *job.SalaryMax:
		c.UserScore = fullScore
		c.Detail = "ask within range"
	default:
		gap := (ask - *job.SalaryMax) / ask
		c.UserScore = clamp(fullScore*(1-gap/salaryDecayRatio), 0, fullScore)
		c.Detail = fmt.Sprintf("ask exceeds ceiling by %.0f%%", gap*100)
	}
	c.Status = statusFor(c.UserScore, c.RequiredScore)
	return c
}

// ScoreSemantic rescales a cosine similarity from [-1,1] to [0,10].
func ScoreSemantic(similarity float64) MatchCriterion {
	s := clamp(similarity, -1, 1)
	user := (s + 1) * 5
	return MatchCriterion{
		Name:          string(CriterionSemantic),
		Kind:          CriterionSemantic,
		UserScore:     user,
		RequiredScore: semanticTarget,
		Status:        statusFor(user, semanticTarget),
		Detail:        fmt.Sprintf("cosine similarity %.2f", s),
	}
}

// CosineSimilarity reports false for empty, mismatched or zero vectors.
func CosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(sim) {
		return 0, false
	}
	return clamp(sim, -1, 1), true
}

func ScoreSeniority(p UserProfile, job JobPosting) MatchCriterion {
	c := MatchCriterion{Name: string(CriterionSeniority), Kind: CriterionSeniority}
	user, okUser := ParseSeniority(p.CareerLevel)
	want, okJob := ParseSeniority(job.SeniorityLevel)
	if !okJob {
		want, okJob = ParseSeniority(job.Title)
	}
	if !okUser || !okJob {
		c.UserScore = neutralScore
		c.Status = StatusMatch
		c.Detail = "seniority not stated"
		return c
	}

	diff := math.Abs(float64(user - want))
	c.UserScore = clamp(fullScore-4*diff, 0, fullScore)
	c.RequiredScore = fullScore
	c.Status = statusFor(c.UserScore, c.RequiredScore)
	c.Detail = fmt.Sprintf("%s against %s", user, want)
	return c
}

func rangeLabel(lo, hi *float64, unit string) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("%g-%g %s", *lo, *hi, unit)
	case lo != nil:
		return fmt.Sprintf("%g+ %s", *lo, unit)
	case hi != nil:
		return fmt.Sprintf("up to %g %s", *hi, unit)
	default:
		return "any"
	}
}
