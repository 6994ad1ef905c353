package matching

import (
	"fmt"
	"sort"
)

type GapAnalysis struct {
	Gaps            []Gap    `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

func (a GapAnalysis) Names() []string {
	out := make([]string, 0, len(a.Gaps))
	for _, g := range a.Gaps {
		out = append(out, g.Name)
	}
	return out
}

// AnalyzeGaps lists every criterion that is not a match together with the
// overall-score gain from raising it alone to its required score. The
// coverage dimension is represented by its per-skill rows. weights must be
// the effective weights returned by Compose.
//
// Order: delta desc, importance desc, name asc.
func AnalyzeGaps(criteria, skills []MatchCriterion, weights Weights) GapAnalysis {
	gaps := make([]Gap, 0, len(skills)+len(criteria))

	totalImportance := 0.0
	for _, s := range skills {
		totalImportance += float64(clampInt(s.Importance, 1, 10))
	}
	coverageWeight := weights[CriterionCoverage]
	for _, s := range skills {
		if s.Status == StatusMatch {
			continue
		}
		share := float64(clampInt(s.Importance, 1, 10)) / totalImportance
		lift := (fullScore - satisfaction(s.UserScore, s.RequiredScore)) / fullScore
		gaps = append(gaps, Gap{
			Name:          s.Name,
			Kind:          CriterionSkill,
			Status:        s.Status,
			Importance:    s.Importance,
			UserScore:     s.UserScore,
			RequiredScore: s.RequiredScore,
			Delta:         round2(100 * coverageWeight * share * lift),
			Detail:        s.Detail,
		})
	}

	for _, c := range criteria {
		if c.Kind == CriterionCoverage || c.Kind == CriterionSkill || c.Status == StatusMatch {
			continue
		}
		lift := clamp((c.RequiredScore-c.UserScore)/fullScore, 0, 1)
		gaps = append(gaps, Gap{
			Name:          c.Name,
			Kind:          c.Kind,
			Status:        c.Status,
			UserScore:     c.UserScore,
			RequiredScore: c.RequiredScore,
			Delta:         round2(100 * weights[c.Kind] * lift),
			Detail:        c.Detail,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}
		if a.Importance != b.Importance {
			return a.Importance > b.Importance
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Kind < b.Kind
	})

	recs := make([]string, 0, len(gaps))
	for _, g := range gaps {
		recs = append(recs, recommend(g))
	}
	return GapAnalysis{Gaps: gaps, Recommendations: recs}
}

func recommend(g Gap) string {
	gain := fmt.Sprintf("up to +%.1f points", g.Delta)
	switch g.Kind {
	case CriterionSkill:
		if g.Status == StatusMissing {
			return fmt.Sprintf("Learn %s (%s, importance %d): %s", g.Name, g.Detail, g.Importance, gain)
		}
		return fmt.Sprintf("Strengthen %s from %.0f%% to %.0f%% confidence: %s", g.Name, g.UserScore*10, g.RequiredScore*10, gain)
	case CriterionExperience:
		return fmt.Sprintf("Experience is outside the expected range (%s): %s", g.Detail, gain)
	case CriterionLocation:
		return fmt.Sprintf("Widen preferred locations or look for remote roles (%s): %s", g.Detail, gain)
	case CriterionSalary:
		return fmt.Sprintf("Salary expectation is above the posted range (%s): %s", g.Detail, gain)
	case CriterionSemantic:
		return fmt.Sprintf("Tailor the profile summary to the role (%s): %s", g.Detail, gain)
	case CriterionSeniority:
		return fmt.Sprintf("Seniority differs from the role (%s): %s", g.Detail, gain)
	default:
		return fmt.Sprintf("Improve %s: %s", g.Name, gain)
	}
}

// strengths returns matched skills with importance >= 7, most important first.
func strengths(skills []MatchCriterion) []string {
	picked := make([]MatchCriterion, 0, len(skills))
	for _, s := range skills {
		if s.Status == StatusMatch && s.Importance >= 7 {
			picked = append(picked, s)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].Importance != picked[j].Importance {
			return picked[i].Importance > picked[j].Importance
		}
		return picked[i].Name < picked[j].Name
	})
	out := make([]string, 0, len(picked))
	for _, s := range picked {
		out = append(out, s.Name)
	}
	return out
}
