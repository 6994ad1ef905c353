package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"skillmatch/internal/domain/skill"
)

// rawRequirement accepts both the API spelling and the column names used by
// stored postings (importance_score, name).
type rawRequirement struct {
	Skill           string   `json:"skill"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	IsRequired      *bool    `json:"is_required"`
	Importance      *int     `json:"importance"`
	ImportanceScore *int     `json:"importance_score"`
	YearsRequired   *float64 `json:"years_required"`
}

const defaultImportance = 5

// DecodeRequirements parses a JSONB requirements blob into typed
// requirements. null and empty input yield no requirements; anything that
// cannot be parsed is ErrInvalidInput.
func DecodeRequirements(raw []byte, v *skill.Vocabulary) ([]JobRequirement, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []rawRequirement
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalidf("requirements: %v", err)
	}

	out := make([]JobRequirement, 0, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Skill)
		if name == "" {
			name = strings.TrimSpace(it.Name)
		}
		if name == "" {
			return nil, invalidf("requirements[%d]: skill is required", i)
		}

		s := v.Normalize(name)
		if it.Category != "" && !s.Known() {
			s.Category = skill.ParseCategory(it.Category)
		}

		r := JobRequirement{Skill: s, IsRequired: true, Importance: defaultImportance}
		if it.IsRequired != nil {
			r.IsRequired = *it.IsRequired
		}
		switch {
		case it.Importance != nil:
			r.Importance = *it.Importance
		case it.ImportanceScore != nil:
			r.Importance = *it.ImportanceScore
		}
		if it.YearsRequired != nil {
			r.YearsRequired = *it.YearsRequired
		}

		if r.Importance < 1 || r.Importance > 10 {
			return nil, invalidf("requirements[%d]: importance %d outside 1-10", i, r.Importance)
		}
		if !finiteNonNegative(r.YearsRequired) {
			return nil, invalidf("requirements[%d]: years_required must be >= 0", i)
		}
		out = append(out, r)
	}
	return out, nil
}

// SkillGapAnalysis is the persisted shape of a match explanation, stored in
// the skill_gap_analysis column next to the overall score.
type SkillGapAnalysis struct {
	Strategy        Strategy         `json:"strategy"`
	SemanticActive  bool             `json:"semantic_active"`
	Criteria        []MatchCriterion `json:"criteria"`
	Skills          []MatchCriterion `json:"skills"`
	Strengths       []string         `json:"strengths"`
	Gaps            []Gap            `json:"gaps"`
	Recommendations []string         `json:"recommendations"`
}

func NewSkillGapAnalysis(r MatchResult) SkillGapAnalysis {
	return SkillGapAnalysis{
		Strategy:        r.Strategy,
		SemanticActive:  r.SemanticActive,
		Criteria:        r.Criteria,
		Skills:          r.Skills,
		Strengths:       r.Strengths,
		Gaps:            r.GapAnalysis,
		Recommendations: r.Recommendations,
	}
}

func EncodeGapAnalysis(r MatchResult) ([]byte, error) {
	b, err := json.Marshal(NewSkillGapAnalysis(r))
	if err != nil {
		return nil, fmt.Errorf("encode skill gap analysis: %w", err)
	}
	return b, nil
}

func DecodeGapAnalysis(raw []byte) (SkillGapAnalysis, error) {
	var a SkillGapAnalysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return SkillGapAnalysis{}, invalidf("skill_gap_analysis: %v", err)
	}
	if !a.Strategy.Valid() {
		return SkillGapAnalysis{}, invalidf("skill_gap_analysis: missing strategy")
	}
	return a, nil
}
