package matching

import (
	"testing"

	"skillmatch/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequirements(t *testing.T) {
	raw := []byte(`[
		{"skill": "golang", "is_required": true, "importance": 9, "years_required": 3},
		{"name": "Terraform", "category": "tool", "is_required": false, "importance_score": 4},
		{"skill": "JS"}
	]`)

	reqs, err := DecodeRequirements(raw, skill.Default())
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, "go", reqs[0].Skill.CanonicalID)
	assert.True(t, reqs[0].IsRequired)
	assert.Equal(t, 9, reqs[0].Importance)
	assert.Equal(t, 3.0, reqs[0].YearsRequired)

	assert.Equal(t, "terraform", reqs[1].Skill.CanonicalID)
	assert.False(t, reqs[1].IsRequired)
	assert.Equal(t, 4, reqs[1].Importance)

	assert.Equal(t, "javascript", reqs[2].Skill.CanonicalID)
	assert.True(t, reqs[2].IsRequired)
	assert.Equal(t, defaultImportance, reqs[2].Importance)
}

func TestDecodeRequirements_UnknownSkillKeepsCategory(t *testing.T) {
	reqs, err := DecodeRequirements([]byte(`[{"skill":"Zig","category":"language"}]`), skill.Default())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "zig", reqs[0].Skill.CanonicalID)
	assert.Equal(t, skill.CategoryLanguage, reqs[0].Skill.Category)
}

func TestDecodeRequirements_Empty(t *testing.T) {
	for _, raw := range []string{"", "null", "  ", "[]"} {
		reqs, err := DecodeRequirements([]byte(raw), skill.Default())
		require.NoError(t, err, raw)
		assert.Empty(t, reqs)
	}
}

func TestDecodeRequirements_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"skill":`,
		"object":         `{"skill":"go"}`,
		"missing skill":  `[{"importance":3}]`,
		"importance":     `[{"skill":"go","importance":0}]`,
		"negative years": `[{"skill":"go","years_required":-2}]`,
		"wrong type":     `[{"skill":"go","importance":"high"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRequirements([]byte(raw), skill.Default())
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGapAnalysisEncoding(t *testing.T) {
	out, err := NewEngine().Match(t.Context(), Request{
		Jobs: []JobPosting{{
			ID:           "j1",
			Requirements: []JobRequirement{{Skill: skillNamed("Go"), IsRequired: true, Importance: 8}},
		}},
		Strategy: StrategyRuleBased,
	})
	require.NoError(t, err)

	raw, err := EncodeGapAnalysis(out[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"strategy":"rule_based"`)
	assert.Contains(t, string(raw), `"marginal_delta"`)

	got, err := DecodeGapAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, StrategyRuleBased, got.Strategy)
	require.Len(t, got.Gaps, 1)
	assert.Equal(t, "Go", got.Gaps[0].Name)
	assert.Equal(t, out[0].Recommendations, got.Recommendations)

	_, err = DecodeGapAnalysis([]byte(`{"strategy":"keyword"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = DecodeGapAnalysis([]byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeSkill_CallerCategoryOnlyForUnknown(t *testing.T) {
	v := skill.Default()

	unknown := normalizeSkill(v, skill.Skill{Name: "Pulumi", Category: skill.CategoryTool})
	assert.Equal(t, "pulumi", unknown.CanonicalID)
	assert.Equal(t, skill.CategoryTool, unknown.Category)

	known := normalizeSkill(v, skill.Skill{Name: "Rust", Category: skill.CategorySoft})
	assert.Equal(t, "rust", known.CanonicalID)
	assert.Equal(t, skill.CategoryLanguage, known.Category)

	bare := normalizeSkill(v, skill.Skill{Name: "Pulumi"})
	assert.Equal(t, skill.CategoryOther, bare.Category)

	job := normalizeJob(v, JobPosting{ID: " j1 ", Requirements: []JobRequirement{
		{Skill: skill.Skill{Name: "Pulumi", Category: skill.CategoryTool}, Importance: 4},
	}})
	assert.Equal(t, "j1", job.ID)
	assert.Equal(t, skill.CategoryTool, job.Requirements[0].Skill.Category)
}
