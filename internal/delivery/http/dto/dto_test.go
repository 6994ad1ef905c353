package dto

import (
	"encoding/json"
	"testing"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsJSONPaths(t *testing.T) {
	req := MatchRequest{
		UserProfile: ProfileRequest{Skills: []UserSkillRequest{{Confidence: 1.2}}},
		JobPostings: []JobRequest{{
			ID:           "",
			Requirements: []RequirementRequest{{Skill: "go", Importance: 11}},
		}},
		Strategy:   "fastest",
		MaxResults: -1,
	}

	fields := Validate(req)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Rule
	}
	assert.Equal(t, "required_without", got["user_profile.skills[0].skill"])
	assert.Equal(t, "lte", got["user_profile.skills[0].confidence"])
	assert.Equal(t, "required", got["job_postings[0].id"])
	assert.Equal(t, "max", got["job_postings[0].requirements[0].importance"])
	assert.Equal(t, "oneof", got["strategy"])
	assert.Equal(t, "gte", got["max_results"])

	assert.Nil(t, Validate(MatchRequest{}))
}

func TestToDomain_AppliesDefaults(t *testing.T) {
	var req MatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"user_profile": {"skills": [{"name": "Go", "confidence": 0.7}], "experience_years": 3},
		"job_postings": [{"id": "j1", "remote": true, "requirements": [
			{"skill": "go"},
			{"skill": "docker", "is_required": false, "importance": 3, "years_required": 1}
		]}],
		"max_results": 5
	}`), &req))
	require.Nil(t, Validate(req))

	out, err := req.ToDomain()
	require.NoError(t, err)
	assert.Zero(t, out.Strategy)
	assert.Equal(t, 5, out.MaxResults)
	assert.Equal(t, 3.0, *out.Profile.ExperienceYears)
	require.Len(t, out.Jobs, 1)
	assert.True(t, out.Jobs[0].Remote)

	reqs := out.Jobs[0].Requirements
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].IsRequired)
	assert.Equal(t, defaultImportance, reqs[0].Importance)
	assert.False(t, reqs[1].IsRequired)
	assert.Equal(t, 3, reqs[1].Importance)
	assert.Equal(t, 1.0, reqs[1].YearsRequired)
}

func TestToDomain_DocumentedRequestShape(t *testing.T) {
	var req MatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"user_profile": {
			"skills": [
				{"skill": "Python", "category": "language", "confidence": 0.9},
				{"skill": "Pulumi", "category": "tool", "confidence": 0.6}
			],
			"experience_years": 5,
			"preferred_locations": ["Remote"],
			"preferred_salary_min": 90000,
			"preferred_salary_max": 120000,
			"career_level": "senior"
		},
		"job_postings": [{"id": "j1", "title": "Data Engineer", "requirements": [{"skill": "python"}]}],
		"strategy": "hybrid",
		"max_results": 10
	}`), &req))
	require.Nil(t, Validate(req))

	out, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, matching.StrategyHybrid, out.Strategy)
	assert.Equal(t, 10, out.MaxResults)
	assert.Equal(t, "senior", out.Profile.CareerLevel)
	require.Len(t, out.Jobs, 1)
	assert.Equal(t, "j1", out.Jobs[0].ID)

	require.Len(t, out.Profile.Skills, 2)
	assert.Equal(t, "Python", out.Profile.Skills[0].Skill.Name)
	assert.Equal(t, 0.9, out.Profile.Skills[0].Confidence)
	assert.Equal(t, "Pulumi", out.Profile.Skills[1].Skill.Name)
	assert.Equal(t, skill.CategoryTool, out.Profile.Skills[1].Skill.Category)
}

func TestParseStrategy(t *testing.T) {
	st, err := ParseStrategy("  ")
	require.NoError(t, err)
	assert.Zero(t, st)

	st, err = ParseStrategy("Semantic")
	require.NoError(t, err)
	assert.Equal(t, matching.StrategySemantic, st)

	_, err = ParseStrategy("vibes")
	assert.ErrorIs(t, err, matching.ErrInvalidInput)
}
