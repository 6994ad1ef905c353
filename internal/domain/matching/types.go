package matching

import (
	"time"

	"skillmatch/internal/domain/skill"
)

type UserSkill struct {
	Skill           skill.Skill
	Confidence      float64
	YearsExperience float64
	Verified        bool
}

// UserProfile is the caller-owned snapshot of a user's skills and
// preferences. Nil pointers mean "not stated".
type UserProfile struct {
	Skills             []UserSkill
	ExperienceYears    *float64
	PreferredLocations []string
	PreferredSalaryMin *float64
	PreferredSalaryMax *float64
	CareerLevel        string
	Summary            string
	Embedding          []float32
}

type JobRequirement struct {
	Skill         skill.Skill
	IsRequired    bool
	Importance    int
	YearsRequired float64
}

// JobPosting is an immutable snapshot; the engine never mutates it.
type JobPosting struct {
	ID             string
	Title          string
	Company        string
	Description    string
	Location       string
	Remote         bool
	EmploymentType string
	SeniorityLevel string
	SalaryMin      *float64
	SalaryMax      *float64
	ExperienceMin  *float64
	ExperienceMax  *float64
	PostedAt       *time.Time
	Requirements   []JobRequirement
	Embedding      []float32
}

type Criterion string

const (
	CriterionCoverage   Criterion = "coverage"
	CriterionExperience Criterion = "experience"
	CriterionLocation   Criterion = "location"
	CriterionSalary     Criterion = "salary"
	CriterionSemantic   Criterion = "semantic"
	CriterionSeniority  Criterion = "seniority"

	// CriterionSkill marks a per-requirement row of the coverage breakdown.
	CriterionSkill Criterion = "skill"
)

var dimensionCriteria = []Criterion{
	CriterionCoverage,
	CriterionExperience,
	CriterionLocation,
	CriterionSalary,
	CriterionSemantic,
	CriterionSeniority,
}

type Status string

const (
	StatusMatch   Status = "match"
	StatusPartial Status = "partial"
	StatusMissing Status = "missing"
)

type MatchCriterion struct {
	Name          string    `json:"name"`
	Kind          Criterion `json:"kind"`
	Weight        float64   `json:"weight"`
	UserScore     float64   `json:"user_score"`
	RequiredScore float64   `json:"required_score"`
	Status        Status    `json:"status"`
	Importance    int       `json:"importance,omitempty"`
	IsRequired    bool      `json:"is_required,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

type Gap struct {
	Name          string    `json:"name"`
	Kind          Criterion `json:"kind"`
	Status        Status    `json:"status"`
	Importance    int       `json:"importance,omitempty"`
	UserScore     float64   `json:"user_score"`
	RequiredScore float64   `json:"required_score"`
	Delta         float64   `json:"marginal_delta"`
	Detail        string    `json:"detail,omitempty"`
}

// MatchResult is produced fresh for every (profile, job, strategy) triple.
// Criteria holds the composed dimensions, Skills the per-requirement
// coverage breakdown.
type MatchResult struct {
	JobID           string           `json:"job_id"`
	Title           string           `json:"title,omitempty"`
	Company         string           `json:"company,omitempty"`
	Strategy        Strategy         `json:"strategy"`
	OverallScore    float64          `json:"overall_score"`
	Criteria        []MatchCriterion `json:"criteria"`
	Skills          []MatchCriterion `json:"skills"`
	Strengths       []string         `json:"strengths"`
	Gaps            []string         `json:"gaps"`
	GapAnalysis     []Gap            `json:"gap_analysis"`
	Recommendations []string         `json:"recommendations"`
	SemanticActive  bool             `json:"semantic_active"`
	PostedAt        *time.Time       `json:"posted_at,omitempty"`
}

func (r MatchResult) Criterion(kind Criterion) (MatchCriterion, bool) {
	for _, c := range r.Criteria {
		if c.Kind == kind {
			return c, true
		}
	}
	return MatchCriterion{}, false
}
