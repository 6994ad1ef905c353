package dto

import (
	"strings"
	"time"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"
)

const defaultImportance = 5

// UserSkillRequest names the skill under "skill"; "name" is accepted when
// "skill" is absent.
type UserSkillRequest struct {
	Skill           string  `json:"skill" validate:"required_without=Name"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence" validate:"gte=0,lte=1"`
	YearsExperience float64 `json:"years_experience" validate:"gte=0"`
	Verified        bool    `json:"verified"`
}

type ProfileRequest struct {
	Skills             []UserSkillRequest `json:"skills" validate:"dive"`
	ExperienceYears    *float64           `json:"experience_years" validate:"omitempty,gte=0"`
	PreferredLocations []string           `json:"preferred_locations"`
	PreferredSalaryMin *float64           `json:"preferred_salary_min" validate:"omitempty,gte=0"`
	PreferredSalaryMax *float64           `json:"preferred_salary_max" validate:"omitempty,gte=0"`
	CareerLevel        string             `json:"career_level"`
	Summary            string             `json:"summary"`
	Embedding          []float32          `json:"embedding"`
}

type RequirementRequest struct {
	Skill         string  `json:"skill" validate:"required"`
	Category      string  `json:"category"`
	IsRequired    *bool   `json:"is_required"`
	Importance    int     `json:"importance" validate:"omitempty,min=1,max=10"`
	YearsRequired float64 `json:"years_required" validate:"gte=0"`
}

type JobRequest struct {
	ID             string               `json:"id" validate:"required"`
	Title          string               `json:"title"`
	Company        string               `json:"company"`
	Description    string               `json:"description"`
	Location       string               `json:"location"`
	Remote         bool                 `json:"remote"`
	EmploymentType string               `json:"employment_type"`
	SeniorityLevel string               `json:"seniority_level"`
	SalaryMin      *float64             `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64             `json:"salary_max" validate:"omitempty,gte=0"`
	ExperienceMin  *float64             `json:"experience_min" validate:"omitempty,gte=0"`
	ExperienceMax  *float64             `json:"experience_max" validate:"omitempty,gte=0"`
	PostedAt       *time.Time           `json:"posted_at"`
	Requirements   []RequirementRequest `json:"requirements" validate:"dive"`
	Embedding      []float32            `json:"embedding"`
}

type MatchRequest struct {
	UserProfile ProfileRequest `json:"user_profile"`
	JobPostings []JobRequest   `json:"job_postings" validate:"max=1000,dive"`
	Strategy    string         `json:"strategy" validate:"omitempty,oneof=rule_based semantic hybrid"`
	MaxResults  int            `json:"max_results" validate:"gte=0"`
}

// ParseStrategy maps a blank value to the zero Strategy so the engine's
// configured default applies.
func ParseStrategy(s string) (matching.Strategy, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return matching.ParseStrategy(s)
}

// ToDomain converts a validated request. Range checks the tags cannot
// express are left to the engine.
func (r MatchRequest) ToDomain() (matching.Request, error) {
	st, err := ParseStrategy(r.Strategy)
	if err != nil {
		return matching.Request{}, err
	}

	skills := make([]matching.UserSkill, 0, len(r.UserProfile.Skills))
	for _, s := range r.UserProfile.Skills {
		name := strings.TrimSpace(s.Skill)
		if name == "" {
			name = strings.TrimSpace(s.Name)
		}
		skills = append(skills, matching.UserSkill{
			Skill:           skillWithCategory(name, s.Category),
			Confidence:      s.Confidence,
			YearsExperience: s.YearsExperience,
			Verified:        s.Verified,
		})
	}

	jobs := make([]matching.JobPosting, 0, len(r.JobPostings))
	for _, j := range r.JobPostings {
		reqs := make([]matching.JobRequirement, 0, len(j.Requirements))
		for _, rq := range j.Requirements {
			req := matching.JobRequirement{
				Skill:         skillWithCategory(rq.Skill, rq.Category),
				IsRequired:    true,
				Importance:    rq.Importance,
				YearsRequired: rq.YearsRequired,
			}
			if rq.IsRequired != nil {
				req.IsRequired = *rq.IsRequired
			}
			if req.Importance == 0 {
				req.Importance = defaultImportance
			}
			reqs = append(reqs, req)
		}
		jobs = append(jobs, matching.JobPosting{
			ID:             j.ID,
			Title:          j.Title,
			Company:        j.Company,
			Description:    j.Description,
			Location:       j.Location,
			Remote:         j.Remote,
			EmploymentType: j.EmploymentType,
			SeniorityLevel: j.SeniorityLevel,
			SalaryMin:      j.SalaryMin,
			SalaryMax:      j.SalaryMax,
			ExperienceMin:  j.ExperienceMin,
			ExperienceMax:  j.ExperienceMax,
			PostedAt:       j.PostedAt,
			Requirements:   reqs,
			Embedding:      j.Embedding,
		})
	}

	return matching.Request{
		Profile: matching.UserProfile{
			Skills:             skills,
			ExperienceYears:    r.UserProfile.ExperienceYears,
			PreferredLocations: r.UserProfile.PreferredLocations,
			PreferredSalaryMin: r.UserProfile.PreferredSalaryMin,
			PreferredSalaryMax: r.UserProfile.PreferredSalaryMax,
			CareerLevel:        r.UserProfile.CareerLevel,
			Summary:            r.UserProfile.Summary,
			Embedding:          r.UserProfile.Embedding,
		},
		Jobs:       jobs,
		Strategy:   st,
		MaxResults: r.MaxResults,
	}, nil
}

// skillWithCategory carries a caller-supplied category; the engine keeps it
// only when the vocabulary does not know the skill.
func skillWithCategory(name, category string) skill.Skill {
	s := skill.Skill{Name: name}
	if strings.TrimSpace(category) != "" {
		s.Category = skill.ParseCategory(category)
	}
	return s
}
