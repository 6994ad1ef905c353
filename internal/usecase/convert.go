package usecase

import (
	"fmt"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"
	"skillmatch/internal/repository"
)

func profileFromRow(p repository.UserProfile) matching.UserProfile {
	skills := make([]matching.UserSkill, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, matching.UserSkill{
			Skill:           skill.Skill{Name: s.SkillName, CanonicalID: s.CanonicalID},
			Confidence:      s.Confidence,
			YearsExperience: s.YearsExperience,
			Verified:        s.Verified,
		})
	}
	return matching.UserProfile{
		Skills:             skills,
		ExperienceYears:    p.ExperienceYears,
		PreferredLocations: p.PreferredLocations,
		PreferredSalaryMin: p.PreferredSalaryMin,
		PreferredSalaryMax: p.PreferredSalaryMax,
		CareerLevel:        p.CareerLevel,
		Summary:            p.Summary,
		Embedding:          p.Embedding,
	}
}

func jobFromRow(j repository.JobPosting, v *skill.Vocabulary) (matching.JobPosting, error) {
	reqs, err := matching.DecodeRequirements(j.Requirements, v)
	if err != nil {
		return matching.JobPosting{}, fmt.Errorf("job %s: %w", j.ID, err)
	}
	return matching.JobPosting{
		ID:             j.ID.String(),
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
	}, nil
}
