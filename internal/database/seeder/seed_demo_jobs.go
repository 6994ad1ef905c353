package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillmatch/internal/database"

	"github.com/google/uuid"
)

type demoRequirement struct {
	Skill         string  `json:"skill"`
	IsRequired    bool    `json:"is_required"`
	Importance    int     `json:"importance"`
	YearsRequired float64 `json:"years_required,omitempty"`
}

type demoJob struct {
	ID             uuid.UUID
	Title          string
	Company        string
	Location       string
	Remote         bool
	EmploymentType string
	SeniorityLevel string
	Description    string
	SalaryMin      *float64
	SalaryMax      *float64
	ExperienceMin  *float64
	ExperienceMax  *float64
	PostedDaysAgo  int
	Requirements   []demoRequirement
}

func f(v float64) *float64 { return &v }

// DemoJobsSeeder inserts a small fixed catalog for local runs. Ids are
// stable so re-running is a no-op.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func demoJobs() []demoJob {
	return []demoJob{
		{
			ID:             uuid.MustParse("7b0c8f0e-2a41-4c55-9a64-1d7a0d3b5e01"),
			Title:          "Backend Engineer (Go)",
			Company:        "Arunika Labs",
			Location:       "Jakarta, ID",
			EmploymentType: "full_time",
			SeniorityLevel: "mid",
			Description:    "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			SalaryMin:      f(18000000),
			SalaryMax:      f(28000000),
			ExperienceMin:  f(2),
			ExperienceMax:  f(5),
			PostedDaysAgo:  2,
			Requirements: []demoRequirement{
				{Skill: "Go", IsRequired: true, Importance: 10, YearsRequired: 2},
				{Skill: "PostgreSQL", IsRequired: true, Importance: 8, YearsRequired: 2},
				{Skill: "Docker", IsRequired: false, Importance: 5},
				{Skill: "Redis", IsRequired: false, Importance: 4},
			},
		},
		{
			ID:             uuid.MustParse("7b0c8f0e-2a41-4c55-9a64-1d7a0d3b5e02"),
			Title:          "Senior Fullstack Engineer",
			Company:        "Arunika Labs",
			Location:       "Bandung, ID",
			EmploymentType: "full_time",
			SeniorityLevel: "senior",
			Description:    "Develop web apps with React and TypeScript backed by Python services.",
			ExperienceMin:  f(5),
			PostedDaysAgo:  5,
			Requirements: []demoRequirement{
				{Skill: "React", IsRequired: true, Importance: 9, YearsRequired: 3},
				{Skill: "TypeScript", IsRequired: true, Importance: 8, YearsRequired: 2},
				{Skill: "Python", IsRequired: false, Importance: 6, YearsRequired: 2},
			},
		},
		{
			ID:             uuid.MustParse("7b0c8f0e-2a41-4c55-9a64-1d7a0d3b5e03"),
			Title:          "DevOps Engineer",
			Company:        "CloudKita",
			Location:       "Remote",
			Remote:         true,
			EmploymentType: "full_time",
			Description:    "Operate CI/CD, Docker, Kubernetes, and AWS infrastructure for production workloads.",
			SalaryMax:      f(35000000),
			ExperienceMin:  f(3),
			ExperienceMax:  f(8),
			PostedDaysAgo:  1,
			Requirements: []demoRequirement{
				{Skill: "Kubernetes", IsRequired: true, Importance: 10, YearsRequired: 2},
				{Skill: "Docker", IsRequired: true, Importance: 8},
				{Skill: "AWS", IsRequired: true, Importance: 7, YearsRequired: 1},
				{Skill: "Terraform", IsRequired: false, Importance: 6},
			},
		},
		{
			ID:             uuid.MustParse("7b0c8f0e-2a41-4c55-9a64-1d7a0d3b5e04"),
			Title:          "Junior Data Engineer",
			Company:        "InsightWorks",
			Location:       "Surabaya, ID",
			EmploymentType: "full_time",
			SeniorityLevel: "junior",
			Description:    "Build data pipelines and optimize PostgreSQL for analytics.",
			ExperienceMax:  f(2),
			PostedDaysAgo:  9,
			Requirements: []demoRequirement{
				{Skill: "Python", IsRequired: true, Importance: 9},
				{Skill: "SQL", IsRequired: true, Importance: 8},
				{Skill: "Communication", IsRequired: false, Importance: 4},
			},
		},
	}
}

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "job_postings",
		"id",
		"title",
		"company",
		"description",
		"location",
		"remote",
		"employment_type",
		"seniority_level",
		"salary_min",
		"salary_max",
		"experience_min",
		"experience_max",
		"requirements",
		"posted_at",
		"is_active",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()
	for _, j := range demoJobs() {
		reqs, err := json.Marshal(j.Requirements)
		if err != nil {
			return err
		}
		posted := now.AddDate(0, 0, -j.PostedDaysAgo)
		_, err = tx.Exec(
			ctx,
			`INSERT INTO job_postings (
	id, title, company, description, location, remote, employment_type, seniority_level,
	salary_min, salary_max, experience_min, experience_max, requirements, posted_at, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true)
ON CONFLICT (id) DO NOTHING`,
			j.ID,
			j.Title,
			j.Company,
			j.Description,
			j.Location,
			j.Remote,
			j.EmploymentType,
			j.SeniorityLevel,
			j.SalaryMin,
			j.SalaryMax,
			j.ExperienceMin,
			j.ExperienceMax,
			reqs,
			posted,
		)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
