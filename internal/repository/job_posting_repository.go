package repository

import (
	"context"
	"time"

	"skillmatch/internal/database"

	"github.com/google/uuid"
)

// JobPosting is a job_postings row. Requirements is the raw JSONB column.
type JobPosting struct {
	ID             uuid.UUID
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
	Requirements   []byte
	Embedding      []float32
	PostedAt       *time.Time
}

type JobPostingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (JobPosting, error)
	ListActive(ctx context.Context, limit, offset int) ([]JobPosting, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const jobPostingColumns = `id, title, company, description, location, remote, employment_type, seniority_level,
	salary_min, salary_max, experience_min, experience_max, requirements, embedding, posted_at`

func scanJobPosting(row database.Row) (JobPosting, error) {
	var j JobPosting
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Description,
		&j.Location,
		&j.Remote,
		&j.EmploymentType,
		&j.SeniorityLevel,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.ExperienceMin,
		&j.ExperienceMax,
		&j.Requirements,
		&j.Embedding,
		&j.PostedAt,
	)
	return j, err
}

func (r *PostgresJobPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (JobPosting, error) {
	j, err := scanJobPosting(r.db.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1 AND is_active = true`,
		id,
	))
	if err != nil {
		if database.IsNoRows(err) {
			return JobPosting{}, ErrJobNotFound
		}
		return JobPosting{}, err
	}
	return j, nil
}

func (r *PostgresJobPostingRepository) ListActive(ctx context.Context, limit, offset int) ([]JobPosting, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE is_active = true
		 ORDER BY posted_at DESC NULLS LAST, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobPosting, 0)
	for rows.Next() {
		j, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
