package repository

import (
	"context"

	"skillmatch/internal/database"

	"github.com/google/uuid"
)

type UserSkill struct {
	CanonicalID     string
	SkillName       string
	Confidence      float64
	YearsExperience float64
	Verified        bool
}

type UserProfile struct {
	UserID             uuid.UUID
	ExperienceYears    *float64
	PreferredLocations []string
	PreferredSalaryMin *float64
	PreferredSalaryMax *float64
	CareerLevel        string
	Summary            string
	Embedding          []float32
	Skills             []UserSkill
}

type UserProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (UserProfile, error)
}

type PostgresUserProfileRepository struct {
	db database.DB
}

func NewPostgresUserProfileRepository(db database.DB) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{db: db}
}

func (r *PostgresUserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (UserProfile, error) {
	p := UserProfile{UserID: userID}
	err := r.db.QueryRow(ctx,
		`SELECT experience_years, preferred_locations, preferred_salary_min, preferred_salary_max,
		        career_level, summary, embedding
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.ExperienceYears,
		&p.PreferredLocations,
		&p.PreferredSalaryMin,
		&p.PreferredSalaryMax,
		&p.CareerLevel,
		&p.Summary,
		&p.Embedding,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return UserProfile{}, ErrProfileNotFound
		}
		return UserProfile{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT canonical_id, skill_name, confidence, years_experience, verified
		 FROM user_skills WHERE user_id = $1
		 ORDER BY canonical_id ASC`,
		userID,
	)
	if err != nil {
		return UserProfile{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var s UserSkill
		if err := rows.Scan(&s.CanonicalID, &s.SkillName, &s.Confidence, &s.YearsExperience, &s.Verified); err != nil {
			return UserProfile{}, err
		}
		p.Skills = append(p.Skills, s)
	}
	if err := rows.Err(); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}
