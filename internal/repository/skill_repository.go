package repository

import (
	"context"

	"skillmatch/internal/database"
	"skillmatch/internal/domain/skill"
)

type SkillRepository interface {
	ListEntries(ctx context.Context) ([]skill.Entry, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListEntries(ctx context.Context) ([]skill.Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT canonical_id, name, category, aliases FROM skills ORDER BY canonical_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Entry, 0)
	for rows.Next() {
		var e skill.Entry
		var category string
		if err := rows.Scan(&e.CanonicalID, &e.Name, &category, &e.Aliases); err != nil {
			return nil, err
		}
		e.Category = skill.ParseCategory(category)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
