package repository

import (
	"context"
	"fmt"
	"time"

	"skillmatch/internal/database"

	"github.com/google/uuid"
)

type JobMatchUpsert struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	Strategy  string
	Score     float64
	Analysis  []byte
	MatchedAt time.Time
}

type JobMatchRepository interface {
	UpsertMany(ctx context.Context, ms []JobMatchUpsert) error
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

const upsertJobMatchSQL = `INSERT INTO job_matches (user_id, job_id, strategy, match_score, skill_gap_analysis, computed_at)
 VALUES ($1, $2, $3, $4, $5, $6)
 ON CONFLICT (user_id, job_id, strategy) DO UPDATE SET
	match_score = EXCLUDED.match_score,
	skill_gap_analysis = EXCLUDED.skill_gap_analysis,
	computed_at = EXCLUDED.computed_at`

// UpsertMany writes all matches in one transaction; rows without both ids
// are skipped.
func (r *PostgresJobMatchRepository) UpsertMany(ctx context.Context, ms []JobMatchUpsert) error {
	if len(ms) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()
	for _, m := range ms {
		if m.UserID == uuid.Nil || m.JobID == uuid.Nil {
			continue
		}
		if m.MatchedAt.IsZero() {
			m.MatchedAt = now
		}
		if _, err := tx.Exec(ctx, upsertJobMatchSQL,
			m.UserID,
			m.JobID,
			m.Strategy,
			m.Score,
			m.Analysis,
			m.MatchedAt,
		); err != nil {
			return fmt.Errorf("upsert match job=%s: %w", m.JobID, err)
		}
	}

	return tx.Commit(ctx)
}
