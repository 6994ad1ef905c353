package seeder

import (
	"context"
	"fmt"

	"skillmatch/internal/database"

	"go.uber.org/zap"
)

// Seeder writes one fixed data set. Implementations must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run executes seeders in order; when only is non-empty, seeders whose name
// is not listed are skipped.
func (r Runner) Run(ctx context.Context, db database.DB, only ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	want := map[string]bool{}
	for _, n := range only {
		want[n] = true
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if len(want) > 0 && !want[s.Name()] {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", zap.String("seeder", s.Name()))
	}
	return nil
}
