package seeder

import (
	"context"
	"fmt"

	"skillmatch/internal/database"
	"skillmatch/internal/domain/skill"
)

// SkillsSeeder writes a vocabulary into the skills table. Existing rows are
// updated so alias additions reach databases seeded earlier.
type SkillsSeeder struct {
	Entries []skill.Entry
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "skills", "canonical_id", "name", "category", "aliases"); err != nil {
		return err
	}

	// normalize ids and names the same way lookups will
	entries := skill.NewVocabulary(s.Entries).Entries()

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range entries {
		aliases := e.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (canonical_id, name, category, aliases) VALUES ($1, $2, $3, $4)
ON CONFLICT (canonical_id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, aliases = EXCLUDED.aliases`,
			e.CanonicalID,
			e.Name,
			string(e.Category),
			aliases,
		)
		if err != nil {
			return fmt.Errorf("skill %s: %w", e.CanonicalID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
