package usecase

import (
	"context"

	"skillmatch/internal/domain/skill"
	"skillmatch/internal/repository"

	"go.uber.org/zap"
)

// LoadVocabulary reads the skills table, falling back to the built-in
// vocabulary when the table is empty or cannot be read.
func LoadVocabulary(ctx context.Context, repo repository.SkillRepository, logger *zap.Logger) *skill.Vocabulary {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		return skill.Default()
	}

	entries, err := repo.ListEntries(ctx)
	if err != nil {
		logger.Warn("skill vocabulary unavailable, using built-in table", zap.Error(err))
		return skill.Default()
	}
	if len(entries) == 0 {
		logger.Info("skills table empty, using built-in table")
		return skill.Default()
	}

	v := skill.NewVocabulary(entries)
	logger.Info("skill vocabulary loaded", zap.Int("skills", v.Len()))
	return v
}
