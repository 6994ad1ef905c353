package usecase

import (
	"context"
	"time"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"

	"github.com/google/uuid"
)

// Matcher is the engine surface the usecases need; *matching.Engine
// implements it.
type Matcher interface {
	Match(ctx context.Context, req matching.Request) ([]matching.MatchResult, error)
	Vocabulary() *skill.Vocabulary
	DefaultStrategy() matching.Strategy
	SemanticEnabled(s matching.Strategy) bool
}

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type RecommendationNotifier interface {
	NotifyRecommendationsUpdated(userID uuid.UUID, strategy string, count int)
}
