package usecase

import (
	"context"
	"errors"
	"math"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 50
	defaultCandidatePool       = 500
)

type RecommendationParams struct {
	Strategy matching.Strategy
	Limit    int
	Offset   int
	MinScore float64
}

type RecommendationPage struct {
	Items  []matching.MatchResult
	Limit  int
	Offset int
	Total  int
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationPage, error)
}

type Recommendation struct {
	engine        Matcher
	profiles      repository.UserProfileRepository
	jobs          repository.JobPostingRepository
	matches       repository.JobMatchRepository
	notifier      RecommendationNotifier
	candidatePool int
	logger        *zap.Logger
}

func NewRecommendationUsecase(
	engine Matcher,
	profiles repository.UserProfileRepository,
	jobs repository.JobPostingRepository,
	matches repository.JobMatchRepository,
	notifier RecommendationNotifier,
	logger *zap.Logger,
) *Recommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommendation{
		engine:        engine,
		profiles:      profiles,
		jobs:          jobs,
		matches:       matches,
		notifier:      notifier,
		candidatePool: defaultCandidatePool,
		logger:        logger,
	}
}

// GetRecommendations ranks the newest active postings against the user's
// stored profile and returns one page of those scoring at least MinScore.
// Every match at or above MinScore is persisted, not only the page.
func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationPage, error) {
	if u == nil || u.engine == nil {
		return RecommendationPage{}, ErrInternal
	}
	if userID == uuid.Nil {
		return RecommendationPage{}, ErrUnauthorized
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultRecommendationLimit
	}
	if limit < 0 || limit > maxRecommendationLimit {
		return RecommendationPage{}, invalidInput("limit must be between 1 and %d", maxRecommendationLimit)
	}
	if params.Offset < 0 {
		return RecommendationPage{}, invalidInput("offset must be >= 0")
	}
	if math.IsNaN(params.MinScore) || params.MinScore < 0 || params.MinScore > 100 {
		return RecommendationPage{}, invalidInput("min_score must be between 0 and 100")
	}
	if u.profiles == nil || u.jobs == nil {
		return RecommendationPage{}, ErrStorageUnavailable
	}

	profileRow, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return RecommendationPage{}, ErrUserProfileNotFound
		}
		if ctx.Err() != nil {
			return RecommendationPage{}, ctx.Err()
		}
		u.logger.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return RecommendationPage{}, ErrInternal
	}

	rows, err := u.jobs.ListActive(ctx, u.candidatePool, 0)
	if err != nil {
		if ctx.Err() != nil {
			return RecommendationPage{}, ctx.Err()
		}
		u.logger.Error("list active jobs failed", zap.Error(err))
		return RecommendationPage{}, ErrInternal
	}

	vocab := u.engine.Vocabulary()
	jobs := make([]matching.JobPosting, 0, len(rows))
	for _, row := range rows {
		j, err := jobFromRow(row, vocab)
		if err != nil {
			u.logger.Warn("skipping job with unreadable requirements", zap.String("job_id", row.ID.String()), zap.Error(err))
			continue
		}
		jobs = append(jobs, j)
	}

	page := RecommendationPage{Items: []matching.MatchResult{}, Limit: limit, Offset: params.Offset}
	if len(jobs) == 0 {
		return page, nil
	}

	st := params.Strategy
	if st == 0 {
		st = u.engine.DefaultStrategy()
	}
	results, err := u.engine.Match(ctx, matching.Request{
		Profile:  profileFromRow(profileRow),
		Jobs:     jobs,
		Strategy: st,
	})
	if err != nil {
		mapped := engineError(err)
		if mapped == ErrInternal {
			u.logger.Error("recommendation match failed", zap.Error(err))
		}
		return RecommendationPage{}, mapped
	}

	kept := results[:0]
	for _, r := range results {
		if r.OverallScore >= params.MinScore {
			kept = append(kept, r)
		}
	}

	if err := persistMatches(ctx, u.matches, userID, kept); err != nil {
		u.logger.Error("persist recommendations failed", zap.String("user_id", userID.String()), zap.Error(err))
		return RecommendationPage{}, ErrInternal
	}

	page.Total = len(kept)
	if params.Offset < len(kept) {
		end := min(params.Offset+limit, len(kept))
		page.Items = kept[params.Offset:end]
	}

	if u.notifier != nil && len(kept) > 0 {
		u.notifier.NotifyRecommendationsUpdated(userID, st.String(), len(kept))
	}
	return page, nil
}
