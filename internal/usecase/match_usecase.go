package usecase

import (
	"context"
	"errors"
	"time"

	"skillmatch/internal/domain/matching"
	"skillmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMatchCacheTTL = 10 * time.Minute

type MatchUsecase interface {
	// MatchProfile matches a caller-supplied profile against caller-supplied
	// postings. cached reports whether the results came from the cache.
	MatchProfile(ctx context.Context, req matching.Request) (results []matching.MatchResult, cached bool, err error)
	MatchUserToJob(ctx context.Context, userID, jobID uuid.UUID, strategy matching.Strategy) (matching.MatchResult, error)
}

type Match struct {
	engine   Matcher
	profiles repository.UserProfileRepository
	jobs     repository.JobPostingRepository
	matches  repository.JobMatchRepository
	cache    MatchCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMatchUsecase wires the engine to storage. Nil repositories are allowed
// when no database is configured; only MatchProfile then works.
func NewMatchUsecase(
	engine Matcher,
	profiles repository.UserProfileRepository,
	jobs repository.JobPostingRepository,
	matches repository.JobMatchRepository,
	cache MatchCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Match {
	if cacheTTL <= 0 {
		cacheTTL = defaultMatchCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Match{
		engine:   engine,
		profiles: profiles,
		jobs:     jobs,
		matches:  matches,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (u *Match) MatchProfile(ctx context.Context, req matching.Request) ([]matching.MatchResult, bool, error) {
	if u == nil || u.engine == nil {
		return nil, false, ErrInternal
	}

	if req.Strategy == 0 {
		req.Strategy = u.engine.DefaultStrategy()
	}
	key, cacheable := MatchCacheKey(u.engine.Vocabulary(), req)
	cacheable = cacheable && u.cache != nil
	if cacheable {
		var cached []matching.MatchResult
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Debug("match cache hit", zap.String("key", key))
			return cached, true, nil
		}
	}

	results, err := u.engine.Match(ctx, req)
	if err != nil {
		return nil, false, u.matchError(err)
	}

	if cacheable && u.degraded(req.Strategy, results) {
		u.logger.Debug("match cache skipped, semantic criterion inactive", zap.String("key", key))
		cacheable = false
	}
	if cacheable {
		if err := u.cache.SetJSON(ctx, key, results, u.cacheTTL); err != nil {
			u.logger.Debug("match cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return results, false, nil
}

// degraded reports a result set computed without the semantic criterion the
// strategy expects, i.e. the provider fallback. Such results are not cached.
func (u *Match) degraded(st matching.Strategy, results []matching.MatchResult) bool {
	if !u.engine.SemanticEnabled(st) {
		return false
	}
	for _, r := range results {
		if !r.SemanticActive {
			return true
		}
	}
	return false
}

func (u *Match) MatchUserToJob(ctx context.Context, userID, jobID uuid.UUID, strategy matching.Strategy) (matching.MatchResult, error) {
	if u == nil || u.engine == nil {
		return matching.MatchResult{}, ErrInternal
	}
	if userID == uuid.Nil {
		return matching.MatchResult{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.MatchResult{}, ErrJobNotFound
	}
	if u.profiles == nil || u.jobs == nil {
		return matching.MatchResult{}, ErrStorageUnavailable
	}

	var (
		profileRow repository.UserProfile
		jobRow     repository.JobPosting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.profiles.GetByUserID(gctx, userID)
		if err != nil {
			return err
		}
		profileRow = p
		return nil
	})
	g.Go(func() error {
		j, err := u.jobs.GetByID(gctx, jobID)
		if err != nil {
			return err
		}
		jobRow = j
		return nil
	})
	if err := g.Wait(); err != nil {
		return matching.MatchResult{}, u.loadError(ctx, err)
	}

	job, err := jobFromRow(jobRow, u.engine.Vocabulary())
	if err != nil {
		u.logger.Error("stored job requirements unreadable", zap.String("job_id", jobID.String()), zap.Error(err))
		return matching.MatchResult{}, ErrInternal
	}

	results, err := u.engine.Match(ctx, matching.Request{
		Profile:    profileFromRow(profileRow),
		Jobs:       []matching.JobPosting{job},
		Strategy:   strategy,
		MaxResults: 1,
	})
	if err != nil {
		return matching.MatchResult{}, u.matchError(err)
	}
	if len(results) != 1 {
		return matching.MatchResult{}, ErrInternal
	}

	if err := persistMatches(ctx, u.matches, userID, results); err != nil {
		u.logger.Error("persist match failed", zap.String("user_id", userID.String()), zap.Error(err))
		return matching.MatchResult{}, ErrInternal
	}
	return results[0], nil
}

func (u *Match) loadError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return ErrUserProfileNotFound
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		u.logger.Error("load match inputs failed", zap.Error(err))
		return ErrInternal
	}
}

func (u *Match) matchError(err error) error {
	mapped := engineError(err)
	if mapped == ErrInternal {
		u.logger.Error("match failed", zap.Error(err))
	}
	return mapped
}

func persistMatches(ctx context.Context, repo repository.JobMatchRepository, userID uuid.UUID, results []matching.MatchResult) error {
	if repo == nil || len(results) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]repository.JobMatchUpsert, 0, len(results))
	for _, r := range results {
		jobID, err := uuid.Parse(r.JobID)
		if err != nil {
			continue
		}
		analysis, err := matching.EncodeGapAnalysis(r)
		if err != nil {
			return err
		}
		rows = append(rows, repository.JobMatchUpsert{
			UserID:    userID,
			JobID:     jobID,
			Strategy:  r.Strategy.String(),
			Score:     r.OverallScore,
			Analysis:  analysis,
			MatchedAt: now,
		})
	}
	return repo.UpsertMany(ctx, rows)
}
