package app

import (
	"context"
	"fmt"
	"time"

	"skillmatch/internal/config"
	"skillmatch/internal/database"
	dbpostgres "skillmatch/internal/database/postgres"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/embedding"
	"skillmatch/internal/infrastructure/cache"
	"skillmatch/internal/pkg/jwt"
	"skillmatch/internal/repository"
	"skillmatch/internal/usecase"
	"skillmatch/internal/ws"

	"go.uber.org/zap"
)

const embeddingCacheTTL = 7 * 24 * time.Hour

// Container owns every long-lived dependency. The database is optional:
// without it only the stateless match endpoint is served.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB     database.DB
	Cache  *cache.Redis
	Engine *matching.Engine
	JWT    jwt.Service
	Hub    *ws.Hub

	Match           *usecase.Match
	Recommendations *usecase.Recommendation
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Configured() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(dbCtx, cfg.Database, logger)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db
	} else {
		logger.Warn("database not configured, serving stateless matching only")
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	engine, err := c.newEngine(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Engine = engine

	if cfg.JWT.AccessSecret != "" {
		c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	}
	c.Hub = ws.NewHub(logger.Named("ws"))

	var (
		profiles repository.UserProfileRepository
		jobs     repository.JobPostingRepository
		matches  repository.JobMatchRepository
	)
	if c.DB != nil {
		profiles = repository.NewPostgresUserProfileRepository(c.DB)
		jobs = repository.NewPostgresJobPostingRepository(c.DB)
		matches = repository.NewPostgresJobMatchRepository(c.DB)
	}

	c.Match = usecase.NewMatchUsecase(engine, profiles, jobs, matches, c.Cache, cfg.Redis.TTL, logger)
	c.Recommendations = usecase.NewRecommendationUsecase(engine, profiles, jobs, matches, c.Hub, logger)
	return c, nil
}

func (c *Container) newEngine(ctx context.Context) (*matching.Engine, error) {
	cfg := c.Config.Matching

	weights, err := config.LoadWeights(cfg.WeightsFile)
	if err != nil {
		return nil, err
	}
	def, err := matching.ParseStrategy(cfg.DefaultStrategy)
	if err != nil {
		return nil, fmt.Errorf("MATCH_DEFAULT_STRATEGY: %w", err)
	}

	var skills repository.SkillRepository
	if c.DB != nil {
		skills = repository.NewPostgresSkillRepository(c.DB)
	}
	vocab := usecase.LoadVocabulary(ctx, skills, c.Logger)

	opts := []matching.Option{
		matching.WithVocabulary(vocab),
		matching.WithWeights(weights),
		matching.WithDefaultStrategy(def),
		matching.WithProviderTimeout(cfg.ProviderTimeout),
		matching.WithWorkers(cfg.Workers),
		matching.WithParallelThreshold(cfg.ParallelThreshold),
		matching.WithLogger(c.Logger.Named("matching")),
	}

	if key := c.Config.Gemini.APIKey; key != "" {
		g, err := embedding.NewGemini(ctx, key, c.Config.Gemini.EmbeddingModel, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		provider := embedding.NewCached(g, c.Cache, g.Model(), embeddingCacheTTL, c.Logger)
		opts = append(opts, matching.WithEmbeddingProvider(provider))
	} else {
		c.Logger.Info("GEMINI_API_KEY not set, semantic criterion disabled")
	}

	return matching.NewEngine(opts...), nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
