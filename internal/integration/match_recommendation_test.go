package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"skillmatch/internal/app"
	"skillmatch/internal/config"
	"skillmatch/internal/database"
	"skillmatch/internal/database/migration"
	dbpostgres "skillmatch/internal/database/postgres"
	"skillmatch/internal/database/seeder"
	"skillmatch/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed id of the Go backend posting inserted by the demo_jobs seeder.
var goBackendJobID = uuid.MustParse("7b0c8f0e-2a41-4c55-9a64-1d7a0d3b5e01")

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
	} `json:"meta"`
}

func TestIntegration_JobMatch_Recommendations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := testConfig(t)
	prepareDatabase(t, ctx, cfg.Database)

	c, err := app.NewContainer(ctx, cfg, nil)
	require.NoError(t, err)

	a, cleanup, err := app.Bootstrap(ctx, c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	userID := seedProfile(t, ctx, c.DB)

	token, err := c.JWT.Issue(userID)
	require.NoError(t, err)

	var result matching.MatchResult
	sr := get(t, a, "/api/v1/jobs/"+goBackendJobID.String()+"/match", token)
	require.Equal(t, http.StatusOK, sr.Status, sr.Message)
	require.NoError(t, json.Unmarshal(sr.Data, &result))
	assert.Equal(t, goBackendJobID.String(), result.JobID)
	assert.Greater(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
	assert.Contains(t, result.Gaps, "PostgreSQL")

	var items []matching.MatchResult
	sr = get(t, a, "/api/v1/recommendations?limit=3&offset=0", token)
	require.Equal(t, http.StatusOK, sr.Status, sr.Message)
	require.NoError(t, json.Unmarshal(sr.Data, &items))
	require.NotEmpty(t, items)
	require.NotNil(t, sr.Meta)
	assert.GreaterOrEqual(t, sr.Meta.Count, len(items))

	seen := map[string]bool{}
	for i, it := range items {
		assert.False(t, seen[it.JobID], "duplicate job %s", it.JobID)
		seen[it.JobID] = true
		if i > 0 {
			assert.LessOrEqual(t, it.OverallScore, items[i-1].OverallScore)
		}
	}

	var stored int
	require.NoError(t, c.DB.QueryRow(ctx,
		`SELECT count(*) FROM job_matches WHERE user_id = $1`, userID,
	).Scan(&stored))
	assert.GreaterOrEqual(t, stored, sr.Meta.Count)

	sr = get(t, a, "/api/v1/jobs/"+uuid.NewString()+"/match", token)
	assert.Equal(t, http.StatusNotFound, sr.Status)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	db := config.DatabaseConfig{
		DBHost:     os.Getenv("SKILLMATCH_TEST_DB_HOST"),
		DBPort:     os.Getenv("SKILLMATCH_TEST_DB_PORT"),
		DBName:     os.Getenv("SKILLMATCH_TEST_DB_NAME"),
		DBUser:     os.Getenv("SKILLMATCH_TEST_DB_USER"),
		DBPassword: os.Getenv("SKILLMATCH_TEST_DB_PASSWORD"),
		DBSSLMode:  stringsOrDefault(os.Getenv("SKILLMATCH_TEST_DB_SSL_MODE"), "disable"),
	}
	if !db.Configured() {
		t.Skip("set SKILLMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD to run against postgres")
	}

	return config.Config{
		App:      config.AppConfig{AppName: "skillmatch-it", Environment: "test", HTTPPort: "0"},
		Database: db,
		Redis: config.RedisConfig{
			Host: os.Getenv("SKILLMATCH_TEST_REDIS_HOST"),
			Port: stringsOrDefault(os.Getenv("SKILLMATCH_TEST_REDIS_PORT"), "6379"),
			TTL:  time.Minute,
		},
		JWT: config.JWTConfig{
			AccessSecret:    "integration-secret",
			AccessExpiresIn: 15 * time.Minute,
		},
		Matching: config.MatchingConfig{
			Workers:           4,
			ParallelThreshold: 2,
			ProviderTimeout:   time.Second,
			DefaultStrategy:   "rule_based",
		},
	}
}

// prepareDatabase migrates and seeds on a separate pool so the container
// loads the seeded vocabulary on startup.
func prepareDatabase(t *testing.T, ctx context.Context, cfg config.DatabaseConfig) {
	t.Helper()

	db, err := dbpostgres.Connect(ctx, cfg, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, migration.Runner{}.Run(ctx, db.SQLDB()))
	require.NoError(t, seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, db))
}

func seedProfile(t *testing.T, ctx context.Context, db database.DB) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO user_profiles (user_id, experience_years, preferred_locations, career_level)
		 VALUES ($1, 3, ARRAY['Jakarta'], 'mid')`,
		userID,
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	})

	skills := []struct {
		id, name   string
		confidence float64
		years      float64
	}{
		{"go", "Go", 0.9, 3},
		{"docker", "Docker", 0.7, 2},
		{"redis", "Redis", 0.6, 1},
	}
	for _, s := range skills {
		_, err := db.Exec(ctx,
			`INSERT INTO user_skills (user_id, canonical_id, skill_name, confidence, years_experience)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, s.id, s.name, s.confidence, s.years,
		)
		require.NoError(t, err)
	}
	return userID
}

func get(t *testing.T, a *app.App, path, token string) semanticResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	return sr
}

func stringsOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
