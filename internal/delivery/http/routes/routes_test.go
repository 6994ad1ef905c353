package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillmatch/internal/delivery/http/handler"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/pkg/jwt"
	"skillmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
	} `json:"meta"`
}

type stubMatchUsecase struct {
	*usecase.Match
	result matching.MatchResult
	err    error
	gotJob uuid.UUID
	gotSt  matching.Strategy
}

func (s *stubMatchUsecase) MatchUserToJob(_ context.Context, _, jobID uuid.UUID, st matching.Strategy) (matching.MatchResult, error) {
	s.gotJob, s.gotSt = jobID, st
	return s.result, s.err
}

type stubRecommendations struct {
	page   usecase.RecommendationPage
	err    error
	params usecase.RecommendationParams
}

func (s *stubRecommendations) GetRecommendations(_ context.Context, _ uuid.UUID, p usecase.RecommendationParams) (usecase.RecommendationPage, error) {
	s.params = p
	return s.page, s.err
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	app    *fiber.App
	match  *stubMatchUsecase
	recs   *stubRecommendations
	token  string
	userID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	svc := jwt.NewHMACService("test-secret", time.Hour)
	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)

	match := &stubMatchUsecase{Match: usecase.NewMatchUsecase(matching.NewEngine(), nil, nil, nil, nil, 0, nil)}
	recs := &stubRecommendations{}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	reg := &Registry{
		Health:          handler.NewHealthHandler(map[string]handler.Pinger{"postgres": okPinger{}, "redis": nil}),
		Match:           handler.NewMatchHandler(match),
		Recommendations: handler.NewRecommendationHandler(recs),
		Auth:            middleware.NewAuthMiddleware(svc),
	}
	reg.Register(app)

	return &fixture{app: app, match: match, recs: recs, token: token, userID: userID}
}

func (f *fixture) do(t *testing.T, method, target string, body any, auth bool) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+f.token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func matchBody() map[string]any {
	return map[string]any{
		"strategy": "rule_based",
		"user_profile": map[string]any{
			"skills":           []map[string]any{{"skill": "golang", "category": "language", "confidence": 0.9, "years_experience": 4}},
			"experience_years": 4,
		},
		"job_postings": []map[string]any{
			{"id": "a", "title": "Go Engineer", "requirements": []map[string]any{{"skill": "go", "importance": 9, "years_required": 2}}},
			{"id": "b", "title": "Rust Engineer", "requirements": []map[string]any{{"skill": "rust", "importance": 9}}},
		},
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	status, env := f.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, "up", data.Dependencies["postgres"])
	assert.Equal(t, "disabled", data.Dependencies["redis"])
}

func TestMatchProfile(t *testing.T) {
	f := newFixture(t)
	status, env := f.do(t, http.MethodPost, "/api/v1/jobs/match", matchBody(), false)
	require.Equal(t, http.StatusOK, status, env.Message)

	var data struct {
		Results []matching.MatchResult `json:"results"`
		Cached  bool                   `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Results, 2)
	assert.Equal(t, "a", data.Results[0].JobID)
	assert.Equal(t, matching.StrategyRuleBased, data.Results[0].Strategy)
	assert.Greater(t, data.Results[0].OverallScore, data.Results[1].OverallScore)
	assert.Equal(t, []string{"Rust"}, data.Results[1].Gaps)
	assert.False(t, data.Cached)
}

func TestMatchProfile_DocumentedRequestShape(t *testing.T) {
	f := newFixture(t)
	body := json.RawMessage(`{
		"user_profile": {
			"skills": [{"skill": "Python", "category": "language", "confidence": 0.9}],
			"experience_years": 5,
			"preferred_locations": ["Remote"],
			"career_level": "senior"
		},
		"job_postings": [
			{"id": "j1", "title": "Data Engineer", "remote": true, "requirements": [{"skill": "python", "importance": 9}]},
			{"id": "j2", "title": "iOS Engineer", "requirements": [{"skill": "swift", "importance": 9}]}
		],
		"strategy": "hybrid",
		"max_results": 1
	}`)
	status, env := f.do(t, http.MethodPost, "/api/v1/jobs/match", body, false)
	require.Equal(t, http.StatusOK, status, env.Message)

	var data struct {
		Results []matching.MatchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Results, 1)
	assert.Equal(t, "j1", data.Results[0].JobID)
	assert.Equal(t, matching.StrategyHybrid, data.Results[0].Strategy)
	require.Len(t, data.Results[0].Skills, 1)
	assert.Equal(t, "Python", data.Results[0].Skills[0].Name)
	assert.InDelta(t, 9.0, data.Results[0].Skills[0].UserScore, 1e-9)
}

func TestMatchProfile_Rejects(t *testing.T) {
	f := newFixture(t)

	badConfidence := matchBody()
	badConfidence["user_profile"].(map[string]any)["skills"] = []map[string]any{{"skill": "go", "confidence": 2}}
	status, env := f.do(t, http.MethodPost, "/api/v1/jobs/match", badConfidence, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(env.Data), "user_profile.skills[0].confidence")

	badStrategy := matchBody()
	badStrategy["strategy"] = "vibes"
	status, _ = f.do(t, http.MethodPost, "/api/v1/jobs/match", badStrategy, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	duplicate := matchBody()
	jobs := duplicate["job_postings"].([]map[string]any)
	jobs[1]["id"] = "a"
	status, env = f.do(t, http.MethodPost, "/api/v1/jobs/match", duplicate, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Message, "invalid input")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/match", bytes.NewReader([]byte("{")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobMatch(t *testing.T) {
	f := newFixture(t)
	jobID := uuid.New()
	f.match.result = matching.MatchResult{JobID: jobID.String(), Strategy: matching.StrategySemantic, OverallScore: 64.2}

	status, _ := f.do(t, http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/match", nil, false)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := f.do(t, http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/match?strategy=semantic", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, jobID, f.match.gotJob)
	assert.Equal(t, matching.StrategySemantic, f.match.gotSt)
	var res matching.MatchResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 64.2, res.OverallScore)

	status, _ = f.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid/match", nil, true)
	assert.Equal(t, http.StatusBadRequest, status)

	f.match.err = usecase.ErrJobNotFound
	status, env = f.do(t, http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/match", nil, true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job not found", env.Message)

	f.match.err = usecase.ErrStorageUnavailable
	status, _ = f.do(t, http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/match", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestRecommendations(t *testing.T) {
	f := newFixture(t)
	f.recs.page = usecase.RecommendationPage{
		Items:  []matching.MatchResult{{JobID: "x", Strategy: matching.StrategyHybrid, OverallScore: 80}},
		Limit:  5,
		Offset: 5,
		Total:  6,
	}

	status, env := f.do(t, http.MethodGet, "/api/v1/recommendations?limit=5&offset=5&min_score=60.5", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, f.recs.params.Limit)
	assert.Equal(t, 5, f.recs.params.Offset)
	assert.Equal(t, 60.5, f.recs.params.MinScore)
	assert.Zero(t, f.recs.params.Strategy)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 6, env.Meta.Count)

	status, _ = f.do(t, http.MethodGet, "/api/v1/recommendations?limit=abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, status)

	f.recs.err = usecase.ErrUserProfileNotFound
	status, _ = f.do(t, http.MethodGet, "/api/v1/recommendations", nil, true)
	assert.Equal(t, http.StatusNotFound, status)
}
