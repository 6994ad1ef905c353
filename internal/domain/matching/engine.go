package matching

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"skillmatch/internal/domain/skill"
	"skillmatch/internal/pkg/workerpool"

	"go.uber.org/zap"
)

const (
	defaultProviderTimeout   = 3 * time.Second
	defaultParallelThreshold = 16
)

type Request struct {
	Profile    UserProfile
	Jobs       []JobPosting
	Strategy   Strategy
	MaxResults int
}

// Engine holds configuration only; Match is a pure function of its inputs
// apart from the embedding call, so one Engine can serve concurrent requests.
type Engine struct {
	vocab             *skill.Vocabulary
	composer          *Composer
	provider          EmbeddingProvider
	providerTimeout   time.Duration
	workers           int
	parallelThreshold int
	defaultStrategy   Strategy
	logger            *zap.Logger
}

type Option func(*Engine)

func WithVocabulary(v *skill.Vocabulary) Option {
	return func(e *Engine) {
		if v != nil {
			e.vocab = v
		}
	}
}

func WithWeights(t WeightTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.composer = NewComposer(t)
		}
	}
}

func WithEmbeddingProvider(p EmbeddingProvider) Option {
	return func(e *Engine) { e.provider = p }
}

func WithProviderTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.providerTimeout = d
		}
	}
}

func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithParallelThreshold sets the job count from which scoring fans out to
// the worker pool.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelThreshold = n
		}
	}
}

// WithDefaultStrategy sets the strategy used when a request leaves it
// unset. Invalid values are ignored.
func WithDefaultStrategy(s Strategy) Option {
	return func(e *Engine) {
		if s.Valid() {
			e.defaultStrategy = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		vocab:             skill.Default(),
		composer:          NewComposer(DefaultWeights()),
		providerTimeout:   defaultProviderTimeout,
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: defaultParallelThreshold,
		defaultStrategy:   DefaultStrategy,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Vocabulary() *skill.Vocabulary {
	return e.vocab
}

func (e *Engine) DefaultStrategy() Strategy {
	return e.defaultStrategy
}

// SemanticEnabled reports whether matches under s should carry the semantic
// criterion: a provider is configured and the strategy weights it. A zero s
// means the default strategy.
func (e *Engine) SemanticEnabled(s Strategy) bool {
	if e.provider == nil {
		return false
	}
	if s == 0 {
		s = e.defaultStrategy
	}
	w, err := e.composer.Weights(s)
	if err != nil {
		return false
	}
	return w[CriterionSemantic] > 0
}

// Match scores every job against the profile and returns them ranked.
// Malformed input and unknown strategies fail with ErrInvalidInput before
// any work is done. Embedding failures never fail the request: the semantic
// criterion is dropped and its weight redistributed. An empty result is a
// valid outcome.
func (e *Engine) Match(ctx context.Context, req Request) ([]MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := req.Strategy
	if st == 0 {
		st = e.defaultStrategy
	}
	weights, err := e.composer.Weights(st)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile := normalizeProfile(e.vocab, req.Profile)
	jobs := make([]JobPosting, len(req.Jobs))
	for i, j := range req.Jobs {
		jobs[i] = normalizeJob(e.vocab, j)
	}

	var sims []*float64
	if weights[CriterionSemantic] > 0 {
		sims, err = e.similarities(ctx, st, profile, jobs)
		if err != nil {
			return nil, err
		}
	}

	// Past the embedding call the work is CPU only and is not abandoned
	// halfway through on caller cancellation.
	scoreCtx := context.WithoutCancel(ctx)

	results := make([]MatchResult, len(jobs))
	score := func(_ context.Context, i int) error {
		var sim *float64
		if sims != nil {
			sim = sims[i]
		}
		r, err := e.scoreJob(profile, jobs[i], sim, weights, st)
		if err != nil {
			return fmt.Errorf("job %q: %w", jobs[i].ID, err)
		}
		results[i] = r
		return nil
	}

	if len(jobs) >= e.parallelThreshold && e.workers > 1 {
		err = workerpool.ForEach(scoreCtx, e.workers, len(jobs), score)
	} else {
		for i := range jobs {
			if err = score(scoreCtx, i); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	return Rank(results, req.MaxResults), nil
}

func (e *Engine) scoreJob(p UserProfile, job JobPosting, sim *float64, weights Weights, st Strategy) (MatchResult, error) {
	coverage, skills := ScoreSkillCoverage(p, job)
	all := []MatchCriterion{
		coverage,
		ScoreExperience(p, job),
		ScoreLocation(p, job),
		ScoreSalary(p, job),
		ScoreSeniority(p, job),
	}
	if sim != nil {
		all = append(all, ScoreSemantic(*sim))
	}

	comp, err := Compose(all, weights)
	if err != nil {
		return MatchResult{}, err
	}

	criteria := make([]MatchCriterion, 0, len(all))
	for _, c := range all {
		w, ok := comp.Weights[c.Kind]
		if !ok {
			continue
		}
		c.Weight = w
		criteria = append(criteria, c)
	}

	totalImportance := 0
	for _, s := range skills {
		totalImportance += s.Importance
	}
	for i := range skills {
		skills[i].Weight = comp.Weights[CriterionCoverage] * float64(skills[i].Importance) / float64(totalImportance)
	}

	// Deltas come from the unrounded scores Compose used; rounding is for
	// presentation only.
	gaps := AnalyzeGaps(criteria, skills, comp.Weights)
	for i := range skills {
		skills[i].UserScore = round2(skills[i].UserScore)
		skills[i].RequiredScore = round2(skills[i].RequiredScore)
	}
	for i := range gaps.Gaps {
		gaps.Gaps[i].UserScore = round2(gaps.Gaps[i].UserScore)
		gaps.Gaps[i].RequiredScore = round2(gaps.Gaps[i].RequiredScore)
	}

	return MatchResult{
		JobID:           job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Strategy:        st,
		OverallScore:    round2(comp.Score),
		Criteria:        criteria,
		Skills:          skills,
		Strengths:       strengths(skills),
		Gaps:            gaps.Names(),
		GapAnalysis:     gaps.Gaps,
		Recommendations: gaps.Recommendations,
		SemanticActive:  sim != nil,
		PostedAt:        job.PostedAt,
	}, nil
}

// similarities issues a single batched provider call for every text that
// has no precomputed embedding. A nil entry means the semantic criterion is
// inactive for that job. Only caller cancellation before the call is
// returned as an error.
func (e *Engine) similarities(ctx context.Context, st Strategy, p UserProfile, jobs []JobPosting) ([]*float64, error) {
	profileVec := p.Embedding
	jobVecs := make([][]float32, len(jobs))

	var texts []string
	var slots []int // -1 is the profile, otherwise a job index
	if len(profileVec) == 0 {
		texts = append(texts, ProfileText(p))
		slots = append(slots, -1)
	}
	for i, j := range jobs {
		if len(j.Embedding) > 0 {
			jobVecs[i] = j.Embedding
			continue
		}
		texts = append(texts, JobText(j))
		slots = append(slots, i)
	}

	if len(texts) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vecs, err := e.embed(ctx, texts)
		if err != nil {
			e.logger.Warn("semantic criterion disabled",
				zap.String("strategy", st.String()),
				zap.Int("jobs", len(jobs)),
				zap.Int("texts", len(texts)),
				zap.Error(err),
			)
			return nil, nil
		}
		for k, slot := range slots {
			if slot < 0 {
				profileVec = vecs[k]
			} else {
				jobVecs[slot] = vecs[k]
			}
		}
	}

	if len(profileVec) == 0 {
		return nil, nil
	}
	out := make([]*float64, len(jobs))
	for i := range jobs {
		if sim, ok := CosineSimilarity(profileVec, jobVecs[i]); ok {
			out[i] = &sim
		}
	}
	return out, nil
}

func (e *Engine) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrProviderUnavailable)
	}

	// The provider's own deadline governs once inference starts.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.providerTimeout)
	defer cancel()

	type reply struct {
		vecs [][]float32
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		vecs, err := e.provider.Embed(callCtx, texts)
		ch <- reply{vecs: vecs, err: err}
	}()

	select {
	case <-callCtx.Done():
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, callCtx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, r.err)
		}
		if len(r.vecs) != len(texts) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrProviderUnavailable, len(r.vecs), len(texts))
		}
		return r.vecs, nil
	}
}
