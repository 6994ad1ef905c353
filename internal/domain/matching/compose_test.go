package matching

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dim(kind Criterion, user, required float64) MatchCriterion {
	return MatchCriterion{
		Name:          string(kind),
		Kind:          kind,
		UserScore:     user,
		RequiredScore: required,
		Status:        statusFor(user, required),
	}
}

func TestCompose_AllActive(t *testing.T) {
	w := DefaultWeights()[StrategyRuleBased]
	criteria := []MatchCriterion{
		dim(CriterionCoverage, 10, 10),
		dim(CriterionExperience, 5, 10),
		dim(CriterionLocation, 0, 10),
		dim(CriterionSalary, 10, 10),
	}
	comp, err := Compose(criteria, w)
	require.NoError(t, err)
	// 0.55 + 0.20*0.5 + 0 + 0.15
	assert.InDelta(t, 80.0, comp.Score, 1e-9)
}

func TestCompose_RedistributesMissingCriterion(t *testing.T) {
	w := DefaultWeights()[StrategySemantic]
	criteria := []MatchCriterion{
		dim(CriterionCoverage, 10, 10),
		dim(CriterionExperience, 0, 10),
	}
	comp, err := Compose(criteria, w)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, comp.Weights[CriterionCoverage], 1e-9)
	assert.InDelta(t, 1.0/3.0, comp.Weights[CriterionExperience], 1e-9)
	_, ok := comp.Weights[CriterionSemantic]
	assert.False(t, ok)
	assert.InDelta(t, 100*2.0/3.0, comp.Score, 1e-9)
}

func TestCompose_IgnoresSkillRowsAndUnweighted(t *testing.T) {
	w := Weights{CriterionCoverage: 1}
	criteria := []MatchCriterion{
		dim(CriterionSkill, 0, 10),
		dim(CriterionCoverage, 7, 10),
		dim(CriterionSeniority, 0, 10),
	}
	comp, err := Compose(criteria, w)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, comp.Score, 1e-9)
	assert.Len(t, comp.Weights, 1)
}

func TestCompose_NoActiveCriteria(t *testing.T) {
	_, err := Compose(nil, DefaultWeights()[StrategyHybrid])
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Compose([]MatchCriterion{dim(CriterionSemantic, 10, 7.5)}, DefaultWeights()[StrategyRuleBased])
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompose_ScoreBoundsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 2000; iter++ {
		weights := Weights{}
		var criteria []MatchCriterion
		for _, kind := range dimensionCriteria {
			if rng.Intn(3) > 0 {
				weights[kind] = rng.Float64()
			}
			if rng.Intn(4) > 0 {
				// out-of-range scores must still compose into [0,100]
				criteria = append(criteria, dim(kind, rng.Float64()*14-2, rng.Float64()*10))
			}
		}

		comp, err := Compose(criteria, weights)
		if err != nil {
			require.ErrorIs(t, err, ErrInvalidInput)
			continue
		}
		assert.GreaterOrEqual(t, comp.Score, 0.0)
		assert.LessOrEqual(t, comp.Score, 100.0)

		sum := 0.0
		for _, v := range comp.Weights {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestComposer_UnknownStrategy(t *testing.T) {
	c := NewComposer(nil)
	_, err := c.Compose([]MatchCriterion{dim(CriterionCoverage, 1, 1)}, Strategy(99))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	for _, s := range Strategies() {
		w, err := DefaultWeights().For(s)
		require.NoError(t, err)
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, s.String())
	}
	hybrid, _ := DefaultWeights().For(StrategyHybrid)
	assert.Equal(t, 0.35, hybrid[CriterionSemantic])
	rule, _ := DefaultWeights().For(StrategyRuleBased)
	_, hasSemantic := rule[CriterionSemantic]
	assert.False(t, hasSemantic)
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"rule_based": StrategyRuleBased,
		" Semantic ": StrategySemantic,
		"hybrid":     StrategyHybrid,
		"":           DefaultStrategy,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStrategy("keyword")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategy_TextRoundTrip(t *testing.T) {
	b, err := StrategyRuleBased.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rule_based", string(b))

	var s Strategy
	require.NoError(t, s.UnmarshalText([]byte("semantic")))
	assert.Equal(t, StrategySemantic, s)

	_, err = Strategy(0).MarshalText()
	assert.Error(t, err)
}

func TestWeights_Validate(t *testing.T) {
	assert.ErrorIs(t, Weights{}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Weights{CriterionCoverage: -1, CriterionSalary: 2}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Weights{CriterionCoverage: math.NaN()}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Weights{CriterionCoverage: 0}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Weights{"skill": 1}.Validate(), ErrInvalidInput)
	assert.NoError(t, Weights{CriterionCoverage: 3, CriterionSeniority: 1}.Validate())
}

func TestWeightTable_Override(t *testing.T) {
	table, err := DefaultWeights().Override(WeightTable{
		StrategyRuleBased: {CriterionCoverage: 3, CriterionSeniority: 1, CriterionLocation: 0},
	})
	require.NoError(t, err)

	w, err := table.For(StrategyRuleBased)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, w[CriterionCoverage], 1e-9)
	assert.InDelta(t, 0.25, w[CriterionSeniority], 1e-9)
	_, ok := w[CriterionLocation]
	assert.False(t, ok)

	hybrid, err := table.For(StrategyHybrid)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights()[StrategyHybrid], hybrid)

	_, err = DefaultWeights().Override(WeightTable{StrategySemantic: {CriterionCoverage: -1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DefaultWeights().Override(WeightTable{StrategyHybrid: {CriterionSemantic: 1, CriterionSalary: 0}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
