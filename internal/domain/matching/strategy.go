package matching

import (
	"fmt"
	"math"
	"strings"
)

type Strategy uint8

const (
	StrategyRuleBased Strategy = iota + 1
	StrategySemantic
	StrategyHybrid
)

const DefaultStrategy = StrategyHybrid

var strategyNames = map[Strategy]string{
	StrategyRuleBased: "rule_based",
	StrategySemantic:  "semantic",
	StrategyHybrid:    "hybrid",
}

func Strategies() []Strategy {
	return []Strategy{StrategyRuleBased, StrategySemantic, StrategyHybrid}
}

// ParseStrategy maps a wire name to a Strategy. The empty string selects
// DefaultStrategy; anything else unknown is ErrUnknownStrategy.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultStrategy, nil
	}
	for st, name := range strategyNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	st, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseCriterion accepts dimension names only; per-skill rows are not
// weighted directly.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range dimensionCriteria {
		if string(c) == s {
			return c, nil
		}
	}
	return "", invalidf("unknown criterion %q", s)
}

type Weights map[Criterion]float64

func (w Weights) Validate() error {
	if len(w) == 0 {
		return invalidf("empty weight vector")
	}
	sum := 0.0
	for c, v := range w {
		if _, err := ParseCriterion(string(c)); err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return invalidf("weight for %s must be a finite non-negative number", c)
		}
		sum += v
	}
	if sum <= 0 {
		return invalidf("weights must have a positive sum")
	}
	return nil
}

// Normalized returns a copy scaled to sum to 1, dropping zero entries.
func (w Weights) Normalized() (Weights, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	out := make(Weights, len(w))
	for c, v := range w {
		if v == 0 {
			continue
		}
		out[c] = v / sum
	}
	return out, nil
}

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for c, v := range w {
		out[c] = v
	}
	return out
}

type WeightTable map[Strategy]Weights

func DefaultWeights() WeightTable {
	return WeightTable{
		StrategyRuleBased: {
			CriterionCoverage:   0.55,
			CriterionExperience: 0.20,
			CriterionLocation:   0.10,
			CriterionSalary:     0.15,
		},
		StrategySemantic: {
			CriterionSemantic:   0.70,
			CriterionCoverage:   0.20,
			CriterionExperience: 0.10,
		},
		StrategyHybrid: {
			CriterionCoverage:   0.35,
			CriterionSemantic:   0.35,
			CriterionExperience: 0.15,
			CriterionLocation:   0.05,
			CriterionSalary:     0.10,
		},
	}
}

func (t WeightTable) For(s Strategy) (Weights, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	w, ok := t[s]
	if !ok {
		w = DefaultWeights()[s]
	}
	return w.clone(), nil
}

// Override returns a new table where every strategy present in over
// replaces the receiver's vector after validation and normalization. A
// vector must weight at least one criterion besides semantic, so a match
// can still be composed when the embedding provider is down.
func (t WeightTable) Override(over WeightTable) (WeightTable, error) {
	out := make(WeightTable, len(t))
	for s, w := range t {
		out[s] = w.clone()
	}
	for s, w := range over {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
		}
		n, err := w.Normalized()
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", s, err)
		}
		if len(n) == 1 && n[CriterionSemantic] > 0 {
			return nil, fmt.Errorf("strategy %s: %w", s, invalidf("semantic needs at least one other weighted criterion"))
		}
		out[s] = n
	}
	return out, nil
}
