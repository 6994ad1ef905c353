package matching

// Composition is the overall score together with the weights that were
// actually applied after re-normalizing over the active criteria.
type Composition struct {
	Score   float64
	Weights Weights
}

// Compose folds dimension criteria into a 0-100 score. A criterion is active
// when it is present in criteria and carries a positive weight; the active
// weights are re-normalized to sum to 1, so a missing dimension (e.g. no
// embeddings) redistributes its share proportionally instead of deflating
// the score. Per-skill rows are ignored; they are already summarized by the
// coverage criterion.
func Compose(criteria []MatchCriterion, weights Weights) (Composition, error) {
	active := make(Weights, len(weights))
	sum := 0.0
	for _, c := range criteria {
		if c.Kind == CriterionSkill {
			continue
		}
		w := weights[c.Kind]
		if !(w > 0) {
			continue
		}
		if _, dup := active[c.Kind]; dup {
			continue
		}
		active[c.Kind] = w
		sum += w
	}
	if len(active) == 0 || sum <= 0 {
		return Composition{}, invalidf("no active criteria to compose")
	}

	effective := make(Weights, len(active))
	for k, w := range active {
		effective[k] = w / sum
	}

	seen := make(map[Criterion]struct{}, len(active))
	total := 0.0
	for _, c := range criteria {
		w, ok := effective[c.Kind]
		if !ok {
			continue
		}
		if _, dup := seen[c.Kind]; dup {
			continue
		}
		seen[c.Kind] = struct{}{}
		total += w * clamp(c.UserScore/10, 0, 1)
	}

	return Composition{Score: clamp(100*total, 0, 100), Weights: effective}, nil
}

type Composer struct {
	table WeightTable
}

func NewComposer(table WeightTable) *Composer {
	if table == nil {
		table = DefaultWeights()
	}
	return &Composer{table: table}
}

func (c *Composer) Weights(s Strategy) (Weights, error) {
	return c.table.For(s)
}

func (c *Composer) Compose(criteria []MatchCriterion, s Strategy) (Composition, error) {
	w, err := c.table.For(s)
	if err != nil {
		return Composition{}, err
	}
	return Compose(criteria, w)
}
