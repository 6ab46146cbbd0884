package engine

// ScoringWeights controls each dimension's contribution to the total score.
// Callers may supply weights on any positive scale (summing to 1, 100 or an
// arbitrary total); they are normalized at aggregation time. A weight of 0 is
// valid and excludes the dimension from the total while its score is still
// computed and reported.
type ScoringWeights struct {
	Formation  float64 `json:"formation" mapstructure:"formation"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Languages  float64 `json:"languages" mapstructure:"languages"`
}

// DefaultWeights is the standard distribution when the caller supplies none
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Formation:  30,
		Experience: 30,
		Skills:     25,
		Languages:  15,
	}
}

// Sum returns the total of all weights
func (w ScoringWeights) Sum() float64 {
	return w.Formation + w.Experience + w.Skills + w.Languages
}

// IsZero reports whether no weight was supplied at all
func (w ScoringWeights) IsZero() bool {
	return w == ScoringWeights{}
}

// Normalized scales the weights so they sum to 1.0. It fails when any weight
// is negative or the sum is not strictly positive, since no meaningful total
// can be computed from such a configuration.
func (w ScoringWeights) Normalized() (ScoringWeights, error) {
	if w.Formation < 0 || w.Experience < 0 || w.Skills < 0 || w.Languages < 0 {
		return ScoringWeights{}, ErrNegativeWeight().
			WithDetail("weights", w)
	}
	sum := w.Sum()
	if sum <= 0 {
		return ScoringWeights{}, ErrInvalidWeights().
			WithDetail("sum", sum)
	}
	return ScoringWeights{
		Formation:  w.Formation / sum,
		Experience: w.Experience / sum,
		Skills:     w.Skills / sum,
		Languages:  w.Languages / sum,
	}, nil
}
