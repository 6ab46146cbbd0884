package engine

// Aggregate combines the four sub-scores into one total using normalized
// weights. It fails when the weights cannot be normalized (sum ≤ 0 or a
// negative weight); the caller must treat that as a configuration error and
// abort the batch.
func Aggregate(dims DimensionSet, weights ScoringWeights) (float64, error) {
	norm, err := weights.Normalized()
	if err != nil {
		return 0, err
	}

	total := dims.Formation.Score*norm.Formation +
		dims.Experience.Score*norm.Experience +
		dims.Skills.Score*norm.Skills +
		dims.Languages.Score*norm.Languages

	return clampScore(total), nil
}
