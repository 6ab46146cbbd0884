package engine

// DimensionScore is the outcome of one scoring dimension: a bounded score and
// the bounded evidence list justifying it
type DimensionScore struct {
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`
}

// DimensionSet groups the four independent sub-scores of a candidate
type DimensionSet struct {
	Formation  DimensionScore `json:"formation"`
	Experience DimensionScore `json:"experience"`
	Skills     DimensionScore `json:"skills"`
	Languages  DimensionScore `json:"languages"`
}

// Evidence list caps, bounding output size per dimension
const (
	maxEvidenceDefault = 5
	maxEvidenceSkills  = 8
)

const (
	minScore = 0.0
	maxScore = 100.0
)

func clampScore(score float64) float64 {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func capEvidence(evidence []string, max int) []string {
	if len(evidence) > max {
		return evidence[:max]
	}
	return evidence
}
