package engine

import (
	"fmt"

	"github.com/Abraxas-365/sift/matching/offer"
)

// Formation scoring points
const (
	formationKeywordPoints = 10.0
	jobKeywordPoints       = 20.0
	prestigeBonus          = 15.0
)

// ScoreFormation scores the education dimension additively: fixed points per
// generic formation keyword, a larger bonus per job-derived keyword, and a
// flat bonus when a prestigious institution is mentioned. The sum is clamped
// to [0,100].
func ScoreFormation(off *offer.JobOffer, sig Signals) DimensionScore {
	score := 0.0
	evidence := make([]string, 0)

	for _, kw := range sig.FormationKeywords {
		score += formationKeywordPoints
		evidence = append(evidence, fmt.Sprintf("Formation pertinente : %s", kw))
	}

	for _, kw := range sig.JobKeywords {
		score += jobKeywordPoints
		evidence = append(evidence, fmt.Sprintf("Mot-clé du poste : %s", kw))
	}

	if len(sig.PrestigeKeywords) > 0 {
		score += prestigeBonus
		evidence = append(evidence, fmt.Sprintf("Établissement reconnu : %s", sig.PrestigeKeywords[0]))
	}

	return DimensionScore{
		Score:    clampScore(score),
		Evidence: capEvidence(evidence, maxEvidenceDefault),
	}
}
