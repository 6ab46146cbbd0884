package engine

import (
	"fmt"

	"github.com/Abraxas-365/sift/matching/offer"
)

// Language scoring points
const (
	languagePoints      = 20.0
	proficiencyBonus    = 15.0
	bilingualBonus      = 20.0
	trilingualBonus     = 30.0
	bonusLanguagePoints = 10.0
)

// ScoreLanguages scores the languages dimension: points per distinct language,
// a bonus when a proficiency level accompanies the mention, cumulative
// multilingual bonuses at 2+ and 3+ languages, and a flat bonus when the
// locally-significant additional language is present.
func ScoreLanguages(off *offer.JobOffer, sig Signals, bonusLanguage string) DimensionScore {
	score := 0.0
	evidence := make([]string, 0)

	for _, hit := range sig.LanguageHits {
		score += languagePoints
		if hit.WithLevel {
			score += proficiencyBonus
			evidence = append(evidence, fmt.Sprintf("Langue : %s (%s)", hit.Language, hit.Level))
		} else {
			evidence = append(evidence, fmt.Sprintf("Langue : %s", hit.Language))
		}
	}

	distinct := len(sig.LanguageHits)
	if distinct >= 2 {
		score += bilingualBonus
	}
	if distinct >= 3 {
		score += trilingualBonus
	}

	if bonusLanguage != "" {
		for _, hit := range sig.LanguageHits {
			if hit.Language == bonusLanguage {
				score += bonusLanguagePoints
				break
			}
		}
	}

	return DimensionScore{
		Score:    clampScore(score),
		Evidence: capEvidence(evidence, maxEvidenceDefault),
	}
}
