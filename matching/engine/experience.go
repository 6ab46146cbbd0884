package engine

import (
	"fmt"

	"github.com/Abraxas-365/sift/matching/offer"
)

// Experience scoring points
const (
	withinBandPoints     = 80.0
	overqualifiedPoints  = 60.0
	belowBandPointsPerYr = 20.0
	belowBandCap         = 40.0
	experienceTermPoints = 5.0
	seniorityBonus       = 15.0
)

// ScoreExperience scores the experience dimension. The primary signal is the
// detected years of experience against the offer's [min,max] band; generic
// experience vocabulary and seniority markers add flat points on top.
func ScoreExperience(off *offer.JobOffer, sig Signals) DimensionScore {
	band := off.ExperienceBand()
	years := sig.TotalYears

	score := 0.0
	evidence := make([]string, 0)

	switch {
	case years >= band.Min && years <= band.Max:
		score = withinBandPoints
		evidence = append(evidence, fmt.Sprintf(
			"Expérience de %d an(s), dans la fourchette demandée (%d-%d ans)",
			years, band.Min, band.Max))
	case years > band.Max:
		score = overqualifiedPoints
		evidence = append(evidence, fmt.Sprintf(
			"Expérience de %d an(s), au-delà de la fourchette demandée (%d-%d ans)",
			years, band.Min, band.Max))
	default:
		score = float64(years) * belowBandPointsPerYr
		if score > belowBandCap {
			score = belowBandCap
		}
		if years > 0 {
			evidence = append(evidence, fmt.Sprintf(
				"Expérience de %d an(s), en deçà du minimum demandé (%d ans)",
				years, band.Min))
		}
	}

	for _, term := range sig.ExperienceHits {
		score += experienceTermPoints
		evidence = append(evidence, fmt.Sprintf("Mention d'expérience : %s", term))
	}

	if len(sig.SeniorityHits) > 0 {
		score += seniorityBonus
		evidence = append(evidence, fmt.Sprintf("Profil confirmé : %s", sig.SeniorityHits[0]))
	}

	return DimensionScore{
		Score:    clampScore(score),
		Evidence: capEvidence(evidence, maxEvidenceDefault),
	}
}
