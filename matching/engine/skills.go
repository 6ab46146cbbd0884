package engine

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/sift/matching/offer"
)

// Skills scoring points
const (
	technicalTermPoints = 5.0
	certificationPoints = 10.0
)

// Evidence marker emitted when the offer specifies no required skills
const NoSkillsSpecifiedEvidence = "Aucune compétence requise spécifiée pour ce poste"

// SkillsScorer is the swappable strategy for the skills dimension. The
// default lexical scorer is pure; alternative implementations (e.g. an
// embedding-based similarity scorer) may perform I/O, hence the context.
type SkillsScorer interface {
	ScoreSkills(ctx context.Context, off *offer.JobOffer, cvText string, sig Signals) (DimensionScore, error)
}

// LexicalSkillsScorer scores skills by exact substring matching, the default
// strategy
type LexicalSkillsScorer struct{}

func (LexicalSkillsScorer) ScoreSkills(_ context.Context, off *offer.JobOffer, _ string, sig Signals) (DimensionScore, error) {
	return ScoreSkills(off, sig), nil
}

// ScoreSkills scores the skills dimension: each required skill found awards an
// equal share of 100 points (matching every required skill reaches 100 from
// that term alone), with small flat bonuses for generic technical terms and
// recognized certifications. An offer without required skills scores 0 with an
// explicit evidence marker.
func ScoreSkills(off *offer.JobOffer, sig Signals) DimensionScore {
	required := off.NormalizedSkills()
	if len(required) == 0 {
		return DimensionScore{
			Score:    0,
			Evidence: []string{NoSkillsSpecifiedEvidence},
		}
	}

	pointsPerSkill := maxScore / float64(len(required))

	score := 0.0
	evidence := make([]string, 0)

	for _, skill := range sig.RequiredSkillHits {
		score += pointsPerSkill
		evidence = append(evidence, fmt.Sprintf("Compétence requise trouvée : %s", skill))
	}

	for _, term := range sig.TechnicalHits {
		score += technicalTermPoints
		evidence = append(evidence, fmt.Sprintf("Terme technique : %s", term))
	}

	for _, cert := range sig.CertificationHits {
		score += certificationPoints
		evidence = append(evidence, fmt.Sprintf("Certification : %s", cert))
	}

	return DimensionScore{
		Score:    clampScore(score),
		Evidence: capEvidence(evidence, maxEvidenceSkills),
	}
}
