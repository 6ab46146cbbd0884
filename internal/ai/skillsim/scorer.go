package skillsim

import (
	"context"
	"fmt"
	"math"

	"github.com/Abraxas-365/sift/internal/ai/embeddings"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
)

// DefaultThreshold is the cosine similarity above which a required skill
// counts as matched
const DefaultThreshold = 0.55

// Scorer is the embedding-based alternative to the lexical skills scorer:
// it matches required skills by cosine similarity against the CV text instead
// of exact substrings, catching paraphrased skill mentions. It implements
// engine.SkillsScorer; the engine falls back to the lexical strategy when it
// returns an error.
type Scorer struct {
	generator *embeddings.EmbeddingsGenerator
	threshold float64
}

// NewScorer creates a semantic skills scorer
func NewScorer(generator *embeddings.EmbeddingsGenerator, threshold float64) *Scorer {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Scorer{
		generator: generator,
		threshold: threshold,
	}
}

// ScoreSkills scores the skills dimension by semantic similarity. Flat
// bonuses for technical terms and certifications still come from the lexical
// signals, so the two strategies only differ on required-skill matching.
func (s *Scorer) ScoreSkills(ctx context.Context, off *offer.JobOffer, cvText string, sig engine.Signals) (engine.DimensionScore, error) {
	required := off.NormalizedSkills()
	if len(required) == 0 {
		return engine.DimensionScore{
			Score:    0,
			Evidence: []string{engine.NoSkillsSpecifiedEvidence},
		}, nil
	}

	cvVec, err := s.generator.GenerateEmbedding(ctx, cvText)
	if err != nil {
		return engine.DimensionScore{}, fmt.Errorf("embed cv text: %w", err)
	}

	skillVecs, err := s.generator.GenerateBatchEmbeddings(ctx, required)
	if err != nil {
		return engine.DimensionScore{}, fmt.Errorf("embed required skills: %w", err)
	}

	pointsPerSkill := 100.0 / float64(len(required))

	score := 0.0
	evidence := make([]string, 0)

	for i, skill := range required {
		sim := cosineSimilarity(cvVec, skillVecs[i])
		if sim >= s.threshold {
			score += pointsPerSkill
			evidence = append(evidence, fmt.Sprintf("Compétence requise détectée : %s (similarité %.2f)", skill, sim))
		}
	}

	// Lexical bonuses still apply
	for _, term := range sig.TechnicalHits {
		score += 5
		evidence = append(evidence, fmt.Sprintf("Terme technique : %s", term))
	}
	for _, cert := range sig.CertificationHits {
		score += 10
		evidence = append(evidence, fmt.Sprintf("Certification : %s", cert))
	}

	if score > 100 {
		score = 100
	}
	if len(evidence) > 8 {
		evidence = evidence[:8]
	}

	return engine.DimensionScore{Score: score, Evidence: evidence}, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
