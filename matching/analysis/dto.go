package analysis

import (
	"math"
	"time"

	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CvInput - One pre-extracted CV text entering a batch
type CvInput struct {
	ID       string `json:"id,omitempty"`
	FileName string `json:"file_name" validate:"required"`
	Text     string `json:"text"`
}

// AnalyzeBatchRequest - Score a set of CVs against one offer
type AnalyzeBatchRequest struct {
	Offer   offer.JobOffer         `json:"offer" validate:"required"`
	Weights *engine.ScoringWeights `json:"weights,omitempty"` // defaults when omitted
	Cvs     []CvInput              `json:"cvs" validate:"required,min=1"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// DimensionScoresResponse - Per-dimension scores rounded for presentation
type DimensionScoresResponse struct {
	Formation  int `json:"formation"`
	Experience int `json:"experience"`
	Skills     int `json:"skills"`
	Languages  int `json:"languages"`
}

// EvidenceResponse - Per-dimension evidence lists
type EvidenceResponse struct {
	Formation  []string `json:"formation"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	Languages  []string `json:"languages"`
}

// CandidateResultResponse - One ranked candidate. Scores are rounded to the
// nearest integer here, at the presentation boundary only.
type CandidateResultResponse struct {
	ID              kernel.CvID             `json:"id"`
	FileName        string                  `json:"file_name"`
	Rank            int                     `json:"rank"`
	TotalScore      int                     `json:"total_score"`
	DimensionScores DimensionScoresResponse `json:"dimension_scores"`
	Evidence        EvidenceResponse        `json:"evidence"`
	Recommendations []string                `json:"recommendations"`
}

// BatchResultResponse - Full ranked batch outcome
type BatchResultResponse struct {
	ID         kernel.BatchID            `json:"id"`
	OfferTitle string                    `json:"offer_title"`
	Summary    string                    `json:"summary"`
	Analyzed   int                       `json:"analyzed"`
	Submitted  int                       `json:"submitted"`
	Candidates []CandidateResultResponse `json:"candidates"`
	Failures   []Failure                 `json:"failures"`
	AnalyzedAt time.Time                 `json:"analyzed_at"`
}

// ToResponse converts a domain batch result into its presentation form
func (b *BatchResult) ToResponse() *BatchResultResponse {
	candidates := make([]CandidateResultResponse, 0, len(b.Candidates))
	for i, c := range b.Candidates {
		candidates = append(candidates, CandidateResultResponse{
			ID:         c.ID,
			FileName:   c.FileName,
			Rank:       i + 1,
			TotalScore: roundScore(c.TotalScore),
			DimensionScores: DimensionScoresResponse{
				Formation:  roundScore(c.Dimensions.Formation.Score),
				Experience: roundScore(c.Dimensions.Experience.Score),
				Skills:     roundScore(c.Dimensions.Skills.Score),
				Languages:  roundScore(c.Dimensions.Languages.Score),
			},
			Evidence: EvidenceResponse{
				Formation:  c.Dimensions.Formation.Evidence,
				Experience: c.Dimensions.Experience.Evidence,
				Skills:     c.Dimensions.Skills.Evidence,
				Languages:  c.Dimensions.Languages.Evidence,
			},
			Recommendations: c.Recommendations,
		})
	}

	failures := b.Failures
	if failures == nil {
		failures = []Failure{}
	}

	return &BatchResultResponse{
		ID:         b.ID,
		OfferTitle: b.Offer.Title,
		Summary:    b.Summary(),
		Analyzed:   len(b.Candidates),
		Submitted:  b.Submitted(),
		Candidates: candidates,
		Failures:   failures,
		AnalyzedAt: b.AnalyzedAt,
	}
}

func roundScore(score float64) int {
	return int(math.Round(score))
}
