package analysis

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

// CandidateCv is one CV entering the pipeline: its identity and the
// already-extracted, lowercased text
type CandidateCv struct {
	ID       kernel.CvID `json:"id"`
	FileName string      `json:"file_name"`
	RawText  string      `json:"raw_text"`
}

// CandidateResult is a successfully scored candidate
type CandidateResult struct {
	ID              kernel.CvID         `json:"id"`
	FileName        string              `json:"file_name"`
	Dimensions      engine.DimensionSet `json:"dimensions"`
	TotalScore      float64             `json:"total_score"`
	Recommendations []string            `json:"recommendations"`
}

// Failure records a CV that could not be analyzed, with the reason
type Failure struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// Failure reasons for CVs that never reach a score
const (
	FailureReasonTimeout   = "timeout"
	FailureReasonEmptyText = "empty extracted text"
)

// BatchResult is the outcome of analyzing a set of CVs against one offer:
// candidates sorted by total score descending plus the per-CV failures
type BatchResult struct {
	ID         kernel.BatchID        `db:"id" json:"id"`
	Offer      offer.JobOffer        `db:"offer" json:"offer"`
	Weights    engine.ScoringWeights `db:"weights" json:"weights"`
	Candidates []CandidateResult     `db:"candidates" json:"candidates"`
	Failures   []Failure             `db:"failures" json:"failures"`
	AnalyzedAt time.Time             `db:"analyzed_at" json:"analyzed_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Submitted returns the number of CVs that entered the batch
func (b *BatchResult) Submitted() int {
	return len(b.Candidates) + len(b.Failures)
}

// Summary renders the "N of M CVs analyzed" line callers display
func (b *BatchResult) Summary() string {
	return fmt.Sprintf("%d CV(s) analysé(s) sur %d", len(b.Candidates), b.Submitted())
}

// TopCandidate returns the best ranked candidate, or nil for an empty batch
func (b *BatchResult) TopCandidate() *CandidateResult {
	if len(b.Candidates) == 0 {
		return nil
	}
	return &b.Candidates[0]
}

// HasFailures reports whether any CV failed analysis
func (b *BatchResult) HasFailures() bool {
	return len(b.Failures) > 0
}
