package analysis

import (
	"testing"
	"time"

	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

func TestToResponseRoundsAndRanks(t *testing.T) {
	batch := &BatchResult{
		ID:      kernel.NewBatchID("batch-1"),
		Offer:   offer.JobOffer{Title: "Comptable"},
		Weights: engine.DefaultWeights(),
		Candidates: []CandidateResult{
			{
				ID:         kernel.NewCvID("a"),
				FileName:   "a.pdf",
				TotalScore: 86.5,
				Dimensions: engine.DimensionSet{
					Formation: engine.DimensionScore{Score: 79.4},
					Skills:    engine.DimensionScore{Score: 33.333333},
				},
			},
			{
				ID:         kernel.NewCvID("b"),
				FileName:   "b.pdf",
				TotalScore: 42.49,
			},
		},
		AnalyzedAt: time.Now(),
	}

	resp := batch.ToResponse()

	if resp.OfferTitle != "Comptable" {
		t.Errorf("OfferTitle = %q, want Comptable", resp.OfferTitle)
	}
	if resp.Candidates[0].Rank != 1 || resp.Candidates[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", resp.Candidates[0].Rank, resp.Candidates[1].Rank)
	}

	// Rounding happens here, not in the domain result
	if resp.Candidates[0].TotalScore != 87 {
		t.Errorf("rounded total = %d, want 87", resp.Candidates[0].TotalScore)
	}
	if resp.Candidates[1].TotalScore != 42 {
		t.Errorf("rounded total = %d, want 42", resp.Candidates[1].TotalScore)
	}
	if resp.Candidates[0].DimensionScores.Formation != 79 {
		t.Errorf("rounded formation = %d, want 79", resp.Candidates[0].DimensionScores.Formation)
	}
	if resp.Candidates[0].DimensionScores.Skills != 33 {
		t.Errorf("rounded skills = %d, want 33", resp.Candidates[0].DimensionScores.Skills)
	}

	if batch.Candidates[0].TotalScore != 86.5 {
		t.Error("domain result was mutated by presentation rounding")
	}

	// Absent failures serialize as an empty list, not null
	if resp.Failures == nil {
		t.Error("Failures = nil, want empty slice")
	}

	if resp.Analyzed != 2 || resp.Submitted != 2 {
		t.Errorf("Analyzed/Submitted = %d/%d, want 2/2", resp.Analyzed, resp.Submitted)
	}
}

func TestBatchResultDomainMethods(t *testing.T) {
	empty := &BatchResult{}
	if empty.TopCandidate() != nil {
		t.Error("TopCandidate() on empty batch should be nil")
	}
	if empty.HasFailures() {
		t.Error("HasFailures() on empty batch should be false")
	}

	batch := &BatchResult{
		Candidates: []CandidateResult{
			{ID: kernel.NewCvID("top"), TotalScore: 90},
			{ID: kernel.NewCvID("second"), TotalScore: 50},
		},
		Failures: []Failure{{FileName: "bad.pdf", Reason: FailureReasonEmptyText}},
	}

	if top := batch.TopCandidate(); top == nil || top.ID != kernel.NewCvID("top") {
		t.Errorf("TopCandidate() = %+v, want candidate top", batch.TopCandidate())
	}
	if !batch.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if batch.Submitted() != 3 {
		t.Errorf("Submitted() = %d, want 3", batch.Submitted())
	}
	if got := batch.Summary(); got != "2 CV(s) analysé(s) sur 3" {
		t.Errorf("Summary() = %q", got)
	}
}
