package analysissrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/google/uuid"
)

// DocumentInput is an uploaded CV document before text extraction
type DocumentInput struct {
	FileName string
	FileType string
	Data     []byte
}

// AnalyzeDocuments extracts text from uploaded documents and scores the batch.
// A document whose extraction fails enters the failure list immediately and
// never reaches scoring; the rest of the batch continues.
func (s *Service) AnalyzeDocuments(ctx context.Context, off offer.JobOffer, weights *engine.ScoringWeights, docs []DocumentInput) (*analysis.BatchResult, error) {
	if len(docs) == 0 {
		return nil, analysis.ErrEmptyBatch()
	}

	cvs := make([]analysis.CvInput, 0, len(docs))
	extractionFailures := make([]analysis.Failure, 0)

	for _, doc := range docs {
		text, err := s.extractor.ExtractText(ctx, doc.Data, doc.FileType)
		if err != nil {
			logx.Warnf("Extraction failed for %s: %v", doc.FileName, err)
			extractionFailures = append(extractionFailures, analysis.Failure{
				FileName: doc.FileName,
				Reason:   "extraction failed: " + err.Error(),
			})
			continue
		}
		cvs = append(cvs, analysis.CvInput{FileName: doc.FileName, Text: text})
	}

	if len(cvs) == 0 {
		// Every document failed extraction: still a valid, rankable (empty)
		// outcome rather than an error
		result := &analysis.BatchResult{
			ID:         kernel.NewBatchID(uuid.NewString()),
			Offer:      off,
			Weights:    s.resolveWeights(weights),
			Candidates: []analysis.CandidateResult{},
			Failures:   extractionFailures,
			AnalyzedAt: time.Now(),
		}
		s.persist(ctx, result)
		return result, nil
	}

	result, err := s.scoreBatch(ctx, analysis.AnalyzeBatchRequest{
		Offer:   off,
		Weights: weights,
		Cvs:     cvs,
	})
	if err != nil {
		return nil, err
	}

	result.Failures = append(result.Failures, extractionFailures...)
	s.persist(ctx, result)
	return result, nil
}
