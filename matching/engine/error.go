package engine

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ENGINE")

// Error codes
var (
	CodeInvalidWeights = ErrRegistry.Register("INVALID_WEIGHTS", errx.TypeValidation, http.StatusBadRequest, "Scoring weights must have a positive sum")
	CodeNegativeWeight = ErrRegistry.Register("NEGATIVE_WEIGHT", errx.TypeValidation, http.StatusBadRequest, "Scoring weights must be non-negative")
	CodeMissingOffer   = ErrRegistry.Register("MISSING_OFFER", errx.TypeValidation, http.StatusBadRequest, "Job offer is required for scoring")
	CodeScoringFailed  = ErrRegistry.Register("SCORING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to score candidate")
)

// Helper functions
func ErrInvalidWeights() *errx.Error {
	return ErrRegistry.New(CodeInvalidWeights)
}

func ErrNegativeWeight() *errx.Error {
	return ErrRegistry.New(CodeNegativeWeight)
}

func ErrMissingOffer() *errx.Error {
	return ErrRegistry.New(CodeMissingOffer)
}

func ErrScoringFailed() *errx.Error {
	return ErrRegistry.New(CodeScoringFailed)
}
