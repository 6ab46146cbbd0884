package offer

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("OFFER")

// Error codes
var (
	CodeOfferMissing  = ErrRegistry.Register("MISSING", errx.TypeValidation, http.StatusBadRequest, "Job offer is required")
	CodeOfferNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job offer not found")
)

// Helper functions
func ErrOfferMissing() *errx.Error {
	return ErrRegistry.New(CodeOfferMissing)
}

func ErrOfferNotFound() *errx.Error {
	return ErrRegistry.New(CodeOfferNotFound)
}
