package analysis

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ANALYSIS")

// Error codes
var (
	CodeBatchNotFound       = ErrRegistry.Register("BATCH_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Analysis batch not found")
	CodeEmptyBatch          = ErrRegistry.Register("EMPTY_BATCH", errx.TypeValidation, http.StatusBadRequest, "Batch contains no CVs")
	CodeJobNotFound         = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Analysis job not found")
	CodeJobCreationFailed   = ErrRegistry.Register("JOB_CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create analysis job")
	CodeQueueEnqueueFailed  = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to enqueue analysis job")
	CodeExtractionFailed    = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Failed to extract text from document")
	CodePersistenceFailed   = ErrRegistry.Register("PERSISTENCE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to persist analysis result")
	CodeUnsupportedFileType = ErrRegistry.Register("UNSUPPORTED_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unsupported document type")
)

// Helper functions
func ErrBatchNotFound() *errx.Error {
	return ErrRegistry.New(CodeBatchNotFound)
}

func ErrEmptyBatch() *errx.Error {
	return ErrRegistry.New(CodeEmptyBatch)
}

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrPersistenceFailed() *errx.Error {
	return ErrRegistry.New(CodePersistenceFailed)
}

func ErrUnsupportedFileType() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFileType)
}
