package analysis

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// Repository persists finished batch results, keyed by an opaque batch id
type Repository interface {
	// Save stores a finished batch result
	Save(ctx context.Context, result *BatchResult) error

	// GetByID retrieves a stored result by batch id
	GetByID(ctx context.Context, id kernel.BatchID) (*BatchResult, error)

	// List retrieves stored results with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[BatchResult], error)

	// Delete removes a stored result
	Delete(ctx context.Context, id kernel.BatchID) error
}

// JobRepository tracks asynchronous batch jobs
type JobRepository interface {
	Create(ctx context.Context, job *BatchJob) error
	GetByID(ctx context.Context, jobID kernel.JobID) (*BatchJob, error)

	// Status transition helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.JobID, batchID kernel.BatchID) error
	MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string) error
}

// JobQueue defines the interface for async job queue operations
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, jobID kernel.JobID, payload any) error

	// Dequeue gets a job from the queue (blocking with timeout)
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// GetQueueSize returns the number of jobs in the queue
	GetQueueSize(ctx context.Context) (int64, error)

	// Clear removes all jobs from the queue (for testing/maintenance)
	Clear(ctx context.Context) error
}

// TextExtractor turns an uploaded document into lowercased plain text. It is
// the only pipeline stage that may involve I/O; extraction failure puts a CV
// directly in the Failed state before scoring.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, fileType string) (string, error)
}
