package analysis

import (
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// BatchJob tracks an asynchronous batch analysis from enqueue to completion.
// A batch either completes with a BatchID pointing at the stored result or
// fails with an error message; there are no retries.
type BatchJob struct {
	ID      kernel.JobID    `db:"id" json:"id"`
	BatchID *kernel.BatchID `db:"batch_id" json:"batch_id,omitempty"`

	Status       JobStatus `db:"status" json:"status"`
	CvCount      int       `db:"cv_count" json:"cv_count"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`

	Request AnalyzeBatchRequest `db:"request_payload" json:"request_payload"`
}

// JobStatusResponse - Response for async job status queries
type JobStatusResponse struct {
	JobID     kernel.JobID    `json:"job_id"`
	Status    JobStatus       `json:"status"`
	CvCount   int             `json:"cv_count"`
	BatchID   *kernel.BatchID `json:"batch_id,omitempty"`
	Message   string          `json:"message"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
