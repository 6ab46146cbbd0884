package analysisinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresJobRepository implements analysis.JobRepository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

type jobModel struct {
	ID             string          `db:"id"`
	BatchID        *string         `db:"batch_id"`
	Status         string          `db:"status"`
	CvCount        int             `db:"cv_count"`
	ErrorMessage   string          `db:"error_message"`
	CreatedAt      time.Time       `db:"created_at"`
	StartedAt      *time.Time      `db:"started_at"`
	CompletedAt    *time.Time      `db:"completed_at"`
	FailedAt       *time.Time      `db:"failed_at"`
	RequestPayload json.RawMessage `db:"request_payload"`
}

func (m *jobModel) toEntity() (*analysis.BatchJob, error) {
	var req analysis.AnalyzeBatchRequest
	if len(m.RequestPayload) > 0 {
		if err := json.Unmarshal(m.RequestPayload, &req); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job request: %w", err)
		}
	}

	job := &analysis.BatchJob{
		ID:           kernel.JobID(m.ID),
		Status:       analysis.JobStatus(m.Status),
		CvCount:      m.CvCount,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		FailedAt:     m.FailedAt,
		Request:      req,
	}
	if m.BatchID != nil {
		id := kernel.BatchID(*m.BatchID)
		job.BatchID = &id
	}
	return job, nil
}

// Create creates a new batch job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *analysis.BatchJob) error {
	payload, err := json.Marshal(job.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal job request: %w", err)
	}

	query := `
		INSERT INTO analysis_jobs (
			id, status, cv_count, error_message, created_at, request_payload
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.db.ExecContext(ctx, query,
		string(job.ID), string(job.Status), job.CvCount,
		job.ErrorMessage, job.CreatedAt, payload,
	); err != nil {
		return fmt.Errorf("failed to create analysis job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.JobID) (*analysis.BatchJob, error) {
	query := `
		SELECT id, batch_id, status, cv_count, error_message,
			created_at, started_at, completed_at, failed_at, request_payload
		FROM analysis_jobs
		WHERE id = $1
	`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(jobID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, analysis.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get analysis job: %w", err)
	}

	return model.toEntity()
}

// MarkAsProcessing transitions a job to processing
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error {
	query := `
		UPDATE analysis_jobs
		SET status = $1, started_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, query, string(analysis.JobStatusProcessing), time.Now(), string(jobID))
}

// MarkAsCompleted transitions a job to completed, linking the stored batch
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.JobID, batchID kernel.BatchID) error {
	query := `
		UPDATE analysis_jobs
		SET status = $1, batch_id = $2, completed_at = $3
		WHERE id = $4
	`
	return r.exec(ctx, query, string(analysis.JobStatusCompleted), string(batchID), time.Now(), string(jobID))
}

// MarkAsFailed transitions a job to failed with the error message
func (r *PostgresJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string) error {
	query := `
		UPDATE analysis_jobs
		SET status = $1, error_message = $2, failed_at = $3
		WHERE id = $4
	`
	return r.exec(ctx, query, string(analysis.JobStatusFailed), errorMsg, time.Now(), string(jobID))
}

func (r *PostgresJobRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update analysis job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return analysis.ErrJobNotFound()
	}

	return nil
}
