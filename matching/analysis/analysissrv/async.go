package analysissrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/google/uuid"
)

// AnalyzeBatchAsync queues a batch for background processing and returns a
// job handle the caller can poll
func (s *Service) AnalyzeBatchAsync(ctx context.Context, req analysis.AnalyzeBatchRequest) (*analysis.JobStatusResponse, error) {
	if len(req.Cvs) == 0 {
		return nil, analysis.ErrEmptyBatch()
	}
	// Fail fast on configuration problems before anything is queued
	if _, err := s.resolveWeights(req.Weights).Normalized(); err != nil {
		return nil, err
	}

	jobID := kernel.NewJobID(uuid.NewString())
	job := &analysis.BatchJob{
		ID:        jobID,
		Status:    analysis.JobStatusPending,
		CvCount:   len(req.Cvs),
		CreatedAt: time.Now(),
		Request:   req,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, analysis.ErrJobCreationFailed().
			WithDetail("cv_count", len(req.Cvs)).
			WithDetails(map[string]any{"error": err.Error()})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue")
		return nil, analysis.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{"error": err.Error()})
	}

	logx.Infof("Batch job queued: JobID=%s, CVs=%d", jobID, len(req.Cvs))

	return &analysis.JobStatusResponse{
		JobID:     jobID,
		Status:    analysis.JobStatusPending,
		CvCount:   len(req.Cvs),
		Message:   "Batch queued for analysis",
		CreatedAt: job.CreatedAt,
	}, nil
}

// ProcessBatchJob - Worker entry point for one queued batch
func (s *Service) ProcessBatchJob(ctx context.Context, job *analysis.BatchJob) error {
	logx.Infof("Processing batch job: JobID=%s, CVs=%d", job.ID, job.CvCount)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return analysis.ErrJobCreationFailed().
			WithDetail("job_id", job.ID).
			WithDetails(map[string]any{"error": err.Error()})
	}

	result, err := s.AnalyzeBatch(ctx, job.Request)
	if err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, job.ID, err.Error())
		return err
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, result.ID); err != nil {
		logx.Errorf("Failed to mark job %s completed: %v", job.ID, err)
	}

	logx.Infof("Batch job completed: JobID=%s, BatchID=%s", job.ID, result.ID)
	return nil
}

// GetJobStatus reports the current state of an async batch job
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.JobID) (*analysis.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, analysis.ErrJobNotFound().WithDetail("job_id", jobID)
	}

	resp := &analysis.JobStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		CvCount:   job.CvCount,
		BatchID:   job.BatchID,
		Error:     job.ErrorMessage,
		CreatedAt: job.CreatedAt,
	}

	switch job.Status {
	case analysis.JobStatusPending:
		resp.Message = "Batch waiting in queue"
	case analysis.JobStatusProcessing:
		resp.Message = "Batch analysis in progress"
	case analysis.JobStatusCompleted:
		resp.Message = "Batch analysis completed"
	case analysis.JobStatusFailed:
		resp.Message = "Batch analysis failed"
	}

	return resp, nil
}
