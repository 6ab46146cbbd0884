package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/analysis/analysissrv"
	"github.com/Abraxas-365/sift/pkg/logx"
)

// AnalysisWorker consumes queued batch jobs and runs them through the service
type AnalysisWorker struct {
	service *analysissrv.Service
	queue   analysis.JobQueue
	workers int
}

func NewAnalysisWorker(service *analysissrv.Service, queue analysis.JobQueue, workers int) *AnalysisWorker {
	return &AnalysisWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *AnalysisWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d analysis workers", w.workers)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *AnalysisWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, no jobs available
			if len(data) == 0 {
				continue
			}

			var job analysis.BatchJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Worker %d processing job: %s", workerID, job.ID)
			if err := w.service.ProcessBatchJob(ctx, &job); err != nil {
				logx.Errorf("Worker %d job failed: %v", workerID, err)
			}
		}
	}
}
