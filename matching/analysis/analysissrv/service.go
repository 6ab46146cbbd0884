package analysissrv

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/google/uuid"
)

// DefaultWorkers bounds batch concurrency when no explicit value is configured
const DefaultWorkers = 4

// Service runs batch analyses: per-CV scoring through the engine, failure
// isolation, ranking, and persistence of the finished result
type Service struct {
	engine    *engine.Engine
	repo      analysis.Repository
	jobRepo   analysis.JobRepository
	queue     analysis.JobQueue
	extractor analysis.TextExtractor

	workers        int
	cvTimeout      time.Duration
	defaultWeights engine.ScoringWeights
}

// NewService creates the batch analysis service. repo, jobRepo, queue and
// extractor may be nil in library use; the corresponding operations then
// report a configuration problem instead of being silently skipped.
func NewService(
	eng *engine.Engine,
	repo analysis.Repository,
	jobRepo analysis.JobRepository,
	queue analysis.JobQueue,
	extractor analysis.TextExtractor,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		engine:         eng,
		repo:           repo,
		jobRepo:        jobRepo,
		queue:          queue,
		extractor:      extractor,
		workers:        DefaultWorkers,
		defaultWeights: engine.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// ServiceOption customizes service construction
type ServiceOption func(*Service)

// WithWorkers bounds how many CVs are scored concurrently
func WithWorkers(n int) ServiceOption {
	return func(s *Service) { s.workers = n }
}

// WithCvTimeout sets a per-CV scoring deadline; a CV exceeding it is recorded
// as failed with reason "timeout" instead of being dropped
func WithCvTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.cvTimeout = d }
}

// WithDefaultWeights replaces the weights applied to requests that carry none
func WithDefaultWeights(w engine.ScoringWeights) ServiceOption {
	return func(s *Service) {
		if !w.IsZero() {
			s.defaultWeights = w
		}
	}
}

// AnalyzeBatch scores every CV of the request against the offer and returns
// the ranked result. Configuration errors (missing offer, unusable weights)
// fail the whole batch fast; per-CV problems are isolated into the failure
// list and never abort the remaining CVs.
func (s *Service) AnalyzeBatch(ctx context.Context, req analysis.AnalyzeBatchRequest) (*analysis.BatchResult, error) {
	result, err := s.scoreBatch(ctx, req)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, result)
	return result, nil
}

// scoreBatch runs the pipeline without persisting, so callers can merge
// input-level failures into the result before it is stored
func (s *Service) scoreBatch(ctx context.Context, req analysis.AnalyzeBatchRequest) (*analysis.BatchResult, error) {
	if len(req.Cvs) == 0 {
		return nil, analysis.ErrEmptyBatch()
	}

	weights := s.resolveWeights(req.Weights)
	if _, err := weights.Normalized(); err != nil {
		return nil, err
	}
	if req.Offer.Title == "" && req.Offer.Description == "" && len(req.Offer.RequiredSkills) == 0 {
		return nil, offer.ErrOfferMissing()
	}

	off := req.Offer // engine receives a copy; inputs are never mutated

	type slot struct {
		result  *analysis.CandidateResult
		failure *analysis.Failure
	}
	slots := make([]slot, len(req.Cvs))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, cv := range req.Cvs {
		wg.Add(1)
		go func(idx int, input analysis.CvInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, fail := s.scoreOne(ctx, &off, weights, input)
			slots[idx] = slot{result: res, failure: fail}
		}(i, cv)
	}
	// Barrier: the ranked list is only assembled once every CV reached a
	// terminal state.
	wg.Wait()

	result := &analysis.BatchResult{
		ID:         kernel.NewBatchID(uuid.NewString()),
		Offer:      req.Offer,
		Weights:    weights,
		Candidates: make([]analysis.CandidateResult, 0, len(req.Cvs)),
		Failures:   make([]analysis.Failure, 0),
		AnalyzedAt: time.Now(),
	}
	for _, sl := range slots {
		if sl.result != nil {
			result.Candidates = append(result.Candidates, *sl.result)
		} else if sl.failure != nil {
			result.Failures = append(result.Failures, *sl.failure)
		}
	}

	// Stable sort: equal totals preserve input order
	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].TotalScore > result.Candidates[j].TotalScore
	})

	logx.Infof("Batch %s analyzed: %d scored, %d failed", result.ID, len(result.Candidates), len(result.Failures))
	return result, nil
}

// persist stores a finished result in the history repository. The ranking is
// already valid at this point; persistence failing must not discard it.
func (s *Service) persist(ctx context.Context, result *analysis.BatchResult) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, result); err != nil {
		logx.Errorf("Failed to persist batch %s: %v", result.ID, err)
	}
}

// scoreOne pushes a single CV through extraction signals, the four scorers,
// aggregation and recommendations. Panics and deadline hits are converted
// into failure entries.
func (s *Service) scoreOne(ctx context.Context, off *offer.JobOffer, weights engine.ScoringWeights, input analysis.CvInput) (*analysis.CandidateResult, *analysis.Failure) {
	if input.Text == "" {
		return nil, &analysis.Failure{FileName: input.FileName, Reason: analysis.FailureReasonEmptyText}
	}

	cctx := ctx
	if s.cvTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, s.cvTimeout)
		defer cancel()
	}

	type outcome struct {
		score *engine.CandidateScore
		err   error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic while scoring: %v", r)}
			}
		}()
		score, err := s.engine.Analyze(cctx, off, weights, input.Text)
		ch <- outcome{score: score, err: err}
	}()

	select {
	case <-cctx.Done():
		logx.Warnf("CV %s timed out after %s", input.FileName, s.cvTimeout)
		return nil, &analysis.Failure{FileName: input.FileName, Reason: analysis.FailureReasonTimeout}
	case o := <-ch:
		if o.err != nil {
			// Weights and offer were validated upfront, so an error here is an
			// unexpected scoring failure: recorded, never propagated.
			logx.Errorf("Scoring failed for %s: %v", input.FileName, o.err)
			return nil, &analysis.Failure{FileName: input.FileName, Reason: o.err.Error()}
		}
		id := input.ID
		if id == "" {
			id = uuid.NewString()
		}
		return &analysis.CandidateResult{
			ID:              kernel.NewCvID(id),
			FileName:        input.FileName,
			Dimensions:      o.score.Dimensions,
			TotalScore:      o.score.TotalScore,
			Recommendations: o.score.Recommendations,
		}, nil
	}
}

func (s *Service) resolveWeights(w *engine.ScoringWeights) engine.ScoringWeights {
	if w == nil || w.IsZero() {
		return s.defaultWeights
	}
	return *w
}

// GetBatch retrieves a stored batch result by id
func (s *Service) GetBatch(ctx context.Context, id kernel.BatchID) (*analysis.BatchResult, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to load batch", errx.TypeInternal)
	}
	return result, nil
}

// ListBatches retrieves stored batch results, newest first
func (s *Service) ListBatches(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.BatchResult], error) {
	page, err := s.repo.List(ctx, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list batches", errx.TypeInternal)
	}
	return page, nil
}

// DeleteBatch removes a stored batch result
func (s *Service) DeleteBatch(ctx context.Context, id kernel.BatchID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return errx.Wrap(err, "failed to delete batch", errx.TypeInternal)
	}
	return nil
}
