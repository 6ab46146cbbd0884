package analysissrv

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

// ============================================================================
// In-memory test doubles
// ============================================================================

type memoryRepo struct {
	mu    sync.Mutex
	saved []*analysis.BatchResult
	fail  bool
}

func (r *memoryRepo) Save(_ context.Context, result *analysis.BatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("storage unavailable")
	}
	r.saved = append(r.saved, result)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id kernel.BatchID) (*analysis.BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.saved {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, analysis.ErrBatchNotFound()
}

func (r *memoryRepo) List(_ context.Context, p kernel.PaginationOptions) (*kernel.Paginated[analysis.BatchResult], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]analysis.BatchResult, 0, len(r.saved))
	for _, b := range r.saved {
		items = append(items, *b)
	}
	return kernel.NewPaginated(items, int64(len(items)), p), nil
}

func (r *memoryRepo) Delete(_ context.Context, id kernel.BatchID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.saved {
		if b.ID == id {
			r.saved = append(r.saved[:i], r.saved[i+1:]...)
			return nil
		}
	}
	return analysis.ErrBatchNotFound()
}

type memoryJobRepo struct {
	mu   sync.Mutex
	jobs map[kernel.JobID]*analysis.BatchJob
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{jobs: make(map[kernel.JobID]*analysis.BatchJob)}
}

func (r *memoryJobRepo) Create(_ context.Context, job *analysis.BatchJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *memoryJobRepo) GetByID(_ context.Context, jobID kernel.JobID) (*analysis.BatchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, analysis.ErrJobNotFound()
	}
	return job, nil
}

func (r *memoryJobRepo) setStatus(jobID kernel.JobID, status analysis.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return analysis.ErrJobNotFound()
	}
	job.Status = status
	return nil
}

func (r *memoryJobRepo) MarkAsProcessing(_ context.Context, jobID kernel.JobID) error {
	return r.setStatus(jobID, analysis.JobStatusProcessing)
}

func (r *memoryJobRepo) MarkAsCompleted(_ context.Context, jobID kernel.JobID, batchID kernel.BatchID) error {
	r.mu.Lock()
	job, ok := r.jobs[jobID]
	if ok {
		job.BatchID = &batchID
	}
	r.mu.Unlock()
	if !ok {
		return analysis.ErrJobNotFound()
	}
	return r.setStatus(jobID, analysis.JobStatusCompleted)
}

func (r *memoryJobRepo) MarkAsFailed(_ context.Context, jobID kernel.JobID, errorMsg string) error {
	r.mu.Lock()
	if job, ok := r.jobs[jobID]; ok {
		job.ErrorMessage = errorMsg
	}
	r.mu.Unlock()
	return r.setStatus(jobID, analysis.JobStatusFailed)
}

type memoryQueue struct {
	mu       sync.Mutex
	enqueued []kernel.JobID
	fail     bool
}

func (q *memoryQueue) Enqueue(_ context.Context, jobID kernel.JobID, _ any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return errors.New("queue unavailable")
	}
	q.enqueued = append(q.enqueued, jobID)
	return nil
}

func (q *memoryQueue) Dequeue(_ context.Context, _ time.Duration) ([]byte, error) {
	return nil, nil
}

func (q *memoryQueue) GetQueueSize(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.enqueued)), nil
}

func (q *memoryQueue) Clear(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = nil
	return nil
}

// panickingSkillsScorer panics on CV texts containing its trigger word and
// delegates to the lexical scorer otherwise
type panickingSkillsScorer struct{ trigger string }

func (p panickingSkillsScorer) ScoreSkills(ctx context.Context, off *offer.JobOffer, cvText string, sig engine.Signals) (engine.DimensionScore, error) {
	if strings.Contains(cvText, p.trigger) {
		panic("scorer exploded")
	}
	return engine.LexicalSkillsScorer{}.ScoreSkills(ctx, off, cvText, sig)
}

// scriptedSkillsScorer returns a fixed score per file marker found in the CV
// text, letting tests dictate exact totals under skills-only weights
type scriptedSkillsScorer struct{ scores map[string]float64 }

func (s scriptedSkillsScorer) ScoreSkills(_ context.Context, _ *offer.JobOffer, cvText string, _ engine.Signals) (engine.DimensionScore, error) {
	for marker, score := range s.scores {
		if strings.Contains(cvText, marker) {
			return engine.DimensionScore{Score: score}, nil
		}
	}
	return engine.DimensionScore{}, nil
}

type slowSkillsScorer struct{ delay time.Duration }

func (s slowSkillsScorer) ScoreSkills(context.Context, *offer.JobOffer, string, engine.Signals) (engine.DimensionScore, error) {
	time.Sleep(s.delay)
	return engine.DimensionScore{}, nil
}

// ============================================================================
// Fixtures
// ============================================================================

var testOffer = offer.JobOffer{
	Title:                 "Développeur Java",
	RequiredSkills:        []string{"java", "sql", "docker"},
	ExperienceRequirement: "3-5 ans",
}

const (
	strongCV = "master informatique, développeur java avec 4 ans d'expérience, java sql docker, anglais courant"
	mediumCV = "licence gestion, 2 ans d'expérience, java"
	weakCV   = "texte sans aucun rapport avec le poste"
)

func newTestService(opts ...ServiceOption) (*Service, *memoryRepo) {
	repo := &memoryRepo{}
	return NewService(engine.New(), repo, newMemoryJobRepo(), &memoryQueue{}, nil, opts...), repo
}

// ============================================================================
// Batch analysis
// ============================================================================

func TestAnalyzeBatchRanksDescending(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs: []analysis.CvInput{
			{ID: "weak", FileName: "weak.txt", Text: weakCV},
			{ID: "strong", FileName: "strong.txt", Text: strongCV},
			{ID: "medium", FileName: "medium.txt", Text: mediumCV},
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if len(result.Candidates) != 3 {
		t.Fatalf("candidates = %d, want 3", len(result.Candidates))
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].TotalScore > result.Candidates[i-1].TotalScore {
			t.Errorf("ranking not descending at %d: %v > %v",
				i, result.Candidates[i].TotalScore, result.Candidates[i-1].TotalScore)
		}
	}
	if result.Candidates[0].ID != kernel.NewCvID("strong") {
		t.Errorf("top candidate = %s, want strong", result.Candidates[0].ID)
	}
	if result.Candidates[2].ID != kernel.NewCvID("weak") {
		t.Errorf("last candidate = %s, want weak", result.Candidates[2].ID)
	}
}

func TestAnalyzeBatchTieKeepsInputOrder(t *testing.T) {
	svc, _ := newTestService()

	// Identical texts produce identical totals; input order must survive
	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs: []analysis.CvInput{
			{ID: "first", FileName: "a.txt", Text: mediumCV},
			{ID: "second", FileName: "b.txt", Text: mediumCV},
			{ID: "third", FileName: "c.txt", Text: mediumCV},
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if result.Candidates[i].ID != kernel.NewCvID(want) {
			t.Errorf("position %d = %s, want %s", i, result.Candidates[i].ID, want)
		}
	}
}

func TestAnalyzeBatchIsDeterministic(t *testing.T) {
	svc, _ := newTestService(WithWorkers(3))

	req := analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs: []analysis.CvInput{
			{ID: "a", FileName: "a.txt", Text: strongCV},
			{ID: "b", FileName: "b.txt", Text: mediumCV},
			{ID: "c", FileName: "c.txt", Text: weakCV},
			{ID: "d", FileName: "d.txt", Text: mediumCV},
		},
	}

	first, err := svc.AnalyzeBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := svc.AnalyzeBatch(context.Background(), req)
		if err != nil {
			t.Fatalf("AnalyzeBatch() failed on run %d: %v", run, err)
		}
		for i := range first.Candidates {
			if first.Candidates[i].ID != again.Candidates[i].ID ||
				first.Candidates[i].TotalScore != again.Candidates[i].TotalScore {
				t.Fatalf("run %d position %d differs: %v vs %v",
					run, i, first.Candidates[i], again.Candidates[i])
			}
		}
	}
}

func TestAnalyzeBatchEmptyBatchFailsFast(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{Offer: testOffer})
	if err == nil {
		t.Fatal("AnalyzeBatch(no CVs) succeeded, want error")
	}
	e, ok := err.(*errx.Error)
	if !ok || e.Code != analysis.CodeEmptyBatch {
		t.Errorf("error = %v, want code %s", err, analysis.CodeEmptyBatch)
	}
	if len(repo.saved) != 0 {
		t.Error("failed batch was persisted")
	}
}

func TestAnalyzeBatchBadWeightsFailWholeBatch(t *testing.T) {
	svc, repo := newTestService()

	bad := engine.ScoringWeights{Formation: -1, Experience: 1, Skills: 1, Languages: 1}
	_, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer:   testOffer,
		Weights: &bad,
		Cvs:     []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err == nil {
		t.Fatal("AnalyzeBatch(negative weight) succeeded, want error")
	}
	if len(repo.saved) != 0 {
		t.Error("failed batch was persisted")
	}
}

func TestAnalyzeBatchUsesConfiguredDefaultWeights(t *testing.T) {
	repo := &memoryRepo{}
	skillsOnly := engine.ScoringWeights{Skills: 1}
	svc := NewService(engine.New(), repo, newMemoryJobRepo(), &memoryQueue{}, nil,
		WithDefaultWeights(skillsOnly))

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if result.Weights != skillsOnly {
		t.Errorf("batch weights = %+v, want configured defaults %+v", result.Weights, skillsOnly)
	}
	c := result.Candidates[0]
	if c.TotalScore != c.Dimensions.Skills.Score {
		t.Errorf("total = %v, want skills score %v under skills-only weights",
			c.TotalScore, c.Dimensions.Skills.Score)
	}
}

func TestAnalyzeBatchMissingOffer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Cvs: []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err == nil {
		t.Fatal("AnalyzeBatch(empty offer) succeeded, want error")
	}
	e, ok := err.(*errx.Error)
	if !ok || e.Code != offer.CodeOfferMissing {
		t.Errorf("error = %v, want code %s", err, offer.CodeOfferMissing)
	}
}

func TestAnalyzeBatchEmptyTextBecomesFailure(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs: []analysis.CvInput{
			{FileName: "ok.txt", Text: strongCV},
			{FileName: "blank.txt", Text: ""},
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if len(result.Candidates) != 1 {
		t.Errorf("candidates = %d, want 1", len(result.Candidates))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(result.Failures))
	}
	f := result.Failures[0]
	if f.FileName != "blank.txt" || f.Reason != analysis.FailureReasonEmptyText {
		t.Errorf("failure = %+v, want blank.txt / %q", f, analysis.FailureReasonEmptyText)
	}
	if result.Submitted() != 2 {
		t.Errorf("Submitted() = %d, want 2", result.Submitted())
	}
	if !strings.Contains(result.Summary(), "1 CV(s) analysé(s) sur 2") {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestAnalyzeBatchPanicIsolatedPerCv(t *testing.T) {
	repo := &memoryRepo{}
	eng := engine.New(engine.WithSkillsScorer(panickingSkillsScorer{trigger: "corrupted"}))
	svc := NewService(eng, repo, newMemoryJobRepo(), &memoryQueue{}, nil)

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs: []analysis.CvInput{
			{FileName: "a.txt", Text: strongCV},
			{FileName: "broken.txt", Text: "corrupted " + mediumCV},
			{FileName: "c.txt", Text: mediumCV},
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if len(result.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(result.Candidates))
	}
	for _, c := range result.Candidates {
		if c.FileName == "broken.txt" {
			t.Errorf("broken CV should not be scored")
		}
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly 1", result.Failures)
	}
	f := result.Failures[0]
	if f.FileName != "broken.txt" || !strings.Contains(f.Reason, "panic") {
		t.Errorf("failure = %+v, want broken.txt with panic mention", f)
	}
}

func TestAnalyzeBatchRankingSequence(t *testing.T) {
	scorer := scriptedSkillsScorer{scores: map[string]float64{
		"cv-one":   40,
		"cv-two":   90,
		"cv-three": 90,
		"cv-four":  10,
	}}
	eng := engine.New(engine.WithSkillsScorer(scorer))
	svc := NewService(eng, &memoryRepo{}, newMemoryJobRepo(), &memoryQueue{}, nil)

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer:   testOffer,
		Weights: &engine.ScoringWeights{Skills: 1},
		Cvs: []analysis.CvInput{
			{FileName: "one.txt", Text: "cv-one"},
			{FileName: "two.txt", Text: "cv-two"},
			{FileName: "three.txt", Text: "cv-three"},
			{FileName: "four.txt", Text: "cv-four"},
		},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	wantScores := []float64{90, 90, 40, 10}
	wantFiles := []string{"two.txt", "three.txt", "one.txt", "four.txt"}
	if len(result.Candidates) != len(wantScores) {
		t.Fatalf("candidates = %d, want %d", len(result.Candidates), len(wantScores))
	}
	for i, c := range result.Candidates {
		if c.TotalScore != wantScores[i] {
			t.Errorf("candidate %d score = %v, want %v", i, c.TotalScore, wantScores[i])
		}
		if c.FileName != wantFiles[i] {
			t.Errorf("candidate %d file = %q, want %q", i, c.FileName, wantFiles[i])
		}
	}
}

func TestAnalyzeBatchTimeoutBecomesFailure(t *testing.T) {
	repo := &memoryRepo{}
	eng := engine.New(engine.WithSkillsScorer(slowSkillsScorer{delay: 500 * time.Millisecond}))
	svc := NewService(eng, repo, newMemoryJobRepo(), &memoryQueue{}, nil,
		WithCvTimeout(20*time.Millisecond))

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "slow.txt", Text: strongCV}},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if len(result.Failures) != 1 || result.Failures[0].Reason != analysis.FailureReasonTimeout {
		t.Fatalf("failures = %+v, want one timeout", result.Failures)
	}
}

func TestAnalyzeBatchPersistsResult(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed: %v", err)
	}

	if len(repo.saved) != 1 || repo.saved[0].ID != result.ID {
		t.Errorf("repo holds %d results, want the returned batch %s", len(repo.saved), result.ID)
	}

	loaded, err := svc.GetBatch(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("GetBatch() failed: %v", err)
	}
	if loaded.ID != result.ID {
		t.Errorf("GetBatch() = %s, want %s", loaded.ID, result.ID)
	}
}

func TestAnalyzeBatchSurvivesPersistenceFailure(t *testing.T) {
	repo := &memoryRepo{fail: true}
	svc := NewService(engine.New(), repo, newMemoryJobRepo(), &memoryQueue{}, nil)

	result, err := svc.AnalyzeBatch(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err != nil {
		t.Fatalf("AnalyzeBatch() failed on storage error: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Errorf("candidates = %d, want 1", len(result.Candidates))
	}
}

// ============================================================================
// Async jobs
// ============================================================================

func TestAnalyzeBatchAsyncLifecycle(t *testing.T) {
	repo := &memoryRepo{}
	jobRepo := newMemoryJobRepo()
	queue := &memoryQueue{}
	svc := NewService(engine.New(), repo, jobRepo, queue, nil)

	req := analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	}

	status, err := svc.AnalyzeBatchAsync(context.Background(), req)
	if err != nil {
		t.Fatalf("AnalyzeBatchAsync() failed: %v", err)
	}
	if status.Status != analysis.JobStatusPending {
		t.Errorf("status = %s, want %s", status.Status, analysis.JobStatusPending)
	}
	if size, _ := queue.GetQueueSize(context.Background()); size != 1 {
		t.Errorf("queue size = %d, want 1", size)
	}

	job, err := jobRepo.GetByID(context.Background(), status.JobID)
	if err != nil {
		t.Fatalf("job not stored: %v", err)
	}

	if err := svc.ProcessBatchJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessBatchJob() failed: %v", err)
	}

	final, err := svc.GetJobStatus(context.Background(), status.JobID)
	if err != nil {
		t.Fatalf("GetJobStatus() failed: %v", err)
	}
	if final.Status != analysis.JobStatusCompleted {
		t.Errorf("final status = %s, want %s", final.Status, analysis.JobStatusCompleted)
	}
	if final.BatchID == nil {
		t.Fatal("completed job carries no batch id")
	}
	if _, err := svc.GetBatch(context.Background(), *final.BatchID); err != nil {
		t.Errorf("completed batch not retrievable: %v", err)
	}
}

func TestAnalyzeBatchAsyncEnqueueFailureMarksJobFailed(t *testing.T) {
	jobRepo := newMemoryJobRepo()
	queue := &memoryQueue{fail: true}
	svc := NewService(engine.New(), &memoryRepo{}, jobRepo, queue, nil)

	_, err := svc.AnalyzeBatchAsync(context.Background(), analysis.AnalyzeBatchRequest{
		Offer: testOffer,
		Cvs:   []analysis.CvInput{{FileName: "a.txt", Text: strongCV}},
	})
	if err == nil {
		t.Fatal("AnalyzeBatchAsync() succeeded with a failing queue, want error")
	}
	e, ok := err.(*errx.Error)
	if !ok || e.Code != analysis.CodeQueueEnqueueFailed {
		t.Errorf("error = %v, want code %s", err, analysis.CodeQueueEnqueueFailed)
	}

	// The stored job must reflect the failure
	jobRepo.mu.Lock()
	defer jobRepo.mu.Unlock()
	if len(jobRepo.jobs) != 1 {
		t.Fatalf("jobs stored = %d, want 1", len(jobRepo.jobs))
	}
	for _, job := range jobRepo.jobs {
		if job.Status != analysis.JobStatusFailed {
			t.Errorf("job status = %s, want %s", job.Status, analysis.JobStatusFailed)
		}
	}
}

func TestGetJobStatusUnknownJob(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetJobStatus(context.Background(), kernel.NewJobID("missing"))
	if err == nil {
		t.Fatal("GetJobStatus(unknown) succeeded, want error")
	}
	e, ok := err.(*errx.Error)
	if !ok || e.Code != analysis.CodeJobNotFound {
		t.Errorf("error = %v, want code %s", err, analysis.CodeJobNotFound)
	}
}
