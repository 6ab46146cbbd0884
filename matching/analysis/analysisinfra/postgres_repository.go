package analysisinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresAnalysisRepository implements analysis.Repository using PostgreSQL
type PostgresAnalysisRepository struct {
	db *sqlx.DB
}

// NewPostgresAnalysisRepository creates a new PostgreSQL analysis repository
func NewPostgresAnalysisRepository(db *sqlx.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type batchModel struct {
	ID         string          `db:"id"`
	OfferData  json.RawMessage `db:"offer_data"`
	Weights    json.RawMessage `db:"weights"`
	Candidates json.RawMessage `db:"candidates"`
	Failures   json.RawMessage `db:"failures"`
	AnalyzedAt time.Time       `db:"analyzed_at"`
}

func (m *batchModel) toEntity() (*analysis.BatchResult, error) {
	var off offer.JobOffer
	if err := json.Unmarshal(m.OfferData, &off); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offer: %w", err)
	}

	var weights engine.ScoringWeights
	if err := json.Unmarshal(m.Weights, &weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}

	var candidates []analysis.CandidateResult
	if len(m.Candidates) > 0 {
		if err := json.Unmarshal(m.Candidates, &candidates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidates: %w", err)
		}
	}

	var failures []analysis.Failure
	if len(m.Failures) > 0 {
		if err := json.Unmarshal(m.Failures, &failures); err != nil {
			return nil, fmt.Errorf("failed to unmarshal failures: %w", err)
		}
	}

	return &analysis.BatchResult{
		ID:         kernel.BatchID(m.ID),
		Offer:      off,
		Weights:    weights,
		Candidates: candidates,
		Failures:   failures,
		AnalyzedAt: m.AnalyzedAt,
	}, nil
}

func fromEntity(b *analysis.BatchResult) (*batchModel, error) {
	offerData, err := json.Marshal(b.Offer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offer: %w", err)
	}

	weights, err := json.Marshal(b.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal weights: %w", err)
	}

	candidates, err := json.Marshal(b.Candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	failures, err := json.Marshal(b.Failures)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal failures: %w", err)
	}

	return &batchModel{
		ID:         string(b.ID),
		OfferData:  offerData,
		Weights:    weights,
		Candidates: candidates,
		Failures:   failures,
		AnalyzedAt: b.AnalyzedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Save stores a finished batch result
func (r *PostgresAnalysisRepository) Save(ctx context.Context, result *analysis.BatchResult) error {
	model, err := fromEntity(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analysis_batches (
			id, offer_data, weights, candidates, failures, analyzed_at
		) VALUES (
			:id, :offer_data, :weights, :candidates, :failures, :analyzed_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save analysis batch: %w", err)
	}

	return nil
}

// GetByID retrieves a stored batch result
func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id kernel.BatchID) (*analysis.BatchResult, error) {
	query := `
		SELECT id, offer_data, weights, candidates, failures, analyzed_at
		FROM analysis_batches
		WHERE id = $1
	`

	var model batchModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, analysis.ErrBatchNotFound()
		}
		return nil, fmt.Errorf("failed to get analysis batch: %w", err)
	}

	return model.toEntity()
}

// List retrieves stored batch results, newest first
func (r *PostgresAnalysisRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.BatchResult], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM analysis_batches`); err != nil {
		return nil, fmt.Errorf("failed to count analysis batches: %w", err)
	}

	query := `
		SELECT id, offer_data, weights, candidates, failures, analyzed_at
		FROM analysis_batches
		ORDER BY analyzed_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []batchModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list analysis batches: %w", err)
	}

	items := make([]analysis.BatchResult, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, *entity)
	}

	return kernel.NewPaginated(items, total, pagination), nil
}

// Delete removes a stored batch result
func (r *PostgresAnalysisRepository) Delete(ctx context.Context, id kernel.BatchID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analysis_batches WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete analysis batch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return analysis.ErrBatchNotFound()
	}

	return nil
}
