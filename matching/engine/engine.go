package engine

import (
	"context"
	"strings"

	"github.com/Abraxas-365/sift/matching/offer"
)

// CandidateScore is the full per-CV scoring outcome
type CandidateScore struct {
	Dimensions      DimensionSet `json:"dimensions"`
	TotalScore      float64      `json:"total_score"`
	Recommendations []string     `json:"recommendations"`
}

// Engine orchestrates extraction, the four dimension scorers, aggregation and
// recommendation generation for a single CV. It holds no mutable state and is
// safe for concurrent use; inputs are never mutated.
type Engine struct {
	extractor    *Extractor
	skillsScorer SkillsScorer
	vocab        Vocabulary
	policy       DurationPolicy
}

// Option customizes engine construction
type Option func(*Engine)

// WithVocabulary replaces the built-in keyword tables
func WithVocabulary(vocab Vocabulary) Option {
	return func(e *Engine) { e.vocab = vocab }
}

// WithDurationPolicy selects how repeated duration mentions combine
func WithDurationPolicy(policy DurationPolicy) Option {
	return func(e *Engine) { e.policy = policy }
}

// WithSkillsScorer swaps the skills scoring strategy
func WithSkillsScorer(s SkillsScorer) Option {
	return func(e *Engine) { e.skillsScorer = s }
}

// New creates an engine with the default vocabulary, the Sum duration policy
// and the lexical skills scorer
func New(opts ...Option) *Engine {
	e := &Engine{
		vocab:        DefaultVocabulary(),
		policy:       DurationSum,
		skillsScorer: LexicalSkillsScorer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.extractor = NewExtractor(e.vocab, e.policy)
	return e
}

// Analyze runs the full scoring pipeline for one CV text. The text is
// normalized to lowercase before extraction. Configuration problems (missing
// offer, unusable weights) are the only error sources; absent signals yield
// zero scores, never failures.
func (e *Engine) Analyze(ctx context.Context, off *offer.JobOffer, weights ScoringWeights, cvText string) (*CandidateScore, error) {
	if off == nil {
		return nil, ErrMissingOffer()
	}
	if _, err := weights.Normalized(); err != nil {
		return nil, err
	}

	text := strings.ToLower(cvText)
	sig := e.extractor.Extract(off, text)

	dims := DimensionSet{
		Formation:  ScoreFormation(off, sig),
		Experience: ScoreExperience(off, sig),
		Languages:  ScoreLanguages(off, sig, e.vocab.BonusLanguage),
	}

	skills, err := e.skillsScorer.ScoreSkills(ctx, off, text, sig)
	if err != nil {
		// Alternative strategies may fail on I/O; the lexical scorer is the
		// contract-safe fallback.
		skills = ScoreSkills(off, sig)
	}
	dims.Skills = skills

	total, err := Aggregate(dims, weights)
	if err != nil {
		return nil, err
	}

	return &CandidateScore{
		Dimensions:      dims,
		TotalScore:      total,
		Recommendations: Recommend(dims, total),
	}, nil
}
