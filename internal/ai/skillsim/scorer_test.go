package skillsim

import (
	"context"
	"math"
	"testing"

	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{
			name: "Identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1,
		},
		{
			name: "Orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "Opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1,
		},
		{
			name: "Scaled vectors keep similarity one",
			a:    []float32{1, 1},
			b:    []float32{10, 10},
			want: 1,
		},
		{
			name: "Mismatched lengths yield zero",
			a:    []float32{1, 2},
			b:    []float32{1},
			want: 0,
		},
		{
			name: "Zero vector yields zero",
			a:    []float32{0, 0},
			b:    []float32{1, 1},
			want: 0,
		},
		{
			name: "Empty vectors yield zero",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreSkillsWithoutRequiredSkills(t *testing.T) {
	// The empty-skills path never touches the embeddings generator
	scorer := NewScorer(nil, DefaultThreshold)
	off := &offer.JobOffer{Title: "Poste sans compétences listées"}

	got, err := scorer.ScoreSkills(context.Background(), off, "texte du cv", engine.Signals{})
	if err != nil {
		t.Fatalf("ScoreSkills() failed: %v", err)
	}
	if got.Score != 0 {
		t.Errorf("score = %v, want 0", got.Score)
	}
	if len(got.Evidence) != 1 || got.Evidence[0] != engine.NoSkillsSpecifiedEvidence {
		t.Errorf("evidence = %v, want the no-skills marker", got.Evidence)
	}
}

func TestNewScorerThresholdFallback(t *testing.T) {
	for _, bad := range []float64{-0.5, 0, 1, 1.5} {
		s := NewScorer(nil, bad)
		if s.threshold != DefaultThreshold {
			t.Errorf("NewScorer(threshold=%v).threshold = %v, want %v", bad, s.threshold, DefaultThreshold)
		}
	}

	s := NewScorer(nil, 0.7)
	if s.threshold != 0.7 {
		t.Errorf("NewScorer(0.7).threshold = %v, want 0.7", s.threshold)
	}
}
