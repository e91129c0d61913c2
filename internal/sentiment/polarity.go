package sentiment

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// PolarityScorer maps a whole feedback text to a continuous polarity score
// in [-1, 1]. Implementations must be pure: same text, same score.
type PolarityScorer interface {
	Polarity(text string) float64
}

// VaderScorer scores polarity with the VADER lexicon. Deterministic and
// fully local; the pipeline's lexical strategy uses it by default.
type VaderScorer struct{}

// NewVaderScorer returns the default lexical polarity scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{}
}

// Polarity returns the VADER compound score for text.
func (*VaderScorer) Polarity(text string) float64 {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

var _ PolarityScorer = (*VaderScorer)(nil)
