package evidence

import (
	"context"
	"fmt"
	"strings"
)

// SimilarityFn scores how strongly a text matches a concept vocabulary,
// returning a value in [0,1]. The implementation is an external capability;
// the combiner only consumes its output.
type SimilarityFn func(ctx context.Context, text string, concepts []string) (float64, error)

// Concept vocabularies the problem text is compared against.
var (
	PainDrivenLanguage = []string{
		"struggle", "waste time", "lose money", "frustrating", "manual work",
		"error prone", "expensive", "slow process", "can't find", "no visibility",
	}
	OutcomeDrivenLanguage = []string{
		"save time", "reduce cost", "increase revenue", "automate", "faster",
		"measurable improvement", "higher conversion", "fewer errors",
	}
	BuzzwordPositioning = []string{
		"revolutionary", "disruptive", "next generation", "cutting edge",
		"game changing", "world class", "synergy", "paradigm shift",
	}
)

const (
	painThreshold     = 0.6
	outcomeThreshold  = 0.6
	buzzwordThreshold = 0.7
)

// CombineDemandSignals turns the three similarity scores into a discrete
// demand score in [0,10]. All raw similarities are retained for audit even
// though only threshold crossings move the score. Similarity failures
// propagate; there is no silent default score.
func CombineDemandSignals(ctx context.Context, problem string, similarity SimilarityFn) (DemandSignalResult, error) {
	painScore, err := similarity(ctx, problem, PainDrivenLanguage)
	if err != nil {
		return DemandSignalResult{}, fmt.Errorf("pain similarity: %w", err)
	}
	outcomeScore, err := similarity(ctx, problem, OutcomeDrivenLanguage)
	if err != nil {
		return DemandSignalResult{}, fmt.Errorf("outcome similarity: %w", err)
	}
	buzzwordScore, err := similarity(ctx, problem, BuzzwordPositioning)
	if err != nil {
		return DemandSignalResult{}, fmt.Errorf("buzzword similarity: %w", err)
	}

	score := 0.0
	signals := []string{}
	if painScore > painThreshold {
		score += 3
		signals = append(signals, "Strong pain-driven language detected")
	}
	if outcomeScore > outcomeThreshold {
		score += 3
		signals = append(signals, "Clear outcome-oriented framing detected")
	}
	if buzzwordScore > buzzwordThreshold {
		score -= 2
		signals = append(signals, "Buzzword-heavy positioning detected")
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	confidence := ConfidenceMedium
	if len(strings.Fields(problem)) < 10 {
		confidence = ConfidenceLow
	}

	return DemandSignalResult{
		DemandScore: round2(score),
		Signals:     signals,
		Confidence:  confidence,
		SemanticScores: map[string]float64{
			"pain":     painScore,
			"outcome":  outcomeScore,
			"buzzword": buzzwordScore,
		},
	}, nil
}
