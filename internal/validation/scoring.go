package validation

import "math"

// Closed window for the judge's confidence shift. Values outside are a
// contract violation by the judge collaborator, not something to clamp.
const (
	MinConfidenceShift = -0.25
	MaxConfidenceShift = 0.10
)

// Weights applied to each analyst's score after scaling to the 0-100 range.
var stageWeights = map[string]float64{
	StageMarketDemand:    0.30,
	StageCompetitionMoat: 0.25,
	StageEconomics:       0.25,
	StageExecutionRisk:   0.20,
}

// AggregateBaseScore reduces the four analyst scores to one weighted score on
// a 0-100 scale, then applies conservative ceilings: a weak market caps the
// result at 45, weak economics at 50, weak competition standing at 55. The
// most restrictive ceiling wins. Pure and total; callable without the debate
// stage because the debate bundle carries its output.
func AggregateBaseScore(market, competition, economics, execution AnalysisResult) float64 {
	base := market.Score*10*stageWeights[StageMarketDemand] +
		competition.Score*10*stageWeights[StageCompetitionMoat] +
		economics.Score*10*stageWeights[StageEconomics] +
		execution.Score*10*stageWeights[StageExecutionRisk]

	if market.Score <= 3 {
		base = math.Min(base, 45)
	}
	if economics.Score <= 3 {
		base = math.Min(base, 50)
	}
	if competition.Score <= 3 {
		base = math.Min(base, 55)
	}
	return round2(base)
}

// ApplyJudgeAdjustment validates the judgement's bounds and applies its
// confidence shift multiplicatively to the base score. No floor or ceiling is
// re-applied after the multiplication.
func ApplyJudgeAdjustment(baseScore float64, judgement DebateJudgement) (float64, error) {
	if err := validateJudgement(judgement); err != nil {
		return 0, err
	}
	return round2(baseScore * (1 + judgement.ConfidenceShift)), nil
}

func validateJudgement(j DebateJudgement) error {
	if j.ConfidenceShift < MinConfidenceShift || j.ConfidenceShift > MaxConfidenceShift {
		return &BoundViolationError{
			Field: "confidence_shift",
			Value: j.ConfidenceShift,
			Want:  "a number in [-0.25, 0.1]",
		}
	}
	switch j.ArgumentQuality {
	case QualityLow, QualityMedium, QualityHigh:
	default:
		return &BoundViolationError{Field: "argument_quality", Value: string(j.ArgumentQuality), Want: "one of low|medium|high"}
	}
	switch j.DebateWinner {
	case WinnerFor, WinnerAgainst, WinnerTie:
	default:
		return &BoundViolationError{Field: "debate_winner", Value: string(j.DebateWinner), Want: "one of for|against|tie"}
	}
	return nil
}

// VerdictFromScore maps an adjusted score to its verdict bucket. Buckets are
// inclusive on their lower bound and evaluated top-down, so ties go to the
// higher bucket.
func VerdictFromScore(score float64) Verdict {
	switch {
	case score >= 80:
		return VerdictStrongProceed
	case score >= 65:
		return VerdictProceedWithCaution
	case score >= 45:
		return VerdictHighRiskIterate
	default:
		return VerdictDoNotProceed
	}
}

// BuildFinalDecision assembles the decision object from the four analyses
// and the validated judgement. The score breakdown exposes each stage's raw
// score scaled by 10, deliberately unweighted: the breakdown is diagnostic
// while the aggregate is decisional.
func BuildFinalDecision(bundle AnalysisBundle, judgement DebateJudgement, finalScore float64) FinalDecision {
	positives := dedupeTruncate(concat(
		bundle.MarketDemand.Strengths,
		bundle.CompetitionMoat.Strengths,
		bundle.Economics.Strengths,
		bundle.ExecutionRisk.Strengths,
		judgement.OverlookedStrengths,
	), 5)
	negatives := dedupeTruncate(concat(
		bundle.MarketDemand.Concerns,
		bundle.CompetitionMoat.Concerns,
		bundle.Economics.Concerns,
		bundle.ExecutionRisk.Concerns,
		judgement.UnresolvedRisks,
	), 5)

	return FinalDecision{
		FinalScore: finalScore,
		Verdict:    VerdictFromScore(finalScore),
		ScoreBreakdown: map[string]float64{
			StageMarketDemand:    bundle.MarketDemand.Score * 10,
			StageCompetitionMoat: bundle.CompetitionMoat.Score * 10,
			StageEconomics:       bundle.Economics.Score * 10,
			StageExecutionRisk:   bundle.ExecutionRisk.Score * 10,
		},
		JudgeAdjustment:    judgement.ConfidenceShift,
		KeyPositiveFactors: positives,
		KeyNegativeFactors: negatives,
		ConfidenceLevel:    string(judgement.ArgumentQuality),
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// dedupeTruncate removes duplicates preserving first occurrence, then keeps
// the first n entries.
func dedupeTruncate(items []string, n int) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
