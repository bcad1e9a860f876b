package validation

import (
	"errors"
	"testing"
)

func analysis(score float64) AnalysisResult {
	return AnalysisResult{
		Score:     score,
		Strengths: []string{"a strength"},
		Concerns:  []string{"a concern"},
		Rationale: "rationale",
	}
}

func baseJudgement() DebateJudgement {
	return DebateJudgement{
		DebateWinner:        WinnerTie,
		ConfidenceShift:     0,
		UnresolvedRisks:     []string{"capital intensity"},
		OverlookedStrengths: []string{"regulatory tailwind"},
		ArgumentQuality:     QualityMedium,
		JudgeRationale:      "balanced debate",
	}
}

func TestAggregateBaseScoreWeightedSum(t *testing.T) {
	// 7*3 + 6*2.5 + 8*2.5 + 5*2 = 66
	got := AggregateBaseScore(analysis(7), analysis(6), analysis(8), analysis(5))
	if got != 66.0 {
		t.Fatalf("unexpected base score: got=%f want=66.0", got)
	}
}

func TestAggregateBaseScoreMarketCeiling(t *testing.T) {
	// Weighted sum is 62.5, but a weak market caps the result at 45.
	got := AggregateBaseScore(analysis(2), analysis(8), analysis(9), analysis(7))
	if got != 45.0 {
		t.Fatalf("unexpected capped score: got=%f want=45.0", got)
	}
}

func TestAggregateBaseScoreMostRestrictiveCeilingWins(t *testing.T) {
	got := AggregateBaseScore(analysis(2), analysis(2), analysis(2), analysis(10))
	if got > 45.0 {
		t.Fatalf("expected market ceiling to dominate, got %f", got)
	}
}

func TestAggregateBaseScoreEconomicsAndCompetitionCeilings(t *testing.T) {
	econ := AggregateBaseScore(analysis(9), analysis(9), analysis(3), analysis(9))
	if econ != 50.0 {
		t.Fatalf("unexpected economics cap: got=%f want=50.0", econ)
	}
	comp := AggregateBaseScore(analysis(9), analysis(3), analysis(9), analysis(9))
	if comp != 55.0 {
		t.Fatalf("unexpected competition cap: got=%f want=55.0", comp)
	}
}

func TestAggregateBaseScoreAlwaysBounded(t *testing.T) {
	for _, m := range []float64{0, 1, 2, 3} {
		for _, c := range []float64{0, 5, 10} {
			got := AggregateBaseScore(analysis(m), analysis(c), analysis(10), analysis(10))
			if got < 0 || got > 100 {
				t.Fatalf("score out of [0,100]: %f", got)
			}
			if got > 45 {
				t.Fatalf("market %.0f should cap at 45, got %f", m, got)
			}
		}
	}
	max := AggregateBaseScore(analysis(10), analysis(10), analysis(10), analysis(10))
	if max != 100.0 {
		t.Fatalf("unexpected maximum: got=%f want=100.0", max)
	}
}

func TestApplyJudgeAdjustmentBoundaries(t *testing.T) {
	cases := []struct {
		shift   float64
		wantErr bool
		want    float64
	}{
		{shift: -0.26, wantErr: true},
		{shift: -0.25, want: 45.0},
		{shift: 0, want: 60.0},
		{shift: 0.10, want: 66.0},
		{shift: 0.11, wantErr: true},
		{shift: 0.15, wantErr: true},
	}
	for _, tc := range cases {
		j := baseJudgement()
		j.ConfidenceShift = tc.shift
		got, err := ApplyJudgeAdjustment(60, j)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("shift %f: expected bound violation", tc.shift)
			}
			var bv *BoundViolationError
			if !errors.As(err, &bv) {
				t.Fatalf("shift %f: expected BoundViolationError, got %v", tc.shift, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("shift %f: unexpected error: %v", tc.shift, err)
		}
		if got != tc.want {
			t.Fatalf("shift %f: got=%f want=%f", tc.shift, got, tc.want)
		}
	}
}

func TestApplyJudgeAdjustmentRejectsBadEnums(t *testing.T) {
	j := baseJudgement()
	j.ArgumentQuality = "excellent"
	if _, err := ApplyJudgeAdjustment(60, j); err == nil {
		t.Fatal("expected bound violation for argument_quality")
	}
	j = baseJudgement()
	j.DebateWinner = "both"
	if _, err := ApplyJudgeAdjustment(60, j); err == nil {
		t.Fatal("expected bound violation for debate_winner")
	}
}

func TestVerdictBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  Verdict
	}{
		{100, VerdictStrongProceed},
		{80, VerdictStrongProceed},
		{79.99, VerdictProceedWithCaution},
		{65, VerdictProceedWithCaution},
		{64.99, VerdictHighRiskIterate},
		{45, VerdictHighRiskIterate},
		{44.99, VerdictDoNotProceed},
		{0, VerdictDoNotProceed},
	}
	for _, tc := range cases {
		if got := VerdictFromScore(tc.score); got != tc.want {
			t.Fatalf("score %f: got=%s want=%s", tc.score, got, tc.want)
		}
	}
}

func TestMaxNegativeShiftLandsInIterateBucket(t *testing.T) {
	j := baseJudgement()
	j.ConfidenceShift = -0.25
	got, err := ApplyJudgeAdjustment(60, j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 45.0 {
		t.Fatalf("unexpected final score: got=%f want=45.0", got)
	}
	if v := VerdictFromScore(got); v != VerdictHighRiskIterate {
		t.Fatalf("expected HIGH RISK/ITERATE at exactly 45, got %s", v)
	}
}

func TestBuildFinalDecisionFactorsDedupedAndTruncated(t *testing.T) {
	bundle := AnalysisBundle{
		MarketDemand:    AnalysisResult{Score: 7, Strengths: []string{"large market", "real demand"}, Concerns: []string{"low margins"}},
		CompetitionMoat: AnalysisResult{Score: 6, Strengths: []string{"real demand", "clear wedge"}, Concerns: []string{"dominant incumbent"}},
		Economics:       AnalysisResult{Score: 8, Strengths: []string{"cheap to serve", "strong pricing"}, Concerns: []string{"low margins"}},
		ExecutionRisk:   AnalysisResult{Score: 5, Strengths: []string{"founder fit"}, Concerns: []string{"hiring risk"}},
		BaseScore:       66,
	}
	j := baseJudgement()
	j.OverlookedStrengths = []string{"regulatory tailwind"}
	j.UnresolvedRisks = []string{"capital intensity"}

	d := BuildFinalDecision(bundle, j, 66)

	wantPositives := []string{"large market", "real demand", "clear wedge", "cheap to serve", "strong pricing"}
	if len(d.KeyPositiveFactors) != 5 {
		t.Fatalf("expected 5 positives, got %v", d.KeyPositiveFactors)
	}
	for i, f := range wantPositives {
		if d.KeyPositiveFactors[i] != f {
			t.Fatalf("positives order wrong at %d: %v", i, d.KeyPositiveFactors)
		}
	}
	wantNegatives := []string{"low margins", "dominant incumbent", "hiring risk", "capital intensity"}
	if len(d.KeyNegativeFactors) != len(wantNegatives) {
		t.Fatalf("unexpected negatives: %v", d.KeyNegativeFactors)
	}
	for i, f := range wantNegatives {
		if d.KeyNegativeFactors[i] != f {
			t.Fatalf("negatives order wrong at %d: %v", i, d.KeyNegativeFactors)
		}
	}
}

func TestBuildFinalDecisionBreakdownUnweighted(t *testing.T) {
	bundle := AnalysisBundle{
		MarketDemand:    analysis(7),
		CompetitionMoat: analysis(6),
		Economics:       analysis(8),
		ExecutionRisk:   analysis(5),
		BaseScore:       66,
	}
	d := BuildFinalDecision(bundle, baseJudgement(), 66)
	if d.ScoreBreakdown[StageMarketDemand] != 70 ||
		d.ScoreBreakdown[StageCompetitionMoat] != 60 ||
		d.ScoreBreakdown[StageEconomics] != 80 ||
		d.ScoreBreakdown[StageExecutionRisk] != 50 {
		t.Fatalf("breakdown must be raw scores x10: %v", d.ScoreBreakdown)
	}
	if d.ConfidenceLevel != "medium" {
		t.Fatalf("confidence must mirror argument_quality, got %s", d.ConfidenceLevel)
	}
	if d.JudgeAdjustment != 0 {
		t.Fatalf("judge adjustment must echo the shift, got %f", d.JudgeAdjustment)
	}
}
