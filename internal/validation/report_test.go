package validation

import (
	"strings"
	"testing"
)

func sampleResult() Result {
	bundle := AnalysisBundle{
		MarketDemand:    analysis(7),
		CompetitionMoat: analysis(6),
		Economics:       analysis(8),
		ExecutionRisk:   analysis(5),
		BaseScore:       66,
	}
	j := baseJudgement()
	decision := BuildFinalDecision(bundle, j, 66)
	return Result{
		Idea:      testIdea(),
		Analysis:  bundle,
		Judgement: j,
		Decision:  decision,
		Explanation: FinalExplanation{
			Verdict:              string(decision.Verdict),
			FinalScore:           66,
			Summary:              "A promising but competitive fintech play.",
			KeyReasonsForScore:   []string{"solid economics"},
			KeyRisks:             []string{"incumbent pressure"},
			RecommendedNextSteps: []string{"run a pricing pilot"},
			ConfidenceLevel:      "medium",
		},
	}
}

func TestBuildReportMarkdownSections(t *testing.T) {
	md := BuildReportMarkdown(sampleResult())
	for _, want := range []string{
		"# Startup Idea Validation Report",
		"## Verdict",
		"## Score Breakdown",
		"## Key Factors",
		"## Evidence",
		"## Debate",
		"## Recommended Next Steps",
		"**66.00**",
		"**PROCEED WITH CAUTION**",
		"run a pricing pilot",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestBuildResponseEchoesDecision(t *testing.T) {
	res := sampleResult()
	env := BuildResponse(res)
	if env.FinalScore != res.Decision.FinalScore {
		t.Fatalf("unexpected final score: %f", env.FinalScore)
	}
	if env.Verdict != res.Decision.Verdict {
		t.Fatalf("unexpected verdict: %s", env.Verdict)
	}
	if env.Disclaimer == "" {
		t.Fatal("expected disclaimer")
	}
	if !strings.Contains(env.ReportMarkdown, string(res.Decision.Verdict)) {
		t.Fatal("report must carry the verdict")
	}
}
