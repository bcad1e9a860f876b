package validation

import (
	"fmt"
	"strings"
	"time"
)

type ResponseEnvelope struct {
	Verdict        Verdict `json:"verdict"`
	FinalScore     float64 `json:"final_score"`
	ReportMarkdown string  `json:"report_markdown"`
	Result         Result  `json:"result"`
	Disclaimer     string  `json:"disclaimer"`
}

func BuildResponse(result Result) ResponseEnvelope {
	return ResponseEnvelope{
		Verdict:        result.Decision.Verdict,
		FinalScore:     result.Decision.FinalScore,
		ReportMarkdown: BuildReportMarkdown(result),
		Result:         result,
		Disclaimer:     Disclaimer,
	}
}

// BuildReportMarkdown renders the full audit trail of a run as a markdown
// report. Every number shown is read from the recorded artifacts, never
// recomputed.
func BuildReportMarkdown(result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Startup Idea Validation Report\n\n")
	fmt.Fprintf(&b, "- Problem: %s\n", result.Idea.Problem)
	fmt.Fprintf(&b, "- Solution: %s\n", result.Idea.Solution)
	fmt.Fprintf(&b, "- Geography: %s\n", result.Idea.Geography)
	if result.Idea.Industry != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", result.Idea.Industry)
	}
	fmt.Fprintf(&b, "- Date: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	fmt.Fprintf(&b, "## Verdict\n\n")
	fmt.Fprintf(&b, "Final score: **%.2f** out of 100.\n", result.Decision.FinalScore)
	fmt.Fprintf(&b, "Verdict: **%s**.\n", result.Decision.Verdict)
	fmt.Fprintf(&b, "Base score %.2f, judge adjustment %+.2f, confidence %s.\n\n",
		result.Analysis.BaseScore, result.Decision.JudgeAdjustment, result.Decision.ConfidenceLevel)

	fmt.Fprintf(&b, "## Score Breakdown\n\n")
	for _, stage := range []string{StageMarketDemand, StageCompetitionMoat, StageEconomics, StageExecutionRisk} {
		fmt.Fprintf(&b, "- %s: %.1f / 100\n", stage, result.Decision.ScoreBreakdown[stage])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Key Factors\n\n")
	if len(result.Decision.KeyPositiveFactors) == 0 {
		fmt.Fprintf(&b, "No positive factors recorded.\n")
	}
	for _, f := range result.Decision.KeyPositiveFactors {
		fmt.Fprintf(&b, "- Positive: %s\n", f)
	}
	for _, f := range result.Decision.KeyNegativeFactors {
		fmt.Fprintf(&b, "- Negative: %s\n", f)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Evidence\n\n")
	ms := result.Evidence.MarketSize
	fmt.Fprintf(&b, "- Market size (USD): TAM %.0f, SAM %.0f, SOM %.0f (confidence %s)\n",
		ms.TAMUSD, ms.SAMUSD, ms.SOMUSD, ms.Confidence)
	cm := result.Evidence.CostModel
	fmt.Fprintf(&b, "- Monthly cost (USD): fixed %.2f, variable %.2f, total %.2f (confidence %s)\n",
		cm.MonthlyFixedCostUSD, cm.MonthlyVariableCostUSD, cm.TotalMonthlyCostUSD, cm.Confidence)
	fmt.Fprintf(&b, "- Demand score: %.2f / 10 (confidence %s)\n",
		result.Evidence.Demand.DemandScore, result.Evidence.Demand.Confidence)
	fmt.Fprintf(&b, "- Matched competitors: %d\n", len(result.Evidence.Competitors.Competitors))
	for _, c := range result.Evidence.Competitors.Competitors {
		fmt.Fprintf(&b, "  - %s: %s\n", c.Name, c.Positioning)
	}
	sg := result.Signals
	fmt.Fprintf(&b, "- Competition pressure: %.2f / 10 (%d direct, style %s, highest dominance %s)\n\n",
		sg.CompetitionPressureScore, sg.DirectCompetitorCount, sg.CompetitionStyle, sg.HighestDominanceLevel)

	fmt.Fprintf(&b, "## Analyst Stages\n\n")
	appendAnalysis(&b, "Market & Demand", result.Analysis.MarketDemand)
	appendAnalysis(&b, "Competition & Moat", result.Analysis.CompetitionMoat)
	appendAnalysis(&b, "Economics & Monetization", result.Analysis.Economics)
	appendAnalysis(&b, "Execution Risk", result.Analysis.ExecutionRisk)

	fmt.Fprintf(&b, "## Debate\n\n")
	fmt.Fprintf(&b, "### FOR\n\n%s\n\n", result.ForArgument.CoreThesis)
	for _, a := range result.ForArgument.SupportingArguments {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	fmt.Fprintf(&b, "\n### AGAINST\n\n%s\n\n", result.AgainstArgument.CoreThesis)
	for _, f := range result.AgainstArgument.FailureModes {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\n### Judgement\n\n")
	fmt.Fprintf(&b, "Winner: `%s`. Shift: %+.2f. Argument quality: `%s`.\n\n%s\n\n",
		result.Judgement.DebateWinner, result.Judgement.ConfidenceShift,
		result.Judgement.ArgumentQuality, result.Judgement.JudgeRationale)

	fmt.Fprintf(&b, "## Explanation\n\n")
	fmt.Fprintf(&b, "%s\n\n", result.Explanation.Summary)
	for _, r := range result.Explanation.KeyReasonsForScore {
		fmt.Fprintf(&b, "- Reason: %s\n", r)
	}
	for _, r := range result.Explanation.KeyRisks {
		fmt.Fprintf(&b, "- Risk: %s\n", r)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Recommended Next Steps\n\n")
	if len(result.Explanation.RecommendedNextSteps) == 0 {
		fmt.Fprintf(&b, "No next steps recorded.\n")
	}
	for _, s := range result.Explanation.RecommendedNextSteps {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Appendix\n\n")
	fmt.Fprintf(&b, "### Full Audit Trail (JSON)\n\n```json\n%s\n```\n", prettyJSON(result))

	return b.String()
}

func appendAnalysis(b *strings.Builder, title string, a AnalysisResult) {
	fmt.Fprintf(b, "### %s\n\n", title)
	fmt.Fprintf(b, "Score: **%.1f / 10**\n\n", a.Score)
	for _, s := range a.Strengths {
		fmt.Fprintf(b, "- Strength: %s\n", s)
	}
	for _, c := range a.Concerns {
		fmt.Fprintf(b, "- Concern: %s\n", c)
	}
	fmt.Fprintf(b, "\n%s\n\n", a.Rationale)
}
