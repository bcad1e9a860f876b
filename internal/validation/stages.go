package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
)

const analysisSchemaPrompt = `Return STRICT JSON with this shape:
{
  "score": "number (0-10)",
  "strengths": ["string (2-3 entries)"],
  "concerns": ["string (2-3 entries)"],
  "rationale": "string"
}`

const debateForSchemaPrompt = `Return STRICT JSON with this shape:
{
  "position": "for",
  "core_thesis": "string",
  "supporting_arguments": ["string (3 entries)"],
  "acknowledged_risks": ["string"]
}`

const debateAgainstSchemaPrompt = `Return STRICT JSON with this shape:
{
  "position": "against",
  "core_thesis": "string",
  "failure_modes": ["string (3 entries)"],
  "critical_assumptions_attacked": ["string"]
}`

const judgementSchemaPrompt = `Return STRICT JSON with this shape:
{
  "debate_winner": "for | against | tie",
  "confidence_shift": "number (-0.25 to 0.10)",
  "unresolved_risks": ["string"],
  "overlooked_strengths": ["string"],
  "argument_quality": "low | medium | high",
  "judge_rationale": "string"
}`

const explanationSchemaPrompt = `Return STRICT JSON with this shape:
{
  "verdict": "string",
  "final_score": "number",
  "summary": "string",
  "key_reasons_for_score": ["string"],
  "key_risks": ["string"],
  "recommended_next_steps": ["string"],
  "confidence_level": "string"
}`

// AnalystRunner produces the four independent qualitative analyses. Each
// method is a pure contract: structured evidence in, AnalysisResult-shaped
// payload out.
type AnalystRunner interface {
	RunMarketDemand(ctx context.Context, s idea.StartupIdea, market evidence.MarketSizeResult, demand evidence.DemandSignalResult) (AnalysisResult, StageAttemptMetrics, error)
	RunCompetitionMoat(ctx context.Context, s idea.StartupIdea, signals evidence.CompetitionSignals) (AnalysisResult, StageAttemptMetrics, error)
	RunEconomics(ctx context.Context, s idea.StartupIdea, market evidence.MarketSizeResult, cost evidence.CostModelResult) (AnalysisResult, StageAttemptMetrics, error)
	RunExecutionRisk(ctx context.Context, s idea.StartupIdea) (AnalysisResult, StageAttemptMetrics, error)
}

// DebateRunner produces the FOR and AGAINST arguments over the assembled
// analysis bundle, and the judgement over both arguments.
type DebateRunner interface {
	RunFor(ctx context.Context, bundle AnalysisBundle) (DebateForArgument, StageAttemptMetrics, error)
	RunAgainst(ctx context.Context, bundle AnalysisBundle) (DebateAgainstArgument, StageAttemptMetrics, error)
	Judge(ctx context.Context, forArg DebateForArgument, againstArg DebateAgainstArgument, baseScore float64) (DebateJudgement, StageAttemptMetrics, error)
}

// ExplanationRunner narrates an already-computed decision. It must not alter
// score or verdict; the pipeline treats both as given.
type ExplanationRunner interface {
	Explain(ctx context.Context, s idea.StartupIdea, decision FinalDecision) (FinalExplanation, StageAttemptMetrics, error)
}

type LLMStageRunner struct {
	exec *StageExecutor
}

func NewLLMStageRunner(exec *StageExecutor) *LLMStageRunner {
	return &LLMStageRunner{exec: exec}
}

func (r *LLMStageRunner) RunMarketDemand(ctx context.Context, s idea.StartupIdea, market evidence.MarketSizeResult, demand evidence.DemandSignalResult) (AnalysisResult, StageAttemptMetrics, error) {
	out := AnalysisResult{}
	prompt := fmt.Sprintf(
		`You are a pragmatic market analyst. You distrust hype and focus on demand, scale, and realism.
You are given structured evidence about a startup idea.

Startup summary:
- Problem: %s
- Solution: %s
- Geography: %s

Market size evidence:
- TAM (USD): %.2f
- SAM (USD): %.2f
- SOM (USD): %.2f
- Confidence: %s

Demand signals:
- Demand score (0-10): %.2f
- Signals: %v
- Confidence: %s

Instructions:
1. Assess whether the market is large enough to matter.
2. Assess whether demand appears real or speculative.
3. Penalize vague or low-confidence signals.
4. Produce a numeric score between 0 and 10, 2-3 strengths, 2-3 concerns, and a rationale.
5. Do NOT introduce new facts. Be conservative and realistic.

%s`,
		s.Problem, s.Solution, s.Geography,
		market.TAMUSD, market.SAMUSD, market.SOMUSD, market.Confidence,
		demand.DemandScore, demand.Signals, demand.Confidence,
		analysisSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageMarketDemand, prompt, analysisManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) RunCompetitionMoat(ctx context.Context, s idea.StartupIdea, signals evidence.CompetitionSignals) (AnalysisResult, StageAttemptMetrics, error) {
	out := AnalysisResult{}
	prompt := fmt.Sprintf(
		`You are a competition analyst. You are given structural competition signals for a startup.

Startup summary:
- Problem: %s
- Solution: %s
- Claimed differentiation: %s

Competition signals:
- Direct competitor count: %d
- Dominant incumbents present: %t
- Highest dominance level: %s
- Competition style: %s
- Common moat sources: %v
- Common entry barriers: %v
- Competition pressure score (0-10): %.2f

Instructions:
1. Interpret competitive pressure using dominance and market structure.
2. Assess whether the claimed differentiation can realistically overcome existing moats.
3. Penalize markets with dominant incumbents or winner-takes-most dynamics.
4. Do NOT use competitor count alone as a proxy for difficulty.
5. Produce a numeric score between 0 and 10, 2-3 strengths, 2-3 concerns, and a rationale.
6. Do NOT introduce new competitors or facts. Be conservative and realistic.

%s`,
		s.Problem, s.Solution, s.Differentiation,
		signals.DirectCompetitorCount, signals.DominantIncumbentsPresent,
		signals.HighestDominanceLevel, signals.CompetitionStyle,
		signals.CommonMoatSources, signals.CommonEntryBarriers,
		signals.CompetitionPressureScore,
		analysisSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageCompetitionMoat, prompt, analysisManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) RunEconomics(ctx context.Context, s idea.StartupIdea, market evidence.MarketSizeResult, cost evidence.CostModelResult) (AnalysisResult, StageAttemptMetrics, error) {
	out := AnalysisResult{}
	prompt := fmt.Sprintf(
		`You are a unit-economics analyst. You are given structured financial evidence about a startup.

Startup summary:
- Solution: %s
- Monetization model: %s

Market size:
- TAM (USD): %.2f
- SAM (USD): %.2f
- SOM (USD): %.2f

Cost model:
- Monthly fixed cost (USD): %.2f
- Monthly variable cost (USD): %.2f
- Total monthly cost (USD): %.2f
- Cost confidence: %s

Instructions:
1. Evaluate whether monetization is realistic for the given market.
2. Assess scalability: do costs grow slower than potential revenue?
3. Penalize unclear or missing monetization models.
4. Be conservative: small markets plus high costs earn a bad score.
5. Produce a numeric score between 0 and 10, 2-3 strengths, 2-3 concerns, and a rationale.
6. Do NOT invent pricing numbers or new assumptions.

%s`,
		s.Solution, s.MonetizationModel,
		market.TAMUSD, market.SAMUSD, market.SOMUSD,
		cost.MonthlyFixedCostUSD, cost.MonthlyVariableCostUSD, cost.TotalMonthlyCostUSD, cost.Confidence,
		analysisSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageEconomics, prompt, analysisManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) RunExecutionRisk(ctx context.Context, s idea.StartupIdea) (AnalysisResult, StageAttemptMetrics, error) {
	out := AnalysisResult{}
	prompt := fmt.Sprintf(
		`You are an execution-risk analyst. You are given structured information about a startup.

Startup details:
- Problem: %s
- Solution: %s
- Geography: %s
- Founder expertise: %s
- Customer acquisition plan: %s
- Regulatory constraints: %v
- Other constraints: %v

Instructions:
1. Assess founder-market fit (experience vs problem).
2. Evaluate operational and technical complexity implied by the solution.
3. Identify regulatory or compliance risks based on geography and industry cues.
4. Penalize missing founder expertise or an unclear acquisition strategy.
5. Produce a numeric score between 0 and 10, 2-3 strengths, 2-3 concerns, and a rationale.
6. Do NOT introduce new facts or assumptions. Be conservative and realistic.

%s`,
		s.Problem, s.Solution, s.Geography, s.FounderExpertise,
		s.CustomerAcquisition, s.RegulatoryConstraints, s.Constraints,
		analysisSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageExecutionRisk, prompt, analysisManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) RunFor(ctx context.Context, bundle AnalysisBundle) (DebateForArgument, StageAttemptMetrics, error) {
	out := DebateForArgument{}
	prompt := fmt.Sprintf(
		`You are an optimistic but rational investor participating in a structured debate.
You MUST argue FOR pursuing the startup idea.
You are given structured analysis results (no raw data):

%s

Rules (STRICT):
- Assume competent execution.
- Emphasize strengths and upside.
- Reframe weaknesses as solvable.
- Do NOT introduce new facts.
- Do NOT hedge. Argue confidently.

%s`,
		prettyBundle(bundle),
		debateForSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageDebateFor, prompt, debateForManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) RunAgainst(ctx context.Context, bundle AnalysisBundle) (DebateAgainstArgument, StageAttemptMetrics, error) {
	out := DebateAgainstArgument{}
	prompt := fmt.Sprintf(
		`You are a skeptical risk analyst participating in a structured debate.
You MUST argue AGAINST pursuing the startup idea.
You are given structured analysis results (no raw data):

%s

Rules (STRICT):
- Assume adverse conditions.
- Treat uncertainty as risk.
- Attack assumptions directly.
- Do NOT introduce new facts.
- Do NOT praise upside. Be blunt and critical.

%s`,
		prettyBundle(bundle),
		debateAgainstSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageDebateAgainst, prompt, debateAgainstManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) Judge(ctx context.Context, forArg DebateForArgument, againstArg DebateAgainstArgument, baseScore float64) (DebateJudgement, StageAttemptMetrics, error) {
	out := DebateJudgement{}
	prompt := fmt.Sprintf(
		`You are a risk committee chair judging a structured debate about a startup idea.
You distrust rhetoric and focus on unresolved risks and overconfidence.

FOR argument:
%s

AGAINST argument:
%s

Base score (before debate): %.2f

Rules (STRICT):
- You are NOT deciding go/no-go and NOT allowed to rescore the idea.
- You must NOT introduce new facts.
- Assess whether the debate reveals unresolved risks, overconfidence, or overlooked strengths.
- Use debate quality to determine the confidence adjustment.

confidence_shift rules:
- Range must be between -0.25 and +0.10.
- Use a negative shift if AGAINST exposes serious unresolved risks.
- Use a positive shift only if FOR exposes overlooked strengths.
- Use 0 if the debate adds little signal.

%s`,
		prettyJSON(forArg),
		prettyJSON(againstArg),
		baseScore,
		judgementSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageDebateJudge, prompt, judgementManifest, &out)
	return out, m, err
}

func (r *LLMStageRunner) Explain(ctx context.Context, s idea.StartupIdea, decision FinalDecision) (FinalExplanation, StageAttemptMetrics, error) {
	out := FinalExplanation{}
	prompt := fmt.Sprintf(
		`You are explaining the final evaluation of a startup idea.

Startup:
- Problem: %s
- Solution: %s
- Geography: %s
- Industry: %s

Final decision (already computed, DO NOT change it):
%s

Rules (STRICT):
- Do NOT rescore or second-guess the decision.
- Do NOT introduce new facts.
- Explain WHY the score and verdict occurred.
- Be specific and conservative. Avoid hype or sugarcoating.

Produce a short summary (4-5 sentences), the key reasons that drove the score,
the key risks holding the idea back, and concrete next steps to improve it.

%s`,
		s.Problem, s.Solution, s.Geography, s.Industry,
		prettyJSON(decision),
		explanationSchemaPrompt,
	)
	m, err := r.exec.Run(ctx, StageExplanation, prompt, explanationManifest, &out)
	return out, m, err
}

// NewSemanticScorer adapts the LLM executor into the similarity capability
// the demand combiner consumes. Failures propagate; there is no fail-safe
// zero score.
func NewSemanticScorer(exec *StageExecutor) evidence.SimilarityFn {
	return func(ctx context.Context, text string, concepts []string) (float64, error) {
		out := struct {
			SimilarityScore float64 `json:"similarity_score"`
		}{}
		prompt := fmt.Sprintf(
			`You are a semantic classifier.

Text:
"""%s"""

Concept bucket:
%v

Task:
Decide how strongly the text matches the MEANING of the concept bucket.
Do NOT judge quality, usefulness, or business value.

Return ONLY valid JSON:
{
  "similarity_score": "number between 0 and 1"
}`,
			text, concepts,
		)
		if _, err := exec.Run(ctx, "semantic_similarity", prompt, similarityManifest, &out); err != nil {
			return 0, err
		}
		return out.SimilarityScore, nil
	}
}

func prettyBundle(bundle AnalysisBundle) string {
	return prettyJSON(bundle)
}

func prettyJSON(v any) string {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(blob)
}
