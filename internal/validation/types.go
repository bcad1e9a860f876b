// Package validation runs the qualitative half of an evaluation: four
// independent analyst stages, a structured FOR/AGAINST debate with a judge,
// and the aggregation that reduces everything to one bounded FinalDecision.
// Analyst and debate content comes from external collaborators; this package
// enforces their contracts, never their reasoning.
package validation

import (
	"time"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
)

const Disclaimer = "This is an automated screening aid, not investment advice. " +
	"Scores and verdicts are derived from heuristic evidence and model-generated " +
	"analysis; validate independently before committing capital."

// Analysis stage names, used in score breakdowns, stage errors and reports.
const (
	StageMarketDemand    = "market_demand"
	StageCompetitionMoat = "competition_moat"
	StageEconomics       = "economics"
	StageExecutionRisk   = "execution_risk"
	StageDebateFor       = "debate_for"
	StageDebateAgainst   = "debate_against"
	StageDebateJudge     = "debate_judge"
	StageAdjustment      = "judge_adjustment"
	StageExplanation     = "final_explanation"
)

type Verdict string

const (
	VerdictStrongProceed      Verdict = "STRONG PROCEED"
	VerdictProceedWithCaution Verdict = "PROCEED WITH CAUTION"
	VerdictHighRiskIterate    Verdict = "HIGH RISK/ITERATE"
	VerdictDoNotProceed       Verdict = "DO NOT PROCEED"
)

type DebateWinner string

const (
	WinnerFor     DebateWinner = "for"
	WinnerAgainst DebateWinner = "against"
	WinnerTie     DebateWinner = "tie"
)

type ArgumentQuality string

const (
	QualityLow    ArgumentQuality = "low"
	QualityMedium ArgumentQuality = "medium"
	QualityHigh   ArgumentQuality = "high"
)

// AnalysisResult is the contract every analyst stage must satisfy: a score in
// [0,10], strength and concern lists, and a rationale.
type AnalysisResult struct {
	Score     float64  `json:"score"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
	Rationale string   `json:"rationale"`
}

// AnalysisBundle is the read-only package of all four analyst results plus
// the base score, handed verbatim to both debate agents.
type AnalysisBundle struct {
	MarketDemand    AnalysisResult `json:"market_demand"`
	CompetitionMoat AnalysisResult `json:"competition_moat"`
	Economics       AnalysisResult `json:"economics"`
	ExecutionRisk   AnalysisResult `json:"execution_risk"`
	BaseScore       float64        `json:"base_score"`
}

type DebateForArgument struct {
	Position            string   `json:"position"`
	CoreThesis          string   `json:"core_thesis"`
	SupportingArguments []string `json:"supporting_arguments"`
	AcknowledgedRisks   []string `json:"acknowledged_risks"`
}

type DebateAgainstArgument struct {
	Position                    string   `json:"position"`
	CoreThesis                  string   `json:"core_thesis"`
	FailureModes                []string `json:"failure_modes"`
	CriticalAssumptionsAttacked []string `json:"critical_assumptions_attacked"`
}

// DebateJudgement is the judge collaborator's verdict on the debate. The
// confidence shift is bound to [-0.25, +0.10]; a value outside that window is
// a contract violation, never clamped.
type DebateJudgement struct {
	DebateWinner        DebateWinner    `json:"debate_winner"`
	ConfidenceShift     float64         `json:"confidence_shift"`
	UnresolvedRisks     []string        `json:"unresolved_risks"`
	OverlookedStrengths []string        `json:"overlooked_strengths"`
	ArgumentQuality     ArgumentQuality `json:"argument_quality"`
	JudgeRationale      string          `json:"judge_rationale"`
}

// FinalDecision is the single bounded, explainable output of a run. Every
// number in it is traceable to a recorded upstream artifact.
type FinalDecision struct {
	FinalScore         float64            `json:"final_score"`
	Verdict            Verdict            `json:"verdict"`
	ScoreBreakdown     map[string]float64 `json:"score_breakdown"`
	JudgeAdjustment    float64            `json:"judge_adjustment"`
	KeyPositiveFactors []string           `json:"key_positive_factors"`
	KeyNegativeFactors []string           `json:"key_negative_factors"`
	ConfidenceLevel    string             `json:"confidence_level"`
}

// FinalExplanation is the narrative stage's output. Score and verdict are
// echoed from the decision and treated as given; the pipeline never
// re-derives them from the explanation text.
type FinalExplanation struct {
	Verdict              string   `json:"verdict"`
	FinalScore           float64  `json:"final_score"`
	Summary              string   `json:"summary"`
	KeyReasonsForScore   []string `json:"key_reasons_for_score"`
	KeyRisks             []string `json:"key_risks"`
	RecommendedNextSteps []string `json:"recommended_next_steps"`
	ConfidenceLevel      string   `json:"confidence_level"`
}

type StageAttemptMetrics struct {
	Attempts       int
	ContentRetries int
}

type PipelineMetadata struct {
	StagesExecuted      []string       `json:"stages_executed"`
	TotalLLMCalls       int            `json:"total_llm_calls"`
	TotalRetries        int            `json:"total_retries"`
	StageAttempts       map[string]int `json:"stage_attempts,omitempty"`
	StageContentRetries map[string]int `json:"stage_content_retries,omitempty"`
	StartedAt           time.Time      `json:"started_at"`
	CompletedAt         time.Time      `json:"completed_at"`
}

// Result is the full audit trail of one evaluation run.
type Result struct {
	Idea            idea.StartupIdea            `json:"startup"`
	Evidence        evidence.Bundle             `json:"evidence"`
	Signals         evidence.CompetitionSignals `json:"competition_signals"`
	Analysis        AnalysisBundle              `json:"analysis"`
	ForArgument     DebateForArgument           `json:"debate_for"`
	AgainstArgument DebateAgainstArgument       `json:"debate_against"`
	Judgement       DebateJudgement             `json:"debate_judge"`
	Decision        FinalDecision               `json:"final_decision"`
	Explanation     FinalExplanation            `json:"final_explanation"`
	Metadata        PipelineMetadata            `json:"pipeline_metadata"`
}
