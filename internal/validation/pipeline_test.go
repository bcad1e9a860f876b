package validation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

type mockRunner struct {
	mu      sync.Mutex
	calls   map[string]int
	err     map[string]error
	market  AnalysisResult
	comp    AnalysisResult
	econ    AnalysisResult
	exec    AnalysisResult
	forArg  DebateForArgument
	against DebateAgainstArgument
	judge   DebateJudgement
	explain FinalExplanation
}

func (m *mockRunner) record(stage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[stage]++
	return m.err[stage]
}

func (m *mockRunner) RunMarketDemand(context.Context, idea.StartupIdea, evidence.MarketSizeResult, evidence.DemandSignalResult) (AnalysisResult, StageAttemptMetrics, error) {
	return m.market, StageAttemptMetrics{Attempts: 1}, m.record(StageMarketDemand)
}

func (m *mockRunner) RunCompetitionMoat(context.Context, idea.StartupIdea, evidence.CompetitionSignals) (AnalysisResult, StageAttemptMetrics, error) {
	return m.comp, StageAttemptMetrics{Attempts: 1}, m.record(StageCompetitionMoat)
}

func (m *mockRunner) RunEconomics(context.Context, idea.StartupIdea, evidence.MarketSizeResult, evidence.CostModelResult) (AnalysisResult, StageAttemptMetrics, error) {
	return m.econ, StageAttemptMetrics{Attempts: 1}, m.record(StageEconomics)
}

func (m *mockRunner) RunExecutionRisk(context.Context, idea.StartupIdea) (AnalysisResult, StageAttemptMetrics, error) {
	return m.exec, StageAttemptMetrics{Attempts: 1}, m.record(StageExecutionRisk)
}

func (m *mockRunner) RunFor(context.Context, AnalysisBundle) (DebateForArgument, StageAttemptMetrics, error) {
	return m.forArg, StageAttemptMetrics{Attempts: 1}, m.record(StageDebateFor)
}

func (m *mockRunner) RunAgainst(context.Context, AnalysisBundle) (DebateAgainstArgument, StageAttemptMetrics, error) {
	return m.against, StageAttemptMetrics{Attempts: 1}, m.record(StageDebateAgainst)
}

func (m *mockRunner) Judge(context.Context, DebateForArgument, DebateAgainstArgument, float64) (DebateJudgement, StageAttemptMetrics, error) {
	return m.judge, StageAttemptMetrics{Attempts: 1}, m.record(StageDebateJudge)
}

func (m *mockRunner) Explain(context.Context, idea.StartupIdea, FinalDecision) (FinalExplanation, StageAttemptMetrics, error) {
	return m.explain, StageAttemptMetrics{Attempts: 1}, m.record(StageExplanation)
}

func pipelineRefSet() refdata.Set {
	return refdata.Set{
		Population:          map[string]float64{"india": 1_400_000_000},
		IndustryMultipliers: map[string]float64{"fintech": 1.5},
	}
}

func happySimilarity(_ context.Context, _ string, _ []string) (float64, error) {
	return 0.8, nil
}

func baseMock() *mockRunner {
	return &mockRunner{
		err:     map[string]error{},
		market:  analysis(7),
		comp:    analysis(6),
		econ:    analysis(8),
		exec:    analysis(5),
		forArg:  DebateForArgument{Position: "for", CoreThesis: "pursue", SupportingArguments: []string{"a"}, AcknowledgedRisks: []string{"b"}},
		against: DebateAgainstArgument{Position: "against", CoreThesis: "avoid", FailureModes: []string{"c"}, CriticalAssumptionsAttacked: []string{"d"}},
		judge:   baseJudgement(),
		explain: FinalExplanation{Verdict: "PROCEED WITH CAUTION", FinalScore: 66, Summary: "summary", ConfidenceLevel: "medium"},
	}
}

func newTestPipeline(m *mockRunner) *Pipeline {
	ev := evidence.NewRunner(pipelineRefSet(), happySimilarity)
	return NewPipeline(ev, m, m, m)
}

func TestPipelineHappyPath(t *testing.T) {
	m := baseMock()
	res, err := newTestPipeline(m).Run(context.Background(), testIdea())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Analysis.BaseScore != 66.0 {
		t.Fatalf("unexpected base score: %f", res.Analysis.BaseScore)
	}
	if res.Decision.FinalScore != 66.0 {
		t.Fatalf("unexpected final score: %f", res.Decision.FinalScore)
	}
	if res.Decision.Verdict != VerdictProceedWithCaution {
		t.Fatalf("unexpected verdict: %s", res.Decision.Verdict)
	}
	for _, stage := range []string{StageMarketDemand, StageCompetitionMoat, StageEconomics, StageExecutionRisk, StageDebateFor, StageDebateAgainst, StageDebateJudge, StageExplanation} {
		if m.calls[stage] != 1 {
			t.Fatalf("stage %s called %d times", stage, m.calls[stage])
		}
	}
	if res.Evidence.MarketSize.TAMUSD == 0 {
		t.Fatal("expected evidence in the audit trail")
	}
	if res.Metadata.TotalLLMCalls != 8 {
		t.Fatalf("unexpected call accounting: %d", res.Metadata.TotalLLMCalls)
	}
	if res.Metadata.CompletedAt.IsZero() {
		t.Fatal("expected completion timestamp")
	}
}

func TestPipelineRejectsInvalidIdea(t *testing.T) {
	m := baseMock()
	bad := testIdea()
	bad.Problem = ""
	_, err := newTestPipeline(m).Run(context.Background(), bad)
	if err == nil {
		t.Fatal("expected input error")
	}
	var ie *idea.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if len(m.calls) != 0 {
		t.Fatalf("no stage may run on invalid input, got %v", m.calls)
	}
}

func TestPipelineAnalystFailureNamesStage(t *testing.T) {
	m := baseMock()
	m.err[StageEconomics] = errors.New("model refused")
	_, err := newTestPipeline(m).Run(context.Background(), testIdea())
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != StageEconomics {
		t.Fatalf("expected failing stage name, got %q", se.Stage)
	}
	if m.calls[StageDebateFor] != 0 {
		t.Fatal("debate must not run after an analyst failure")
	}
}

func TestPipelineJudgeBoundViolationIsFatal(t *testing.T) {
	m := baseMock()
	m.judge.ConfidenceShift = 0.15
	_, err := newTestPipeline(m).Run(context.Background(), testIdea())
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != StageAdjustment {
		t.Fatalf("expected adjustment stage to reject, got %q", se.Stage)
	}
	var bv *BoundViolationError
	if !errors.As(err, &bv) {
		t.Fatalf("expected wrapped BoundViolationError, got %v", err)
	}
	if m.calls[StageExplanation] != 0 {
		t.Fatal("no explanation may be produced after a bound violation")
	}
}

func TestPipelineDebateFailureAbortsBatch(t *testing.T) {
	m := baseMock()
	m.err[StageDebateAgainst] = errors.New("model refused")
	_, err := newTestPipeline(m).Run(context.Background(), testIdea())
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != StageDebateAgainst {
		t.Fatalf("unexpected stage: %q", se.Stage)
	}
	if m.calls[StageDebateJudge] != 0 {
		t.Fatal("judge must not run after a debate failure")
	}
}

func TestPipelineSimilarityFailureAbortsBeforeAnalysis(t *testing.T) {
	m := baseMock()
	ev := evidence.NewRunner(pipelineRefSet(), func(context.Context, string, []string) (float64, error) {
		return 0, errors.New("similarity backend down")
	})
	_, err := NewPipeline(ev, m, m, m).Run(context.Background(), testIdea())
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != "evidence" {
		t.Fatalf("unexpected stage: %q", se.Stage)
	}
	if len(m.calls) != 0 {
		t.Fatalf("no analyst may run after an evidence failure, got %v", m.calls)
	}
}

func TestPipelineProgressCallback(t *testing.T) {
	m := baseMock()
	var stages []string
	_, err := newTestPipeline(m).RunWithProgress(context.Background(), testIdea(), func(stage, _ string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	joined := strings.Join(stages, ",")
	for _, want := range []string{"evidence", "analysis", "debate", StageDebateJudge, StageExplanation} {
		if !strings.Contains(joined, want) {
			t.Fatalf("progress missing %q: %v", want, stages)
		}
	}
}
