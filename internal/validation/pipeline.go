package validation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
)

var tracer = otel.Tracer("github.com/guts-718/AI-startup-idea-validator/internal/validation")

type StageProgressFn func(stage, message string)

// Pipeline wires the deterministic evidence phase to the qualitative stages
// and the final aggregation. All state flows forward through immutable value
// objects; any stage failure aborts the run with a StageError naming the
// stage.
type Pipeline struct {
	evidence  *evidence.Runner
	analysts  AnalystRunner
	debate    DebateRunner
	explainer ExplanationRunner
}

func NewPipeline(ev *evidence.Runner, analysts AnalystRunner, debate DebateRunner, explainer ExplanationRunner) *Pipeline {
	return &Pipeline{evidence: ev, analysts: analysts, debate: debate, explainer: explainer}
}

func (p *Pipeline) Run(ctx context.Context, s idea.StartupIdea) (Result, error) {
	return p.runWithProgress(ctx, s, nil)
}

func (p *Pipeline) RunWithProgress(ctx context.Context, s idea.StartupIdea, progress StageProgressFn) (Result, error) {
	return p.runWithProgress(ctx, s, progress)
}

func (p *Pipeline) runWithProgress(ctx context.Context, s idea.StartupIdea, progress StageProgressFn) (Result, error) {
	res := Result{
		Idea: s,
		Metadata: PipelineMetadata{
			StartedAt:           time.Now(),
			StageAttempts:       map[string]int{},
			StageContentRetries: map[string]int{},
		},
	}

	ctx, span := tracer.Start(ctx, "validation.Run")
	defer span.End()

	if err := idea.Validate(s); err != nil {
		return res, &StageError{Stage: "input_validation", Err: err}
	}

	emit(progress, "evidence", "Gathering deterministic evidence...")
	bundle, err := p.evidence.Run(ctx, s)
	if err != nil {
		return res, &StageError{Stage: "evidence", Err: err}
	}
	res.Evidence = bundle
	res.Signals = p.evidence.Signals(s)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "evidence")

	// Four independent analysts fan out; the base score is a join barrier.
	emit(progress, "analysis", "Running four analyst stages concurrently...")
	actx, analysisSpan := tracer.Start(ctx, "validation.analysis")
	var (
		market, competition, economics, execution AnalysisResult
		mMarket, mCompetition, mEconomics, mExec  StageAttemptMetrics
	)
	g, gctx := errgroup.WithContext(actx)
	g.Go(func() error {
		out, m, err := p.analysts.RunMarketDemand(gctx, s, bundle.MarketSize, bundle.Demand)
		if err != nil {
			return &StageError{Stage: StageMarketDemand, Err: err}
		}
		market, mMarket = out, m
		return nil
	})
	g.Go(func() error {
		out, m, err := p.analysts.RunCompetitionMoat(gctx, s, res.Signals)
		if err != nil {
			return &StageError{Stage: StageCompetitionMoat, Err: err}
		}
		competition, mCompetition = out, m
		return nil
	})
	g.Go(func() error {
		out, m, err := p.analysts.RunEconomics(gctx, s, bundle.MarketSize, bundle.CostModel)
		if err != nil {
			return &StageError{Stage: StageEconomics, Err: err}
		}
		economics, mEconomics = out, m
		return nil
	})
	g.Go(func() error {
		out, m, err := p.analysts.RunExecutionRisk(gctx, s)
		if err != nil {
			return &StageError{Stage: StageExecutionRisk, Err: err}
		}
		execution, mExec = out, m
		return nil
	})
	if err := g.Wait(); err != nil {
		analysisSpan.End()
		return res, err
	}
	analysisSpan.End()
	res.recordStage(StageMarketDemand, mMarket)
	res.recordStage(StageCompetitionMoat, mCompetition)
	res.recordStage(StageEconomics, mEconomics)
	res.recordStage(StageExecutionRisk, mExec)

	baseScore := AggregateBaseScore(market, competition, economics, execution)
	res.Analysis = AnalysisBundle{
		MarketDemand:    market,
		CompetitionMoat: competition,
		Economics:       economics,
		ExecutionRisk:   execution,
		BaseScore:       baseScore,
	}
	span.SetAttributes(attribute.Float64("validation.base_score", baseScore))

	// FOR and AGAINST are mutually independent; the judge waits for both.
	emit(progress, "debate", "Running FOR/AGAINST debate concurrently...")
	dctx, debateSpan := tracer.Start(ctx, "validation.debate")
	var (
		forArg      DebateForArgument
		againstArg  DebateAgainstArgument
		mFor, mAnti StageAttemptMetrics
	)
	dg, dgctx := errgroup.WithContext(dctx)
	dg.Go(func() error {
		out, m, err := p.debate.RunFor(dgctx, res.Analysis)
		if err != nil {
			return &StageError{Stage: StageDebateFor, Err: err}
		}
		forArg, mFor = out, m
		return nil
	})
	dg.Go(func() error {
		out, m, err := p.debate.RunAgainst(dgctx, res.Analysis)
		if err != nil {
			return &StageError{Stage: StageDebateAgainst, Err: err}
		}
		againstArg, mAnti = out, m
		return nil
	})
	if err := dg.Wait(); err != nil {
		debateSpan.End()
		return res, err
	}
	debateSpan.End()
	res.ForArgument = forArg
	res.AgainstArgument = againstArg
	res.recordStage(StageDebateFor, mFor)
	res.recordStage(StageDebateAgainst, mAnti)

	emit(progress, StageDebateJudge, "Judging the debate...")
	judgement, mJudge, err := p.debate.Judge(ctx, forArg, againstArg, baseScore)
	if err != nil {
		return res, &StageError{Stage: StageDebateJudge, Err: err}
	}
	res.Judgement = judgement
	res.recordStage(StageDebateJudge, mJudge)

	finalScore, err := ApplyJudgeAdjustment(baseScore, judgement)
	if err != nil {
		return res, &StageError{Stage: StageAdjustment, Err: err}
	}
	res.Decision = BuildFinalDecision(res.Analysis, judgement, finalScore)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, StageAdjustment)
	span.SetAttributes(
		attribute.Float64("validation.final_score", finalScore),
		attribute.String("validation.verdict", string(res.Decision.Verdict)),
	)

	emit(progress, StageExplanation, "Generating the final explanation...")
	explanation, mExplain, err := p.explainer.Explain(ctx, s, res.Decision)
	if err != nil {
		return res, &StageError{Stage: StageExplanation, Err: err}
	}
	res.Explanation = explanation
	res.recordStage(StageExplanation, mExplain)

	res.Metadata.CompletedAt = time.Now()
	return res, nil
}

func (r *Result) recordStage(stage string, m StageAttemptMetrics) {
	r.Metadata.StagesExecuted = append(r.Metadata.StagesExecuted, stage)
	r.Metadata.StageAttempts[stage] = m.Attempts
	r.Metadata.StageContentRetries[stage] = m.ContentRetries
	r.Metadata.TotalLLMCalls += m.Attempts
	r.Metadata.TotalRetries += m.ContentRetries
}

func emit(progress StageProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
