package evidence

import (
	"context"

	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

const defaultExpectedUsers = 1000

// Runner composes the deterministic estimators over one immutable reference
// dataset. The estimators share no mutable state; they are run in a fixed
// order so the bundle's composition is reproducible in downstream prompts
// and logs.
type Runner struct {
	ref           refdata.Set
	similarity    SimilarityFn
	marketCfg     MarketSizeConfig
	expectedUsers int
}

func NewRunner(ref refdata.Set, similarity SimilarityFn) *Runner {
	return &Runner{
		ref:           ref,
		similarity:    similarity,
		marketCfg:     DefaultMarketSizeConfig(),
		expectedUsers: defaultExpectedUsers,
	}
}

// Run produces the evidence bundle for one idea: market size, competitor
// matches, demand signals, then cost model, always in that order.
func (r *Runner) Run(ctx context.Context, s idea.StartupIdea) (Bundle, error) {
	marketSize := EstimateMarketSize(r.ref, s.Geography, s.Industry, s.TargetUser, r.marketCfg)
	competitors := MatchCompetitors(r.ref, s.Problem, s.Solution)

	demand, err := CombineDemandSignals(ctx, s.Problem, r.similarity)
	if err != nil {
		return Bundle{}, err
	}

	costModel := EstimateCostModel(s.Solution, s.Industry, s.Geography, r.expectedUsers)

	return Bundle{
		MarketSize:  marketSize,
		Competitors: competitors,
		Demand:      demand,
		CostModel:   costModel,
	}, nil
}

// Signals builds the competition structure aggregate for the idea's industry.
func (r *Runner) Signals(s idea.StartupIdea) CompetitionSignals {
	return BuildCompetitionSignals(r.ref, s.Industry)
}
