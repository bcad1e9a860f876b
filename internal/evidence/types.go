// Package evidence implements the deterministic estimators that ground the
// qualitative analysis stages: market sizing, cost modeling, competitor
// matching, demand signal combination and competition structure. Estimators
// never error on valid input; unknown geography or industry degrades
// confidence instead of aborting the run.
package evidence

import "math"

// Confidence grades how well reference data covered the inputs. The
// deterministic estimators never claim more than medium.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
)

// MarketSizeResult records a TAM/SAM/SOM estimate together with every
// constant used to derive it, so the numbers can be recomputed independently.
type MarketSizeResult struct {
	TAMUSD          float64            `json:"tam_usd"`
	SAMUSD          float64            `json:"sam_usd"`
	SOMUSD          float64            `json:"som_usd"`
	Assumptions     map[string]float64 `json:"assumptions"`
	Confidence      Confidence         `json:"confidence"`
	Enriched        bool               `json:"enriched"`
	DataSourcesUsed []string           `json:"data_sources_used"`
}

// CostModelResult is a monthly operating-cost estimate with a breakdown
// detailed enough for a caller to recompute the total.
type CostModelResult struct {
	MonthlyFixedCostUSD    float64            `json:"monthly_fixed_cost_usd"`
	MonthlyVariableCostUSD float64            `json:"monthly_variable_cost_usd"`
	TotalMonthlyCostUSD    float64            `json:"total_monthly_cost_usd"`
	CostBreakdown          map[string]float64 `json:"cost_breakdown"`
	Assumptions            map[string]string  `json:"assumptions"`
	Confidence             Confidence         `json:"confidence"`
}

// CompetitorMatch is one reference-dataset competitor whose description
// overlaps the idea's problem/solution text.
type CompetitorMatch struct {
	Name        string `json:"name"`
	Positioning string `json:"positioning"`
	Source      string `json:"source"`
}

type CompetitorMatchResult struct {
	Competitors     []CompetitorMatch `json:"competitors"`
	Confidence      Confidence        `json:"confidence"`
	DataSourcesUsed []string          `json:"data_sources_used"`
}

// CompetitionSignals aggregates market structure over the competitors in the
// idea's industry category.
type CompetitionSignals struct {
	DirectCompetitorCount     int      `json:"direct_competitor_count"`
	DominantIncumbentsPresent bool     `json:"dominant_incumbents_present"`
	HighestDominanceLevel     string   `json:"highest_dominance_level"`
	CommonMoatSources         []string `json:"common_moat_sources"`
	CommonEntryBarriers       []string `json:"common_entry_barriers"`
	CompetitionStyle          string   `json:"competition_style"`
	CompetitionPressureScore  float64  `json:"competition_pressure_score"`
}

// DemandSignalResult converts the three semantic similarity scores into a
// discrete demand score. The raw similarities are retained for audit even
// though only threshold crossings move the score.
type DemandSignalResult struct {
	DemandScore    float64            `json:"demand_score"`
	Signals        []string           `json:"signals"`
	Confidence     Confidence         `json:"confidence"`
	SemanticScores map[string]float64 `json:"semantic_scores"`
}

// Bundle is the complete deterministic evidence set for one evaluation run,
// composed in a fixed order for reproducibility of downstream prompts.
type Bundle struct {
	MarketSize  MarketSizeResult      `json:"market_size"`
	Competitors CompetitorMatchResult `json:"competitors"`
	Demand      DemandSignalResult    `json:"demand"`
	CostModel   CostModelResult       `json:"cost_model"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
