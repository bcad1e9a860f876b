package evidence

import (
	"strings"

	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

// MarketSizeConfig carries the tunable constants of the market heuristic.
type MarketSizeConfig struct {
	AvgAnnualPriceUSD       float64
	AdoptionRate            float64
	ReachableMarketFraction float64
}

func DefaultMarketSizeConfig() MarketSizeConfig {
	return MarketSizeConfig{
		AvgAnnualPriceUSD:       100.0,
		AdoptionRate:            0.05,
		ReachableMarketFraction: 0.2,
	}
}

// Canonical population buckets used when the reference table has no entry
// for the geography.
var populationFallback = map[string]float64{
	"india":  1_400_000_000,
	"usa":    330_000_000,
	"europe": 450_000_000,
	"global": 8_000_000_000,
}

const defaultPopulation = 100_000_000

// EstimateMarketSize derives TAM/SAM/SOM from population, pricing and an
// industry multiplier. Every constant that enters the arithmetic is recorded
// in the result's assumptions so the estimate is auditable verbatim.
func EstimateMarketSize(ref refdata.Set, geography, industry, targetUser string, cfg MarketSizeConfig) MarketSizeResult {
	dataSources := []string{}
	enriched := false

	geo := strings.ToLower(strings.TrimSpace(geography))
	population, ok := populationFallback[geo]
	if !ok {
		population = defaultPopulation
	}
	if p, ok := ref.Population[geo]; ok {
		population = p
		dataSources = append(dataSources, "world_bank_population")
		enriched = true
	}

	industryMultiplier := 1.0
	ind := strings.ToLower(strings.TrimSpace(industry))
	if ind != "" {
		if m, ok := ref.IndustryMultipliers[ind]; ok {
			industryMultiplier = m
			dataSources = append(dataSources, "industry_size_proxy")
			enriched = true
		}
	}

	tam := population * cfg.AvgAnnualPriceUSD * industryMultiplier
	sam := tam * cfg.AdoptionRate
	som := sam * cfg.ReachableMarketFraction

	confidence := ConfidenceMedium
	if !enriched || industry == "" || targetUser == "" {
		confidence = ConfidenceLow
	}

	return MarketSizeResult{
		TAMUSD: round2(tam),
		SAMUSD: round2(sam),
		SOMUSD: round2(som),
		Assumptions: map[string]float64{
			"population":          population,
			"avg_price":           cfg.AvgAnnualPriceUSD,
			"adoption_rate":       cfg.AdoptionRate,
			"reachable_fraction":  cfg.ReachableMarketFraction,
			"industry_multiplier": industryMultiplier,
		},
		Confidence:      confidence,
		Enriched:        enriched,
		DataSourcesUsed: dataSources,
	}
}
