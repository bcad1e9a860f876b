package evidence

import (
	"strconv"
	"strings"
)

const (
	baseInfraCostUSD = 200.0 // server, storage, monitoring
	costPerUserUSD   = 0.02  // infra + support proxy
	keywordCostUSD   = 100.0
)

// Each keyword found in the solution text adds a fixed complexity surcharge.
// Keywords are counted once each, additive and uncapped.
var complexityKeywords = []string{"real-time", "analytics", "ai", "ml", "streaming"}

var costIndustryMultipliers = map[string]float64{
	"fintech":    1.4,
	"healthtech": 1.5,
	"saas":       1.2,
	"edtech":     1.1,
}

var costGeographyMultipliers = map[string]float64{
	"india":  0.6,
	"usa":    1.0,
	"europe": 1.1,
	"global": 1.2,
}

// EstimateCostModel produces a monthly operating-cost estimate from industry
// and geography multipliers plus complexity keywords in the solution text.
// The breakdown exposes every multiplier and the raw per-user cost so the
// total can be recomputed independently.
func EstimateCostModel(solution, industry, geography string, expectedUsers int) CostModelResult {
	industryMultiplier := 1.0
	if m, ok := costIndustryMultipliers[strings.ToLower(strings.TrimSpace(industry))]; ok {
		industryMultiplier = m
	}
	geoMultiplier := 1.0
	if m, ok := costGeographyMultipliers[strings.ToLower(strings.TrimSpace(geography))]; ok {
		geoMultiplier = m
	}

	lowered := strings.ToLower(solution)
	complexityCost := 0.0
	for _, kw := range complexityKeywords {
		if strings.Contains(lowered, kw) {
			complexityCost += keywordCostUSD
		}
	}

	variableCost := float64(expectedUsers) * costPerUserUSD
	fixedCost := (baseInfraCostUSD + complexityCost) * industryMultiplier * geoMultiplier
	totalCost := fixedCost + variableCost

	confidence := ConfidenceMedium
	if strings.TrimSpace(industry) == "" {
		confidence = ConfidenceLow
	}

	return CostModelResult{
		MonthlyFixedCostUSD:    round2(fixedCost),
		MonthlyVariableCostUSD: round2(variableCost),
		TotalMonthlyCostUSD:    round2(totalCost),
		CostBreakdown: map[string]float64{
			"base_infrastructure":  baseInfraCostUSD,
			"complexity_addition":  complexityCost,
			"industry_multiplier":  industryMultiplier,
			"geography_multiplier": geoMultiplier,
			"variable_user_cost":   variableCost,
		},
		Assumptions: map[string]string{
			"expected_users": strconv.Itoa(expectedUsers),
			"cost_per_user":  "0.02 USD",
		},
		Confidence: confidence,
	}
}
