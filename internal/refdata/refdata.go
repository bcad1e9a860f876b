// Package refdata holds the static reference data consulted by the
// deterministic estimators: the known-competitor dataset, the geography
// population table, and the industry size multipliers. A Set is loaded once
// and treated as read-only for the life of the process; estimators receive it
// as an explicit handle rather than reading files themselves, so tests can
// swap datasets freely.
package refdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/known_competitors.json
var defaultCompetitorsJSON []byte

//go:embed data/population.json
var defaultPopulationJSON []byte

//go:embed data/industry_multipliers.json
var defaultMultipliersJSON []byte

type DominanceLevel string

const (
	DominanceLow     DominanceLevel = "low"
	DominanceMedium  DominanceLevel = "medium"
	DominanceHigh    DominanceLevel = "high"
	DominanceExtreme DominanceLevel = "extreme"
)

type CompetitionStyle string

const (
	StyleFragmented      CompetitionStyle = "fragmented"
	StyleOligopoly       CompetitionStyle = "oligopoly"
	StyleWinnerTakesMost CompetitionStyle = "winner_takes_most"
	StyleWinnerTakesAll  CompetitionStyle = "winner_takes_all"
)

// Competitor is one record in the known-competitor reference dataset.
type Competitor struct {
	Name                string           `json:"name"`
	Problem             string           `json:"problem"`
	Solution            string           `json:"solution"`
	Industry            string           `json:"industry"`
	Positioning         string           `json:"positioning"`
	DominanceLevel      DominanceLevel   `json:"dominance_level"`
	MoatSources         []string         `json:"moat_sources"`
	EntryBarriers       []string         `json:"entry_barriers"`
	CompetitionStyle    CompetitionStyle `json:"competition_style"`
	PrimaryCategory     string           `json:"primary_category"`
	SecondaryCategories []string         `json:"secondary_categories"`
}

// Set is the immutable reference-data handle threaded into the estimators.
type Set struct {
	Competitors         []Competitor
	Population          map[string]float64
	IndustryMultipliers map[string]float64
}

// Default returns the Set built from the datasets embedded in the binary.
func Default() (Set, error) {
	return build(defaultCompetitorsJSON, defaultPopulationJSON, defaultMultipliersJSON)
}

// Load reads known_competitors.json, population.json and
// industry_multipliers.json from dir. A missing file falls back to the
// embedded default for that dataset.
func Load(dir string) (Set, error) {
	competitors := readOrDefault(dir+"/known_competitors.json", defaultCompetitorsJSON)
	population := readOrDefault(dir+"/population.json", defaultPopulationJSON)
	multipliers := readOrDefault(dir+"/industry_multipliers.json", defaultMultipliersJSON)
	return build(competitors, population, multipliers)
}

func readOrDefault(path string, fallback []byte) []byte {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	return blob
}

func build(competitorsJSON, populationJSON, multipliersJSON []byte) (Set, error) {
	var set Set
	if err := json.Unmarshal(competitorsJSON, &set.Competitors); err != nil {
		return Set{}, fmt.Errorf("parse known competitors: %w", err)
	}
	if err := json.Unmarshal(populationJSON, &set.Population); err != nil {
		return Set{}, fmt.Errorf("parse population table: %w", err)
	}
	if err := json.Unmarshal(multipliersJSON, &set.IndustryMultipliers); err != nil {
		return Set{}, fmt.Errorf("parse industry multipliers: %w", err)
	}
	for i, c := range set.Competitors {
		if strings.TrimSpace(c.Name) == "" {
			return Set{}, fmt.Errorf("competitor %d: name is required", i)
		}
	}
	return set, nil
}

// InCategory reports whether the competitor's primary category equals
// industry or its secondary categories include it.
func (c Competitor) InCategory(industry string) bool {
	if industry == "" {
		return false
	}
	if strings.EqualFold(c.PrimaryCategory, industry) {
		return true
	}
	for _, s := range c.SecondaryCategories {
		if strings.EqualFold(s, industry) {
			return true
		}
	}
	return false
}

// DominanceWeight orders dominance levels for comparisons. Unknown levels
// weigh zero so a malformed record never outranks a valid one.
func DominanceWeight(d DominanceLevel) int {
	switch d {
	case DominanceLow:
		return 1
	case DominanceMedium:
		return 2
	case DominanceHigh:
		return 3
	case DominanceExtreme:
		return 4
	default:
		return 0
	}
}

// StylePenalty maps a market structure to the pressure it contributes.
func StylePenalty(s CompetitionStyle) float64 {
	switch s {
	case StyleFragmented:
		return 1
	case StyleOligopoly:
		return 2
	case StyleWinnerTakesMost:
		return 3
	case StyleWinnerTakesAll:
		return 4
	default:
		return 0
	}
}
