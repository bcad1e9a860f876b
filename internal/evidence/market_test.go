package evidence

import (
	"reflect"
	"testing"

	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

// sampleRefSet is a small hand-built reference dataset shared by the
// estimator tests, so assertions never depend on the embedded data files.
func sampleRefSet() refdata.Set {
	return refdata.Set{
		Competitors: []refdata.Competitor{
			{
				Name:             "LedgerLoop",
				Problem:          "small merchants reconcile payments by hand",
				Solution:         "automated payment reconciliation ledger",
				Industry:         "fintech",
				Positioning:      "Bookkeeping for merchants",
				DominanceLevel:   refdata.DominanceHigh,
				MoatSources:      []string{"network effects", "regulatory licenses"},
				EntryBarriers:    []string{"compliance", "bank partnerships"},
				CompetitionStyle: refdata.StyleWinnerTakesMost,
				PrimaryCategory:  "fintech",
			},
			{
				Name:                "ClinicCal",
				Problem:             "patients miss appointments",
				Solution:            "clinic scheduling and reminders",
				Industry:            "healthtech",
				DominanceLevel:      refdata.DominanceMedium,
				MoatSources:         []string{"switching costs"},
				EntryBarriers:       []string{"compliance"},
				CompetitionStyle:    refdata.StyleFragmented,
				PrimaryCategory:     "healthtech",
				SecondaryCategories: []string{"saas"},
			},
			{
				Name:             "ShelfSense",
				Problem:          "retailers cannot track inventory in real time",
				Solution:         "inventory analytics dashboard",
				Industry:         "saas",
				Positioning:      "Inventory intelligence",
				DominanceLevel:   refdata.DominanceLow,
				MoatSources:      []string{"switching costs"},
				EntryBarriers:    []string{"integrations"},
				CompetitionStyle: refdata.StyleFragmented,
				PrimaryCategory:  "saas",
			},
		},
		Population: map[string]float64{
			"india":  1_428_627_663,
			"usa":    334_914_895,
			"global": 8_045_311_447,
		},
		IndustryMultipliers: map[string]float64{
			"fintech":    1.5,
			"healthtech": 1.3,
			"saas":       1.2,
		},
	}
}

func TestEstimateMarketSizeFallbackArithmetic(t *testing.T) {
	// No enrichment tables at all: india falls back to the canonical
	// population bucket and the multiplier stays 1.0.
	bare := refdata.Set{}
	got := EstimateMarketSize(bare, "India", "saas", "small retailers", DefaultMarketSizeConfig())

	wantTAM := 1_400_000_000 * 100.0
	if got.TAMUSD != wantTAM {
		t.Fatalf("unexpected TAM: got=%f want=%f", got.TAMUSD, wantTAM)
	}
	if got.SAMUSD != wantTAM*0.05 {
		t.Fatalf("unexpected SAM: got=%f want=%f", got.SAMUSD, wantTAM*0.05)
	}
	if got.SOMUSD != wantTAM*0.05*0.2 {
		t.Fatalf("unexpected SOM: got=%f want=%f", got.SOMUSD, wantTAM*0.05*0.2)
	}
	if got.Enriched {
		t.Fatal("expected un-enriched estimate without reference tables")
	}
	if got.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence, got %s", got.Confidence)
	}
	if len(got.DataSourcesUsed) != 0 {
		t.Fatalf("expected no data sources, got %v", got.DataSourcesUsed)
	}
}

func TestEstimateMarketSizeEnrichedArithmetic(t *testing.T) {
	got := EstimateMarketSize(sampleRefSet(), "india", "saas", "small retailers", DefaultMarketSizeConfig())

	wantTAM := 1_428_627_663 * 100.0 * 1.2
	if got.TAMUSD != round2(wantTAM) {
		t.Fatalf("unexpected TAM: got=%f want=%f", got.TAMUSD, round2(wantTAM))
	}
	if !got.Enriched {
		t.Fatal("expected enriched estimate")
	}
	if got.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %s", got.Confidence)
	}
	wantSources := []string{"world_bank_population", "industry_size_proxy"}
	if !reflect.DeepEqual(got.DataSourcesUsed, wantSources) {
		t.Fatalf("unexpected data sources: got=%v want=%v", got.DataSourcesUsed, wantSources)
	}
	if got.Assumptions["industry_multiplier"] != 1.2 {
		t.Fatalf("assumptions missing industry multiplier: %v", got.Assumptions)
	}
	if got.Assumptions["population"] != 1_428_627_663 {
		t.Fatalf("assumptions missing population: %v", got.Assumptions)
	}
}

func TestEstimateMarketSizeUnknownGeographyUsesDefaultPopulation(t *testing.T) {
	got := EstimateMarketSize(refdata.Set{}, "atlantis", "", "", DefaultMarketSizeConfig())
	if got.Assumptions["population"] != defaultPopulation {
		t.Fatalf("expected default population, got %f", got.Assumptions["population"])
	}
	if got.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence for unknown geography, got %s", got.Confidence)
	}
}

func TestEstimateMarketSizeMissingTargetUserDegradesConfidence(t *testing.T) {
	got := EstimateMarketSize(sampleRefSet(), "india", "saas", "", DefaultMarketSizeConfig())
	if !got.Enriched {
		t.Fatal("expected enriched estimate")
	}
	if got.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence without target user, got %s", got.Confidence)
	}
}

func TestEstimateMarketSizeOrdering(t *testing.T) {
	geos := []string{"india", "usa", "europe", "global", "atlantis", ""}
	for _, geo := range geos {
		got := EstimateMarketSize(sampleRefSet(), geo, "fintech", "merchants", DefaultMarketSizeConfig())
		if got.TAMUSD < got.SAMUSD || got.SAMUSD < got.SOMUSD {
			t.Fatalf("geo %q: expected TAM >= SAM >= SOM, got %f %f %f", geo, got.TAMUSD, got.SAMUSD, got.SOMUSD)
		}
	}
}

func TestEstimateMarketSizeDeterministic(t *testing.T) {
	ref := sampleRefSet()
	cfg := DefaultMarketSizeConfig()
	first := EstimateMarketSize(ref, "Global", "fintech", "merchants", cfg)
	for i := 0; i < 5; i++ {
		again := EstimateMarketSize(ref, "Global", "fintech", "merchants", cfg)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}
