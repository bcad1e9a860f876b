package evidence

import (
	"regexp"
	"strings"

	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)

func normalizeText(text string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(text), "")
}

// MatchCompetitors looks the idea's problem/solution text up against the
// known-competitor dataset. Matching is deliberately coarse: any token of
// the normalized idea text appearing as a substring of a competitor's
// normalized problem+solution+industry text counts. Given the same dataset
// and inputs the result is reproducible bit for bit.
func MatchCompetitors(ref refdata.Set, problem, solution string) CompetitorMatchResult {
	keyTerms := strings.Fields(normalizeText(problem + " " + solution))

	matches := []CompetitorMatch{}
	for _, entry := range ref.Competitors {
		haystack := normalizeText(entry.Problem + " " + entry.Solution + " " + entry.Industry)
		for _, term := range keyTerms {
			if strings.Contains(haystack, term) {
				positioning := entry.Positioning
				if positioning == "" {
					positioning = "Not specified"
				}
				matches = append(matches, CompetitorMatch{
					Name:        entry.Name,
					Positioning: positioning,
					Source:      "offline_dataset",
				})
				break
			}
		}
	}

	sources := []string{}
	confidence := ConfidenceLow
	if len(matches) > 0 {
		sources = append(sources, "known_competitors_dataset")
		confidence = ConfidenceMedium
	}

	return CompetitorMatchResult{
		Competitors:     matches,
		Confidence:      confidence,
		DataSourcesUsed: sources,
	}
}
