package evidence

import (
	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

// orderedCounter tallies strings while remembering first-seen order, so ties
// break deterministically by insertion order.
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: map[string]int{}}
}

func (c *orderedCounter) add(key string) {
	if key == "" {
		return
	}
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// top returns up to n keys by descending count, first-seen order breaking ties.
func (c *orderedCounter) top(n int) []string {
	picked := make([]string, 0, n)
	used := map[string]bool{}
	for len(picked) < n {
		best := ""
		bestCount := 0
		for _, k := range c.keys {
			if used[k] {
				continue
			}
			if c.counts[k] > bestCount {
				best = k
				bestCount = c.counts[k]
			}
		}
		if best == "" {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}
	return picked
}

func (c *orderedCounter) mostFrequent() string {
	top := c.top(1)
	if len(top) == 0 {
		return ""
	}
	return top[0]
}

// BuildCompetitionSignals aggregates market structure over the competitors
// whose category matches the idea's industry. An empty subset yields the
// documented defaults rather than an error.
func BuildCompetitionSignals(ref refdata.Set, industry string) CompetitionSignals {
	var relevant []refdata.Competitor
	for _, c := range ref.Competitors {
		if c.InCategory(industry) {
			relevant = append(relevant, c)
		}
	}

	highest := refdata.DominanceLow
	for _, c := range relevant {
		if refdata.DominanceWeight(c.DominanceLevel) > refdata.DominanceWeight(highest) {
			highest = c.DominanceLevel
		}
	}
	dominantPresent := highest == refdata.DominanceHigh || highest == refdata.DominanceExtreme

	moats := newOrderedCounter()
	barriers := newOrderedCounter()
	styles := newOrderedCounter()
	for _, c := range relevant {
		for _, m := range c.MoatSources {
			moats.add(m)
		}
		for _, b := range c.EntryBarriers {
			barriers.add(b)
		}
		styles.add(string(c.CompetitionStyle))
	}

	commonMoats := moats.top(3)
	commonBarriers := barriers.top(3)
	style := styles.mostFrequent()
	if style == "" {
		style = string(refdata.StyleFragmented)
	}

	directCount := len(relevant)
	density := float64(directCount) / 20.0
	if density > 3 {
		density = 3
	}
	barrierFriction := float64(len(commonBarriers))
	if barrierFriction > 3 {
		barrierFriction = 3
	}

	pressure := density +
		float64(refdata.DominanceWeight(highest)) +
		refdata.StylePenalty(refdata.CompetitionStyle(style)) +
		barrierFriction
	if pressure > 10 {
		pressure = 10
	}
	if pressure < 0 {
		pressure = 0
	}

	return CompetitionSignals{
		DirectCompetitorCount:     directCount,
		DominantIncumbentsPresent: dominantPresent,
		HighestDominanceLevel:     string(highest),
		CommonMoatSources:         commonMoats,
		CommonEntryBarriers:       commonBarriers,
		CompetitionStyle:          style,
		CompetitionPressureScore:  round2(pressure),
	}
}
