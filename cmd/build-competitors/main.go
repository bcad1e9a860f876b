// Command build-competitors rebuilds data/known_competitors.json from curated
// public company-list pages. Records it emits carry placeholder problem and
// solution text; records curated by hand in the committed dataset are richer
// and should not be overwritten casually.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
)

var listPages = map[string]string{
	"fintech": "https://en.wikipedia.org/wiki/List_of_fintech_companies",
	"saas":    "https://en.wikipedia.org/wiki/List_of_software_companies",
}

// Pulls the text of every list-item link inside the article body.
const extractScript = `Array.from(document.querySelectorAll("div.mw-parser-output li a")).map(a => a.textContent)`

func main() {
	outputPath := flag.String("output", "data/known_competitors.json", "Path to write the competitor dataset")
	timeout := flag.Duration("timeout", 60*time.Second, "per-page scrape timeout")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if path := detectChromePath(); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	var all []refdata.Competitor
	for industry, url := range listPages {
		log.Printf("scraping industry=%s url=%s", industry, url)
		names, err := scrapeCompanyNames(allocCtx, url, *timeout)
		if err != nil {
			log.Fatalf("scrape %s: %v", industry, err)
		}
		for _, name := range names {
			all = append(all, refdata.Competitor{
				Name:             name,
				Industry:         industry,
				Problem:          "industry-specific problem",
				Solution:         "industry-specific solution",
				Positioning:      "Not specified",
				DominanceLevel:   refdata.DominanceLow,
				CompetitionStyle: refdata.StyleFragmented,
				PrimaryCategory:  industry,
			})
		}
		log.Printf("industry=%s companies=%d", industry, len(names))
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Industry != all[j].Industry {
			return all[i].Industry < all[j].Industry
		}
		return all[i].Name < all[j].Name
	})

	if err := writeDataset(*outputPath, all); err != nil {
		log.Fatalf("write dataset: %v", err)
	}
	log.Printf("saved %d competitors to %s", len(all), *outputPath)
}

func scrapeCompanyNames(allocCtx context.Context, url string, timeout time.Duration) ([]string, error) {
	timeoutCtx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()
	taskCtx, taskCancel := chromedp.NewContext(timeoutCtx)
	defer taskCancel()

	var raw []string
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(extractScript, &raw),
	); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, text := range raw {
		name := cleanName(text)
		if !plausibleCompanyName(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func cleanName(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Link text on list pages mixes company names with citations, section
// anchors, and year links. Keep short alphabetic names only.
func plausibleCompanyName(name string) bool {
	if name == "" {
		return false
	}
	if len(strings.Fields(name)) > 5 {
		return false
	}
	for _, r := range name {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

func writeDataset(path string, competitors []refdata.Competitor) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(competitors, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
