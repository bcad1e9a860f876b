// Command render-report turns a validation run's markdown report into a
// standalone HTML document. The run comes either from a saved response
// envelope JSON file or from the run store by ID.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"html"
	"log"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/guts-718/AI-startup-idea-validator/internal/store"
	"github.com/guts-718/AI-startup-idea-validator/internal/validation"
)

func main() {
	inputPath := flag.String("input", "", "Path to saved response envelope JSON")
	dbPath := flag.String("db", "", "Path to the run store SQLite file (used with -run)")
	runID := flag.String("run", "", "Run ID to load from the store")
	outputPath := flag.String("output", "", "Path to write HTML (defaults to stdout)")
	flag.Parse()

	env, err := loadEnvelope(*inputPath, *dbPath, *runID)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := buildHTML(env)
	if err != nil {
		log.Fatalf("render html: %v", err)
	}

	if *outputPath == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*outputPath, []byte(doc), 0o644); err != nil {
		log.Fatalf("write html: %v", err)
	}
}

func loadEnvelope(inputPath, dbPath, runID string) (validation.ResponseEnvelope, error) {
	switch {
	case inputPath != "":
		blob, err := os.ReadFile(inputPath)
		if err != nil {
			return validation.ResponseEnvelope{}, fmt.Errorf("read input: %w", err)
		}
		var env validation.ResponseEnvelope
		if err := json.Unmarshal(blob, &env); err != nil {
			return validation.ResponseEnvelope{}, fmt.Errorf("decode input JSON: %w", err)
		}
		return env, nil
	case dbPath != "" && runID != "":
		runs, err := store.Open(dbPath)
		if err != nil {
			return validation.ResponseEnvelope{}, fmt.Errorf("open run store: %w", err)
		}
		defer runs.Close()
		run, err := runs.GetRun(context.Background(), runID)
		if err != nil {
			return validation.ResponseEnvelope{}, fmt.Errorf("load run %s: %w", runID, err)
		}
		return validation.BuildResponse(run.Result), nil
	default:
		return validation.ResponseEnvelope{}, fmt.Errorf("either -input or both -db and -run are required")
	}
}

func buildHTML(env validation.ResponseEnvelope) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(env.ReportMarkdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	badge := ""
	if env.Verdict != "" {
		badge = fmt.Sprintf("<span class='report-badge'>%s</span><span class='report-badge'>Score: %.2f</span>",
			html.EscapeString(string(env.Verdict)), env.FinalScore)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Validation Report</title>" +
		"<style>" +
		"body{font-family:Georgia,serif;max-width:880px;margin:0 auto;padding:1.2rem;color:#1c1917;background:#f9f7f3;} " +
		".report-badge{display:inline-block;background:#fef3c7;color:#78350f;border:1px solid #fcd34d;border-radius:4px;padding:0.15rem 0.5rem;margin-right:0.4rem;font-size:0.85rem;} " +
		".report-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.85rem;} " +
		".report-html th,.report-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;} " +
		".report-html thead th{background:#f1f5f9;font-weight:700;} " +
		".report-html pre{background:#f1f5f9;padding:0.6rem;overflow-x:auto;font-size:0.78rem;} " +
		"</style></head><body>" +
		"<div class='report-badges'>" + badge + "</div>" +
		"<div class='report-html'>" + content.String() + "</div>" +
		"</body></html>", nil
}
