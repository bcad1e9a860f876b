package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
	"github.com/guts-718/AI-startup-idea-validator/internal/validation"
)

func main() {
	inputPath := flag.String("input", "", "Path to startup idea JSON (defaults to stdin)")
	outputPath := flag.String("output", "", "Path to write the markdown report (defaults to stdout)")
	jsonOutputPath := flag.String("json-output", "", "Optional path to write the full response envelope JSON")
	refDir := flag.String("refdata", "", "directory with reference data JSON (defaults to embedded data)")
	flag.Parse()

	startupIdea, err := readIdea(*inputPath)
	if err != nil {
		log.Fatalf("read idea: %v", err)
	}

	caller, err := validation.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	exec := validation.NewStageExecutor(caller)
	runner := validation.NewLLMStageRunner(exec)

	ref, err := loadRefData(*refDir)
	if err != nil {
		log.Fatalf("load reference data: %v", err)
	}
	ev := evidence.NewRunner(ref, validation.NewSemanticScorer(exec))
	pipeline := validation.NewPipeline(ev, runner, runner, runner)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := pipeline.RunWithProgress(ctx, startupIdea, func(stage, message string) {
		log.Printf("stage=%s %s", stage, message)
	})
	if err != nil {
		log.Fatalf("validation failed: %v", err)
	}

	env := validation.BuildResponse(result)
	log.Printf("verdict=%q score=%.2f", env.Verdict, env.FinalScore)

	if err := writeMarkdown(*outputPath, env.ReportMarkdown); err != nil {
		log.Fatalf("write markdown: %v", err)
	}
	if *jsonOutputPath != "" {
		if err := writeEnvelopeJSON(*jsonOutputPath, env); err != nil {
			log.Fatalf("write json output: %v", err)
		}
	}
}

func readIdea(inputPath string) (idea.StartupIdea, error) {
	var blob []byte
	var err error
	if inputPath == "" {
		blob, err = io.ReadAll(os.Stdin)
	} else {
		blob, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return idea.StartupIdea{}, err
	}
	var s idea.StartupIdea
	if err := json.Unmarshal(blob, &s); err != nil {
		return idea.StartupIdea{}, fmt.Errorf("decode idea JSON: %w", err)
	}
	return s, nil
}

func loadRefData(dir string) (refdata.Set, error) {
	if dir == "" {
		return refdata.Default()
	}
	return refdata.Load(dir)
}

func writeMarkdown(outputPath, markdown string) error {
	if outputPath == "" {
		_, err := fmt.Print(markdown)
		return err
	}
	return os.WriteFile(outputPath, []byte(markdown), 0o644)
}

func writeEnvelopeJSON(path string, env validation.ResponseEnvelope) error {
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
