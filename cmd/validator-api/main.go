package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/guts-718/AI-startup-idea-validator/internal/evidence"
	"github.com/guts-718/AI-startup-idea-validator/internal/httpapi"
	"github.com/guts-718/AI-startup-idea-validator/internal/refdata"
	"github.com/guts-718/AI-startup-idea-validator/internal/store"
	"github.com/guts-718/AI-startup-idea-validator/internal/telemetry"
	"github.com/guts-718/AI-startup-idea-validator/internal/validation"
)

func main() {
	dbFlag := flag.String("db", "", "path to SQLite database file (overrides DB_PATH env var)")
	refDir := flag.String("refdata", "", "directory with reference data JSON (defaults to embedded data)")
	timeout := flag.Duration("timeout", 5*time.Minute, "per-request validation timeout")
	flag.Parse()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	requiredEnv("ANTHROPIC_API_KEY")
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

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "./data/runs.db"
	}
	runs, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize run store (%s): %v", dbPath, err)
	}
	defer runs.Close()
	log.Printf("using run store at %s", dbPath)

	tel := telemetry.Setup(context.Background(), "validator-api")
	defer tel.Shutdown()

	h := httpapi.NewServer(pipeline, runs, *timeout)
	log.Printf("validator-api listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal(err)
	}
}

func loadRefData(dir string) (refdata.Set, error) {
	if dir == "" {
		return refdata.Default()
	}
	return refdata.Load(dir)
}

func requiredEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Fatalf("missing required env var %s", key)
	}
	return v
}
