// Package httpapi exposes the validation pipeline over HTTP: submit an idea,
// retrieve a stored run, list runs.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/guts-718/AI-startup-idea-validator/internal/idea"
	"github.com/guts-718/AI-startup-idea-validator/internal/store"
	"github.com/guts-718/AI-startup-idea-validator/internal/validation"
)

// Validator is the pipeline surface the server depends on.
type Validator interface {
	Run(ctx context.Context, s idea.StartupIdea) (validation.Result, error)
}

// RunRepository is the persistence surface the server depends on.
type RunRepository interface {
	SaveRun(ctx context.Context, result validation.Result) (string, error)
	GetRun(ctx context.Context, runID string) (store.Run, error)
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
}

type Server struct {
	pipeline Validator
	runs     RunRepository
	timeout  time.Duration
}

func NewServer(pipeline Validator, runs RunRepository, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	s := &Server{pipeline: pipeline, runs: runs, timeout: timeout}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/runs", s.handleListRuns)
	mux.HandleFunc("/v1/runs/", s.handleGetRun)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

type validateResponse struct {
	RunID string `json:"run_id"`
	validation.ResponseEnvelope
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	var startupIdea idea.StartupIdea
	if err := json.Unmarshal(blob, &startupIdea); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not a valid startup idea")
		return
	}
	if err := idea.Validate(startupIdea); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	started := time.Now()
	result, err := s.pipeline.Run(ctx, startupIdea)
	if err != nil {
		writeStageError(w, err)
		return
	}
	log.Printf("validation complete verdict=%q score=%.2f elapsed=%s",
		result.Decision.Verdict, result.Decision.FinalScore, time.Since(started).Round(time.Millisecond))

	runID, err := s.runs.SaveRun(r.Context(), result)
	if err != nil {
		log.Printf("save run failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "run completed but could not be persisted")
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		RunID:            runID,
		ResponseEnvelope: validation.BuildResponse(result),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	runID := strings.TrimPrefix(r.URL.Path, "/v1/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	run, err := s.runs.GetRun(r.Context(), runID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeStageError maps pipeline failures to HTTP statuses. A collaborator
// contract breach is a bad gateway; bad input is the caller's fault.
func writeStageError(w http.ResponseWriter, err error) {
	var ie *idea.InputError
	if errors.As(err, &ie) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	var bv *validation.BoundViolationError
	var sce *validation.SchemaError
	if errors.As(err, &bv) || errors.As(err, &sce) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"ok":    false,
		"error": map[string]any{"message": message},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func parseInt(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return v
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}
