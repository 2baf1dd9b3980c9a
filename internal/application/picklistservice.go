// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fmhf/recipe-pick/internal/domain/model"
	"github.com/fmhf/recipe-pick/internal/domain/port/driven"
)

var (
	// ErrNoCodes is returned when the input yields no recipe codes.
	ErrNoCodes = errors.New("no codes found")
	// ErrNoRecipes is returned when the planning service matches none of the codes.
	ErrNoRecipes = errors.New("no recipes found")
)

// Stage is a step of the picklist pipeline.
type Stage int

const (
	StageReadInput Stage = iota
	StageAuthenticate
	StageFetchRecipes
	StageBuildAndEmit
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageReadInput:
		return "read_input"
	case StageAuthenticate:
		return "authenticate"
	case StageFetchRecipes:
		return "fetch_recipes"
	case StageBuildAndEmit:
		return "build_and_emit"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageError records which stage aborted a run. Its message is the
// underlying error's message unchanged, so upstream response bodies reach
// the user verbatim.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// PicklistRequest carries everything one run needs. Credentials are held
// only until a token is obtained.
type PicklistRequest struct {
	Codes       driven.CodeSource
	Credentials model.Credentials
	Market      string
}

// PicklistService sequences authentication, recipe retrieval and picklist
// emission. It depends only on port interfaces.
type PicklistService struct {
	auth    driven.Authenticator
	recipes driven.RecipeSource
	writer  driven.PicklistWriter
	logger  *slog.Logger
}

// NewPicklistService creates a PicklistService with the required dependencies.
// A nil logger falls back to slog.Default().
func NewPicklistService(
	auth driven.Authenticator,
	recipes driven.RecipeSource,
	writer driven.PicklistWriter,
	logger *slog.Logger,
) *PicklistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PicklistService{
		auth:    auth,
		recipes: recipes,
		writer:  writer,
		logger:  logger,
	}
}

// Generate runs the pipeline once and returns the written picklist's path.
// Any failure aborts the run with a *StageError; nothing is retried.
func (s *PicklistService) Generate(ctx context.Context, req PicklistRequest) (string, error) {
	start := time.Now()

	s.enter(StageReadInput)
	codes, err := req.Codes.ReadCodes(ctx)
	if err != nil {
		return "", s.fail(StageReadInput, err)
	}
	if len(codes) == 0 {
		return "", s.fail(StageReadInput, ErrNoCodes)
	}
	s.logger.Debug("codes read", "count", len(codes))

	s.enter(StageAuthenticate)
	token, err := s.auth.Authenticate(ctx, req.Credentials)
	if err != nil {
		return "", s.fail(StageAuthenticate, err)
	}

	s.enter(StageFetchRecipes)
	s.logger.Info("getting recipes", "market", req.Market, "codes", len(codes))
	recipes, err := s.recipes.SearchRecipes(ctx, token, req.Market, codes)
	if err != nil {
		return "", s.fail(StageFetchRecipes, err)
	}
	if len(recipes) == 0 {
		return "", s.fail(StageFetchRecipes, ErrNoRecipes)
	}

	s.enter(StageBuildAndEmit)
	s.logger.Info("generating picklist", "recipes", len(recipes))
	rows := BuildRows(recipes)
	path, err := s.writer.WritePicklist(ctx, rows)
	if err != nil {
		return "", s.fail(StageBuildAndEmit, err)
	}

	s.enter(StageDone)
	s.logger.Info("picklist generated",
		"path", path,
		"recipes", len(recipes),
		"rows", len(rows),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return path, nil
}

func (s *PicklistService) enter(stage Stage) {
	s.logger.Debug("pipeline stage", "stage", stage)
}

func (s *PicklistService) fail(stage Stage, err error) error {
	s.logger.Debug("pipeline stage", "stage", StageFailed, "failed_at", stage, "error", err)
	return &StageError{Stage: stage, Err: err}
}
