package api

import (
	"context"

	"ripconsole/internal/batchrename"
)

// RenameService adapts the batch rename engine to wire-format payloads.
type RenameService struct {
	engine *batchrename.Engine
}

// NewRenameService wraps engine.
func NewRenameService(engine *batchrename.Engine) *RenameService {
	return &RenameService{engine: engine}
}

// Analyze infers the series name for the selected jobs.
func (s *RenameService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	analysis, err := s.engine.Analyze(ctx, req.JobIDs)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	return FromAnalysis(analysis), nil
}

// Preview computes the rename plan without touching the filesystem.
func (s *RenameService) Preview(ctx context.Context, req RenameRequest) (PreviewResponse, error) {
	plan, err := s.engine.Preview(ctx, req.ToRequest())
	if err != nil {
		return PreviewResponse{}, err
	}
	return FromPlan(plan), nil
}

// Execute performs the renames.
func (s *RenameService) Execute(ctx context.Context, req RenameRequest) (ExecuteResponse, error) {
	result, err := s.engine.Execute(ctx, req.ToRequest())
	if err != nil {
		return ExecuteResponse{}, err
	}
	return FromResult(result), nil
}
