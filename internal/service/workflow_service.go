package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

// WorkflowService drives the analysis pipeline: citation suggestion
// and similarity checking run concurrently against the same document.
type WorkflowService struct {
	citations  *CitationService
	plagiarism *PlagiarismService
	projects   *ProjectService
}

func NewWorkflowService(citations *CitationService, plagiarism *PlagiarismService, projects *ProjectService) *WorkflowService {
	return &WorkflowService{
		citations:  citations,
		plagiarism: plagiarism,
		projects:   projects,
	}
}

// RunAnalysis runs both stages over the paper and returns a copy with
// the results attached. On any stage failure the input is returned
// unchanged and the error identifies which stage failed.
func (s *WorkflowService) RunAnalysis(ctx context.Context, paper *model.Paper) (*model.Paper, error) {
	for name := range paper.Sections {
		if !model.ValidSection(string(name)) {
			return paper, &appErr.StageError{Stage: "validate", Err: appErr.ErrInvalid}
		}
	}

	var (
		suggestions []model.CitationSuggestion
		similarity  *model.SimilarityResult
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res, err := s.citations.Suggest(gctx, paper.Sections, 0)
		if err != nil {
			return &appErr.StageError{Stage: "citations", Err: err}
		}
		suggestions = res
		return nil
	})
	eg.Go(func() error {
		res, err := s.plagiarism.Check(gctx, paper.Sections)
		if err != nil {
			return &appErr.StageError{Stage: "similarity", Err: err}
		}
		similarity = res
		return nil
	})
	if err := eg.Wait(); err != nil {
		if stage, ok := appErr.AsStageError(err); ok {
			logutil.GetLogger(ctx).Error("analysis stage failed",
				zap.String("stage", stage.Stage), zap.Error(stage.Err))
		}
		return paper, err
	}

	out := *paper
	out.Citations = suggestions
	out.Similarity = similarity
	logutil.GetLogger(ctx).Info("analysis complete",
		zap.Int("suggestions", len(suggestions)),
		zap.Int("similarity_score", similarity.Score))
	return &out, nil
}

// AnalyzeProject loads the project, runs the pipeline and persists
// the results on success.
func (s *WorkflowService) AnalyzeProject(ctx context.Context, id string) (*model.PaperProject, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	analyzed, err := s.RunAnalysis(ctx, project.Paper())
	if err != nil {
		return nil, err
	}
	if err := s.projects.SaveAnalysis(ctx, id, analyzed.Citations, analyzed.Similarity); err != nil {
		return nil, err
	}
	project.Citations = analyzed.Citations
	project.Similarity = analyzed.Similarity
	return project, nil
}
