package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
)

// CorpusService manages the reference documents the similarity checker
// matches against.
type CorpusService struct {
	sources *repo.CorpusRepo
}

func NewCorpusService(sources *repo.CorpusRepo) *CorpusService {
	return &CorpusService{sources: sources}
}

func (s *CorpusService) Add(ctx context.Context, description, content string) (*model.CorpusSource, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description required", appErr.ErrInvalid)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content required", appErr.ErrInvalid)
	}
	source := &model.CorpusSource{
		ID:          newID(),
		Description: description,
		Content:     content,
		Ctime:       time.Now().Unix(),
	}
	if err := s.sources.Add(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *CorpusService) List(ctx context.Context, query string) ([]model.CorpusSource, error) {
	return s.sources.List(ctx, query)
}

func (s *CorpusService) Delete(ctx context.Context, id string) error {
	return s.sources.Delete(ctx, id)
}
