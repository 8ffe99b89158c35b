package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
)

// ProjectService owns paper project records and raw-text ingestion.
type ProjectService struct {
	projects *repo.ProjectRepo
}

func NewProjectService(projects *repo.ProjectRepo) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create segments the raw text into the fixed sections and stores a
// new project.
func (s *ProjectService) Create(ctx context.Context, title, author, raw string) (*model.PaperProject, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title required", appErr.ErrInvalid)
	}
	now := time.Now().Unix()
	project := &model.PaperProject{
		ID:       newID(),
		Title:    title,
		Author:   author,
		Sections: Segment(raw),
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("project created",
		zap.String("project_id", project.ID), zap.String("title", title))
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.PaperProject, error) {
	return s.projects.Get(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, query string, limit uint) ([]model.PaperProject, error) {
	return s.projects.List(ctx, query, limit)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// UpdateSection replaces one section's text. Unknown section names are
// rejected; the section set is a closed enumeration.
func (s *ProjectService) UpdateSection(ctx context.Context, id, section, text string) (*model.PaperProject, error) {
	if !model.ValidSection(section) {
		return nil, fmt.Errorf("%w: unknown section %q", appErr.ErrInvalid, section)
	}
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Sections[model.Section(section)] = text
	project.Mtime = time.Now().Unix()
	if err := s.projects.UpdateSections(ctx, id, project.Sections, project.Mtime); err != nil {
		return nil, err
	}
	return project, nil
}

// SaveAnalysis persists both stage outputs onto the project record.
func (s *ProjectService) SaveAnalysis(ctx context.Context, id string, citations []model.CitationSuggestion, similarity *model.SimilarityResult) error {
	return s.projects.SaveAnalysis(ctx, id, citations, similarity, time.Now().Unix())
}

// sectionHeadings maps heading keywords to the section that follows
// them in the raw text.
var sectionHeadings = []struct {
	keywords []string
	section  model.Section
}{
	{[]string{"abstract"}, model.SectionAbstract},
	{[]string{"introduction", "background"}, model.SectionIntroduction},
	{[]string{"method", "methodology"}, model.SectionMethods},
	{[]string{"result"}, model.SectionResults},
	{[]string{"discussion"}, model.SectionDiscussion},
	{[]string{"conclusion"}, model.SectionConclusion},
	{[]string{"reference", "bibliography"}, model.SectionReferences},
}

// Segment assigns each line of raw text to the section whose heading
// keyword most recently appeared. Lines before any recognized heading
// are dropped. Every fixed section is present in the output, empty
// when nothing was assigned to it.
func Segment(raw string) map[model.Section]string {
	sections := make(map[model.Section]string, len(model.SectionOrder))
	buffers := make(map[model.Section][]string, len(model.SectionOrder))
	for _, name := range model.SectionOrder {
		sections[name] = ""
	}

	var current model.Section
	haveSection := false
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		matched := false
		for _, heading := range sectionHeadings {
			for _, keyword := range heading.keywords {
				if strings.Contains(lower, keyword) {
					current = heading.section
					haveSection = true
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched {
			continue
		}
		if haveSection {
			buffers[current] = append(buffers[current], line)
		}
	}
	for name, lines := range buffers {
		sections[name] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return sections
}
