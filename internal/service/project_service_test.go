package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
)

func newProjectService(t *testing.T) *ProjectService {
	db, _ := openTestDB(t)
	return NewProjectService(repo.NewProjectRepo(db))
}

func TestSegmentAssignsHeadedText(t *testing.T) {
	raw := "Title page stuff\n" +
		"Abstract\n" +
		"This paper studies quantum kernels.\n" +
		"1. Introduction\n" +
		"Quantum computing is growing fast.\n" +
		"Methodology\n" +
		"We ran experiments on simulators.\n" +
		"Results\n" +
		"The kernels outperformed baselines.\n" +
		"Discussion\n" +
		"Implications are broad.\n" +
		"Conclusion\n" +
		"Quantum kernels work.\n" +
		"References\n" +
		"[1] Some citation."

	sections := Segment(raw)
	require.Len(t, sections, len(model.SectionOrder))
	require.Equal(t, "This paper studies quantum kernels.", sections[model.SectionAbstract])
	require.Equal(t, "Quantum computing is growing fast.", sections[model.SectionIntroduction])
	require.Equal(t, "We ran experiments on simulators.", sections[model.SectionMethods])
	require.Equal(t, "The kernels outperformed baselines.", sections[model.SectionResults])
	require.Equal(t, "Implications are broad.", sections[model.SectionDiscussion])
	require.Equal(t, "Quantum kernels work.", sections[model.SectionConclusion])
	require.Equal(t, "[1] Some citation.", sections[model.SectionReferences])
}

func TestSegmentBackgroundMapsToIntroduction(t *testing.T) {
	sections := Segment("Background\nPrior work exists.")
	require.Equal(t, "Prior work exists.", sections[model.SectionIntroduction])
}

func TestSegmentDropsPreamble(t *testing.T) {
	sections := Segment("stray text before any heading\nmore stray text")
	for _, name := range model.SectionOrder {
		require.Empty(t, sections[name])
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	sections := Segment("")
	require.Len(t, sections, len(model.SectionOrder))
	for _, name := range model.SectionOrder {
		require.Empty(t, sections[name])
	}
}

func TestProjectCreateGetDelete(t *testing.T) {
	svc := newProjectService(t)

	project, err := svc.Create(context.Background(), "Quantum Draft", "A. Author", "Abstract\nsome abstract text")
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)

	loaded, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	require.Equal(t, "Quantum Draft", loaded.Title)
	require.Equal(t, "some abstract text", loaded.Sections[model.SectionAbstract])

	list, err := svc.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(context.Background(), project.ID))
	_, err = svc.Get(context.Background(), project.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestProjectCreateRequiresTitle(t *testing.T) {
	svc := newProjectService(t)
	_, err := svc.Create(context.Background(), "  ", "A. Author", "text")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestProjectListFiltersByTitle(t *testing.T) {
	svc := newProjectService(t)
	_, err := svc.Create(context.Background(), "Quantum Kernels", "", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Marine Biology", "", "")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "quantum", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Quantum Kernels", list[0].Title)
}

func TestUpdateSection(t *testing.T) {
	svc := newProjectService(t)
	project, err := svc.Create(context.Background(), "Draft", "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateSection(context.Background(), project.ID, "methods", "new methods text")
	require.NoError(t, err)
	require.Equal(t, "new methods text", updated.Sections[model.SectionMethods])

	loaded, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	require.Equal(t, "new methods text", loaded.Sections[model.SectionMethods])

	_, err = svc.UpdateSection(context.Background(), project.ID, "appendix", "x")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.UpdateSection(context.Background(), "missing-id", "methods", "x")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
