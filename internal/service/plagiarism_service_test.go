package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/corpus"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

type stubCorpus struct {
	matches map[string][]corpus.Match
	err     error
	failOn  string
}

func (s *stubCorpus) Lookup(ctx context.Context, text string) ([]corpus.Match, error) {
	if s.err != nil && (s.failOn == "" || strings.Contains(text, s.failOn)) {
		return nil, s.err
	}
	return s.matches[text], nil
}

func TestCheckNoMatchesScoresZero(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	result, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionAbstract: "entirely original text",
	})
	require.NoError(t, err)
	require.Equal(t, 0, result.Score)
	require.Empty(t, result.Matches)
	require.NotNil(t, result.Matches)
}

func TestCheckUnknownSection(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	_, err := svc.Check(context.Background(), map[model.Section]string{
		model.Section("appendix"): "text",
	})
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestCheckWeightedScore(t *testing.T) {
	abstract := strings.Repeat("a", 100)
	methods := strings.Repeat("m", 100)
	stub := &stubCorpus{matches: map[string][]corpus.Match{
		abstract: {{Source: "src1", Start: 0, End: 50, Similarity: 80}},
		methods:  {{Source: "src2", Start: 0, End: 100, Similarity: 60}},
	}}
	svc := NewPlagiarismService(stub)

	result, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionAbstract: abstract,
		model.SectionMethods:  methods,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	// (80*50 + 60*100) / 200 = 50 weighted, scaled by 10 and capped.
	require.Equal(t, 100, result.Score)
}

func TestCheckModerateScore(t *testing.T) {
	text := strings.Repeat("x", 1000)
	stub := &stubCorpus{matches: map[string][]corpus.Match{
		text: {{Source: "src", Start: 0, End: 50, Similarity: 60}},
	}}
	svc := NewPlagiarismService(stub)

	result, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionIntroduction: text,
	})
	require.NoError(t, err)
	// 60 * 50/1000 = 3 weighted, times 10 = 30.
	require.Equal(t, 30, result.Score)
}

func TestCheckOverlappingSpansNotDoubleCounted(t *testing.T) {
	text := strings.Repeat("y", 100)
	stub := &stubCorpus{matches: map[string][]corpus.Match{
		text: {
			{Source: "src", Start: 0, End: 40, Similarity: 50},
			{Source: "src", Start: 20, End: 60, Similarity: 50},
		},
	}}
	svc := NewPlagiarismService(stub)

	result, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionResults: text,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	// Overlap [20,40) counts once: 50*40/100 + 50*20/100 = 30, times 10.
	require.Equal(t, 100, result.Score)
}

func TestCheckSanitizesInvalidSpans(t *testing.T) {
	text := "short section text"
	stub := &stubCorpus{matches: map[string][]corpus.Match{
		text: {
			{Source: "src", Start: -5, End: 5, Similarity: 150},
			{Source: "src", Start: 10, End: 10, Similarity: 40},
			{Source: "src", Start: 500, End: 600, Similarity: 40},
		},
	}}
	svc := NewPlagiarismService(stub)

	result, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionDiscussion: text,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	require.Equal(t, 0, result.Matches[0].StartPos)
	require.Equal(t, 5, result.Matches[0].EndPos)
	require.Equal(t, 100, result.Matches[0].Similarity)
}

func TestCheckCollaboratorFailureNamesSection(t *testing.T) {
	stub := &stubCorpus{err: errors.New("corpus offline"), failOn: "methods body"}
	svc := NewPlagiarismService(stub)

	_, err := svc.Check(context.Background(), map[model.Section]string{
		model.SectionAbstract: "abstract body",
		model.SectionMethods:  "methods body",
	})
	require.ErrorIs(t, err, appErr.ErrCollaborator)
	require.Contains(t, err.Error(), "methods")
}

func TestProjectAllSectionsPresent(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	sections := map[model.Section]string{
		model.SectionAbstract: "abstract text",
		model.SectionMethods:  "methods text",
	}
	matches := []model.SimilarityMatch{
		{Section: model.SectionMethods, StartPos: 0, EndPos: 7, Source: "src"},
		{Section: model.Section("appendix"), StartPos: 0, EndPos: 3, Source: "src"},
	}

	projected := svc.Project(sections, matches)
	require.Len(t, projected, 2)
	require.NotNil(t, projected[model.SectionAbstract].Highlights)
	require.Empty(t, projected[model.SectionAbstract].Highlights)
	require.Len(t, projected[model.SectionMethods].Highlights, 1)
	require.Equal(t, "src", projected[model.SectionMethods].Highlights[0].Source)
}

func TestReportBands(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	tests := []struct {
		score    int
		contains string
	}{
		{5, "Excellent"},
		{20, "Good"},
		{40, "Caution"},
		{70, "Warning"},
	}
	for _, tt := range tests {
		report := svc.Report(&model.SimilarityResult{Score: tt.score})
		require.Contains(t, report, tt.contains)
		require.Contains(t, report, "No significant matches")
	}
}

func TestReportGroupsMatchesBySection(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	result := &model.SimilarityResult{
		Score: 35,
		Matches: []model.SimilarityMatch{
			{Section: model.SectionMethods, Text: "copied methods text", Source: "Reference A", Similarity: 80},
			{Section: model.SectionAbstract, Text: strings.Repeat("z", 150), Source: "Reference B", Similarity: 60},
		},
	}
	report := svc.Report(result)
	require.Contains(t, report, "### Abstract")
	require.Contains(t, report, "### Methods")
	require.Contains(t, report, "Reference A")
	require.Contains(t, report, "...")
	// Abstract comes before methods in the canonical order.
	require.Less(t, strings.Index(report, "### Abstract"), strings.Index(report, "### Methods"))
}

func TestReportHTML(t *testing.T) {
	svc := NewPlagiarismService(&stubCorpus{})
	html, err := svc.ReportHTML(&model.SimilarityResult{Score: 10})
	require.NoError(t, err)
	require.Contains(t, html, "<h1")
	require.Contains(t, html, "Plagiarism Detection Report")
}
