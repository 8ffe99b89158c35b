package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/corpus"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

// PlagiarismService runs the similarity check over a paper's sections.
// Span discovery belongs to the corpus collaborator; this service owns
// sanitizing, aggregation and scoring.
type PlagiarismService struct {
	corpus corpus.Corpus
}

func NewPlagiarismService(c corpus.Corpus) *PlagiarismService {
	return &PlagiarismService{corpus: c}
}

// Check looks up every non-empty section against the corpus and
// aggregates the matches into one result. The overall score is the
// length-weighted mean of match similarities scaled to [0,100]; spans
// overlapping within a section are not double-counted in the weights.
func (s *PlagiarismService) Check(ctx context.Context, sections map[model.Section]string) (*model.SimilarityResult, error) {
	for name := range sections {
		if !model.ValidSection(string(name)) {
			return nil, fmt.Errorf("%w: unknown section %q", appErr.ErrInvalid, name)
		}
	}
	totalLen := 0
	for _, text := range sections {
		totalLen += len(text)
	}

	result := &model.SimilarityResult{Matches: make([]model.SimilarityMatch, 0)}
	var weighted float64
	for _, name := range model.SectionOrder {
		text := sections[name]
		if strings.TrimSpace(text) == "" {
			continue
		}
		found, err := s.corpus.Lookup(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: corpus lookup for section %s: %v", appErr.ErrCollaborator, name, err)
		}
		matches := sanitizeMatches(ctx, name, text, found)
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].StartPos < matches[j].StartPos
		})
		weighted += sectionWeight(matches, totalLen)
		result.Matches = append(result.Matches, matches...)
	}

	if len(result.Matches) > 0 {
		score := int(math.Round(weighted * 10))
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
		result.Score = score
	}
	return result, nil
}

// sanitizeMatches converts collaborator spans into model matches,
// clamping out-of-range offsets and dropping empty spans. The corpus
// interface promises valid spans, but the aggregation must not trust
// that.
func sanitizeMatches(ctx context.Context, section model.Section, text string, found []corpus.Match) []model.SimilarityMatch {
	matches := make([]model.SimilarityMatch, 0, len(found))
	for _, m := range found {
		start, end := m.Start, m.End
		if start < 0 {
			start = 0
		}
		if end > len(text) {
			end = len(text)
		}
		if start >= end {
			logutil.GetLogger(ctx).Warn("dropping invalid corpus span",
				zap.String("section", string(section)), zap.Int("start", m.Start), zap.Int("end", m.End))
			continue
		}
		similarity := m.Similarity
		if similarity < 0 {
			similarity = 0
		}
		if similarity > 100 {
			similarity = 100
		}
		matches = append(matches, model.SimilarityMatch{
			Section:    section,
			StartPos:   start,
			EndPos:     end,
			Text:       text[start:end],
			Source:     m.Source,
			Similarity: similarity,
		})
	}
	return matches
}

// sectionWeight sums similarity * weight over the section's matches,
// where weight is the match's share of distinct covered offsets in the
// whole document. Matches must be sorted by StartPos.
func sectionWeight(matches []model.SimilarityMatch, totalLen int) float64 {
	if totalLen == 0 {
		return 0
	}
	var weighted float64
	covered := make([][2]int, 0, len(matches))
	for _, m := range matches {
		effective := m.EndPos - m.StartPos
		for _, iv := range covered {
			overlap := min(m.EndPos, iv[1]) - max(m.StartPos, iv[0])
			if overlap > 0 {
				effective -= overlap
			}
		}
		if effective < 0 {
			effective = 0
		}
		weighted += float64(m.Similarity) * float64(effective) / float64(totalLen)
		covered = mergeInterval(covered, [2]int{m.StartPos, m.EndPos})
	}
	return weighted
}

// mergeInterval keeps the covered set as disjoint sorted intervals.
func mergeInterval(covered [][2]int, iv [2]int) [][2]int {
	merged := make([][2]int, 0, len(covered)+1)
	for _, existing := range covered {
		if existing[1] < iv[0] || iv[1] < existing[0] {
			merged = append(merged, existing)
			continue
		}
		iv[0] = min(iv[0], existing[0])
		iv[1] = max(iv[1], existing[1])
	}
	merged = append(merged, iv)
	sort.Slice(merged, func(i, j int) bool { return merged[i][0] < merged[j][0] })
	return merged
}

// Project groups matches by section for presentation. Pure and
// side-effect free: every section of the input appears in the output
// and highlight slices are never nil.
func (s *PlagiarismService) Project(sections map[model.Section]string, matches []model.SimilarityMatch) map[model.Section]model.SectionHighlights {
	projected := make(map[model.Section]model.SectionHighlights, len(sections))
	for name, text := range sections {
		projected[name] = model.SectionHighlights{Text: text, Highlights: make([]model.Highlight, 0)}
	}
	for _, m := range matches {
		entry, ok := projected[m.Section]
		if !ok {
			continue
		}
		entry.Highlights = append(entry.Highlights, model.Highlight{
			Start:  m.StartPos,
			End:    m.EndPos,
			Source: m.Source,
		})
		projected[m.Section] = entry
	}
	return projected
}

// Report renders a markdown summary of one similarity check.
func (s *PlagiarismService) Report(result *model.SimilarityResult) string {
	var b strings.Builder
	b.WriteString("# Plagiarism Detection Report\n\n")
	fmt.Fprintf(&b, "## Overall Score: %d%%\n\n", result.Score)

	switch {
	case result.Score < 15:
		b.WriteString("**Excellent!** Your paper appears to be highly original.\n\n")
	case result.Score < 30:
		b.WriteString("**Good.** Your paper contains some similar content to existing sources, but is mostly original.\n\n")
	case result.Score < 50:
		b.WriteString("**Caution.** Your paper contains significant amounts of content similar to existing sources.\n\n")
	default:
		b.WriteString("**Warning!** Your paper contains high levels of content similar to existing sources.\n\n")
	}

	if len(result.Matches) > 0 {
		b.WriteString("## Detected Matches\n\n")
		bySection := make(map[model.Section][]model.SimilarityMatch)
		for _, m := range result.Matches {
			bySection[m.Section] = append(bySection[m.Section], m)
		}
		for _, name := range model.SectionOrder {
			matches := bySection[name]
			if len(matches) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", titleCase(string(name)))
			for _, m := range matches {
				fmt.Fprintf(&b, "- **%d%% similar** to %s\n", m.Similarity, m.Source)
				excerpt := m.Text
				if len(excerpt) > 100 {
					excerpt = excerpt[:100] + "..."
				}
				fmt.Fprintf(&b, "  %q\n\n", excerpt)
			}
		}
	} else {
		b.WriteString("No significant matches were found.\n")
	}

	b.WriteString("\n## Recommendations\n\n")
	b.WriteString("- Ensure all direct quotes are properly cited\n")
	b.WriteString("- Paraphrase content from sources using your own words\n")
	b.WriteString("- Add citations for any facts, figures, or ideas that aren't your own\n")
	return b.String()
}

// ReportHTML renders the markdown report to HTML.
func (s *PlagiarismService) ReportHTML(result *model.SimilarityResult) (string, error) {
	var out bytes.Buffer
	if err := goldmark.New().Convert([]byte(s.Report(result)), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
