package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/citation"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/keywords"
)

const searchPoolSize = 10

// CitationService scores candidate citations against the keywords of a
// paper. Retrieval itself happens behind the citation.Source
// collaborator; this service only ranks whatever pool it receives.
type CitationService struct {
	source       citation.Source
	suggestLimit int
}

func NewCitationService(source citation.Source, suggestLimit int) *CitationService {
	if suggestLimit <= 0 {
		suggestLimit = 5
	}
	return &CitationService{source: source, suggestLimit: suggestLimit}
}

// Search passes a caller query straight to the citation source.
func (s *CitationService) Search(ctx context.Context, query string, limit int) ([]model.Citation, error) {
	if limit <= 0 {
		limit = searchPoolSize
	}
	results, err := s.source.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: citation search: %v", appErr.ErrCollaborator, err)
	}
	return results, nil
}

// Suggest extracts keywords from the paper, pulls a candidate pool
// from the source and ranks it.
func (s *CitationService) Suggest(ctx context.Context, sections map[model.Section]string, limit int) ([]model.CitationSuggestion, error) {
	if limit <= 0 {
		limit = s.suggestLimit
	}
	if err := checkSectionKeys(sections); err != nil {
		return nil, err
	}
	kws := sectionKeywords(sections)
	pool, err := s.source.Search(ctx, strings.Join(kws, " "), searchPoolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: citation search: %v", appErr.ErrCollaborator, err)
	}
	logutil.GetLogger(ctx).Debug("citation pool retrieved",
		zap.Int("pool", len(pool)), zap.Strings("keywords", kws))
	return rank(kws, pool, limit), nil
}

// Rank scores the given pool against the paper's keywords without
// consulting the source.
func (s *CitationService) Rank(sections map[model.Section]string, pool []model.Citation, limit int) ([]model.CitationSuggestion, error) {
	if limit <= 0 {
		limit = s.suggestLimit
	}
	if err := checkSectionKeys(sections); err != nil {
		return nil, err
	}
	return rank(sectionKeywords(sections), pool, limit), nil
}

func (s *CitationService) Format(c model.Citation, style citation.Style) (string, error) {
	return citation.Format(c, style)
}

// checkSectionKeys rejects documents carrying keys outside the fixed
// section enumeration, matching what the analysis stages enforce.
func checkSectionKeys(sections map[model.Section]string) error {
	for name := range sections {
		if !model.ValidSection(string(name)) {
			return fmt.Errorf("%w: unknown section %q", appErr.ErrInvalid, name)
		}
	}
	return nil
}

// sectionKeywords concatenates section text in canonical order so the
// extraction is deterministic, then extracts keywords.
func sectionKeywords(sections map[model.Section]string) []string {
	parts := make([]string, 0, len(sections))
	for _, name := range model.SectionOrder {
		if text := sections[name]; text != "" {
			parts = append(parts, text)
		}
	}
	return keywords.Extract(strings.Join(parts, " "))
}

// rank assigns a tier per candidate from the number of distinct
// keywords found in its title: >=3 High, 1-2 Medium, 0 Low. Sorting by
// tier is stable, so pool order is the within-tier tie-break.
func rank(kws []string, pool []model.Citation, limit int) []model.CitationSuggestion {
	suggestions := make([]model.CitationSuggestion, 0, len(pool))
	for _, c := range pool {
		title := strings.ToLower(c.Title)
		hits := 0
		for _, kw := range kws {
			if strings.Contains(title, kw) {
				hits++
			}
		}
		tier := model.TierLow
		switch {
		case hits >= 3:
			tier = model.TierHigh
		case hits >= 1:
			tier = model.TierMedium
		}
		suggestions = append(suggestions, model.CitationSuggestion{
			Citation:  c,
			Relevance: tier,
			Reason:    reasonFor(tier, kws),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return model.TierRank(suggestions[i].Relevance) < model.TierRank(suggestions[j].Relevance)
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func reasonFor(tier model.RelevanceTier, kws []string) string {
	switch tier {
	case model.TierHigh:
		top := kws
		if len(top) > 2 {
			top = top[:2]
		}
		return fmt.Sprintf("Strongly related to your paper's focus on %s.", strings.Join(top, " and "))
	case model.TierMedium:
		if len(kws) > 0 {
			return fmt.Sprintf("Contains relevant information about %s.", kws[0])
		}
	}
	return "May provide additional context for your research."
}
