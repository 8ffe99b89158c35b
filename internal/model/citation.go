package model

// Citation is one bibliographic record as returned by a citation
// source. Immutable once retrieved; ranking results reference it but
// never rewrite it.
type Citation struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Journal    string `json:"journal,omitempty"`
	Conference string `json:"conference,omitempty"`
	Year       int    `json:"year"`
	Volume     string `json:"volume,omitempty"`
	Issue      string `json:"issue,omitempty"`
	Pages      string `json:"pages,omitempty"`
	DOI        string `json:"doi,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Venue returns the journal when present, otherwise the conference.
func (c Citation) Venue() string {
	if c.Journal != "" {
		return c.Journal
	}
	return c.Conference
}

type RelevanceTier string

const (
	TierHigh   RelevanceTier = "High"
	TierMedium RelevanceTier = "Medium"
	TierLow    RelevanceTier = "Low"
)

// TierRank maps a tier to its sort rank: High sorts before Medium
// before Low. Unknown tiers sink to the end.
func TierRank(t RelevanceTier) int {
	switch t {
	case TierHigh:
		return 0
	case TierMedium:
		return 1
	case TierLow:
		return 2
	}
	return 3
}

type CitationSuggestion struct {
	Citation  Citation      `json:"citation"`
	Relevance RelevanceTier `json:"relevance"`
	Reason    string        `json:"reason"`
}
