package model

// SimilarityMatch is one overlapping span between a section's text and
// a corpus source. Offsets are a half-open byte range within the
// section text: 0 <= StartPos < EndPos <= len(text).
type SimilarityMatch struct {
	Section    Section `json:"section"`
	StartPos   int     `json:"start_pos"`
	EndPos     int     `json:"end_pos"`
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Similarity int     `json:"similarity"`
}

// SimilarityResult is the aggregate of one plagiarism check. Score is
// in [0,100] and is 0 when Matches is empty.
type SimilarityResult struct {
	Score   int               `json:"score"`
	Matches []SimilarityMatch `json:"matches"`
}

type Highlight struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Source string `json:"source"`
}

// SectionHighlights is the presentation projection of matches for one
// section. Highlights is always non-nil.
type SectionHighlights struct {
	Text       string      `json:"text"`
	Highlights []Highlight `json:"highlights"`
}
