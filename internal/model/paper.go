package model

// Section is a fixed-category portion of a paper. The set of valid
// sections is closed; anything else is rejected at the boundary.
type Section string

const (
	SectionAbstract     Section = "abstract"
	SectionIntroduction Section = "introduction"
	SectionMethods      Section = "methods"
	SectionResults      Section = "results"
	SectionDiscussion   Section = "discussion"
	SectionConclusion   Section = "conclusion"
	SectionReferences   Section = "references"
)

// SectionOrder is the canonical ordering used whenever section content
// is concatenated or rendered. Map iteration order is not stable, so
// anything deterministic must walk this slice instead.
var SectionOrder = []Section{
	SectionAbstract,
	SectionIntroduction,
	SectionMethods,
	SectionResults,
	SectionDiscussion,
	SectionConclusion,
	SectionReferences,
}

func ValidSection(name string) bool {
	for _, s := range SectionOrder {
		if s == Section(name) {
			return true
		}
	}
	return false
}

// Paper is the in-flight analysis unit: raw section text plus whatever
// analysis stages have completed so far.
type Paper struct {
	Title      string               `json:"title"`
	Author     string               `json:"author"`
	Sections   map[Section]string   `json:"sections"`
	Citations  []CitationSuggestion `json:"citations,omitempty"`
	Similarity *SimilarityResult    `json:"similarity,omitempty"`
}

// PaperProject is the persisted form of a paper owned by one project
// record.
type PaperProject struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Author     string               `json:"author"`
	Sections   map[Section]string   `json:"sections"`
	Citations  []CitationSuggestion `json:"citations,omitempty"`
	Similarity *SimilarityResult    `json:"similarity,omitempty"`
	Ctime      int64                `json:"ctime"`
	Mtime      int64                `json:"mtime"`
}

// Paper returns the analysis view of the project.
func (p *PaperProject) Paper() *Paper {
	return &Paper{
		Title:      p.Title,
		Author:     p.Author,
		Sections:   p.Sections,
		Citations:  p.Citations,
		Similarity: p.Similarity,
	}
}
