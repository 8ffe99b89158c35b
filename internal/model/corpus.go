package model

// CorpusSource is one reference document the similarity checker
// matches against.
type CorpusSource struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Ctime       int64  `json:"ctime"`
}
