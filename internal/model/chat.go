package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is immutable once created. Ordering within a session is
// by insertion sequence, not by comparing Ctime values.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Ctime   int64  `json:"ctime"`
}

type ChatSession struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
	Ctime    int64         `json:"ctime"`
	Mtime    int64         `json:"mtime"`
}
