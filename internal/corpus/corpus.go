package corpus

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Match is one overlapping span found between the input text and a
// corpus source. Offsets are byte positions within the input text,
// half-open. Similarity is in [0,100].
type Match struct {
	Source     string
	Start      int
	End        int
	Similarity int
}

// Corpus is the plagiarism backend the matcher queries per section.
// Implementations must be deterministic given a fixed corpus and
// input.
type Corpus interface {
	Lookup(ctx context.Context, text string) ([]Match, error)
}

// CreateArgs carries the dependencies a corpus provider may need.
type CreateArgs struct {
	Sources     SourceLister
	MinRunWords int
	Data        interface{}
}

type Factory func(args CreateArgs) (Corpus, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(name string, args CreateArgs) (Corpus, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("corpus.provider is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported corpus provider: %s", name)
	}
	return factory(args)
}
