package corpus

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

// SourceLister supplies the reference documents to match against, in a
// stable order.
type SourceLister interface {
	List(ctx context.Context, query string) ([]model.CorpusSource, error)
}

// Local finds verbatim word runs shared between the input and the
// stored corpus sources. A run must span at least minRunWords words to
// count; longer runs score higher. Given the same corpus and input the
// output is identical, which the aggregation layer depends on.
type Local struct {
	sources     SourceLister
	minRunWords int
}

func init() {
	Register("local", func(args CreateArgs) (Corpus, error) {
		if args.Sources == nil {
			return nil, fmt.Errorf("local corpus needs a source lister")
		}
		return NewLocal(args.Sources, args.MinRunWords), nil
	})
}

func NewLocal(sources SourceLister, minRunWords int) *Local {
	if minRunWords < 2 {
		minRunWords = 2
	}
	return &Local{sources: sources, minRunWords: minRunWords}
}

func (l *Local) Lookup(ctx context.Context, text string) ([]Match, error) {
	input := tokenize(text)
	if len(input) < l.minRunWords {
		return nil, nil
	}
	sources, err := l.sources.List(ctx, "")
	if err != nil {
		return nil, err
	}
	matches := make([]Match, 0)
	for _, source := range sources {
		matches = append(matches, l.matchSource(input, source)...)
	}
	return matches, nil
}

func (l *Local) matchSource(input []token, source model.CorpusSource) []Match {
	src := tokenize(source.Content)
	if len(src) < l.minRunWords {
		return nil
	}
	shingles := make(map[string]int, len(src))
	for i := len(src) - l.minRunWords; i >= 0; i-- {
		// Iterate backwards so the map keeps the first occurrence.
		shingles[shingleKey(src[i:i+l.minRunWords])] = i
	}

	matches := make([]Match, 0)
	for i := 0; i+l.minRunWords <= len(input); {
		p, ok := shingles[shingleKey(input[i:i+l.minRunWords])]
		if !ok {
			i++
			continue
		}
		length := l.minRunWords
		for i+length < len(input) && p+length < len(src) && input[i+length].word == src[p+length].word {
			length++
		}
		matches = append(matches, Match{
			Source:     source.Description,
			Start:      input[i].start,
			End:        input[i+length-1].end,
			Similarity: runSimilarity(length),
		})
		i += length
	}
	return matches
}

// runSimilarity maps run length in words to a similarity percentage.
// A minimal run is already strong evidence; every extra shared word
// pushes the score toward 100.
func runSimilarity(words int) int {
	score := 50 + 5*words
	if score > 100 {
		return 100
	}
	return score
}

type token struct {
	word  string
	start int
	end   int
}

// tokenize splits text into lowercased words with their byte spans in
// the original text. Punctuation at word edges is ignored for matching
// but kept out of the reported span.
func tokenize(text string) []token {
	tokens := make([]token, 0, len(text)/6)
	i := 0
	for i < len(text) {
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		start := i
		for i < len(text) && !isSpace(text[i]) {
			i++
		}
		if start == i {
			continue
		}
		raw := text[start:i]
		trimmed := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if trimmed == "" {
			continue
		}
		offset := strings.Index(raw, trimmed)
		tokens = append(tokens, token{
			word:  strings.ToLower(trimmed),
			start: start + offset,
			end:   start + offset + len(trimmed),
		})
	}
	return tokens
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func shingleKey(tokens []token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.word
	}
	return strings.Join(words, " ")
}
