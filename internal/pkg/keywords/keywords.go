package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxKeywords = 10
	minTokenLen = 4
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// Extract returns the up-to-10 most frequent keywords of text, most
// frequent first, ties broken by first occurrence. Tokens are
// lowercased, stripped of punctuation, and dropped when shorter than
// four characters or on the stopword list. Deterministic for identical
// input; empty text yields an empty slice.
func Extract(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) < minTokenLen {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
