// Package classification holds the keyword tables and extraction helpers shared by the
// fast-path extractor and the local fallback classifier.
package classification

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"

	"github.com/Veraticus/foxy-spend/internal/common"
)

// Keywords of this many runes or fewer only match as whole words, so "dia" does not
// fire inside "media" nor "bar" inside "barato".
const shortKeywordRunes = 4

// Entry binds a keyword to the value it stands for.
type Entry[T any] struct {
	Value   T
	Keyword string
}

// Table finds keywords in free text in a single pass. When several keywords are
// present, the entry listed first wins. Safe for concurrent use.
type Table[T any] struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	entries  []Entry[T]
	mu       sync.Mutex // the matcher keeps per-search state
}

// NewTable builds a table; keywords are folded to lowercase without accents.
func NewTable[T any](entries []Entry[T]) *Table[T] {
	t := &Table[T]{
		entries:  make([]Entry[T], len(entries)),
		keywords: make([]string, len(entries)),
	}
	copy(t.entries, entries)

	patterns := make([][]byte, len(entries))
	for i, e := range entries {
		t.keywords[i] = common.Fold(strings.TrimSpace(e.Keyword))
		patterns[i] = []byte(t.keywords[i])
	}
	if len(patterns) > 0 {
		t.matcher = ahocorasick.NewMatcher(patterns)
	}
	return t
}

// Lookup returns the value of the first listed keyword present in text.
func (t *Table[T]) Lookup(text string) (T, bool) {
	var zero T
	if t.matcher == nil {
		return zero, false
	}

	folded := common.Fold(text)
	t.mu.Lock()
	hits := t.matcher.Match([]byte(folded))
	t.mu.Unlock()
	if len(hits) == 0 {
		return zero, false
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(t.entries) {
			continue
		}
		if best != -1 && idx > best {
			continue
		}
		if utf8.RuneCountInString(t.keywords[idx]) <= shortKeywordRunes && !containsWord(folded, t.keywords[idx]) {
			continue
		}
		best = idx
	}
	if best == -1 {
		return zero, false
	}
	return t.entries[best].Value, true
}

// Len returns the number of keywords in the table.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// containsWord reports whether word occurs in text delimited by non-letters.
func containsWord(text, word string) bool {
	for start := 0; start <= len(text)-len(word); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:i])
		if (i == 0 || !isWordRune(before)) && boundaryAt(text, end) {
			return true
		}
		start = i + 1
	}
	return false
}

func boundaryAt(s string, offset int) bool {
	if offset >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[offset:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
