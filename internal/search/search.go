// Package search filters loaded content by title. Every word of the query
// must appear in the title in order of its letters (accents and case are
// ignored) but the words themselves may come in any order.
package search

import (
	"slices"
	"strings"
	"unicode"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/flick/internal/domain"
)

// extraWordPenalty is added per title word the query did not ask for, so
// "batman" ranks "Batman" above "Batman Begins"
const extraWordPenalty = 5

// Match is an item that passed the filter, with match metadata for highlighting
type Match struct {
	Item           domain.ContentItem
	MatchedIndexes []int // Byte offsets into the display title
	Score          int   // Lower is better
}

// Index implements sahilm/fuzzy.Source over a page of content
type Index struct {
	items       []domain.ContentItem
	lowerTitles []string // Pre-computed lowercase titles
}

// NewIndex builds an index over items in their display order
func NewIndex(items []domain.ContentItem) *Index {
	idx := &Index{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, it := range items {
		idx.lowerTitles[i] = strings.ToLower(it.DisplayTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.items) }

// Filter returns the items matching query, best first. A blank query
// returns every item in its original order.
func (idx *Index) Filter(query string) []Match {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		out := make([]Match, len(idx.items))
		for i, it := range idx.items {
			out[i] = Match{Item: it}
		}
		return out
	}

	// Highlight positions per item, one subsequence search per token
	positions := make([][]int, idx.Len())
	for _, tok := range tokens {
		for _, found := range fuzzy.FindFrom(tok, idx) {
			positions[found.Index] = append(positions[found.Index], found.MatchedIndexes...)
		}
	}

	var out []Match
	for i := range idx.items {
		if m, ok := idx.match(i, tokens, positions[i]); ok {
			out = append(out, m)
		}
	}

	// Lower score first, then shorter title
	slices.SortStableFunc(out, func(a, b Match) int {
		if a.Score != b.Score {
			return a.Score - b.Score
		}
		return len(a.Item.DisplayTitle()) - len(b.Item.DisplayTitle())
	})
	return out
}

// match checks every query token against the title at i. Ranking folds
// accents, so a token can match without contributing highlight positions.
func (idx *Index) match(i int, tokens []string, positions []int) (Match, bool) {
	title := idx.lowerTitles[i]
	score := 0

	for _, tok := range tokens {
		rank := fuzzysearch.RankMatchNormalizedFold(tok, title)
		if rank < 0 {
			return Match{}, false
		}
		score += rank
	}

	if extra := len(tokenize(title)) - len(tokens); extra > 0 {
		score += extra * extraWordPenalty
	}

	return Match{
		Item:           idx.items[i],
		MatchedIndexes: displayOffsets(title, idx.items[i].DisplayTitle(), positions),
		Score:          score,
	}, true
}

// displayOffsets maps byte offsets in the lowercase title onto the display
// title. Lowercasing maps rune to rune but may change a rune's byte length,
// so offsets are carried across by rune position.
func displayOffsets(lower, display string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	runeAt := make(map[int]int, len(lower))
	n := 0
	for b := range lower {
		runeAt[b] = n
		n++
	}
	var byteOf []int
	for b := range display {
		byteOf = append(byteOf, b)
	}

	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		r, ok := runeAt[off]
		if !ok || r >= len(byteOf) {
			continue
		}
		out = append(out, byteOf[r])
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// tokenize splits text into lowercase words of letters and digits
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
