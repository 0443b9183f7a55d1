// Package classify assigns dictionary categories to sentence units using a
// rolling window of neighboring sentences as context.
//
// For the unit at index i, the context window spans the units from
// max(0, i-window) through min(n-1, i+window) inclusive, space-joined and
// lower-cased. Category resolution iterates the dictionary in priority order
// and takes the first matching category; units with no match receive the
// Uncategorized sentinel. A window of zero degenerates to single-sentence
// classification.
package classify

import (
	"fmt"
	"strings"

	"winnow/internal/dictionary"
	"winnow/internal/segment"
)

// Uncategorized is the sentinel category for units no dictionary category
// matches. Multi-label results use an empty slice instead.
const Uncategorized = "Uncategorized"

// Result pairs a sentence unit with its resolved category.
type Result struct {
	Sentence segment.Sentence
	Category string
}

// MultiResult pairs a sentence unit with every matching category, in
// dictionary priority order.
type MultiResult struct {
	Sentence   segment.Sentence
	Categories []string
}

// Classifier resolves categories for the sentence sequence of one record.
// It holds no per-record state, so one instance can serve a whole table.
type Classifier struct {
	dict   *dictionary.Dictionary
	window int
}

// New creates a Classifier over a compiled dictionary. window is the number
// of neighboring units included on each side of the target unit.
func New(dict *dictionary.Dictionary, window int) (*Classifier, error) {
	if dict == nil {
		return nil, fmt.Errorf("classifier requires a dictionary")
	}
	if window < 0 {
		return nil, fmt.Errorf("window size must be non-negative, got %d", window)
	}
	return &Classifier{dict: dict, window: window}, nil
}

// Classify resolves one category per unit using first-match-wins over the
// dictionary order. Identical input always yields identical output. A nil or
// empty unit slice yields no results.
func (c *Classifier) Classify(units []segment.Sentence) []Result {
	if len(units) == 0 {
		return nil
	}

	results := make([]Result, len(units))
	for i, unit := range units {
		category := Uncategorized
		if match, ok := c.dict.Match(c.windowText(units, i)); ok {
			category = match
		}
		results[i] = Result{Sentence: unit, Category: category}
	}
	return results
}

// ClassifyAll resolves every matching category per unit. Units with no match
// carry an empty category slice; there is no sentinel in multi-label mode.
func (c *Classifier) ClassifyAll(units []segment.Sentence) []MultiResult {
	if len(units) == 0 {
		return nil
	}

	results := make([]MultiResult, len(units))
	for i, unit := range units {
		results[i] = MultiResult{
			Sentence:   unit,
			Categories: c.dict.MatchAll(c.windowText(units, i)),
		}
	}
	return results
}

// windowText concatenates the symmetric context window around index i.
// The dictionary lower-cases its input, so the window is joined as-is.
func (c *Classifier) windowText(units []segment.Sentence, i int) string {
	lo := i - c.window
	if lo < 0 {
		lo = 0
	}
	hi := i + c.window
	if hi > len(units)-1 {
		hi = len(units) - 1
	}

	if lo == hi {
		return units[i].Content
	}

	parts := make([]string, 0, hi-lo+1)
	for j := lo; j <= hi; j++ {
		parts = append(parts, units[j].Content)
	}
	return strings.Join(parts, " ")
}
