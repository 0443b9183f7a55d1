package counter

import "strings"

// WordCounter counts whitespace-delimited words. This is the counting method
// behind word_count and total_word_count in aggregated output.
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in the text. strings.Fields splits on
// any Unicode whitespace and drops empty fields.
func (wc *WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// Name returns the name of this counting method.
func (wc *WordCounter) Name() string {
	return "words"
}
