// Package segment splits record text into clean sentence units for the
// winnow CLI tool.
//
// Splitting works in two independent boundary-finding passes that are merged
// and sorted, which keeps each rule auditable on its own:
//  1. Sentence boundaries: positions immediately after a terminal
//     punctuation mark (., !, ?) that is followed by whitespace.
//  2. Hashtag boundaries (optional): positions immediately before a token
//     that begins with '#', so a hashtag becomes its own unit even
//     mid-sentence.
//
// Fragments are whitespace-collapsed and trimmed; fragments that end up
// empty or consist solely of terminal punctuation are discarded. Surviving
// units are renumbered with sequential 1-based positions.
package segment

import (
	"regexp"
	"sort"
	"strings"
)

// compiled once at package initialization, shared by all calls
var (
	terminalRegex   = regexp.MustCompile(`[.!?]\s`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	punctOnlyRegex  = regexp.MustCompile(`^[.!?]+$`)
)

// Sentence is one cleaned, non-empty unit of a record's text. Position is
// 1-based within the record and assigned after discarding, so positions are
// always contiguous.
type Sentence struct {
	Position int
	Content  string
}

// Split segments text into ordered sentence units. When hashtagUnits is
// true, tokens beginning with '#' start a new unit. Empty or
// whitespace-only text yields no units; text without any boundary yields a
// single unit.
func Split(text string, hashtagUnits bool) []Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	boundaries := terminalBoundaries(text)
	if hashtagUnits {
		boundaries = append(boundaries, hashtagBoundaries(text)...)
	}
	sort.Ints(boundaries)

	var units []Sentence
	start := 0
	emit := func(fragment string) {
		cleaned := strings.TrimSpace(whitespaceRegex.ReplaceAllString(fragment, " "))
		if cleaned == "" || punctOnlyRegex.MatchString(cleaned) {
			return
		}
		units = append(units, Sentence{Position: len(units) + 1, Content: cleaned})
	}

	prev := -1
	for _, b := range boundaries {
		if b <= start || b == prev || b >= len(text) {
			continue
		}
		emit(text[start:b])
		start = b
		prev = b
	}
	emit(text[start:])

	return units
}

// terminalBoundaries returns byte offsets immediately after a terminal
// punctuation mark followed by whitespace.
func terminalBoundaries(text string) []int {
	var bounds []int
	for _, loc := range terminalRegex.FindAllStringIndex(text, -1) {
		bounds = append(bounds, loc[0]+1)
	}
	return bounds
}

// hashtagBoundaries returns byte offsets of each '#' that starts a token
// (preceded by whitespace or string start).
func hashtagBoundaries(text string) []int {
	var bounds []int
	prev := ' '
	for i, r := range text {
		if r == '#' && isSpace(prev) {
			bounds = append(bounds, i)
		}
		prev = r
	}
	return bounds
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
