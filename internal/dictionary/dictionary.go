// Package dictionary compiles user-editable classification dictionaries for
// the winnow CLI tool.
//
// A dictionary is an ordered mapping from category name to a list of phrases.
// Order is not incidental: it is the match priority, so the parser preserves
// the key order of the source document instead of round-tripping through a Go
// map. Each category compiles to a single case-insensitive matcher, either
// plain substring matching (the default) or whole-word matching bounded by
// word boundaries.
package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// MatchMode selects how compiled phrase matchers interpret a phrase.
type MatchMode int

const (
	// MatchSubstring matches a phrase anywhere in the lower-cased text.
	MatchSubstring MatchMode = iota
	// MatchWholeWord matches a phrase only at word boundaries (or string
	// start/end).
	MatchWholeWord
)

// String returns the string representation of the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchWholeWord:
		return "whole-word"
	default:
		return "unknown"
	}
}

// InvalidDictionaryError reports a dictionary document that cannot be
// normalized to the category → phrase-list shape.
type InvalidDictionaryError struct {
	Category string // offending category, if known
	Reason   string
}

func (e *InvalidDictionaryError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("invalid dictionary: category %q: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("invalid dictionary: %s", e.Reason)
}

// Category is one classification bucket: a name and its cleaned phrase list.
type Category struct {
	Name    string
	Phrases []string

	match func(lower string) bool
}

// Dictionary is the ordered, compiled category list. Earlier categories win
// first-match resolution.
type Dictionary struct {
	categories []Category
}

// Entry is one raw category → phrases pair used for programmatic
// construction (Parse produces the same shape from JSON or YAML).
type Entry struct {
	Name    string
	Phrases []string
}

// New builds a dictionary from ordered entries, applying the normalization
// contract: phrases are trimmed, empty phrases are dropped, and categories
// left with zero phrases are dropped silently.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{}
	for _, e := range entries {
		var phrases []string
		for _, p := range e.Phrases {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				phrases = append(phrases, trimmed)
			}
		}
		if len(phrases) == 0 {
			continue
		}
		d.categories = append(d.categories, Category{Name: e.Name, Phrases: phrases})
	}
	return d
}

// Parse reads a dictionary document in JSON or YAML form. The format is
// detected from the first non-space byte: '{' means JSON, anything else is
// handed to the YAML parser. Key order of the document becomes category
// priority order.
//
// Phrase values are normalized: a bare string becomes a one-phrase list, and
// scalar list items (numbers, booleans) are stringified. Nested structures
// fail with an InvalidDictionaryError naming the category.
func Parse(data []byte) (*Dictionary, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 {
		return nil, &InvalidDictionaryError{Reason: "document is empty"}
	}

	var entries []Entry
	var err error
	if trimmed[0] == '{' {
		entries, err = parseJSON(data)
	} else {
		entries, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	return New(entries), nil
}

// parseJSON walks the JSON token stream directly so that object key order
// survives (unmarshalling into a map would shuffle category priority).
func parseJSON(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &InvalidDictionaryError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &InvalidDictionaryError{Reason: "top-level value must be an object of category → phrase list"}
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &InvalidDictionaryError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, &InvalidDictionaryError{Reason: "category names must be strings"}
		}

		phrases, err := parseJSONPhrases(dec, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: name, Phrases: phrases})
	}

	return entries, nil
}

// parseJSONPhrases consumes one category value: a scalar (one-phrase list)
// or a flat array of scalars.
func parseJSONPhrases(dec *json.Decoder, category string) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, &InvalidDictionaryError{Category: category, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	switch v := tok.(type) {
	case json.Delim:
		if v != '[' {
			return nil, &InvalidDictionaryError{Category: category, Reason: "phrases must be a string or a flat list of scalars"}
		}
		var phrases []string
		for dec.More() {
			item, err := dec.Token()
			if err != nil {
				return nil, &InvalidDictionaryError{Category: category, Reason: fmt.Sprintf("malformed JSON: %v", err)}
			}
			s, err := scalarToPhrase(item, category)
			if err != nil {
				return nil, err
			}
			phrases = append(phrases, s)
		}
		// consume closing ']'
		if _, err := dec.Token(); err != nil {
			return nil, &InvalidDictionaryError{Category: category, Reason: fmt.Sprintf("malformed JSON: %v", err)}
		}
		return phrases, nil
	default:
		s, err := scalarToPhrase(tok, category)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

// scalarToPhrase stringifies a scalar JSON token, rejecting nested values.
func scalarToPhrase(tok json.Token, category string) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	case nil:
		return "", nil
	default:
		return "", &InvalidDictionaryError{Category: category, Reason: fmt.Sprintf("phrase list may only contain scalars, found %v", v)}
	}
}

// parseYAML uses the yaml.Node API, which exposes mappings as ordered
// key/value pairs.
func parseYAML(data []byte) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &InvalidDictionaryError{Reason: fmt.Sprintf("malformed YAML: %v", err)}
	}
	if len(root.Content) == 0 {
		return nil, &InvalidDictionaryError{Reason: "document is empty"}
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &InvalidDictionaryError{Reason: "top-level value must be a mapping of category → phrase list"}
	}

	var entries []Entry
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &InvalidDictionaryError{Reason: "category names must be strings"}
		}
		name := keyNode.Value

		var phrases []string
		switch valNode.Kind {
		case yaml.ScalarNode:
			phrases = []string{valNode.Value}
		case yaml.SequenceNode:
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, &InvalidDictionaryError{Category: name, Reason: "phrase list may only contain scalars"}
				}
				phrases = append(phrases, item.Value)
			}
		default:
			return nil, &InvalidDictionaryError{Category: name, Reason: "phrases must be a string or a flat list of scalars"}
		}

		entries = append(entries, Entry{Name: name, Phrases: phrases})
	}

	return entries, nil
}

// Compile builds one matcher per category for the given mode. It must be
// called before Match/MatchAll; compiling again replaces the matchers.
func (d *Dictionary) Compile(mode MatchMode) error {
	for i := range d.categories {
		cat := &d.categories[i]
		switch mode {
		case MatchWholeWord:
			re, err := compileWholeWord(cat.Phrases)
			if err != nil {
				return &InvalidDictionaryError{Category: cat.Name, Reason: fmt.Sprintf("cannot compile matcher: %v", err)}
			}
			cat.match = re.MatchString
		default:
			lowered := make([]string, len(cat.Phrases))
			for j, p := range cat.Phrases {
				lowered[j] = strings.ToLower(p)
			}
			cat.match = func(lower string) bool {
				for _, p := range lowered {
					if strings.Contains(lower, p) {
						return true
					}
				}
				return false
			}
		}
	}
	return nil
}

// compileWholeWord builds a single alternation regex for a phrase list.
// A \b guard is added only where the phrase edge is a word rune; phrases
// that start or end with punctuation (hashtags, for example) keep substring
// semantics at that edge, since a word boundary is undefined there.
func compileWholeWord(phrases []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		pattern := regexp.QuoteMeta(strings.ToLower(p))
		runes := []rune(p)
		if isWordRune(runes[0]) {
			pattern = `\b` + pattern
		}
		if isWordRune(runes[len(runes)-1]) {
			pattern += `\b`
		}
		alts = append(alts, pattern)
	}
	return regexp.Compile(`(?:` + strings.Join(alts, "|") + `)`)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Len returns the number of categories that survived normalization.
func (d *Dictionary) Len() int {
	return len(d.categories)
}

// Categories returns category names in priority order.
func (d *Dictionary) Categories() []string {
	names := make([]string, len(d.categories))
	for i, cat := range d.categories {
		names[i] = cat.Name
	}
	return names
}

// Entries returns the normalized category → phrases pairs in priority order.
func (d *Dictionary) Entries() []Entry {
	entries := make([]Entry, len(d.categories))
	for i, cat := range d.categories {
		entries[i] = Entry{Name: cat.Name, Phrases: cat.Phrases}
	}
	return entries
}

// Match returns the first category (in priority order) whose matcher hits
// anywhere in text. Matching is case-insensitive. The boolean is false when
// no category matches.
func (d *Dictionary) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, cat := range d.categories {
		if cat.match != nil && cat.match(lower) {
			return cat.Name, true
		}
	}
	return "", false
}

// MatchAll returns every matching category in priority order. An empty slice
// signals no match.
func (d *Dictionary) MatchAll(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, cat := range d.categories {
		if cat.match != nil && cat.match(lower) {
			matched = append(matched, cat.Name)
		}
	}
	return matched
}
