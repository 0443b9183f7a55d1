// Package counter provides text counting strategies for the winnow CLI tool.
//
// Word metrics are computed over whitespace-delimited words by default, which
// matches the aggregation semantics of the classifier output. Character and
// token counting (tiktoken cl100k_base) are available as alternatives for
// corpora where word splitting is a poor size proxy.
package counter

// Counter defines the interface for the different text counting strategies.
type Counter interface {
	// Count returns the number of units (words, characters, or tokens) in the text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the available counting strategies.
type CountingMethod int

const (
	// Words counts whitespace-delimited words (default)
	Words CountingMethod = iota
	// Characters counts individual characters including whitespace
	Characters
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Words:
		return "words"
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// ParseMethod maps a user-supplied method name to a CountingMethod.
// An unrecognized name reports false.
func ParseMethod(name string) (CountingMethod, bool) {
	switch name {
	case "", "words":
		return Words, true
	case "characters", "chars":
		return Characters, true
	case "tokens":
		return Tokens, true
	default:
		return Words, false
	}
}

// NewCounter creates a Counter for the specified method. This is a factory
// returning concrete Counter types behind a single entry point. It returns
// an error if the counter cannot be initialized (the tiktoken encoding can
// fail to load).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Characters:
		return NewCharCounter(), nil
	case Tokens:
		return NewTokenCounter()
	default:
		return NewWordCounter(), nil
	}
}
