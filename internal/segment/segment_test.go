package segment_test

import (
	"strings"
	"testing"

	"winnow/internal/segment"
)

func contents(units []segment.Sentence) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Content
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		hashtags bool
		want     []string
	}{
		{
			name:     "sentences and hashtag units",
			text:     "Hi there. How are you? #blessed",
			hashtags: true,
			want:     []string{"Hi there.", "How are you?", "#blessed"},
		},
		{
			name:     "hashtags disabled keeps terminal boundaries",
			text:     "Hi there. How are you? #blessed",
			hashtags: false,
			want:     []string{"Hi there.", "How are you?", "#blessed"},
		},
		{
			name:     "hashtags disabled mid-sentence",
			text:     "Great deals #sale this week only.",
			hashtags: false,
			want:     []string{"Great deals #sale this week only."},
		},
		{
			name:     "hashtag mid-sentence",
			text:     "Great deals #sale this week only.",
			hashtags: true,
			want:     []string{"Great deals", "#sale this week only."},
		},
		{
			name: "no boundaries yields single unit",
			text: "just one sentence without terminal punctuation",
			want: []string{"just one sentence without terminal punctuation"},
		},
		{
			name: "trailing punctuation stays attached",
			text: "Done!",
			want: []string{"Done!"},
		},
		{
			name: "whitespace collapsed within units",
			text: "Hello   \t world.  Next\nline here.",
			want: []string{"Hello world.", "Next line here."},
		},
		{
			name: "punctuation-only fragments discarded",
			text: "Wait... what? !!! Really?",
			want: []string{"Wait...", "what?", "Really?"},
		},
		{
			name: "exclamations and questions",
			text: "Act now! Don't wait? Final hours.",
			want: []string{"Act now!", "Don't wait?", "Final hours."},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "whitespace-only text",
			text: "   \n\t ",
			want: nil,
		},
		{
			name:     "leading hashtag does not create empty unit",
			text:     "#first thing in the morning",
			hashtags: true,
			want:     []string{"#first thing in the morning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contents(segment.Split(tt.text, tt.hashtags))
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplit_PositionsAreSequential(t *testing.T) {
	units := segment.Split("One. ... Two! ??? Three?", false)
	if len(units) != 3 {
		t.Fatalf("Split() yielded %d units, want 3", len(units))
	}
	for i, u := range units {
		if u.Position != i+1 {
			t.Errorf("unit %d has Position %d, want %d (renumbered after discarding)", i, u.Position, i+1)
		}
	}
}

// Re-segmenting the space-joined output of one pass must never yield fewer
// units, since cleanup only discards and never merges across boundaries.
func TestSplit_ResegmentationNeverMerges(t *testing.T) {
	texts := []string{
		"Hi there. How are you? #blessed",
		"Order now! Limited time.   Don't wait!",
		"one sentence",
		"Wait... what? !!! Really?",
	}

	for _, text := range texts {
		for _, hashtags := range []bool{false, true} {
			first := segment.Split(text, hashtags)
			joined := strings.Join(contents(first), " ")
			second := segment.Split(joined, hashtags)
			if len(second) < len(first) {
				t.Errorf("re-segmenting %q produced %d units, fewer than the original %d",
					joined, len(second), len(first))
			}
		}
	}
}
