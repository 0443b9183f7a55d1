package classify_test

import (
	"testing"

	"winnow/internal/classify"
	"winnow/internal/dictionary"
	"winnow/internal/segment"
)

func greetingDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New([]dictionary.Entry{
		{Name: "greeting", Phrases: []string{"hello", "hi"}},
	})
	if err := d.Compile(dictionary.MatchWholeWord); err != nil {
		t.Fatalf("Compile() returned error: %v", err)
	}
	return d
}

func TestNew_Validation(t *testing.T) {
	d := greetingDict(t)

	if _, err := classify.New(nil, 0); err == nil {
		t.Error("New(nil, 0) expected error, got nil")
	}
	if _, err := classify.New(d, -1); err == nil {
		t.Error("New(d, -1) expected error, got nil")
	}
	if _, err := classify.New(d, 0); err != nil {
		t.Errorf("New(d, 0) returned error: %v", err)
	}
}

func TestClassify_WindowZero(t *testing.T) {
	d := greetingDict(t)
	c, err := classify.New(d, 0)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	units := segment.Split("Hi there. How are you? #blessed", true)
	results := c.Classify(units)
	if len(results) != 3 {
		t.Fatalf("Classify() yielded %d results, want 3", len(results))
	}

	want := []string{"greeting", classify.Uncategorized, classify.Uncategorized}
	for i, r := range results {
		if r.Category != want[i] {
			t.Errorf("unit %d (%q) classified %q, want %q", i+1, r.Sentence.Content, r.Category, want[i])
		}
	}
}

func TestClassify_WindowOne_NeighborContext(t *testing.T) {
	d := greetingDict(t)
	c, err := classify.New(d, 1)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	units := segment.Split("Hi there. How are you? #blessed", true)
	results := c.Classify(units)
	if len(results) != 3 {
		t.Fatalf("Classify() yielded %d results, want 3", len(results))
	}

	// unit 2's window covers units 1-3, which contains "hi"
	want := []string{"greeting", "greeting", classify.Uncategorized}
	for i, r := range results {
		if r.Category != want[i] {
			t.Errorf("unit %d (%q) classified %q, want %q", i+1, r.Sentence.Content, r.Category, want[i])
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	d := dictionary.New([]dictionary.Entry{
		{Name: "urgency", Phrases: []string{"act now"}},
		{Name: "exclusive", Phrases: []string{"vip"}},
	})
	if err := d.Compile(dictionary.MatchSubstring); err != nil {
		t.Fatalf("Compile() returned error: %v", err)
	}
	c, err := classify.New(d, 0)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	units := segment.Split("Act now, VIP members", false)
	results := c.Classify(units)
	if len(results) != 1 || results[0].Category != "urgency" {
		t.Fatalf("Classify() = %+v, want single urgency result", results)
	}

	// swapped priority flips the resolution
	swapped := dictionary.New([]dictionary.Entry{
		{Name: "exclusive", Phrases: []string{"vip"}},
		{Name: "urgency", Phrases: []string{"act now"}},
	})
	if err := swapped.Compile(dictionary.MatchSubstring); err != nil {
		t.Fatalf("Compile() returned error: %v", err)
	}
	c2, err := classify.New(swapped, 0)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	results = c2.Classify(units)
	if len(results) != 1 || results[0].Category != "exclusive" {
		t.Fatalf("Classify() with swapped dictionary = %+v, want single exclusive result", results)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	d := greetingDict(t)
	c, err := classify.New(d, 1)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	units := segment.Split("Hi there. How are you? Fine. Thanks!", false)
	first := c.Classify(units)
	second := c.Classify(units)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Growing the window can only turn Uncategorized into a real category, never
// the reverse, because the window content is monotonically non-shrinking.
func TestClassify_WindowMonotonicity(t *testing.T) {
	d := greetingDict(t)
	units := segment.Split("Hello friends. Nice weather. Totally unrelated. Nothing here.", false)

	var prev []classify.Result
	for window := 0; window <= 4; window++ {
		c, err := classify.New(d, window)
		if err != nil {
			t.Fatalf("New() returned error: %v", err)
		}
		results := c.Classify(units)

		if prev != nil {
			for i := range results {
				if prev[i].Category != classify.Uncategorized && results[i].Category == classify.Uncategorized {
					t.Errorf("window %d reverted unit %d from %q to Uncategorized",
						window, i+1, prev[i].Category)
				}
			}
		}
		prev = results
	}
}

func TestClassifyAll(t *testing.T) {
	d := dictionary.New([]dictionary.Entry{
		{Name: "urgency", Phrases: []string{"act now"}},
		{Name: "exclusive", Phrases: []string{"vip"}},
	})
	if err := d.Compile(dictionary.MatchSubstring); err != nil {
		t.Fatalf("Compile() returned error: %v", err)
	}
	c, err := classify.New(d, 0)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	units := segment.Split("Act now, VIP members! Plain sentence here.", false)
	results := c.ClassifyAll(units)
	if len(results) != 2 {
		t.Fatalf("ClassifyAll() yielded %d results, want 2", len(results))
	}

	if len(results[0].Categories) != 2 || results[0].Categories[0] != "urgency" || results[0].Categories[1] != "exclusive" {
		t.Errorf("unit 1 categories = %v, want [urgency exclusive]", results[0].Categories)
	}
	// no sentinel in multi-label mode: no match means empty
	if len(results[1].Categories) != 0 {
		t.Errorf("unit 2 categories = %v, want empty", results[1].Categories)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	d := greetingDict(t)
	c, err := classify.New(d, 2)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if got := c.Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
	if got := c.ClassifyAll(nil); got != nil {
		t.Errorf("ClassifyAll(nil) = %v, want nil", got)
	}
}
