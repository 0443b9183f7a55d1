// Package app contains the core application logic for the winnow CLI tool.
// It wires fetching, parsing, dictionary compilation, classification, and
// aggregation into one pipeline, separated from CLI concerns.
package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"winnow/internal/aggregate"
	"winnow/internal/classify"
	"winnow/internal/counter"
	"winnow/internal/dictionary"
	"winnow/internal/extract"
	"winnow/internal/fetch"
	"winnow/internal/score"
	"winnow/internal/spinner"
	"winnow/internal/table"
)

// Mode selects the output shape of one invocation.
type Mode int

const (
	// ClassifyStatements explodes each record into classified sentence rows.
	ClassifyStatements Mode = iota
	// ClassifyRecords labels whole records with one-hot category columns.
	ClassifyRecords
	// MetricsStatements synthesizes continuous scores per input row.
	MetricsStatements
	// MetricsAggregate aggregates classifier columns per distinct id.
	MetricsAggregate
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ClassifyStatements:
		return "statement-level classification"
	case ClassifyRecords:
		return "record-level classification"
	case MetricsStatements:
		return "statement-level metrics"
	case MetricsAggregate:
		return "id-level aggregation"
	default:
		return "unknown"
	}
}

// Config holds all configuration options for one winnow invocation.
type Config struct {
	Source     string // file path, URL, or "-" for stdin
	Dictionary string // dictionary source; empty means the built-in default

	IDColumn    string
	TextColumn  string
	Classifiers []string // classifier columns for the metrics modes

	Mode           Mode
	WindowSize     int  // neighbor units on each side of a sentence
	Hashtags       bool // treat #tokens as standalone sentence units
	MultiLabel     bool // emit all matching categories instead of first match
	WholeWord      bool // whole-word phrase matching instead of substring
	StripHTML      bool // strip markup from text cells before processing
	CountingMethod counter.CountingMethod
	Seed           int64 // score synthesizer seed; 0 means time-based
	SkipMalformed  bool  // skip rows with malformed classifier values

	Quiet bool
	Debug bool
}

// Result carries the output table plus processing notes for the caller.
type Result struct {
	Table       *table.Table
	SkippedRows int
}

// Run executes the winnow pipeline for the given configuration.
//
// Processing steps:
//  1. fetch and parse the input table
//  2. classification modes: load and compile the dictionary, then segment
//     and classify each record
//  3. metrics modes: coerce classifier columns and synthesize or aggregate
//
// ctx cancels in-flight fetches; the computation itself is synchronous and
// owns its input and output exclusively.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("no input source provided")
	}
	if cfg.TextColumn == "" {
		return nil, fmt.Errorf("no text column configured")
	}

	src, err := loadTable(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	slog.Debug("input table loaded", "source", cfg.Source, "rows", src.Len(), "columns", len(src.Columns))

	// spinner for larger tables; output goes to stderr so stdout stays clean
	if !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Processing...")
		sp.Start()
		defer sp.Stop()
	}

	switch cfg.Mode {
	case ClassifyStatements, ClassifyRecords:
		return runClassification(ctx, cfg, src)
	case MetricsStatements, MetricsAggregate:
		return runMetrics(cfg, src)
	default:
		return nil, fmt.Errorf("unsupported mode %d", cfg.Mode)
	}
}

// loadTable fetches a source and parses it as CSV.
func loadTable(ctx context.Context, source string) (*table.Table, error) {
	data, err := fetch.ReadAll(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch input: %w", err)
	}
	tbl, err := table.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input from %q: %w", source, err)
	}
	return tbl, nil
}

// loadDictionary resolves the configured dictionary source and compiles it
// for the requested match mode.
func loadDictionary(ctx context.Context, cfg Config) (*dictionary.Dictionary, error) {
	var dict *dictionary.Dictionary
	if cfg.Dictionary == "" {
		dict = dictionary.Default()
		slog.Debug("using built-in default dictionaries")
	} else {
		data, err := fetch.ReadAll(ctx, cfg.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch dictionary: %w", err)
		}
		dict, err = dictionary.Parse(data)
		if err != nil {
			return nil, err
		}
	}

	mode := dictionary.MatchSubstring
	if cfg.WholeWord {
		mode = dictionary.MatchWholeWord
	}
	if err := dict.Compile(mode); err != nil {
		return nil, err
	}

	slog.Debug("dictionary compiled", "categories", dict.Len(), "mode", mode)
	return dict, nil
}

func runClassification(ctx context.Context, cfg Config, src *table.Table) (*Result, error) {
	dict, err := loadDictionary(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var clean func(string) string
	if cfg.StripHTML {
		clean = extract.Text
	}

	if cfg.Mode == ClassifyRecords {
		out, err := aggregate.OneHot(src, dict, aggregate.OneHotOptions{
			TextColumn: cfg.TextColumn,
			Clean:      clean,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Table: out}, nil
	}

	cls, err := classify.New(dict, cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	out, err := aggregate.ExplodeStatements(src, cls, aggregate.ExplodeOptions{
		TextColumn: cfg.TextColumn,
		Hashtags:   cfg.Hashtags,
		MultiLabel: cfg.MultiLabel,
		Clean:      clean,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Table: out}, nil
}

func runMetrics(cfg Config, src *table.Table) (*Result, error) {
	if cfg.IDColumn == "" {
		return nil, fmt.Errorf("no id column configured")
	}
	if len(cfg.Classifiers) == 0 {
		return nil, fmt.Errorf("no classifier columns configured")
	}

	textCounter, err := counter.NewCounter(cfg.CountingMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	policy := aggregate.FailFast
	if cfg.SkipMalformed {
		policy = aggregate.SkipRows
	}
	opts := aggregate.MetricsOptions{
		IDColumn:    cfg.IDColumn,
		TextColumn:  cfg.TextColumn,
		Classifiers: cfg.Classifiers,
		Counter:     textCounter,
		Policy:      policy,
	}

	var out *table.Table
	var skipped int
	if cfg.Mode == MetricsAggregate {
		out, skipped, err = aggregate.AggregateByID(src, opts)
	} else {
		out, skipped, err = aggregate.StatementMetrics(src, newSynthesizer(cfg.Seed), opts)
	}
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		slog.Debug("rows skipped for malformed classifier values", "count", skipped)
	}
	return &Result{Table: out, SkippedRows: skipped}, nil
}

// newSynthesizer builds the score source. A zero seed means a time-based
// draw; any other value makes the run reproducible.
func newSynthesizer(seed int64) *score.Synthesizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return score.New(rand.New(rand.NewSource(seed)))
}
