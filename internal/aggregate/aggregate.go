// Package aggregate assembles per-sentence and per-row results into the
// output tables the winnow CLI tool produces.
//
// Four shapes are supported: exploded statement rows and record-level
// one-hot labels for dictionary classification, and statement-level scores
// and ID-level aggregation for classifier word metrics. Every shape
// preserves input row order and first-seen column order; nothing is dropped
// silently, and malformed classifier values either fail the batch (default)
// or are skipped with a reported count.
package aggregate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"winnow/internal/classify"
	"winnow/internal/counter"
	"winnow/internal/dictionary"
	"winnow/internal/score"
	"winnow/internal/segment"
	"winnow/internal/table"
)

// Output column names shared by the classification shapes.
const (
	ColPosition = "sentence_position"
	ColSentence = "sentence"
	ColCategory = "category"
	ColLabels   = "labels"
)

// labelSeparator joins category names in multi-label cells.
const labelSeparator = "; "

// Policy decides what happens when a classifier value cannot be coerced.
type Policy int

const (
	// FailFast aborts the batch on the first malformed value (default).
	FailFast Policy = iota
	// SkipRows drops the offending row and reports a skip count.
	SkipRows
)

// MalformedValueError reports a classifier cell that could not be coerced to
// a numeric or boolean value. Row is the 1-based data row index (the header
// is row zero).
type MalformedValueError struct {
	Column string
	Row    int
	Value  string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value %q in column %q at row %d: expected a number or boolean",
		e.Value, e.Column, e.Row)
}

// ExplodeOptions configures statement-level classification output.
type ExplodeOptions struct {
	TextColumn string
	Hashtags   bool
	MultiLabel bool
	Clean      func(string) string // optional text-cell preprocessing
}

// ExplodeStatements emits one output row per sentence unit: the full source
// row, then sentence position, sentence content, and the resolved category
// (or joined labels in multi-label mode). Records preserve input order and
// units preserve segmentation order. Records that segment to zero units
// contribute no rows.
func ExplodeStatements(src *table.Table, cls *classify.Classifier, opts ExplodeOptions) (*table.Table, error) {
	if err := src.Require(opts.TextColumn); err != nil {
		return nil, err
	}

	out := table.New(src.Columns...)
	out.EnsureColumn(ColPosition)
	out.EnsureColumn(ColSentence)
	if opts.MultiLabel {
		out.EnsureColumn(ColLabels)
	} else {
		out.EnsureColumn(ColCategory)
	}

	for _, row := range src.Rows {
		text := row[opts.TextColumn]
		if opts.Clean != nil {
			text = opts.Clean(text)
		}
		units := segment.Split(text, opts.Hashtags)

		if opts.MultiLabel {
			for _, res := range cls.ClassifyAll(units) {
				out.Append(explodedRow(row, res.Sentence, ColLabels, strings.Join(res.Categories, labelSeparator)))
			}
			continue
		}
		for _, res := range cls.Classify(units) {
			out.Append(explodedRow(row, res.Sentence, ColCategory, res.Category))
		}
	}

	return out, nil
}

func explodedRow(src table.Row, unit segment.Sentence, labelCol, label string) table.Row {
	row := make(table.Row, len(src)+3)
	for k, v := range src {
		row[k] = v
	}
	row[ColPosition] = strconv.Itoa(unit.Position)
	row[ColSentence] = unit.Content
	row[labelCol] = label
	return row
}

// OneHotOptions configures record-level multi-label classification output.
type OneHotOptions struct {
	TextColumn string
	Clean      func(string) string
}

// OneHot classifies each record's full text against the dictionary and emits
// the source row extended with a joined labels column plus one true/false
// column per dictionary category.
func OneHot(src *table.Table, dict *dictionary.Dictionary, opts OneHotOptions) (*table.Table, error) {
	if err := src.Require(opts.TextColumn); err != nil {
		return nil, err
	}

	categories := dict.Categories()

	out := table.New(src.Columns...)
	out.EnsureColumn(ColLabels)
	for _, cat := range categories {
		out.EnsureColumn(cat)
	}

	for _, srcRow := range src.Rows {
		text := srcRow[opts.TextColumn]
		if opts.Clean != nil {
			text = opts.Clean(text)
		}
		matched := dict.MatchAll(text)

		row := make(table.Row, len(srcRow)+len(categories)+1)
		for k, v := range srcRow {
			row[k] = v
		}
		row[ColLabels] = strings.Join(matched, labelSeparator)

		hits := make(map[string]bool, len(matched))
		for _, cat := range matched {
			hits[cat] = true
		}
		for _, cat := range categories {
			row[cat] = strconv.FormatBool(hits[cat])
		}
		out.Append(row)
	}

	return out, nil
}

// MetricsOptions configures the word-metrics shapes.
type MetricsOptions struct {
	IDColumn    string
	TextColumn  string
	Classifiers []string
	Counter     counter.Counter
	Policy      Policy
}

// StatementMetrics emits one row per input row with a synthetic continuous
// score per classifier column:
//
//	row_id, id, statement, word_count,
//	{col}_binary, {col}_continuous, {col}_percentage ...
//
// row_id numbers the emitted rows from 1. The skip count reports rows
// dropped under the SkipRows policy.
func StatementMetrics(src *table.Table, syn *score.Synthesizer, opts MetricsOptions) (*table.Table, int, error) {
	if err := requireMetricsColumns(src, opts); err != nil {
		return nil, 0, err
	}

	out := table.New("row_id", "id", "statement", "word_count")
	for _, col := range opts.Classifiers {
		out.EnsureColumn(col + "_binary")
		out.EnsureColumn(col + "_continuous")
		out.EnsureColumn(col + "_percentage")
	}

	skipped := 0
	for i, srcRow := range src.Rows {
		values, err := classifierValues(srcRow, i+1, opts.Classifiers)
		if err != nil {
			if opts.Policy == SkipRows {
				skipped++
				continue
			}
			return nil, 0, err
		}

		statement := srcRow[opts.TextColumn]
		row := table.Row{
			"row_id":     strconv.Itoa(len(out.Rows) + 1),
			"id":         srcRow[opts.IDColumn],
			"statement":  statement,
			"word_count": strconv.Itoa(opts.Counter.Count(statement)),
		}
		for _, col := range opts.Classifiers {
			v := values[col]
			// percentage comes from the raw score; rounding to 3 decimals
			// first could shift it by one at boundary values
			s := syn.Score(v)
			row[col+"_binary"] = formatFloat(v)
			row[col+"_continuous"] = formatFloat(score.Round3(s))
			row[col+"_percentage"] = strconv.Itoa(score.Percent(s))
		}
		out.Append(row)
	}

	return out, skipped, nil
}

// AggregateByID groups rows by id and emits one row per distinct id:
//
//	id, total_word_count,
//	{col}_word_count, {col}_percentage, {col}_continuous_score ...
//
// Groups appear in first-seen order. For each classifier column the positive
// ratio is the fraction of the group's rows with a positive value; word
// counts are apportioned from the group's total by that ratio. Skipped rows
// are excluded from both the numerator and denominator of their group, and a
// group whose rows are all skipped is omitted entirely.
func AggregateByID(src *table.Table, opts MetricsOptions) (*table.Table, int, error) {
	if err := requireMetricsColumns(src, opts); err != nil {
		return nil, 0, err
	}

	out := table.New("id", "total_word_count")
	for _, col := range opts.Classifiers {
		out.EnsureColumn(col + "_word_count")
		out.EnsureColumn(col + "_percentage")
		out.EnsureColumn(col + "_continuous_score")
	}

	type group struct {
		totalWords int
		size       int
		positives  map[string]int
	}

	var order []string
	groups := make(map[string]*group)

	skipped := 0
	for i, srcRow := range src.Rows {
		values, err := classifierValues(srcRow, i+1, opts.Classifiers)
		if err != nil {
			if opts.Policy == SkipRows {
				skipped++
				continue
			}
			return nil, 0, err
		}

		id := srcRow[opts.IDColumn]
		g, ok := groups[id]
		if !ok {
			g = &group{positives: make(map[string]int, len(opts.Classifiers))}
			groups[id] = g
			order = append(order, id)
		}

		g.size++
		g.totalWords += opts.Counter.Count(srcRow[opts.TextColumn])
		for _, col := range opts.Classifiers {
			if values[col] > 0 {
				g.positives[col]++
			}
		}
	}

	for _, id := range order {
		g := groups[id]
		row := table.Row{
			"id":               id,
			"total_word_count": strconv.Itoa(g.totalWords),
		}
		for _, col := range opts.Classifiers {
			ratio := float64(g.positives[col]) / float64(g.size)
			row[col+"_word_count"] = strconv.Itoa(int(math.Round(float64(g.totalWords) * ratio)))
			row[col+"_percentage"] = strconv.Itoa(int(math.Round(ratio * 100)))
			row[col+"_continuous_score"] = formatFloat(score.Round3(ratio))
		}
		out.Append(row)
	}

	return out, skipped, nil
}

func requireMetricsColumns(src *table.Table, opts MetricsOptions) error {
	required := append([]string{opts.IDColumn, opts.TextColumn}, opts.Classifiers...)
	return src.Require(required...)
}

// classifierValues coerces every classifier cell of one row up front, so a
// row is either used whole or skipped whole.
func classifierValues(row table.Row, rowNum int, classifiers []string) (map[string]float64, error) {
	values := make(map[string]float64, len(classifiers))
	for _, col := range classifiers {
		v, err := coerceValue(row[col])
		if err != nil {
			return nil, &MalformedValueError{Column: col, Row: rowNum, Value: row[col]}
		}
		values[col] = v
	}
	return values, nil
}

// coerceValue interprets a classifier cell: numeric text parses as a float,
// boolean literals map to 1/0, and an empty cell counts as 0 (absent value).
func coerceValue(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, nil
	}
	switch strings.ToLower(trimmed) {
	case "true", "yes":
		return 1, nil
	case "false", "no":
		return 0, nil
	}
	return 0, fmt.Errorf("not a number or boolean: %q", raw)
}

// formatFloat renders a float without trailing zeros (1 rather than 1.000).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
