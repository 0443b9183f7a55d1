// Package extract provides markup cleanup for text cells in the winnow CLI
// tool. Social-media exports frequently embed HTML fragments and entities in
// caption fields; classification should see the visible text only.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text strips HTML markup from one text cell and returns the visible text.
// Cells without markup pass through unchanged, so this is safe to apply to
// every cell of a column. Parse failures fall back to the original cell
// rather than losing data.
func Text(cell string) string {
	// quick gate: no tags and no entities means nothing to do
	if !strings.ContainsAny(cell, "<&") {
		return cell
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return cell
	}

	return strings.TrimSpace(doc.Text())
}
