package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/norvik/craftport/internal/markdown"
)

// RenderFrontMatter serializes document metadata into the YAML block the
// site generator expects. Field order is fixed; optional fields are omitted
// when absent, except draft which is always emitted.
func RenderFrontMatter(doc *markdown.Document) string {
	lines := []string{"---"}
	if doc.Title != "" {
		lines = append(lines, fmt.Sprintf("title: %q", doc.Title))
	}
	if doc.Date != nil {
		lines = append(lines, "date: "+doc.Date.UTC().Format(time.RFC3339))
	}
	if len(doc.Categories) > 0 {
		lines = append(lines, "categories:")
		for _, c := range doc.Categories {
			lines = append(lines, "  - "+strings.ToLower(c))
		}
	}
	if len(doc.Tags) > 0 {
		lines = append(lines, "tags:")
		for _, tag := range doc.Tags {
			lines = append(lines, "  - "+strings.ToLower(tag))
		}
	}
	if len(doc.Series) > 0 {
		lines = append(lines, "series:")
		for _, s := range doc.Series {
			lines = append(lines, fmt.Sprintf("  - %q", s))
		}
	}
	if doc.Cover != nil {
		lines = append(lines, "cover:")
		lines = append(lines, fmt.Sprintf("  image: %q", doc.Cover.Image))
		if doc.Cover.Caption != "" {
			lines = append(lines, fmt.Sprintf("  caption: %q", doc.Cover.Caption))
		}
		lines = append(lines, "  relative: true")
	}
	if doc.ShowToc != nil {
		lines = append(lines, fmt.Sprintf("ShowToc: %t", *doc.ShowToc))
	}
	if doc.TocOpen != nil {
		lines = append(lines, fmt.Sprintf("TocOpen: %t", *doc.TocOpen))
	}
	lines = append(lines, fmt.Sprintf("draft: %t", doc.Draft))
	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}
