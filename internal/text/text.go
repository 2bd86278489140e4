// Package text provides slug, filename, and markdown-stripping helpers used
// across the import pipeline.
package text

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Slugify converts s into a URL-safe identifier: lower case, runs of
// non-alphanumeric characters collapsed to a single dash, dashes trimmed
// from both ends. Unicode letters and digits are preserved.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// SanitizeFileName strips characters that are unsafe in file names and
// collapses whitespace to dashes. The extension separator is preserved.
func SanitizeFileName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range name {
		switch {
		case r == '.' || r == '_' || r == '-' ||
			unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// StripMarkdown returns the plain text of an inline markdown fragment,
// dropping emphasis markers, link targets, and code fences. Used for H1 and
// Title directive values.
func StripMarkdown(s string) string {
	src := []byte(s)
	doc := md.Parser().Parse(gtext.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.AutoLink:
			buf.Write(t.URL(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
