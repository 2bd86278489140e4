package markdown

import (
	"regexp"
	"strings"
	"time"

	"github.com/norvik/craftport/internal/apperr"
	"github.com/norvik/craftport/internal/text"
)

// Directive and structure patterns. Every directive requires a trailing
// newline; a directive on the final line of a file with no newline is never
// matched. That boundary is part of the export format's observed behavior
// and is kept as-is.
var (
	h1Re       = regexp.MustCompile(`^# (.+?)\n`)
	titleRe    = regexp.MustCompile(`> Title: (.+?)\n`)
	dateRe     = regexp.MustCompile(`> Date: (.+?)\n`)
	categoryRe = regexp.MustCompile(`> Category: (.+?)\n`)
	tagsRe     = regexp.MustCompile(`> Tags: (.+?)\n`)
	seriesRe   = regexp.MustCompile(`> Series: (.+?)\n`)
	langRe     = regexp.MustCompile(`> Language: (.+?)\n`)
	slugRe     = regexp.MustCompile(`> Slug: (.+?)\n`)
	draftRe    = regexp.MustCompile(`> Draft: (.+?)\n`)
	originalRe = regexp.MustCompile(`> Original: (.+?)\n`)
	showTocRe  = regexp.MustCompile(`> ShowToc: (.+?)\n`)
	tocOpenRe  = regexp.MustCompile(`> TocOpen: (.+?)\n`)
	socialRe   = regexp.MustCompile(`> Social: (.+?)\n`)

	coverRe = regexp.MustCompile(`!\[[^\]]*\]\((.*?)\s*("(?:.*[^"])")?\s*\)`)

	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// legacy language codes remapped to their ISO equivalents.
var langAliases = map[string]string{"ua": "uk"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"02.01.2006 15:04",
	"02.01.2006",
}

// Extract parses one raw markdown export. fileTitle is the source file name
// without extension, used as the slug fallback when neither a title nor a
// Slug directive is present. It fails only on empty input.
func Extract(raw string, fileTitle string) (*Document, error) {
	if raw == "" {
		return nil, apperr.ErrEmptyDocument
	}

	doc := &Document{}
	content := raw

	// Ordered fold: each rule sees the previous rules' removals.
	if v, rest, ok := takeFirst(h1Re, content); ok {
		doc.Title = text.StripMarkdown(v)
		content = rest
	}
	if v, rest, ok := takeFirst(titleRe, content); ok {
		doc.Title = text.StripMarkdown(v)
		content = rest
	}
	if v, rest, ok := takeFirst(dateRe, content); ok {
		// Removal is gated on a successful parse: an unparseable date
		// leaves the line in the body untouched.
		if t, err := parseDate(v); err == nil {
			doc.Date = &t
			content = rest
		}
	}
	if v, rest, ok := takeFirst(categoryRe, content); ok {
		doc.Categories = splitList(v)
		content = rest
	}
	if v, rest, ok := takeFirst(tagsRe, content); ok {
		doc.Tags = splitList(v)
		content = rest
	}
	if v, rest, ok := takeFirst(seriesRe, content); ok {
		doc.Series = splitList(v)
		content = rest
	}
	if v, rest, ok := takeFirst(langRe, content); ok {
		lang := strings.ToLower(strings.TrimSpace(v))
		if alias, found := langAliases[lang]; found {
			lang = alias
		}
		doc.Lang = lang
		content = rest
	}
	slug := text.Slugify(doc.Title)
	if slug == "" {
		slug = text.Slugify(fileTitle)
	}
	if v, rest, ok := takeFirst(slugRe, content); ok {
		slug = v
		content = rest
	}
	doc.Slug = slug
	if v, rest, ok := takeFirst(draftRe, content); ok {
		doc.Draft = v == "true"
		content = rest
	}
	if v, rest, ok := takeFirst(originalRe, content); ok {
		doc.Original = v
		content = rest
	}
	if v, rest, ok := takeFirst(showTocRe, content); ok {
		b := v == "true"
		doc.ShowToc = &b
		content = rest
	}
	if v, rest, ok := takeFirst(tocOpenRe, content); ok {
		b := v == "true"
		doc.TocOpen = &b
		content = rest
	}
	if v, rest, ok := takeFirst(socialRe, content); ok {
		doc.Social = v
		content = rest
	}

	content = Clean(content)
	content = FoldCaptions(content)
	if cover, rest, ok := takeCover(content); ok {
		doc.Cover = cover
		content = rest
	}
	doc.Content = Clean(content)

	return doc, nil
}

// takeFirst applies a single-shot rule: the first match's capture is
// returned and the whole matched substring is removed from content.
func takeFirst(re *regexp.Regexp, content string) (value, rest string, ok bool) {
	m := re.FindStringSubmatchIndex(content)
	if m == nil {
		return "", content, false
	}
	value = content[m[2]:m[3]]
	rest = content[:m[0]] + content[m[1]:]
	return value, rest, true
}

// takeCover matches an image link on the first line of content and removes
// that line.
func takeCover(content string) (*Cover, string, bool) {
	line, rest, found := strings.Cut(content, "\n")
	m := coverRe.FindStringSubmatch(line)
	if m == nil {
		return nil, content, false
	}
	cover := &Cover{Image: m[1], Caption: unquote(m[2])}
	if !found {
		rest = ""
	}
	return cover, rest, true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func unquote(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// Clean normalizes whitespace noise left behind by directive removal:
// CRLF line endings, runs of three or more newlines, and surrounding
// whitespace.
func Clean(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = blankRunsRe.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
