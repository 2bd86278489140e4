package markdown

import (
	"regexp"
	"strings"
)

var (
	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\((.*?)\s*("(?:.*[^"])")?\s*\)`)
	pdfRe   = regexp.MustCompile(`\[([^\]]*)\]\((.*?\.pdf)\s*("(?:.*[^"])")?\s*\)`)
	videoRe = regexp.MustCompile(`(?i)\[([^\]]*)\]\((.*?\.(mov|mp4))\s*("(?:.*[^"])")?\s*\)`)

	captionRe = regexp.MustCompile(`(!?)\[[^\]]*\]\((.*?)\s*("(?:.*[^"])")?\s*\)\n+\*\*(.+?)\*\*`)
)

// ImageEntries scans content for ![alt](url "title") links. The caption is
// the quoted title when present, the alt text otherwise.
func ImageEntries(content string) []Entry {
	var out []Entry
	for _, m := range imageRe.FindAllStringSubmatch(content, -1) {
		out = append(out, Entry{
			Raw:     m[0],
			URL:     m[2],
			Caption: entryCaption(m[1], m[3]),
		})
	}
	return out
}

// PDFEntries scans content for links whose URL ends in .pdf. The extension
// match is case-sensitive, matching the export format.
func PDFEntries(content string) []Entry {
	var out []Entry
	for _, m := range pdfRe.FindAllStringSubmatch(content, -1) {
		out = append(out, Entry{
			Raw:     m[0],
			URL:     m[2],
			Caption: entryCaption(m[1], m[3]),
		})
	}
	return out
}

// VideoEntries scans content for links whose URL ends in .mov or .mp4,
// case-insensitively. The matched extension decides which format field
// carries the URL.
func VideoEntries(content string) []VideoEntry {
	var out []VideoEntry
	for _, m := range videoRe.FindAllStringSubmatch(content, -1) {
		e := VideoEntry{Entry: Entry{
			Raw:     m[0],
			URL:     m[2],
			Caption: entryCaption(m[1], m[4]),
		}}
		switch strings.ToLower(m[3]) {
		case "mov":
			e.Formats.MOV = m[2]
		case "mp4":
			e.Formats.MP4 = m[2]
		}
		out = append(out, e)
	}
	return out
}

func entryCaption(alt, title string) string {
	if title != "" {
		return unquote(title)
	}
	return alt
}

// FoldCaptions rewrites a media link followed by a bold-emphasis line into a
// single link carrying the bold text as both alt and quoted title, deleting
// the separate bold line. Image and plain links are handled uniformly.
func FoldCaptions(content string) string {
	mod := content
	for _, m := range captionRe.FindAllStringSubmatch(content, -1) {
		bang, src := m[1], m[2]
		caption := unquote(m[4])
		folded := bang + "[" + caption + "](" + src + " \"" + caption + "\")"
		mod = strings.Replace(mod, m[0], folded, 1)
	}
	return mod
}
