package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	youtubeRe = regexp.MustCompile(`\n\[(.*?)\]\((?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})\)\n`)
	galleryRe = regexp.MustCompile(`(?s)-{4,}(.+?)-{4,}`)
)

// RewriteYouTube replaces YouTube links isolated on their own line with an
// embed shortcode carrying the 11-character video id and the link text as
// title. Links inline within a paragraph are left untouched.
func RewriteYouTube(content string) string {
	mod := content
	for _, m := range youtubeRe.FindAllStringSubmatch(content, -1) {
		embed := fmt.Sprintf("\n{{< youtube id=%q title=%q >}}\n", m[2], m[1])
		mod = strings.Replace(mod, m[0], embed, 1)
	}
	return mod
}

// RewriteGalleries collapses each dash-delimited block into a gallery
// shortcode wrapping one item per image link, preserving order and captions.
func RewriteGalleries(content string) string {
	mod := content
	for _, m := range galleryRe.FindAllStringSubmatch(content, -1) {
		images := ImageEntries(m[1])
		mod = strings.Replace(mod, m[0], galleryShortcode(images), 1)
	}
	return mod
}

func galleryShortcode(images []Entry) string {
	var b strings.Builder
	b.WriteString("{{< gallery >}}\n")
	for _, img := range images {
		fmt.Fprintf(&b, "  {{< gallery_item src=%q caption=%q >}}\n", img.URL, img.Caption)
	}
	b.WriteString("{{< /gallery >}}")
	return b.String()
}
