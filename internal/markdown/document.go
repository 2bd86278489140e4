// Package markdown extracts directive metadata and media entities from raw
// markdown exports without a full parser. Extraction is a destructive scan:
// every matched directive line is removed from the body, in a fixed order,
// so later rules see earlier removals.
package markdown

import "time"

// Document is the parsed result of one source file.
type Document struct {
	Slug       string
	Title      string
	Date       *time.Time
	Lang       string
	Categories []string
	Tags       []string
	Series     []string
	Draft      bool
	ShowToc    *bool
	TocOpen    *bool
	Original   string
	Social     string
	Cover      *Cover
	Content    string
}

// Cover is the document's lead image, taken from the first body line when it
// matches an image link.
type Cover struct {
	Image   string
	Caption string
}

// Entry is one media link occurrence inside a document body. Raw is the
// byte-exact matched substring, so a single surgical replacement stays safe
// while the body is mutated by later passes.
type Entry struct {
	Raw     string
	URL     string
	Caption string
}

// VideoEntry is a video link occurrence. The matched extension decides which
// of the Formats fields carries the URL itself.
type VideoEntry struct {
	Entry
	Formats VideoFormats
}

// VideoFormats records which variant a video URL already represents.
type VideoFormats struct {
	MOV string
	MP4 string
}
