package markdown

import (
	"strings"
	"testing"
)

func TestRewriteYouTube_Isolated(t *testing.T) {
	in := "\n\n[Мег Джей: Чому 30 - це не нові 20? (TED Talks)](https://www.youtube.com/watch?v=CPAjeQFygjQ)\n\n"
	want := "\n\n{{< youtube id=\"CPAjeQFygjQ\" title=\"Мег Джей: Чому 30 - це не нові 20? (TED Talks)\" >}}\n\n"
	if got := RewriteYouTube(in); got != want {
		t.Errorf("RewriteYouTube = %q, want %q", got, want)
	}
}

func TestRewriteYouTube_ShortURL(t *testing.T) {
	in := "\n[My Title](https://youtu.be/abcDEF12345)\n"
	want := "\n{{< youtube id=\"abcDEF12345\" title=\"My Title\" >}}\n"
	if got := RewriteYouTube(in); got != want {
		t.Errorf("RewriteYouTube = %q, want %q", got, want)
	}
}

func TestRewriteYouTube_InlineLeftAlone(t *testing.T) {
	in := "See [My Title](https://youtu.be/abcDEF12345) for details.\n"
	if got := RewriteYouTube(in); got != in {
		t.Errorf("inline link must stay untouched, got %q", got)
	}
}

func TestRewriteYouTube_NoMatch(t *testing.T) {
	if got := RewriteYouTube("# Hello World"); got != "# Hello World" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestRewriteGalleries(t *testing.T) {
	in := "before\n----\n![a](u1)\n![b](u2)\n----\nafter"
	got := RewriteGalleries(in)
	want := "before\n{{< gallery >}}\n" +
		"  {{< gallery_item src=\"u1\" caption=\"a\" >}}\n" +
		"  {{< gallery_item src=\"u2\" caption=\"b\" >}}\n" +
		"{{< /gallery >}}\nafter"
	if got != want {
		t.Errorf("RewriteGalleries = %q, want %q", got, want)
	}
}

func TestRewriteGalleries_OrderPreserved(t *testing.T) {
	in := "----\n![z](u9)\n![a](u1)\n----"
	got := RewriteGalleries(in)
	if strings.Index(got, "u9") > strings.Index(got, "u1") {
		t.Errorf("image order not preserved: %q", got)
	}
}

func TestRewriteGalleries_NoBlock(t *testing.T) {
	in := "no galleries here\n"
	if got := RewriteGalleries(in); got != in {
		t.Errorf("got %q, want unchanged", got)
	}
}
