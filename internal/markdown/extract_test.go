package markdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/norvik/craftport/internal/apperr"
)

func TestExtract_Empty(t *testing.T) {
	_, err := Extract("", "file")
	if !errors.Is(err, apperr.ErrEmptyDocument) {
		t.Fatalf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestExtract_Directives(t *testing.T) {
	raw := "# My **Post**\n" +
		"> Date: 2021-07-15T13:21:00Z\n" +
		"> Category: Travel, Kilimanjaro\n" +
		"> Tags: hiking, Africa\n" +
		"> Series: Kilimanjaro Trek\n" +
		"> Language: UA\n" +
		"> Draft: true\n" +
		"> ShowToc: true\n" +
		"> TocOpen: false\n" +
		"> Original: https://example.com/post\n" +
		"> Social: https://twitter.com/p/1\n" +
		"\nBody text.\n"

	doc, err := Extract(raw, "file")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "My Post" {
		t.Errorf("title = %q, want %q", doc.Title, "My Post")
	}
	if doc.Date == nil || doc.Date.Format("2006-01-02") != "2021-07-15" {
		t.Errorf("date = %v", doc.Date)
	}
	if len(doc.Categories) != 2 || doc.Categories[0] != "Travel" || doc.Categories[1] != "Kilimanjaro" {
		t.Errorf("categories = %v", doc.Categories)
	}
	if len(doc.Tags) != 2 || doc.Tags[1] != "Africa" {
		t.Errorf("tags = %v", doc.Tags)
	}
	if len(doc.Series) != 1 || doc.Series[0] != "Kilimanjaro Trek" {
		t.Errorf("series = %v", doc.Series)
	}
	if doc.Lang != "uk" {
		t.Errorf("lang = %q, want %q (legacy ua remap)", doc.Lang, "uk")
	}
	if !doc.Draft {
		t.Error("draft = false, want true")
	}
	if doc.ShowToc == nil || !*doc.ShowToc {
		t.Errorf("showToc = %v, want true", doc.ShowToc)
	}
	if doc.TocOpen == nil || *doc.TocOpen {
		t.Errorf("tocOpen = %v, want false", doc.TocOpen)
	}
	if doc.Original != "https://example.com/post" {
		t.Errorf("original = %q", doc.Original)
	}
	if doc.Social != "https://twitter.com/p/1" {
		t.Errorf("social = %q", doc.Social)
	}
	if doc.Slug != "my-post" {
		t.Errorf("slug = %q, want %q", doc.Slug, "my-post")
	}
	if strings.Contains(doc.Content, "> ") || strings.Contains(doc.Content, "# My") {
		t.Errorf("content still contains directives: %q", doc.Content)
	}
	if doc.Content != "Body text." {
		t.Errorf("content = %q", doc.Content)
	}
}

func TestExtract_TitleDirectiveOverridesH1(t *testing.T) {
	doc, err := Extract("# H1 Title\n> Title: Directive Title\n\nBody\n", "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Directive Title" {
		t.Errorf("title = %q, want directive override", doc.Title)
	}
}

func TestExtract_SlugDirectiveOverride(t *testing.T) {
	doc, err := Extract("# A Title\n> Slug: custom-slug\n\nBody\n", "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Slug != "custom-slug" {
		t.Errorf("slug = %q, want %q", doc.Slug, "custom-slug")
	}
}

func TestExtract_SlugFromFileTitle(t *testing.T) {
	doc, err := Extract("Just a body.\n", "My Exported Note")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Slug != "my-exported-note" {
		t.Errorf("slug = %q, want %q", doc.Slug, "my-exported-note")
	}
	if doc.Draft {
		t.Error("draft should default to false")
	}
	if doc.Title != "" || doc.Date != nil || doc.Cover != nil {
		t.Errorf("optional fields should stay absent: %+v", doc)
	}
}

func TestExtract_InvalidDateKeepsLine(t *testing.T) {
	doc, err := Extract("> Date: not-a-date\n\nBody\n", "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Date != nil {
		t.Errorf("date = %v, want nil", doc.Date)
	}
	if !strings.Contains(doc.Content, "> Date: not-a-date") {
		t.Errorf("unparsed date line must stay in body, got %q", doc.Content)
	}
}

func TestExtract_DirectiveWithoutNewlineNotMatched(t *testing.T) {
	doc, err := Extract("Body\n> Draft: true", "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Draft {
		t.Error("directive without trailing newline must not match")
	}
	if !strings.Contains(doc.Content, "> Draft: true") {
		t.Errorf("content = %q", doc.Content)
	}
}

func TestExtract_Cover(t *testing.T) {
	raw := "# Post\n\n![alt text](https://cdn.example.com/cover.jpg \"The Caption\")\n\nBody line.\n"
	doc, err := Extract(raw, "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Cover == nil {
		t.Fatal("cover = nil")
	}
	if doc.Cover.Image != "https://cdn.example.com/cover.jpg" {
		t.Errorf("cover image = %q", doc.Cover.Image)
	}
	if doc.Cover.Caption != "The Caption" {
		t.Errorf("cover caption = %q", doc.Cover.Caption)
	}
	if strings.Contains(doc.Content, "cover.jpg") {
		t.Errorf("cover line must be removed from content: %q", doc.Content)
	}
	if doc.Content != "Body line." {
		t.Errorf("content = %q", doc.Content)
	}
}

func TestExtract_NoCoverWhenFirstLineIsText(t *testing.T) {
	doc, err := Extract("Plain first line.\n\n![img](https://a/b.jpg)\n", "file")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Cover != nil {
		t.Errorf("cover = %+v, want nil", doc.Cover)
	}
}

func TestClean_CollapsesBlankRuns(t *testing.T) {
	got := Clean("a\n\n\n\n\nb\r\nc\n\n")
	want := "a\n\nb\nc"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}
