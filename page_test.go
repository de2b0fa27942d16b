package mdlite

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestRenderPageTitleFromFrontMatter(t *testing.T) {
	page, err := RenderPage("---\ntitle: Launch & Learn\n---\n# Heading\n\nBody")
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	if got := doc.Find("title").Text(); got != "Launch & Learn" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := doc.Find("body h1").Text(); got != "Heading" {
		t.Fatalf("unexpected heading %q", got)
	}
	if doc.Find("body hr").Length() != 0 {
		t.Fatalf("front matter delimiters rendered as rules")
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>\n") {
		t.Fatalf("missing doctype: %q", page)
	}
}

func TestRenderPageTitleFallbacks(t *testing.T) {
	cases := map[string]string{
		"text\n## **Second** level\n# First": "Second level",
		"just text":                          defaultPageTitle,
		"":                                   defaultPageTitle,
	}
	for src, want := range cases {
		page, err := RenderPage(src)
		if err != nil {
			t.Fatalf("RenderPage(%q): %v", src, err)
		}
		if !strings.Contains(page, "<title>"+want+"</title>") {
			t.Fatalf("RenderPage(%q): expected title %q in %q", src, want, page)
		}
	}
}

func TestRenderPageBodyMatchesRender(t *testing.T) {
	src := "# A\n\n- x\n- y"
	page, _ := RenderPage(src)
	want := "<body>\n" + Render(src) + "\n</body>"
	if !strings.Contains(page, want) {
		t.Fatalf("page body does not contain fragment\npage: %q\nwant: %q", page, want)
	}
}

func TestRenderPageBrokenFrontMatter(t *testing.T) {
	page, err := RenderPage("+++\ntitle = = x\n+++\n# Still here")
	if !errors.Is(err, ErrFrontMatter) {
		t.Fatalf("expected ErrFrontMatter, got %v", err)
	}
	if !strings.Contains(page, "<h1>Still here</h1>") || !strings.Contains(page, "<title>Still here</title>") {
		t.Fatalf("expected page to render despite bad front matter: %q", page)
	}
}
