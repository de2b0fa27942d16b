package mdlite

import (
	"bytes"
	"testing"
)

func TestRenderHTMLBlocks(t *testing.T) {
	doc := Document{
		Heading{Level: 2, Content: Inlines{Text{Value: "Title"}}},
		Paragraph{Content: Inlines{Text{Value: "a"}, LineBreak{}, Bold{Content: Inlines{Text{Value: "b"}}}}},
		List{Items: []Inlines{{Text{Value: "x"}}, {Text{Value: "y"}}}},
		List{Ordered: true, Items: []Inlines{{Text{Value: "z"}}}},
		HorizontalRule{},
	}
	want := "<h2>Title</h2>\n" +
		"<p>a<br/><strong>b</strong></p>\n" +
		"<ul>\n<li>x</li>\n<li>y</li>\n</ul>\n" +
		"<ol>\n<li>z</li>\n</ol>\n" +
		"<hr/>"
	if got := RenderHTML(doc); got != want {
		t.Fatalf("unexpected html\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderHTMLInlines(t *testing.T) {
	doc := Document{Paragraph{Content: Inlines{
		Link{Text: Inlines{Text{Value: "go"}}, Href: "https://go.dev/?a=1&b=2"},
		Text{Value: " "},
		Image{Alt: `say "hi" <now>`, Src: `http://img/x.png?w=1&h="2"`},
	}}}
	want := `<p><a href="https://go.dev/?a=1&amp;b=2" target="_blank" rel="noopener">go</a> ` +
		`<img src="http://img/x.png?w=1&amp;h=&quot;2&quot;" alt="say &quot;hi&quot; &lt;now&gt;" /></p>`
	if got := RenderHTML(doc); got != want {
		t.Fatalf("unexpected html\n got: %q\nwant: %q", got, want)
	}
}

func TestAppendEscaped(t *testing.T) {
	cases := []struct {
		in   string
		attr bool
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a & b < c > d", want: "a &amp; b &lt; c &gt; d"},
		{in: "&amp;", want: "&amp;amp;"},
		{in: `"quoted"`, want: `"quoted"`},
		{in: `"quoted"`, attr: true, want: "&quot;quoted&quot;"},
		{in: "<<>>", want: "&lt;&lt;&gt;&gt;"},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := string(appendEscaped(nil, tc.in, tc.attr)); got != tc.want {
			t.Fatalf("appendEscaped(%q, %v) = %q, want %q", tc.in, tc.attr, got, tc.want)
		}
	}
}

func TestWriteHTMLMatchesRenderHTML(t *testing.T) {
	doc := Parse("# a\n\ntext **b**\n- x\n- y\n---\n1. z")
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if buf.String() != RenderHTML(doc) {
		t.Fatalf("WriteHTML and RenderHTML differ\nwrite:  %q\nrender: %q", buf.String(), RenderHTML(doc))
	}
}

func TestRenderHTMLEmptyDocument(t *testing.T) {
	if got := RenderHTML(nil); got != "" {
		t.Fatalf("expected empty fragment, got %q", got)
	}
}
