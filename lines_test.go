package mdlite

import "testing"

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		in    string
		kind  lineKind
		level int
		text  string
	}{
		{in: "---", kind: lineRule},
		{in: " ---", kind: lineText, text: " ---"},
		{in: "--- ", kind: lineText, text: "--- "},
		{in: "----", kind: lineText, text: "----"},
		{in: "# Title", kind: lineHeading, level: 1, text: "Title"},
		{in: "## Title ", kind: lineHeading, level: 2, text: "Title"},
		{in: "###   Deep", kind: lineHeading, level: 3, text: "Deep"},
		{in: "#### Four", kind: lineText, text: "#### Four"},
		{in: "##### Title", kind: lineText, text: "##### Title"},
		{in: "#NoSpace", kind: lineText, text: "#NoSpace"},
		{in: "#", kind: lineText, text: "#"},
		{in: "- item", kind: lineUnordered, text: "item"},
		{in: "- ", kind: lineUnordered, text: ""},
		{in: "-item", kind: lineText, text: "-item"},
		{in: "1. one", kind: lineOrdered, text: "one"},
		{in: "42.\ttab", kind: lineOrdered, text: "tab"},
		{in: "1.nospace", kind: lineText, text: "1.nospace"},
		{in: "1.", kind: lineText, text: "1."},
		{in: "a. letter", kind: lineText, text: "a. letter"},
		{in: "", kind: lineBlank},
		{in: "   \t ", kind: lineBlank},
		{in: "plain text", kind: lineText, text: "plain text"},
		{in: "  indented", kind: lineText, text: "  indented"},
		{in: "text\r", kind: lineText, text: "text"},
		{in: "---\r", kind: lineRule},
	}
	for _, tc := range cases {
		got := classifyLine(tc.in)
		if got.kind != tc.kind || got.level != tc.level || got.text != tc.text {
			t.Fatalf("classifyLine(%q) = %+v, want kind=%d level=%d text=%q", tc.in, got, tc.kind, tc.level, tc.text)
		}
	}
}

func TestClassifyLinesSplitsOnNewline(t *testing.T) {
	if got := classifyLines(""); len(got) != 0 {
		t.Fatalf("expected no lines for empty input, got %+v", got)
	}
	got := classifyLines("# a\n\n- b\ntext\n")
	want := []lineKind{lineHeading, lineBlank, lineUnordered, lineText, lineBlank}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(got), got)
	}
	for i, kind := range want {
		if got[i].kind != kind {
			t.Fatalf("line %d: expected kind %d, got %d", i, kind, got[i].kind)
		}
	}
}

func TestRulePrecedesUnorderedItem(t *testing.T) {
	if got := classifyLine("---"); got.kind != lineRule {
		t.Fatalf("expected rule, got %+v", got)
	}
	if got := classifyLine("- --"); got.kind != lineUnordered || got.text != "--" {
		t.Fatalf("expected unordered item, got %+v", got)
	}
}
