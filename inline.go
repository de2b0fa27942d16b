package mdlite

import "strings"

// matchFunc finds the leftmost construct in s. It reports the byte span
// [start, end) the construct consumes and the node replacing it.
type matchFunc func(s string) (start, end int, node Inline, ok bool)

// inlinePasses run in priority order. Each pass only sees the Text nodes
// left over by the passes before it, so a consumed span is never matched
// twice.
var inlinePasses = [...]matchFunc{
	matchImage,
	matchLink,
	matchBold,
}

// parseInlines resolves the inline constructs of one block. Constructs do
// not span the line breaks joining a paragraph's source lines.
func parseInlines(text string) Inlines {
	if text == "" {
		return nil
	}
	var out Inlines
	first := true
	for {
		idx := strings.IndexByte(text, '\n')
		seg := text
		if idx >= 0 {
			seg = text[:idx]
		}
		if !first {
			out = append(out, LineBreak{})
		}
		first = false
		out = append(out, parseLine(seg)...)
		if idx < 0 {
			return out
		}
		text = text[idx+1:]
	}
}

func parseLine(text string) Inlines {
	if text == "" {
		return nil
	}
	nodes := Inlines{Text{Value: text}}
	for _, match := range inlinePasses {
		nodes = expandText(nodes, match)
	}
	return nodes
}

// expandText splits every Text node in nodes around the spans match finds.
// Non-text nodes pass through untouched.
func expandText(nodes Inlines, match matchFunc) Inlines {
	out := make(Inlines, 0, len(nodes))
	for _, n := range nodes {
		t, ok := n.(Text)
		if !ok {
			out = append(out, n)
			continue
		}
		s := t.Value
		for s != "" {
			start, end, node, found := match(s)
			if !found {
				break
			}
			if start > 0 {
				out = append(out, Text{Value: s[:start]})
			}
			out = append(out, node)
			s = s[end:]
		}
		if s != "" {
			out = append(out, Text{Value: s})
		}
	}
	return out
}

// matchImage matches ![alt](src). The alt text runs to the first ']' and may
// be empty; the source runs to the first ')' and may not.
func matchImage(s string) (int, int, Inline, bool) {
	from := 0
	for {
		i := strings.Index(s[from:], "![")
		if i < 0 {
			return 0, 0, nil, false
		}
		i += from
		j := strings.IndexByte(s[i+2:], ']')
		if j < 0 {
			return 0, 0, nil, false
		}
		j += i + 2
		if j+1 < len(s) && s[j+1] == '(' {
			k := strings.IndexByte(s[j+2:], ')')
			if k < 0 {
				return 0, 0, nil, false
			}
			k += j + 2
			if k > j+2 {
				return i, k + 1, Image{Alt: s[i+2 : j], Src: s[j+2 : k]}, true
			}
		}
		// Every candidate opening before j closes at j too and fails the
		// same way.
		from = j + 1
	}
}

// matchLink matches [text](href) where href is an absolute http or https
// URL. Anything else stays literal.
func matchLink(s string) (int, int, Inline, bool) {
	// closeAt is the first ')' at or after the last position scanned for
	// one. Later candidates that open before it close there too.
	from, closeAt := 0, -1
	for {
		i := strings.IndexByte(s[from:], '[')
		if i < 0 {
			return 0, 0, nil, false
		}
		i += from
		j := strings.IndexByte(s[i+1:], ']')
		if j < 0 {
			return 0, 0, nil, false
		}
		j += i + 1
		if j > i+1 && j+1 < len(s) && s[j+1] == '(' {
			if closeAt < j+2 {
				k := strings.IndexByte(s[j+2:], ')')
				if k < 0 {
					return 0, 0, nil, false
				}
				closeAt = k + j + 2
			}
			k := closeAt
			if href := s[j+2 : k]; isAbsoluteHTTP(href) {
				return i, k + 1, Link{Text: Inlines{Text{Value: s[i+1 : j]}}, Href: href}, true
			}
		}
		from = j + 1
	}
}

// matchBold matches **text** non-greedily. The text may not be empty, so
// "****" is literal.
func matchBold(s string) (int, int, Inline, bool) {
	i := strings.Index(s, "**")
	if i < 0 || i+3 > len(s) {
		return 0, 0, nil, false
	}
	k := strings.Index(s[i+3:], "**")
	if k < 0 {
		return 0, 0, nil, false
	}
	k += i + 3
	return i, k + 2, Bold{Content: Inlines{Text{Value: s[i+2 : k]}}}, true
}

func isAbsoluteHTTP(href string) bool {
	return hasPrefixFold(href, "http:") || hasPrefixFold(href, "https:")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
