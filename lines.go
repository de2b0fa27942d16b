package mdlite

import "strings"

// lineKind is the lexical class of one physical source line.
type lineKind uint8

const (
	lineBlank lineKind = iota
	lineText
	lineHeading
	lineRule
	lineUnordered
	lineOrdered
)

func (k lineKind) isListItem() bool {
	return k == lineUnordered || k == lineOrdered
}

// line is a classified source line. text holds the payload the block parser
// needs: heading or item text with markers removed, or the verbatim line for
// plain text.
type line struct {
	kind  lineKind
	level int
	text  string
}

// classifyLines splits src into physical lines and classifies each one.
func classifyLines(src string) []line {
	if src == "" {
		return nil
	}
	out := make([]line, 0, strings.Count(src, "\n")+1)
	for {
		idx := strings.IndexByte(src, '\n')
		if idx < 0 {
			out = append(out, classifyLine(src))
			return out
		}
		out = append(out, classifyLine(src[:idx]))
		src = src[idx+1:]
	}
}

// classifyLine applies the classification rules in precedence order. The
// first matching rule wins.
func classifyLine(raw string) line {
	raw = strings.TrimSuffix(raw, "\r")
	if isRule(raw) {
		return line{kind: lineRule}
	}
	if level, text, ok := parseHeading(raw); ok {
		return line{kind: lineHeading, level: level, text: text}
	}
	if text, ok := parseUnorderedItem(raw); ok {
		return line{kind: lineUnordered, text: text}
	}
	if text, ok := parseOrderedItem(raw); ok {
		return line{kind: lineOrdered, text: text}
	}
	if strings.TrimSpace(raw) == "" {
		return line{kind: lineBlank}
	}
	return line{kind: lineText, text: raw}
}

func isRule(text string) bool {
	return text == "---"
}

// parseHeading accepts 1 to MaxHeadingLevel '#' markers followed by at least
// one space. Longer marker runs are not headings.
func parseHeading(text string) (int, string, bool) {
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel {
		return 0, "", false
	}
	if level >= len(text) || text[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(text[level+1:]), true
}

func parseUnorderedItem(text string) (string, bool) {
	if len(text) < 2 || text[0] != '-' || text[1] != ' ' {
		return "", false
	}
	return strings.TrimSpace(text[2:]), true
}

// parseOrderedItem matches one or more digits, a dot and one whitespace
// character. The digits themselves are dropped.
func parseOrderedItem(text string) (string, bool) {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(text) || text[i] != '.' || !isSpace(text[i+1]) {
		return "", false
	}
	return strings.TrimSpace(text[i+2:]), true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
