package mdlite

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

const defaultRuleWidth = 40

// TerminalRequest configures RenderTerminal.
type TerminalRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// RenderTerminal reads source text from Reader and writes a styled, word
// wrapped plain-text preview to Writer. Width <= 0 disables wrapping. It
// parses exactly like Render; only the output format differs.
func RenderTerminal(req TerminalRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render terminal: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render terminal: writer is nil")
	}
	cfg := newRenderConfig(req.Options)
	tw := newTermWriter(req.Writer, req.Width, req.Theme, cfg)
	return parseStream(req.Reader, cfg, tw.writeBlock)
}

// WriteTerminal writes the terminal preview of an already parsed document.
func WriteTerminal(w io.Writer, doc Document, width int, theme Theme, opts ...RenderOption) error {
	tw := newTermWriter(w, width, theme, newRenderConfig(opts))
	for _, b := range doc {
		if err := tw.writeBlock(b); err != nil {
			return err
		}
	}
	return nil
}

// piece is a run of word characters sharing one style and link target.
type piece struct {
	text  string
	style Style
	href  string
}

// termWriter lays out blocks one at a time. Words are buffered until a
// space or line break so that a word made of several styled pieces is
// wrapped as a unit.
type termWriter struct {
	w        io.Writer
	width    int
	styles   Styles
	osc8     bool
	softWrap bool
	started  bool
	buf      []byte

	lineW      int
	indent     int
	hasContent bool
	word       []piece
	wordW      int
}

func newTermWriter(w io.Writer, width int, th Theme, cfg renderConfig) *termWriter {
	if th == nil {
		th = DefaultTheme()
	}
	return &termWriter{
		w:        w,
		width:    width,
		styles:   th.Styles(),
		osc8:     cfg.osc8,
		softWrap: cfg.softWrap,
	}
}

func (t *termWriter) writeBlock(b Block) error {
	t.buf = t.buf[:0]
	if t.started {
		t.buf = append(t.buf, '\n')
	}
	t.started = true
	switch v := b.(type) {
	case Heading:
		level := min(max(v.Level, 1), MaxHeadingLevel)
		st := t.styles.Heading[level-1]
		t.text(strings.Repeat("#", level)+" ", st, "")
		t.inlines(v.Content, st, "")
		t.endLine()
	case Paragraph:
		t.inlines(v.Content, t.styles.Text, "")
		t.endLine()
	case List:
		for i, item := range v.Items {
			marker := "- "
			if v.Ordered {
				marker = strconv.Itoa(i+1) + ". "
			}
			t.buf = appendStyled(t.buf, marker, t.styles.ListMarker)
			t.indent = len(marker)
			t.lineW = t.indent
			t.inlines(item, t.styles.Text, "")
			t.endLine()
		}
	case HorizontalRule:
		n := t.width
		if n <= 0 {
			n = defaultRuleWidth
		}
		t.buf = appendStyled(t.buf, strings.Repeat("─", n), t.styles.ThematicBreak)
		t.buf = append(t.buf, '\n')
	}
	if _, err := t.w.Write(t.buf); err != nil {
		return fmt.Errorf("render terminal: write: %w", err)
	}
	return nil
}

func (t *termWriter) inlines(in Inlines, base Style, href string) {
	for _, n := range in {
		switch v := n.(type) {
		case Text:
			t.text(v.Value, base, href)
		case Bold:
			t.inlines(v.Content, combineStyles(base, t.styles.Strong), href)
		case Link:
			if t.osc8 {
				t.inlines(v.Text, t.styles.LinkText, v.Href)
				continue
			}
			t.inlines(v.Text, t.styles.LinkText, "")
			t.text(" ("+v.Href+")", t.styles.LinkURL, "")
		case Image:
			label := "[image]"
			if v.Alt != "" {
				label = "[image: " + v.Alt + "]"
			}
			if t.osc8 {
				t.text(label, t.styles.Image, v.Src)
				continue
			}
			t.text(label, t.styles.Image, "")
			t.text(" ("+v.Src+")", t.styles.LinkURL, "")
		case LineBreak:
			t.flushWord()
			t.newline()
		}
	}
}

// text splits s into words. Runs of spaces collapse into the single
// separator flushWord inserts.
func (t *termWriter) text(s string, st Style, href string) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				t.addPiece(s[start:i], st, href)
				start = -1
			}
			t.flushWord()
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		t.addPiece(s[start:], st, href)
	}
}

func (t *termWriter) addPiece(text string, st Style, href string) {
	text = stripControl(text)
	if text == "" {
		return
	}
	t.word = append(t.word, piece{text: text, style: st, href: stripControl(href)})
	t.wordW += ansi.PrintableRuneWidth(text)
}

func (t *termWriter) flushWord() {
	if len(t.word) == 0 {
		return
	}
	wrap := t.width > 0
	if wrap && t.hasContent && t.lineW+1+t.wordW > t.width {
		t.newline()
	} else if t.hasContent {
		t.buf = append(t.buf, ' ')
		t.lineW++
	}
	if wrap && t.softWrap && t.lineW+t.wordW > t.width {
		t.emitBroken()
	} else {
		for _, p := range t.word {
			t.emitPiece(p)
		}
		t.lineW += t.wordW
	}
	t.hasContent = true
	t.word = t.word[:0]
	t.wordW = 0
}

// emitBroken writes an overlong word, breaking it wherever the line is full.
func (t *termWriter) emitBroken() {
	for _, p := range t.word {
		start := 0
		for i, r := range p.text {
			rw := ansi.PrintableRuneWidth(string(r))
			if t.lineW+rw > t.width && t.lineW > t.indent {
				if i > start {
					t.emitPiece(piece{text: p.text[start:i], style: p.style, href: p.href})
				}
				t.newline()
				start = i
			}
			t.lineW += rw
		}
		if start < len(p.text) {
			t.emitPiece(piece{text: p.text[start:], style: p.style, href: p.href})
		}
	}
}

func (t *termWriter) emitPiece(p piece) {
	link := t.osc8 && p.href != ""
	if link {
		t.buf = appendOSC8Open(t.buf, p.href)
	}
	t.buf = appendStyled(t.buf, p.text, p.style)
	if link {
		t.buf = append(t.buf, osc8End...)
	}
}

func (t *termWriter) newline() {
	t.buf = append(t.buf, '\n')
	t.buf = append(t.buf, strings.Repeat(" ", t.indent)...)
	t.lineW = t.indent
	t.hasContent = false
}

func (t *termWriter) endLine() {
	t.flushWord()
	t.buf = append(t.buf, '\n')
	t.lineW = 0
	t.indent = 0
	t.hasContent = false
}

func appendStyled(dst []byte, text string, st Style) []byte {
	if st.Prefix == "" {
		return append(dst, text...)
	}
	dst = append(dst, st.Prefix...)
	dst = append(dst, text...)
	return append(dst, ansiReset...)
}

func combineStyles(base, extra Style) Style {
	if base.Prefix == "" {
		return extra
	}
	if extra.Prefix == "" {
		return base
	}
	return Style{Prefix: base.Prefix + extra.Prefix}
}

// stripControl removes control characters, including ESC, so that article
// text cannot inject terminal escape sequences.
func stripControl(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7F {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError || r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
