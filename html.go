package mdlite

import (
	"io"
	"strconv"
)

// RenderHTML renders doc as an HTML fragment. Blocks are separated by a
// newline and the fragment has no trailing newline.
func RenderHTML(doc Document) string {
	var buf []byte
	for i, b := range doc {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = appendBlock(buf, b)
	}
	return string(buf)
}

// WriteHTML writes the same fragment RenderHTML returns to w, one block at
// a time.
func WriteHTML(w io.Writer, doc Document) error {
	hw := htmlWriter{w: w}
	for _, b := range doc {
		if err := hw.writeBlock(b); err != nil {
			return err
		}
	}
	return nil
}

// htmlWriter streams blocks to w, inserting the separator before every
// block but the first.
type htmlWriter struct {
	w       io.Writer
	scratch []byte
	started bool
}

func (hw *htmlWriter) writeBlock(b Block) error {
	buf := hw.scratch[:0]
	if hw.started {
		buf = append(buf, '\n')
	}
	hw.started = true
	buf = appendBlock(buf, b)
	hw.scratch = buf
	_, err := hw.w.Write(buf)
	return err
}

func appendBlock(dst []byte, b Block) []byte {
	switch v := b.(type) {
	case Heading:
		level := strconv.Itoa(v.Level)
		dst = append(dst, "<h"...)
		dst = append(dst, level...)
		dst = append(dst, '>')
		dst = appendInlines(dst, v.Content)
		dst = append(dst, "</h"...)
		dst = append(dst, level...)
		dst = append(dst, '>')
	case Paragraph:
		dst = append(dst, "<p>"...)
		dst = appendInlines(dst, v.Content)
		dst = append(dst, "</p>"...)
	case List:
		tag := "ul"
		if v.Ordered {
			tag = "ol"
		}
		dst = append(dst, '<')
		dst = append(dst, tag...)
		dst = append(dst, ">\n"...)
		for _, item := range v.Items {
			dst = append(dst, "<li>"...)
			dst = appendInlines(dst, item)
			dst = append(dst, "</li>\n"...)
		}
		dst = append(dst, "</"...)
		dst = append(dst, tag...)
		dst = append(dst, '>')
	case HorizontalRule:
		dst = append(dst, "<hr/>"...)
	}
	return dst
}

func appendInlines(dst []byte, in Inlines) []byte {
	for _, n := range in {
		switch v := n.(type) {
		case Text:
			dst = appendEscaped(dst, v.Value, false)
		case Bold:
			dst = append(dst, "<strong>"...)
			dst = appendInlines(dst, v.Content)
			dst = append(dst, "</strong>"...)
		case Link:
			dst = append(dst, `<a href="`...)
			dst = appendEscaped(dst, v.Href, true)
			dst = append(dst, `" target="_blank" rel="noopener">`...)
			dst = appendInlines(dst, v.Text)
			dst = append(dst, "</a>"...)
		case Image:
			dst = append(dst, `<img src="`...)
			dst = appendEscaped(dst, v.Src, true)
			dst = append(dst, `" alt="`...)
			dst = appendEscaped(dst, v.Alt, true)
			dst = append(dst, `" />`...)
		case LineBreak:
			dst = append(dst, "<br/>"...)
		}
	}
	return dst
}

// appendEscaped escapes &, < and > in s. Attribute values also escape the
// double quote that delimits them.
func appendEscaped(dst []byte, s string, attr bool) []byte {
	last := 0
	for i := 0; i < len(s); i++ {
		var rep string
		switch s[i] {
		case '&':
			rep = "&amp;"
		case '<':
			rep = "&lt;"
		case '>':
			rep = "&gt;"
		case '"':
			if !attr {
				continue
			}
			rep = "&quot;"
		default:
			continue
		}
		dst = append(dst, s[last:i]...)
		dst = append(dst, rep...)
		last = i + 1
	}
	return append(dst, s[last:]...)
}
