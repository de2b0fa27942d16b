// Package mdlite renders a small article markup dialect to HTML for
// previews.
//
// The dialect covers headings (levels 1 to 3), paragraphs, bold text,
// ordered and unordered lists, images, absolute http(s) links and
// horizontal rules. Anything else, including inline HTML, is shown as
// escaped literal text. Rendering never fails and is a pure function of
// its input, so it is safe to call on every keystroke and from many
// goroutines at once.
//
// Parsing happens in two levels: each source line is classified, lines are
// grouped into blocks by a small state machine, and the inline constructs of
// every block are resolved in priority order (images, then links, then
// bold). The resulting Document can be rendered as HTML or as a wrapped,
// ANSI-styled terminal preview.
//
// Example:
//
//	html := mdlite.Render("# Hello\n\nSome **bold** text.")
//	// <h1>Hello</h1>
//	// <p>Some <strong>bold</strong> text.</p>
//
// RenderStream, HTTPRender and RenderTerminal process io.Reader input block
// by block and accept RenderOptions such as front matter skipping and
// strict input validation.
package mdlite
