package mdlite

import "strings"

const defaultPageTitle = "Preview"

// RenderPage renders src as a complete HTML document. A leading front matter
// block is removed; its title field, or else the text of the first heading,
// becomes the page title. A front matter block that fails to decode is still
// removed and the page is still rendered, and the returned error wraps
// ErrFrontMatter.
func RenderPage(src string) (string, error) {
	fm, body, _, err := SplitFrontMatter(src)
	doc := Parse(body)
	title := fm.Title()
	if title == "" {
		title = firstHeading(doc)
	}
	if title == "" {
		title = defaultPageTitle
	}
	var buf []byte
	buf = append(buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>"...)
	buf = appendEscaped(buf, title, false)
	buf = append(buf, "</title>\n</head>\n<body>\n"...)
	if len(doc) > 0 {
		buf = append(buf, RenderHTML(doc)...)
		buf = append(buf, '\n')
	}
	buf = append(buf, "</body>\n</html>\n"...)
	return string(buf), err
}

func firstHeading(doc Document) string {
	for _, b := range doc {
		if h, ok := b.(Heading); ok {
			return strings.TrimSpace(h.Content.PlainText())
		}
	}
	return ""
}
