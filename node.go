package mdlite

// Document is the parsed form of one article. It is built fresh for every
// call and holds no references to the source text.
type Document []Block

// BlockKind identifies the concrete type of a Block.
type BlockKind uint8

const (
	// KindHeading is a Heading block.
	KindHeading BlockKind = iota + 1
	// KindParagraph is a Paragraph block.
	KindParagraph
	// KindUnorderedList is a List block with Ordered == false.
	KindUnorderedList
	// KindOrderedList is a List block with Ordered == true.
	KindOrderedList
	// KindHorizontalRule is a HorizontalRule block.
	KindHorizontalRule
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindUnorderedList:
		return "unordered-list"
	case KindOrderedList:
		return "ordered-list"
	case KindHorizontalRule:
		return "horizontal-rule"
	}
	return "unknown"
}

// Block is a structural unit occupying one or more whole source lines.
// The set of implementations is closed: Heading, Paragraph, List and
// HorizontalRule.
type Block interface {
	Kind() BlockKind
	block()
}

// MaxHeadingLevel is the deepest heading the dialect recognizes.
const MaxHeadingLevel = 3

// Heading is a level 1 to MaxHeadingLevel heading.
type Heading struct {
	Level   int
	Content Inlines
}

// Paragraph is a run of consecutive plain-text lines. Lines after the
// first are separated by LineBreak nodes.
type Paragraph struct {
	Content Inlines
}

// List is an ordered or unordered list. Items are numbered from 1 when
// rendered, whatever digits the author typed.
type List struct {
	Ordered bool
	Items   []Inlines
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (Heading) Kind() BlockKind        { return KindHeading }
func (Paragraph) Kind() BlockKind      { return KindParagraph }
func (HorizontalRule) Kind() BlockKind { return KindHorizontalRule }

func (l List) Kind() BlockKind {
	if l.Ordered {
		return KindOrderedList
	}
	return KindUnorderedList
}

func (Heading) block()        {}
func (Paragraph) block()      {}
func (List) block()           {}
func (HorizontalRule) block() {}

// InlineKind identifies the concrete type of an Inline.
type InlineKind uint8

const (
	// KindText is a Text node.
	KindText InlineKind = iota + 1
	// KindBold is a Bold node.
	KindBold
	// KindLink is a Link node.
	KindLink
	// KindImage is an Image node.
	KindImage
	// KindLineBreak is a LineBreak node.
	KindLineBreak
)

func (k InlineKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindLineBreak:
		return "line-break"
	}
	return "unknown"
}

// Inline is a text-level node inside a block. The set of implementations is
// closed: Text, Bold, Link, Image and LineBreak.
type Inline interface {
	Kind() InlineKind
	inline()
}

// Inlines is the ordered inline content of a block or container node.
type Inlines []Inline

// Text is literal text. It is stored unescaped.
type Text struct {
	Value string
}

// Bold wraps strongly emphasized content.
type Bold struct {
	Content Inlines
}

// Link is an absolute http(s) link. Href holds the raw source text; the
// HTML renderer writes it attribute-escaped, so & becomes &amp; and "
// becomes &quot;.
type Link struct {
	Text Inlines
	Href string
}

// Image embeds an already resolved image URL. Src and Alt are written
// attribute-escaped like Link.Href.
type Image struct {
	Alt string
	Src string
}

// LineBreak separates the source lines of a paragraph.
type LineBreak struct{}

func (Text) Kind() InlineKind      { return KindText }
func (Bold) Kind() InlineKind      { return KindBold }
func (Link) Kind() InlineKind      { return KindLink }
func (Image) Kind() InlineKind     { return KindImage }
func (LineBreak) Kind() InlineKind { return KindLineBreak }

func (Text) inline()      {}
func (Bold) inline()      {}
func (Link) inline()      {}
func (Image) inline()     {}
func (LineBreak) inline() {}

// PlainText returns the concatenated literal text of the content, with
// images contributing their alt text and line breaks a single space.
func (in Inlines) PlainText() string {
	var b []byte
	b = in.appendPlain(b)
	return string(b)
}

func (in Inlines) appendPlain(b []byte) []byte {
	for _, n := range in {
		switch v := n.(type) {
		case Text:
			b = append(b, v.Value...)
		case Bold:
			b = v.Content.appendPlain(b)
		case Link:
			b = v.Text.appendPlain(b)
		case Image:
			b = append(b, v.Alt...)
		case LineBreak:
			b = append(b, ' ')
		}
	}
	return b
}
