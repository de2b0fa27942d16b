package mdlite

import "strings"

// accState is the block parser's accumulator state.
type accState uint8

const (
	accNone accState = iota
	accList
	accParagraph
)

// rawBlock is a closed block whose inline content is still unparsed.
type rawBlock struct {
	kind  BlockKind
	level int
	text  string
	items []string
}

// blockParser groups classified lines into blocks in a single left-to-right
// pass. Closed blocks are handed to emit as soon as they are complete, so a
// caller can render a document while it is still being read.
type blockParser struct {
	state    accState
	listKind lineKind
	para     []string
	items    []string
	emit     func(rawBlock) error
}

func newBlockParser(emit func(rawBlock) error) *blockParser {
	return &blockParser{emit: emit}
}

func (p *blockParser) feed(l line) error {
	switch l.kind {
	case lineHeading:
		if err := p.close(); err != nil {
			return err
		}
		return p.emit(rawBlock{kind: KindHeading, level: l.level, text: l.text})
	case lineRule:
		if err := p.close(); err != nil {
			return err
		}
		return p.emit(rawBlock{kind: KindHorizontalRule})
	case lineUnordered, lineOrdered:
		if p.state == accList && p.listKind == l.kind {
			p.items = append(p.items, l.text)
			return nil
		}
		if err := p.close(); err != nil {
			return err
		}
		p.state = accList
		p.listKind = l.kind
		p.items = append(p.items[:0], l.text)
		return nil
	case lineText:
		if p.state == accList {
			if err := p.close(); err != nil {
				return err
			}
		}
		p.state = accParagraph
		p.para = append(p.para, l.text)
		return nil
	default:
		return p.close()
	}
}

// finish closes whatever is still open at end of input.
func (p *blockParser) finish() error {
	return p.close()
}

func (p *blockParser) close() error {
	var b rawBlock
	switch p.state {
	case accNone:
		return nil
	case accList:
		b = rawBlock{kind: KindUnorderedList, items: append([]string(nil), p.items...)}
		if p.listKind == lineOrdered {
			b.kind = KindOrderedList
		}
		p.items = p.items[:0]
	case accParagraph:
		b = rawBlock{kind: KindParagraph, text: strings.Join(p.para, "\n")}
		p.para = p.para[:0]
	}
	p.state = accNone
	return p.emit(b)
}

// buildBlock runs the inline parser over a raw block's text.
func buildBlock(b rawBlock) Block {
	switch b.kind {
	case KindHeading:
		return Heading{Level: b.level, Content: parseInlines(b.text)}
	case KindHorizontalRule:
		return HorizontalRule{}
	case KindUnorderedList, KindOrderedList:
		items := make([]Inlines, len(b.items))
		for i, item := range b.items {
			items[i] = parseInlines(item)
		}
		return List{Ordered: b.kind == KindOrderedList, Items: items}
	default:
		return Paragraph{Content: parseInlines(b.text)}
	}
}
