package mdlite

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// Render converts article source text to an HTML fragment. It never fails:
// anything the dialect does not recognize is rendered as escaped literal
// text. Render keeps no state between calls and is safe for concurrent use.
func Render(src string) string {
	return RenderHTML(Parse(src))
}

// Parse classifies the lines of src, groups them into blocks and resolves
// the inline content of every block.
func Parse(src string) Document {
	var doc Document
	p := newBlockParser(func(b rawBlock) error {
		doc = append(doc, buildBlock(b))
		return nil
	})
	for _, l := range classifyLines(src) {
		_ = p.feed(l)
	}
	_ = p.finish()
	return doc
}

// RenderRequest configures RenderStream.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// RenderStream reads source text from Reader and writes the HTML fragment
// to Writer block by block. For the same text the output is identical to
// Render. Errors come only from the reader, the writer or strict input
// validation.
func RenderStream(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := newRenderConfig(req.Options)
	hw := htmlWriter{w: req.Writer}
	return parseStream(req.Reader, cfg, func(b Block) error {
		if err := hw.writeBlock(b); err != nil {
			return fmt.Errorf("render: write: %w", err)
		}
		return nil
	})
}

// parseStream feeds r through the line classifier and block parser one line
// at a time, handing each completed block to emit.
func parseStream(r io.Reader, cfg renderConfig, emit func(Block) error) error {
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(r)
	defer func() {
		reader.Reset(nil)
		readerPool.Put(reader)
	}()

	p := newBlockParser(func(b rawBlock) error {
		return emit(buildBlock(b))
	})
	var fm *frontMatterFilter
	if cfg.frontMatter {
		fm = &frontMatterFilter{}
	}
	var v *validator
	if cfg.strict {
		v = &validator{}
	}
	feed := func(text string) error {
		return p.feed(classifyLine(text))
	}
	for {
		text, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("render: read: %w", err)
		}
		eof := err == io.EOF
		if eof && text == "" {
			break
		}
		text = strings.TrimSuffix(text, "\n")
		if v != nil {
			if verr := v.addLine(text, !eof); verr != nil {
				return fmt.Errorf("render: %w", verr)
			}
		}
		if fm != nil {
			for _, held := range fm.process(text) {
				if ferr := feed(held); ferr != nil {
					return ferr
				}
			}
		} else if ferr := feed(text); ferr != nil {
			return ferr
		}
		if eof {
			break
		}
	}
	if fm != nil {
		for _, held := range fm.finish() {
			if err := feed(held); err != nil {
				return err
			}
		}
	}
	return p.finish()
}
