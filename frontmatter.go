package mdlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const maxFrontMatterProbeBytes = 64 * 1024

// ErrFrontMatter reports a front matter block that could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// Front matter formats, named after their delimiters.
const (
	FrontMatterYAML = "yaml" // ---
	FrontMatterTOML = "toml" // +++
	FrontMatterJSON = "json" // ;;;
)

// FrontMatter is the decoded metadata block at the start of an article.
type FrontMatter struct {
	Format string
	Fields map[string]any
}

// Title returns the "title" field if it is a string.
func (fm FrontMatter) Title() string {
	if title, ok := fm.Fields["title"].(string); ok {
		return strings.TrimSpace(title)
	}
	return ""
}

// SplitFrontMatter separates a leading front matter block from the article
// body. When src does not start with a closed front matter block, ok is
// false and body is src unchanged. A block that is present but does not
// decode still splits, and err wraps ErrFrontMatter.
func SplitFrontMatter(src string) (fm FrontMatter, body string, ok bool, err error) {
	first, rest, found := strings.Cut(src, "\n")
	if !found {
		return FrontMatter{}, src, false, nil
	}
	delim, format, isOpen := openingFrontMatterDelimiter(trimCR(first))
	if !isOpen {
		return FrontMatter{}, src, false, nil
	}
	second, _, _ := strings.Cut(rest, "\n")
	if !frontMatterMetadataLikely(second) {
		return FrontMatter{}, src, false, nil
	}
	var meta []string
	for rest != "" {
		var ln string
		ln, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(trimCR(ln)) == delim {
			fm, err = decodeFrontMatter(format, strings.Join(meta, "\n"))
			return fm, rest, true, err
		}
		meta = append(meta, trimCR(ln))
	}
	return FrontMatter{}, src, false, nil
}

func decodeFrontMatter(format, meta string) (FrontMatter, error) {
	fm := FrontMatter{Format: format, Fields: map[string]any{}}
	var err error
	switch format {
	case FrontMatterTOML:
		err = toml.Unmarshal([]byte(meta), &fm.Fields)
	default:
		// JSON front matter is valid YAML flow syntax.
		err = yaml.Unmarshal([]byte(meta), &fm.Fields)
	}
	if err != nil {
		return FrontMatter{Format: format}, fmt.Errorf("%w: %s: %v", ErrFrontMatter, format, err)
	}
	return fm, nil
}

type frontMatterState uint8

const (
	fmProbe frontMatterState = iota
	fmOpened
	fmInside
	fmDone
)

// frontMatterFilter drops a leading front matter block from a line stream.
// Lines are held back until the filter knows whether they belong to front
// matter; an unclosed block is released as ordinary content.
type frontMatterFilter struct {
	state frontMatterState
	delim string
	held  []string
	size  int
	out   []string
}

func (f *frontMatterFilter) process(ln string) []string {
	switch f.state {
	case fmProbe:
		delim, _, ok := openingFrontMatterDelimiter(ln)
		if !ok {
			f.state = fmDone
			break
		}
		f.delim = delim
		f.held = append(f.held[:0], ln)
		f.state = fmOpened
		return nil
	case fmOpened:
		if !frontMatterMetadataLikely(ln) {
			return f.release(ln)
		}
		f.held = append(f.held, ln)
		f.size += len(ln)
		f.state = fmInside
		return nil
	case fmInside:
		if strings.TrimSpace(trimCR(ln)) == f.delim {
			f.held = f.held[:0]
			f.state = fmDone
			return nil
		}
		f.held = append(f.held, ln)
		f.size += len(ln)
		if f.size > maxFrontMatterProbeBytes {
			return f.release()
		}
		return nil
	}
	f.out = append(f.out[:0], ln)
	return f.out
}

// release gives up on front matter and returns everything held so far,
// followed by more.
func (f *frontMatterFilter) release(more ...string) []string {
	f.state = fmDone
	f.out = append(f.out[:0], f.held...)
	f.out = append(f.out, more...)
	f.held = f.held[:0]
	return f.out
}

func (f *frontMatterFilter) finish() []string {
	if f.state == fmDone || len(f.held) == 0 {
		return nil
	}
	return f.release()
}

func openingFrontMatterDelimiter(ln string) (delim, format string, ok bool) {
	switch strings.TrimSpace(trimBOM(trimCR(ln))) {
	case "---":
		return "---", FrontMatterYAML, true
	case "+++":
		return "+++", FrontMatterTOML, true
	case ";;;":
		return ";;;", FrontMatterJSON, true
	default:
		return "", "", false
	}
}

func frontMatterMetadataLikely(ln string) bool {
	trimmed := strings.TrimSpace(ln)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.Contains(trimmed, ":") || strings.Contains(trimmed, "=")
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
