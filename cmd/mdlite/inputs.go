package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

type sourceKind uint8

const (
	sourceFile sourceKind = iota
	sourceURL
)

type inputSource struct {
	kind sourceKind
	name string
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader concatenates its sources, opening each one lazily and
// closing it at EOF.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, fmt.Errorf("open %s: %w", m.sources[m.idx].name, err)
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

// resolveInputs turns CLI arguments into sources. Every bad argument is
// reported, not just the first.
func resolveInputs(ctx context.Context, args []string) ([]inputSource, error) {
	var errs *multierror.Error
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(ctx, raw)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		sources = append(sources, src)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return sources, nil
}

// openInputs returns a reader over all args, or stdin when there are none.
func openInputs(ctx context.Context, args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources, err := resolveInputs(ctx, args)
	if err != nil {
		return nil, nil, err
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(ctx context.Context, raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{kind: sourceURL, name: raw, open: func() (io.Reader, io.Closer, error) {
				return openURL(ctx, raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return fileSource(path)
		default:
			return inputSource{}, fmt.Errorf("unsupported input scheme %q in %s", u.Scheme, raw)
		}
	}
	return fileSource(raw)
}

func fileSource(path string) (inputSource, error) {
	clean := normalizePath(path)
	info, err := os.Stat(clean)
	if err != nil {
		return inputSource{}, fmt.Errorf("input %s: %w", path, err)
	}
	if info.IsDir() {
		return inputSource{}, fmt.Errorf("input %s: is a directory", path)
	}
	return inputSource{kind: sourceFile, name: clean, open: func() (io.Reader, io.Closer, error) {
		f, err := os.Open(clean)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}}, nil
}

func openURL(ctx context.Context, raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

// resolveOutput opens path for writing, creating parent directories. An
// empty path means stdout.
func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
