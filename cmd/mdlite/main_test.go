package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"pkt.systems/mdlite"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestOpenInputFileAndURL(t *testing.T) {
	ctx := context.Background()
	path := writeTemp(t, "input.md", "hello")
	reader, closer, err := openInputs(ctx, []string{path}, nil)
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	reader, closer, err = openInputs(ctx, []string{"file://" + path}, nil)
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs(ctx, []string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "remote" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	first := writeTemp(t, "a.md", "one ")
	second := writeTemp(t, "b.md", "two")
	reader, closer, err := openInputs(context.Background(), []string{first, second}, nil)
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsUsesStdin(t *testing.T) {
	reader, closer, err := openInputs(context.Background(), nil, strings.NewReader("piped"))
	if err != nil {
		t.Fatalf("openInputs stdin: %v", err)
	}
	if closer != nil {
		t.Fatalf("stdin must not be closed by the caller")
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "piped" {
		t.Fatalf("unexpected stdin content: %q", string(buf))
	}
}

func TestResolveInputsReportsEveryError(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		filepath.Join(dir, "missing-one.md"),
		"gopher://example.com/x",
		filepath.Join(dir, "missing-two.md"),
	}
	_, err := resolveInputs(context.Background(), args)
	if err == nil {
		t.Fatalf("expected error for bad inputs")
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected multierror, got %T", err)
	}
	if len(merr.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(merr.Errors), err)
	}
	for _, want := range []string{"missing-one.md", "gopher", "missing-two.md"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestResolveInputsRejectsDirectory(t *testing.T) {
	if _, err := resolveInputs(context.Background(), []string{t.TempDir()}); err == nil {
		t.Fatalf("expected error for directory input")
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
		"YES": true,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunRendersHTML(t *testing.T) {
	src := "# Title\n\n- a\n- b\n"
	path := writeTemp(t, "doc.md", src)
	code, stdout, stderr := runCLI(t, "", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != mdlite.Render(src)+"\n" {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRunReadsStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "**hi**")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != "<p><strong>hi</strong></p>\n" {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRunEmptyInputWritesNothing(t *testing.T) {
	code, stdout, _ := runCLI(t, "\n\n")
	if code != 0 || stdout != "" {
		t.Fatalf("expected empty output, got %d %q", code, stdout)
	}
}

func TestRunStripsFrontMatter(t *testing.T) {
	code, stdout, stderr := runCLI(t, "---\ntitle: x\n---\n# Body\n", "--front-matter")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != "<h1>Body</h1>\n" {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRunPageFormat(t *testing.T) {
	code, stdout, stderr := runCLI(t, "---\ntitle: Hello\n---\ntext", "--format", "page")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "<!DOCTYPE html>") || !strings.Contains(stdout, "<title>Hello</title>") {
		t.Fatalf("unexpected page %q", stdout)
	}
}

func TestRunTerminalFormat(t *testing.T) {
	code, stdout, stderr := runCLI(t, "# T\n\none two three", "-f", "terminal", "-t", "boring", "-w", "8", "--osc8", "off")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != "# T\n\none two\nthree\n" {
		t.Fatalf("unexpected terminal output %q", stdout)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.html")
	code, stdout, stderr := runCLI(t, "# x", "-o", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout, got %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<h1>x</h1>\n" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestRunStrictRejectsBinary(t *testing.T) {
	code, _, stderr := runCLI(t, "text\x00more", "--strict")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, mdlite.ErrBinaryInput.Error()) {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunUsageErrors(t *testing.T) {
	cases := [][]string{
		{"--format", "pdf"},
		{"--theme", "missing"},
		{"--osc8", "maybe"},
		{"--no-such-flag"},
		{"--watch"},
		{"--watch", "https://example.com/a.md"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(t, "", args...); code != 2 {
			t.Fatalf("run(%v): expected exit 2, got %d", args, code)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	code, _, stderr := runCLI(t, "", filepath.Join(t.TempDir(), "nope.md"))
	if code != 1 || !strings.Contains(stderr, "nope.md") {
		t.Fatalf("expected exit 1 naming the input, got %d %q", code, stderr)
	}
}

func TestRunListThemes(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--list-themes")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if got := strings.Fields(stdout); strings.Join(got, ",") != strings.Join(mdlite.AvailableThemes(), ",") {
		t.Fatalf("unexpected theme list %q", stdout)
	}
}
