package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"k8s.io/klog/v2"
	"pkt.systems/mdlite"
	"pkt.systems/version"
)

const (
	defaultWidth = 80
	clearScreen  = "\x1b[H\x1b[2J"
)

func init() {
	version.SetDefaultModule("pkt.systems/mdlite")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		configPath  string
		listThemes  bool
		showVersion bool
	)
	flags := pflag.NewFlagSet("mdlite", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&configPath, "config", "", "Config file (yaml, toml or json)")
	flags.BoolVar(&listThemes, "list-themes", false, "List available terminal themes")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	registerConfigFlags(flags)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlag(klogFlags.Lookup("v"))

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdlite [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nRenders article markup to HTML. If no input is provided, it is read from stdin.")
		fmt.Fprintln(stderr, "Inputs may be files, file:// URLs or http(s):// URLs and are concatenated.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	defer klog.Flush()

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if listThemes {
		printThemes(stdout)
		return 0
	}

	cfg, err := loadConfig(flags, configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Serve != "" {
		if err := serve(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	theme, ok := mdlite.ThemeByName(cfg.Theme)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", cfg.Theme)
		printThemes(stderr)
		return 2
	}
	osc8, err := resolveOSC8(cfg.OSC8)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --osc8 %q: %v\n", cfg.OSC8, err)
		return 2
	}
	r := renderer{cfg: cfg, theme: theme, width: resolveWidth(cfg.Width), osc8: osc8}
	inputs := flags.Args()

	if cfg.Watch {
		return runWatch(ctx, r, inputs, stdin, stdout, stderr)
	}
	if err := renderOnce(ctx, r, inputs, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	return 0
}

func runWatch(ctx context.Context, r renderer, inputs []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(inputs) == 0 {
		fmt.Fprintln(stderr, "--watch needs at least one input file")
		return 2
	}
	sources, err := resolveInputs(ctx, inputs)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}
	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		if src.kind != sourceFile {
			fmt.Fprintf(stderr, "--watch only supports local files, got %s\n", src.name)
			return 2
		}
		paths = append(paths, src.name)
	}
	clearFirst := r.cfg.Output == "" && r.cfg.Format == "terminal" && isTerminal(stdout)
	err = watchFiles(ctx, paths, r.cfg.Debounce, func() error {
		if clearFirst {
			_, _ = io.WriteString(stdout, clearScreen)
		}
		return renderOnce(ctx, r, inputs, stdin, stdout)
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

// renderer holds everything needed to render one input in the configured
// format.
type renderer struct {
	cfg   config
	theme mdlite.Theme
	width int
	osc8  bool
}

func (r renderer) options() []mdlite.RenderOption {
	return []mdlite.RenderOption{
		mdlite.WithFrontMatter(r.cfg.FrontMatter),
		mdlite.WithStrictInput(r.cfg.Strict),
		mdlite.WithOSC8(r.osc8),
		mdlite.WithSoftWrap(r.cfg.SoftWrap),
	}
}

func (r renderer) render(in io.Reader, out *countingWriter) error {
	switch r.cfg.Format {
	case "terminal":
		return mdlite.RenderTerminal(mdlite.TerminalRequest{
			Reader:  in,
			Writer:  out,
			Width:   r.width,
			Theme:   r.theme,
			Options: r.options(),
		})
	case "page":
		src, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if r.cfg.Strict {
			if err := mdlite.ValidateInput(src); err != nil {
				return err
			}
		}
		page, err := mdlite.RenderPage(string(src))
		if err != nil {
			klog.Warningf("%v", err)
		}
		_, err = io.WriteString(out, page)
		return err
	default:
		err := mdlite.RenderStream(mdlite.RenderRequest{
			Reader:  in,
			Writer:  out,
			Options: r.options(),
		})
		if err != nil {
			return err
		}
		if out.n > 0 {
			_, err = io.WriteString(out, "\n")
		}
		return err
	}
}

func renderOnce(ctx context.Context, r renderer, args []string, stdin io.Reader, stdout io.Writer) error {
	reader, closer, err := openInputs(ctx, args, stdin)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	writer, closeOut, err := resolveOutput(r.cfg.Output, stdout)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	in := &countingReader{r: reader}
	out := &countingWriter{w: writer}
	start := time.Now()
	if err := r.render(in, out); err != nil {
		return err
	}
	klog.V(1).Infof("rendered %s of source as %s (%s) in %s",
		humanize.Bytes(in.n), r.cfg.Format, humanize.Bytes(out.n), time.Since(start))
	return nil
}

type countingReader struct {
	r io.Reader
	n uint64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += uint64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}

func printThemes(w io.Writer) {
	for _, name := range mdlite.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return mdlite.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
