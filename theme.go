package mdlite

import (
	"sort"
	"strings"
)

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the semantic styles used by the terminal preview.
type Styles struct {
	Text          Style
	Heading       [MaxHeadingLevel]Style
	Strong        Style
	LinkText      Style
	LinkURL       Style
	Image         Style
	ListMarker    Style
	ThematicBreak Style
}

// Theme provides named styles for terminal previews.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func fg256(n string) string {
	return "\x1b[38;5;" + n + "m"
}

func style(prefixes ...string) Style {
	return Style{Prefix: strings.Join(prefixes, "")}
}

// palette holds the foreground colors a theme is derived from.
type palette struct {
	text, h1, h2, h3, strong, link, url, image, marker, rule string
}

func stylesFromPalette(p palette) Styles {
	return Styles{
		Text:          style(p.text),
		Heading:       [MaxHeadingLevel]Style{style(ansiBold, p.h1), style(ansiBold, p.h2), style(p.h3)},
		Strong:        style(ansiBold, p.strong),
		LinkText:      style(ansiUnderline, p.link),
		LinkURL:       style(p.url),
		Image:         style(ansiItalic, p.image),
		ListMarker:    style(p.marker),
		ThematicBreak: style(p.rule),
	}
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: stylesFromPalette(palette{
		h1: fg256("39"), h2: fg256("45"), h3: fg256("51"),
		strong: fg256("231"), link: fg256("81"), url: fg256("244"),
		image: fg256("180"), marker: fg256("214"), rule: fg256("240"),
	})},
	"gruvbox": theme{name: "gruvbox", styles: stylesFromPalette(palette{
		text: fg256("223"), h1: fg256("208"), h2: fg256("214"), h3: fg256("142"),
		strong: fg256("229"), link: fg256("109"), url: fg256("245"),
		image: fg256("175"), marker: fg256("167"), rule: fg256("239"),
	})},
	"nord": theme{name: "nord", styles: stylesFromPalette(palette{
		text: fg256("253"), h1: fg256("110"), h2: fg256("109"), h3: fg256("116"),
		strong: fg256("255"), link: fg256("117"), url: fg256("60"),
		image: fg256("180"), marker: fg256("74"), rule: fg256("59"),
	})},
	"solarized-dark": theme{name: "solarized-dark", styles: stylesFromPalette(palette{
		text: fg256("246"), h1: fg256("136"), h2: fg256("166"), h3: fg256("33"),
		strong: fg256("254"), link: fg256("37"), url: fg256("240"),
		image: fg256("125"), marker: fg256("64"), rule: fg256("235"),
	})},
	"boring": theme{name: "boring"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
