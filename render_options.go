package mdlite

// RenderOption configures the streaming renderers.
type RenderOption func(*renderConfig)

type renderConfig struct {
	frontMatter bool
	strict      bool
	osc8        bool
	softWrap    bool
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithFrontMatter skips a YAML, TOML or JSON front matter block at the
// start of the input instead of rendering it.
func WithFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.frontMatter = enabled
	}
}

// WithStrictInput rejects input that is not valid UTF-8 or looks binary,
// returning ErrInvalidUTF8 or ErrBinaryInput.
func WithStrictInput(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.strict = enabled
	}
}

// WithOSC8 enables or disables OSC 8 hyperlinks in terminal previews.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithSoftWrap hard-breaks words longer than the terminal preview width.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}
