package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "MDLITE"
	defaultFormat   = "html"
	defaultTheme    = "default"
	defaultDebounce = 150 * time.Millisecond
	defaultMaxBody  = 1 << 20
)

// config is the resolved CLI configuration. Values come from flags, then
// MDLITE_* environment variables, then the optional config file, then the
// flag defaults.
type config struct {
	Format      string        `mapstructure:"format" validate:"oneof=html page terminal"`
	Output      string        `mapstructure:"output"`
	Width       int           `mapstructure:"width" validate:"gte=0"`
	Theme       string        `mapstructure:"theme"`
	OSC8        string        `mapstructure:"osc8" validate:"oneof=auto on off true false 1 0 yes no"`
	FrontMatter bool          `mapstructure:"front-matter"`
	Strict      bool          `mapstructure:"strict"`
	SoftWrap    bool          `mapstructure:"soft-wrap"`
	Watch       bool          `mapstructure:"watch"`
	Debounce    time.Duration `mapstructure:"debounce" validate:"gte=0"`
	Serve       string        `mapstructure:"serve" validate:"omitempty,hostname_port"`
	MaxBody     int64         `mapstructure:"max-body" validate:"gt=0"`
}

func registerConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("format", "f", defaultFormat, "Output format: html|page|terminal")
	flags.StringP("output", "o", "", "Output file instead of stdout")
	flags.IntP("width", "w", 0, "Terminal preview width (0 uses terminal width if available)")
	flags.StringP("theme", "t", defaultTheme, "Terminal preview theme name")
	flags.StringP("osc8", "8", "auto", "OSC8 hyperlinks in terminal previews: auto|on|off")
	flags.Bool("front-matter", false, "Strip leading YAML/TOML/JSON front matter")
	flags.Bool("strict", false, "Reject input that is not valid UTF-8 or looks binary")
	flags.Bool("soft-wrap", false, "Break words longer than the terminal preview width")
	flags.Bool("watch", false, "Re-render whenever an input file changes")
	flags.Duration("debounce", defaultDebounce, "Quiet period before re-rendering in --watch mode")
	flags.String("serve", "", "Serve previews over HTTP on this address (e.g. 127.0.0.1:8080)")
	flags.Int64("max-body", defaultMaxBody, "Maximum request body size for --serve, in bytes")
}

// loadConfig merges flags, environment and the config file at path (if
// any) and validates the result.
func loadConfig(flags *pflag.FlagSet, path string) (config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return config{}, fmt.Errorf("config: bind flags: %w", err)
	}
	if path != "" {
		v.SetConfigFile(normalizePath(path))
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.OSC8 = strings.ToLower(strings.TrimSpace(cfg.OSC8))
	if err := validator.New().Struct(cfg); err != nil {
		return config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
