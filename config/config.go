// Package config loads quire settings from YAML or TOML files and the
// environment, and turns them into a book.Box.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/quire/book"
	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/format"
	"github.com/ByLCY/quire/metrics"
)

// ErrUnsupportedFormat is returned for a settings file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Settings holds every tunable value.
type Settings struct {
	Provider string  `yaml:"provider" toml:"provider"`
	Metrics  string  `yaml:"metrics" toml:"metrics"`
	Width    float64 `yaml:"width" toml:"width"`
	MaxLines int     `yaml:"max_lines" toml:"max_lines"`
	MaxChars int     `yaml:"max_chars" toml:"max_chars"`
	PDF      PDF     `yaml:"pdf" toml:"pdf"`
}

// PDF configures the PDF renderer.
type PDF struct {
	PageWidth  float64 `yaml:"page_width" toml:"page_width"`
	PageHeight float64 `yaml:"page_height" toml:"page_height"`
	Font       string  `yaml:"font" toml:"font"`
	FontSize   float64 `yaml:"font_size" toml:"font_size"`
}

// Default returns the stock book box and renderer settings.
func Default() Settings {
	return Settings{
		Provider: "legacy",
		Metrics:  "vanilla",
		Width:    book.DefaultWidth,
		MaxLines: book.DefaultMaxLines,
		MaxChars: book.DefaultMaxChars,
		PDF: PDF{
			PageWidth:  120,
			PageHeight: 160,
			Font:       "builtin:regular",
			FontSize:   12,
		},
	}
}

// Load reads settings from path on top of the defaults. The decoder is
// chosen by extension; a missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".toml":
		err = toml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// ApplyEnv overrides settings from QUIRE_* variables. lookup is usually
// os.LookupEnv.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("QUIRE_PROVIDER"); ok && v != "" {
		s.Provider = v
	}
	if v, ok := lookup("QUIRE_METRICS"); ok && v != "" {
		s.Metrics = v
	}
	if v, ok := lookup("QUIRE_FONT"); ok && v != "" {
		s.PDF.Font = v
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"QUIRE_WIDTH", &s.Width},
		{"QUIRE_FONT_SIZE", &s.PDF.FontSize},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	return nil
}

// Box resolves the provider and metrics named by the settings. The
// provider is fixed for the lifetime of every book built from the box.
func (s Settings) Box() (book.Box, error) {
	p, err := format.Lookup(s.Provider)
	if err != nil {
		return book.Box{}, err
	}
	m, err := s.textMetrics()
	if err != nil {
		return book.Box{}, err
	}
	return book.Box{
		Provider: p,
		Metrics:  m,
		Width:    s.Width,
		MaxLines: s.MaxLines,
		MaxChars: s.MaxChars,
	}, nil
}

func (s Settings) textMetrics() (metrics.Metrics, error) {
	if strings.EqualFold(strings.TrimSpace(s.Metrics), "canvas") {
		set, err := fonts.LoadSet(s.PDF.Font)
		if err != nil {
			return nil, err
		}
		c, err := metrics.NewCanvas(set.Regular, set.Bold, s.PDF.FontSize)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return metrics.Lookup(s.Metrics, 0)
}
