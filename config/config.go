// Package config loads renderer settings from TOML files.
//
// A config file overrides any subset of the defaults:
//
//	[cache]
//	images = 256
//
//	[render]
//	tolerance = 0.1
//	background = "#ffffff"
//	assets = "assets"
//
//	[[fonts]]
//	name = "body"
//	path = "fonts/Inter-Regular.ttf"
//
// Relative paths are resolved against the directory of the config file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
	"github.com/gogpu/layer/resource"
	"github.com/gogpu/layer/text"
)

// ErrInvalidConfig is returned when a config value is out of range.
var ErrInvalidConfig = zerr.New("invalid config")

// Config holds renderer settings.
type Config struct {
	Cache  Cache  `toml:"cache"`
	Render Render `toml:"render"`
	Fonts  []Font `toml:"fonts"`

	// dir resolves relative paths; empty means the working directory.
	dir string
}

// Cache sets the capacities of the Env caches.
type Cache struct {
	Blenders     int `toml:"blenders"`
	ColorFilters int `toml:"colorFilters"`
	Images       int `toml:"images"`
}

// Render holds settings for rendering a scene.
type Render struct {
	Tolerance    float64 `toml:"tolerance"`
	MaxImageSize int     `toml:"maxImageSize"`
	Background   string  `toml:"background"`
	DebugBounds  bool    `toml:"debugBounds"`

	// Assets is the directory image GUIDs are resolved in.
	Assets string `toml:"assets"`
}

// Font names a font file for text nodes.
type Font struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Cache: Cache{
			Blenders:     graph.DefaultBlenderCacheSize,
			ColorFilters: graph.DefaultColorFilterCacheSize,
			Images:       graph.DefaultImageCacheSize,
		},
		Render: Render{
			Tolerance: 0.25,
		},
	}
}

// Load reads the config file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Cache.Blenders <= 0:
		return zerr.With(ErrInvalidConfig, "field", "cache.blenders")
	case c.Cache.ColorFilters <= 0:
		return zerr.With(ErrInvalidConfig, "field", "cache.colorFilters")
	case c.Cache.Images <= 0:
		return zerr.With(ErrInvalidConfig, "field", "cache.images")
	case c.Render.Tolerance <= 0:
		return zerr.With(ErrInvalidConfig, "field", "render.tolerance")
	case c.Render.MaxImageSize < 0:
		return zerr.With(ErrInvalidConfig, "field", "render.maxImageSize")
	}
	if c.Render.Background != "" {
		if _, ok := layer.ParseHex(c.Render.Background); !ok {
			return zerr.With(zerr.With(ErrInvalidConfig, "field", "render.background"), "value", c.Render.Background)
		}
	}
	for _, f := range c.Fonts {
		if f.Path == "" {
			return zerr.With(zerr.With(ErrInvalidConfig, "field", "fonts.path"), "font", f.Name)
		}
	}
	return nil
}

// BackgroundColor returns the configured background, or def when unset.
func (c *Config) BackgroundColor(def layer.RGBA) layer.RGBA {
	if bg, ok := layer.ParseHex(c.Render.Background); ok {
		return bg
	}
	return def
}

// EnvOptions returns the graph options for c. The text service is not
// included; see Shaper.
func (c *Config) EnvOptions() []graph.Option {
	opts := []graph.Option{
		graph.WithBlenderCacheSize(c.Cache.Blenders),
		graph.WithColorFilterCacheSize(c.Cache.ColorFilters),
		graph.WithImageCacheSize(c.Cache.Images),
		graph.WithTolerance(c.Render.Tolerance),
		graph.WithMaxImageSize(c.Render.MaxImageSize),
		graph.WithDebugBounds(c.Render.DebugBounds),
	}
	if c.Render.Assets != "" {
		opts = append(opts, graph.WithResources(resource.NewDirProvider(c.resolve(c.Render.Assets))))
	}
	return opts
}

// Shaper loads the configured fonts. It returns nil when no fonts are
// configured.
func (c *Config) Shaper() (*text.Shaper, error) {
	if len(c.Fonts) == 0 {
		return nil, nil
	}
	fonts := make([]*text.Font, 0, len(c.Fonts))
	for _, f := range c.Fonts {
		path := c.resolve(f.Path)
		data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read font"), "path", path)
		}
		font, err := text.ParseFont(f.Name, data)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse font"), "path", path)
		}
		fonts = append(fonts, font)
	}
	return text.NewShaper(fonts...), nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
