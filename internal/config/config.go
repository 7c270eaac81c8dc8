package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/waabox/stageview/internal/palette"
	"github.com/waabox/stageview/internal/render"
)

// GeometryConfig holds the diagram proportions. Every length is a multiple
// of EM except the transition fractions, which are offsets along a connector.
type GeometryConfig struct {
	EM             float64 `toml:"em"`
	TransitionHold float64 `toml:"transition_hold"`
	TransitionEnd  float64 `toml:"transition_end"`
	RowHeight      float64 `toml:"row_height"`
}

// RasterConfig controls PNG output.
type RasterConfig struct {
	Width          int    `toml:"width"`
	FontPath       string `toml:"font_path"`
	ItalicFontPath string `toml:"italic_font_path"`
	Background     string `toml:"background"`
	TextColor      string `toml:"text_color"`
}

// TerminalConfig controls terminal output.
type TerminalConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	TextColor  string  `toml:"text_color"`
}

// Config holds all stageview configuration.
type Config struct {
	Palette               map[string]string `toml:"palette"`
	Geometry              GeometryConfig    `toml:"geometry"`
	Raster                RasterConfig      `toml:"raster"`
	Terminal              TerminalConfig    `toml:"terminal"`
	TrimPrefixes          []string          `toml:"trim_prefixes"`
	ReloadIntervalSeconds int               `toml:"reload_interval_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Palette: map[string]string{},
		Geometry: GeometryConfig{
			EM:             20,
			TransitionHold: render.DefaultTransitionHold,
			TransitionEnd:  render.DefaultTransitionEnd,
			RowHeight:      2,
		},
		Raster: RasterConfig{
			Width:      1200,
			Background: "#ffffff",
			TextColor:  "#000000",
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
			TextColor:  "#e0e0e0",
		},
		ReloadIntervalSeconds: 300,
	}
}

// LoadFrom reads configuration from the given TOML file path on top of the
// defaults. If the file does not exist, the defaults are returned without
// error. Environment variables always take precedence over file values:
//   - STAGEVIEW_WIDTH overrides raster.width
//   - STAGEVIEW_EM    overrides geometry.em
//   - STAGEVIEW_FONT  overrides raster.font_path
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parsing %s", path)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// DefaultConfigPath returns the default path for the stageview config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/stageview/config.toml"
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STAGEVIEW_WIDTH"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "STAGEVIEW_WIDTH")
		}
		cfg.Raster.Width = w
	}
	if v := os.Getenv("STAGEVIEW_EM"); v != "" {
		em, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "STAGEVIEW_EM")
		}
		cfg.Geometry.EM = em
	}
	if v := os.Getenv("STAGEVIEW_FONT"); v != "" {
		cfg.Raster.FontPath = v
	}
	return nil
}

// Validate rejects values the renderer cannot work with.
func (c Config) Validate() error {
	g := c.Geometry
	switch {
	case g.EM <= 0:
		return errors.Errorf("geometry.em must be positive, got %v", g.EM)
	case g.RowHeight <= 0:
		return errors.Errorf("geometry.row_height must be positive, got %v", g.RowHeight)
	case g.TransitionHold < 0 || g.TransitionHold > 1:
		return errors.Errorf("geometry.transition_hold must be within [0,1], got %v", g.TransitionHold)
	case g.TransitionEnd < g.TransitionHold || g.TransitionEnd > 1:
		return errors.Errorf("geometry.transition_end must be within [transition_hold,1], got %v", g.TransitionEnd)
	case c.Raster.Width <= 0:
		return errors.Errorf("raster.width must be positive, got %d", c.Raster.Width)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return errors.New("terminal cell size must be positive")
	}
	for _, hex := range []string{c.Raster.Background, c.Raster.TextColor, c.Terminal.TextColor} {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(err, "color %q", hex)
		}
	}
	_, err := c.BuildPalette()
	return err
}

// BuildPalette returns the state palette with the configured overrides.
func (c Config) BuildPalette() (palette.Palette, error) {
	return palette.FromHex(c.Palette)
}

// Params returns the renderer geometry for these settings, with labels drawn
// in textColor.
func (c Config) Params(textColor string) render.Params {
	p := render.DefaultParams(c.Geometry.EM)
	p.TransitionHold = c.Geometry.TransitionHold
	p.TransitionEnd = c.Geometry.TransitionEnd
	p.RowHeight = c.Geometry.RowHeight * c.Geometry.EM
	if col, err := colorful.Hex(textColor); err == nil {
		p = p.WithLabelColor(col)
	}
	return p
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "opening config file")
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return errors.Wrap(encErr, "encoding config")
	}
	return f.Close()
}
