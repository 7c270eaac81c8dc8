package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/stageview/internal/config"
	"github.com/waabox/stageview/internal/domain"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
trim_prefixes = ["ci"]

[palette]
success = "#00ff00"

[geometry]
em = 10
transition_hold = 0.5
transition_end = 0.9

[raster]
width = 640
italic_font_path = "/fonts/italic.ttf"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	cfg, err := config.LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Geometry.EM)
	assert.Equal(t, 640, cfg.Raster.Width)
	assert.Equal(t, []string{"ci"}, cfg.TrimPrefixes)
	assert.Equal(t, "#ffffff", cfg.Raster.Background, "unset keys keep defaults")
	assert.Equal(t, "/fonts/italic.ttf", cfg.Raster.ItalicFontPath)

	pal, err := cfg.BuildPalette()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", pal.Hex(domain.StateSuccess))

	params := cfg.Params(cfg.Raster.TextColor)
	assert.Equal(t, 10.0, params.Radius)
	assert.Equal(t, 0.5, params.TransitionHold)
	assert.Equal(t, 0.9, params.TransitionEnd)
	assert.Equal(t, 20.0, params.RowHeight)
}

func TestLoad_EnvVarsTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[raster]\nwidth = 640\n"), 0600))

	t.Setenv("STAGEVIEW_WIDTH", "1600")
	t.Setenv("STAGEVIEW_EM", "12.5")
	t.Setenv("STAGEVIEW_FONT", "/usr/share/fonts/dejavu.ttf")

	cfg, err := config.LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, 1600, cfg.Raster.Width)
	assert.Equal(t, 12.5, cfg.Geometry.EM)
	assert.Equal(t, "/usr/share/fonts/dejavu.ttf", cfg.Raster.FontPath)
}

func TestLoad_MissingFileIsNotError(t *testing.T) {
	cfg, err := config.LoadFrom("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Raster.Width, cfg.Raster.Width)
	assert.Equal(t, 300, cfg.ReloadIntervalSeconds)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad transition": "[geometry]\ntransition_hold = 0.9\ntransition_end = 0.5\n",
		"bad em":         "[geometry]\nem = 0\n",
		"bad palette":    "[palette]\nsuccess = \"green\"\n",
		"unknown state":  "[palette]\nrunning = \"#00ff00\"\n",
		"bad color":      "[raster]\nbackground = \"white\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0600))
			_, err := config.LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("STAGEVIEW_WIDTH", "wide")
	_, err := config.LoadFrom("/nonexistent/path/config.toml")
	assert.Error(t, err)
}

func TestSave_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.Default()
	cfg.Palette["pending"] = "#ffaa00"
	cfg.Raster.Width = 900

	require.NoError(t, config.Save(path, cfg))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 900, loaded.Raster.Width)
	assert.Equal(t, "#ffaa00", loaded.Palette["pending"])
}
