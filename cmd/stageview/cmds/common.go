package cmds

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waabox/stageview/internal/config"
	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/draw"
	"github.com/waabox/stageview/internal/palette"
	"github.com/waabox/stageview/internal/payload"
	"github.com/waabox/stageview/internal/render"
	"github.com/waabox/stageview/internal/resize"
)

type rootOptions struct {
	Config   string
	LogLevel string
	LogFile  string
}

func addRootFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "Path to config file (defaults to ~/.config/stageview/config.toml)")
	root.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log-file", "", "Write logs to this file with rotation instead of stderr")
}

func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return rootOptions{}, err
	}
	logFile, err := cmd.Root().PersistentFlags().GetString("log-file")
	if err != nil {
		return rootOptions{}, err
	}
	return rootOptions{Config: cfgPath, LogLevel: level, LogFile: logFile}, nil
}

// env is what every drawing command needs: configuration, the palette it
// names and a payload decoder.
type env struct {
	cfg     config.Config
	palette palette.Palette
	decoder *payload.Decoder
}

func loadEnv(cmd *cobra.Command) (env, error) {
	opts, err := getRootOptions(cmd)
	if err != nil {
		return env{}, err
	}
	cfg, err := config.LoadFrom(opts.Config)
	if err != nil {
		return env{}, errors.Wrap(err, "loading config")
	}
	pal, err := cfg.BuildPalette()
	if err != nil {
		return env{}, err
	}
	dec := payload.NewDecoder()
	dec.TrimPrefixes = cfg.TrimPrefixes
	log.Debug().Str("config", opts.Config).Msg("configuration loaded")
	return env{cfg: cfg, palette: pal, decoder: dec}, nil
}

// paint renders p once on s at width.
func paint(s draw.Surface, params render.Params, pal palette.Palette, p domain.Pipeline, width int) error {
	r := render.New(pal, params)
	coord := resize.NewCoordinator(r, s, resize.TableMeasure(params.TableMetrics()), log.Logger)
	defer coord.Close()
	if err := coord.Show(resize.NewHub(), p, width); err != nil {
		if errors.Is(err, render.ErrNoStages) {
			log.Error().Str("pipeline", p.Label()).Msg("pipeline has no stages")
		}
		return err
	}
	return nil
}
