package cmds

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger configures the global zerolog logger. With a log file, output
// goes to a rotating file. The interactive viewer owns the terminal, so
// without a log file it logs nothing.
func initLogger(opts rootOptions, stderr io.Writer, interactive bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", opts.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	switch {
	case opts.LogFile != "":
		lj := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		log.Logger = zerolog.New(lj).With().Timestamp().Logger()
		return lj, nil
	case interactive:
		log.Logger = zerolog.New(io.Discard)
	default:
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return nil, nil
}
