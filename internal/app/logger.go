package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/config"
)

func newDefaultLogger() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}

func (a *App) MustInitApplicationLogger() {
	w, err := applyLogLevel(a.cfg.Env)
	if err != nil {
		a.logger.Error().
			Str("env", a.cfg.Env).
			Msg("unknown env")
		panic(err)
	}

	a.logger = a.logger.Output(w)
	a.logger.Info().Msg("initialized application logger")
}

// applyLogLevel sets the global level for env and returns the writer
// the application logger should use.
func applyLogLevel(env string) (io.Writer, error) {
	switch env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		return consoleWriter, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	return os.Stdout, nil
}
