package app

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-todo-api/internal/config"
)

const configPathEnv = "CONFIG_PATH"

func (a *App) MustReadConfig() {
	cfg, err := newConfigReader(os.Getenv(configPathEnv)).Read()
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to read config")
		panic(err)
	}
	a.logger.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("read config")

	a.cfg = cfg
}

func newConfigReader(path string) config.Reader {
	if path != "" {
		return config.NewFileReader(path)
	}
	return config.NewEnvReader()
}
