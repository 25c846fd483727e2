package app

import (
	"context"
	"time"

	"github.com/adanyl0v/go-todo-api/internal/tracing"
)

func (a *App) MustInitTracing() {
	cfg := a.cfg.Tracing
	shutdown, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:        cfg.Enabled,
		Endpoint:       cfg.Endpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: Version,
	}, a.logger)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to init tracing")
		panic(err)
	}
	a.shutdownTracing = shutdown
}

func (a *App) ShutdownTracing() {
	if a.shutdownTracing == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.shutdownTracing(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown tracing")
		return
	}
	a.logger.Info().Msg("shut down tracing")
}
