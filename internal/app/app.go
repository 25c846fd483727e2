// Package app bootstraps the service: config, logging, tracing,
// storage and the HTTP server.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/config"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

// Version is reported to the tracing backend. It is overridden at
// build time with -ldflags "-X".
var Version = "dev"

type App struct {
	logger          zerolog.Logger
	cfg             *config.Config
	store           storage.Storage
	shutdownTracing func(context.Context) error
}

// New returns an application with the default logger. The Must*
// methods are expected to be called in order by main.
func New() *App {
	a := &App{logger: newDefaultLogger()}
	a.logger.Info().Msg("initialized default logger")
	return a
}
