package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/config"
	"github.com/adanyl0v/go-todo-api/internal/delivery/http/v1"
	"github.com/adanyl0v/go-todo-api/internal/metrics"
	"github.com/adanyl0v/go-todo-api/internal/services"
	"github.com/adanyl0v/go-todo-api/internal/tracing"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func (a *App) MustListenAndServeHTTP() {
	if a.cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := a.cfg.HTTP
	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: a.newRouter(),
	}

	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) sends SIGTERM, Ctrl+C sends SIGINT.
	// SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	a.logger.Info().Msg("shut down http server")
}

func (a *App) newRouter() *gin.Engine {
	jwtCfg := a.cfg.JWT
	tokens := services.NewTokenService(jwtCfg.Issuer, []byte(jwtCfg.SigningKey), jwtCfg.TokenTTL)
	v1Handler, err := v1.New(
		a.logger,
		services.NewAuthService(a.logger, a.store, tokens, services.NewPasswordHasher(nil)),
		services.NewTaskService(a.logger, a.store),
		tokens,
		a.cfg.HTTP.AuthHeader,
	)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to create http handler")
		panic(err)
	}
	return newRouter(a.logger, a.cfg, a.store, v1Handler)
}

func newRouter(logger zerolog.Logger, cfg *config.Config, store pinger, h v1.Handler) *gin.Engine {
	router := gin.New()
	router.Use(v1.RequestLogger(logger))
	router.Use(v1.Recovery(logger))
	router.Use(cors.New(corsConfig(cfg.HTTP)))
	if cfg.Tracing.Enabled {
		router.Use(tracing.Middleware())
	}
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readinessHandler(logger, store))

	v1.Register(router, h)
	return router
}

func corsConfig(cfg config.HTTPConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowHeaders: []string{"Content-Type", "Authorization", cfg.AuthHeader},
		MaxAge:       12 * time.Hour,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	return corsCfg
}

func readinessHandler(logger zerolog.Logger, store pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		err := store.Ping(ctx)
		if err != nil {
			logger.Error().
				Err(err).
				Msg("storage is not ready")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
