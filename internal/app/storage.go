package app

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-todo-api/internal/config"
	"github.com/adanyl0v/go-todo-api/internal/storage"
	"github.com/adanyl0v/go-todo-api/internal/storage/memory"
	"github.com/adanyl0v/go-todo-api/internal/storage/mongodb"
	"github.com/adanyl0v/go-todo-api/internal/storage/postgres"
)

func (a *App) MustConnectStorage() {
	store, err := newStorage(context.Background(), a.logger, a.cfg)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("driver", a.cfg.Storage.Driver).
			Msg("failed to connect storage")
		panic(err)
	}
	a.store = store
}

func (a *App) DisconnectStorage() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.store.Close(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to disconnect storage")
		return
	}
	a.logger.Info().
		Str("driver", a.cfg.Storage.Driver).
		Msg("disconnected storage")
}

func newStorage(ctx context.Context, logger zerolog.Logger, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case storage.DriverPostgres:
		store, err := connectPostgres(ctx, logger, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return store, nil
	case storage.DriverMongo:
		store, err := connectMongo(ctx, logger, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return store, nil
	case storage.DriverMemory:
		logger.Warn().Msg("using in-memory storage, data will not survive a restart")
		return memory.New(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.Storage.Driver)
	}
}

func connectPostgres(ctx context.Context, logger zerolog.Logger, cfg config.PostgresConfig) (*postgres.Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(postgresURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	err = pgPool.Ping(pingCtx)
	if err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Msg("connected to postgres")

	store := postgres.New(logger, pgPool)
	err = store.EnsureSchema(pingCtx)
	if err != nil {
		pgPool.Close()
		return nil, err
	}
	return store, nil
}

// postgresURL returns cfg.URL if set and otherwise builds a connection
// string from the individual parameters.
func postgresURL(cfg config.PostgresConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func connectMongo(ctx context.Context, logger zerolog.Logger, cfg config.MongoConfig) (*mongodb.Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	store := mongodb.New(logger, client, cfg.Database)
	err = store.Ping(connectCtx)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	logger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongo")

	err = store.EnsureIndexes(connectCtx)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}
