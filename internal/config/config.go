package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-required:"true"`
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
	JWT      JWTConfig      `yaml:"jwt"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type HTTPConfig struct {
	Host               string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port               string        `yaml:"port" env:"HTTP_PORT,PORT" env-default:"5000"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AuthHeader         string        `yaml:"auth_header" env:"HTTP_AUTH_HEADER" env-default:"authToken"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins" env:"HTTP_CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"POSTGRES_USERNAME"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" env:"POSTGRES_DATABASE"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxConns       int32         `yaml:"max_conns" env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`

	// URL takes precedence over the individual connection parameters.
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"MONGO_DATABASE" env-default:"todo"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

type JWTConfig struct {
	SigningKey string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	Issuer     string `yaml:"issuer" env:"JWT_ISSUER" env-default:"todo-api"`

	// TokenTTL of zero issues tokens that never expire.
	TokenTTL time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"0s"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"TRACING_ENDPOINT" env-default:"localhost:4317"`
	ServiceName string `yaml:"service_name" env:"TRACING_SERVICE_NAME" env-default:"todo-api"`
}
