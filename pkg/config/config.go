package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every Groceria environment variable.
const EnvPrefix = "GROCERIA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GROCERIA_APP_ENV" default:"development"`
	Port         string `envconfig:"GROCERIA_APP_PORT" default:"5001"`
	LogLevel     string `envconfig:"GROCERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GROCERIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type MongoConfig struct {
	URI            string        `envconfig:"GROCERIA_MONGO_URI" required:"true"`
	Database       string        `envconfig:"GROCERIA_MONGO_DATABASE" default:"groceria"`
	ConnectTimeout time.Duration `envconfig:"GROCERIA_MONGO_CONNECT_TIMEOUT" default:"10s"`
	MaxPoolSize    uint64        `envconfig:"GROCERIA_MONGO_MAX_POOL_SIZE" default:"20"`
	MinPoolSize    uint64        `envconfig:"GROCERIA_MONGO_MIN_POOL_SIZE" default:"2"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GROCERIA_REDIS_URL"`
	Address      string        `envconfig:"GROCERIA_REDIS_ADDR"`
	Password     string        `envconfig:"GROCERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GROCERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GROCERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GROCERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GROCERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GROCERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GROCERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"GROCERIA_RATE_LIMIT_ENABLED" default:"true"`
	Window  time.Duration `envconfig:"GROCERIA_RATE_LIMIT_WINDOW" default:"1m"`
	Limit   int           `envconfig:"GROCERIA_RATE_LIMIT_LIMIT" default:"100"`
}

type CatalogConfig struct {
	BaseURL         string        `envconfig:"GROCERIA_CATALOG_BASE_URL" default:"https://world.openfoodfacts.org"`
	Timeout         time.Duration `envconfig:"GROCERIA_CATALOG_TIMEOUT" default:"10s"`
	DefaultPageSize int           `envconfig:"GROCERIA_CATALOG_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int           `envconfig:"GROCERIA_CATALOG_MAX_PAGE_SIZE" default:"100"`
	UpstreamFetch   int           `envconfig:"GROCERIA_CATALOG_UPSTREAM_FETCH" default:"100"`
}

type CORSConfig struct {
	Origins []string `envconfig:"GROCERIA_CORS_ORIGINS" default:"http://localhost:5173"`
}
