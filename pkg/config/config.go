package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shasthoai/store-backend/pkg/enums"
)

const (
	EnvPrefix = "SHASTHO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "SHASTHO_APP_ENV"
	EnvPort         = "SHASTHO_APP_PORT"
	EnvLogLevel     = "SHASTHO_LOG_LEVEL"
	EnvNamespace    = "SHASTHO_STORE_NAMESPACE"
	EnvKVBackend    = "SHASTHO_KV_BACKEND"
	EnvCatalogFile  = "SHASTHO_CATALOG_FILE"
	EnvRedisURL     = "SHASTHO_REDIS_URL"
	EnvRedisAddr    = "SHASTHO_REDIS_ADDR"
	EnvDBDriver     = "SHASTHO_DB_DRIVER"
	EnvDBDSN        = "SHASTHO_DB_DSN"
	EnvAutoMigrate  = "SHASTHO_AUTO_MIGRATE"
	EnvTaxRate      = "SHASTHO_STORE_TAX_RATE"
	EnvFreeShipping = "SHASTHO_STORE_FREE_SHIPPING_THRESHOLD"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	Redis        RedisConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHASTHO_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHASTHO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHASTHO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHASTHO_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SHASTHO_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig drives the catalog, the cart key namespace and the order summary.
type StoreConfig struct {
	Namespace             string        `envconfig:"SHASTHO_STORE_NAMESPACE" default:"shastho"`
	KVBackend             string        `envconfig:"SHASTHO_KV_BACKEND" default:"memory"`
	CatalogFile           string        `envconfig:"SHASTHO_CATALOG_FILE"`
	TaxRate               float64       `envconfig:"SHASTHO_STORE_TAX_RATE" default:"0.08"`
	FreeShippingThreshold float64       `envconfig:"SHASTHO_STORE_FREE_SHIPPING_THRESHOLD" default:"50"`
	FlatShipping          float64       `envconfig:"SHASTHO_STORE_FLAT_SHIPPING" default:"5.99"`
	RelatedLimit          int           `envconfig:"SHASTHO_STORE_RELATED_LIMIT" default:"3"`

	// SessionIdleTTL drops idle sessions from memory; carts stay in the backend.
	SessionIdleTTL time.Duration `envconfig:"SHASTHO_STORE_SESSION_IDLE_TTL" default:"30m"`
}

// Backend returns the parsed key-value backend.
func (s StoreConfig) Backend() (enums.KVBackend, error) {
	return enums.ParseKVBackend(strings.ToLower(strings.TrimSpace(s.KVBackend)))
}

type RedisConfig struct {
	URL          string        `envconfig:"SHASTHO_REDIS_URL"`
	Address      string        `envconfig:"SHASTHO_REDIS_ADDR"`
	Password     string        `envconfig:"SHASTHO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHASTHO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHASTHO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHASTHO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHASTHO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHASTHO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHASTHO_REDIS_WRITE_TIMEOUT" default:"5s"`
	// KeyTTL expires persisted carts; zero keeps them forever.
	KeyTTL time.Duration `envconfig:"SHASTHO_REDIS_KEY_TTL" default:"0s"`
}

type DBConfig struct {
	Driver string `envconfig:"SHASTHO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SHASTHO_DB_DSN"`

	MaxOpenConns    int           `envconfig:"SHASTHO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHASTHO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHASTHO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHASTHO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHASTHO_AUTO_MIGRATE" default:"true"`
}

func (c *Config) validate() error {
	backend, err := c.Store.Backend()
	if err != nil {
		return fmt.Errorf("%s: %w", EnvKVBackend, err)
	}
	if strings.TrimSpace(c.Store.Namespace) == "" {
		return fmt.Errorf("%s must not be empty", EnvNamespace)
	}
	if c.Store.TaxRate < 0 {
		return fmt.Errorf("%s must be non-negative", EnvTaxRate)
	}
	if c.Store.FreeShippingThreshold < 0 {
		return fmt.Errorf("%s must be non-negative", EnvFreeShipping)
	}

	switch backend {
	case enums.KVBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
	case enums.KVBackendSQL:
		driver := strings.ToLower(strings.TrimSpace(c.DB.Driver))
		if driver != "sqlite" && driver != "postgres" {
			return fmt.Errorf("%s must be sqlite or postgres, got %q", EnvDBDriver, c.DB.Driver)
		}
		if c.DB.DSN == "" {
			if driver == "postgres" {
				return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
			}
			c.DB.DSN = "shastho.db"
		}
	}
	return nil
}
