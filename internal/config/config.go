package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"storefront-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	defaultJWTSecret = "your-secret-key-change-in-production"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Catalog  CatalogConfig
	Discount DiscountConfig
	Session  SessionConfig
	Queue    QueueConfig
	Email    EmailConfig
	Orders   OrdersConfig
}

type AppConfig struct {
	Name            string
	Environment     string // development, staging, production
	Port            string
	Version         string
	ShutdownTimeout time.Duration
}

// StorageConfig selects the key/value backend behind the persistence adapter
type StorageConfig struct {
	Backend string // memory, redis, postgres
	Timeout time.Duration
	KeyTTL  time.Duration // redis only, 0 keeps keys forever
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type CatalogConfig struct {
	ProductsFile string
	UsersFile    string
	BcryptCost   int
}

type DiscountConfig struct {
	Domains []string
}

type SessionConfig struct {
	CookieName    string
	CookieDomain  string
	CookieSecure  bool
	IdleTTL       time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

type QueueConfig struct {
	Enabled          bool
	Concurrency      int
	MaxRetry         int
	SalesSummaryCron string
}

type EmailConfig struct {
	SMTPHost string // empty logs mail instead of sending it
	SMTPPort string
	From     string
}

type OrdersConfig struct {
	Timezone string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            utils.GetEnvVariable("APP_NAME", "Storefront API"),
			Environment:     utils.GetEnvVariable("APP_ENV", "development"),
			Port:            utils.GetEnvVariable("APP_PORT", "8080"),
			Version:         utils.GetEnvVariable("APP_VERSION", "1.0.0"),
			ShutdownTimeout: utils.GetEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Backend: utils.GetEnvVariable("STORAGE_BACKEND", StorageMemory),
			Timeout: utils.GetEnvDuration("STORAGE_TIMEOUT", 2*time.Second),
			KeyTTL:  utils.GetEnvDuration("STORAGE_KEY_TTL", 0),
		},
		Redis: RedisConfig{
			Host:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
			Password: utils.GetEnvVariable("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            utils.GetEnvVariable("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: utils.GetEnvDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		Catalog: CatalogConfig{
			ProductsFile: utils.GetEnvVariable("CATALOG_FILE", "data/productos.json"),
			UsersFile:    utils.GetEnvVariable("USERS_FILE", "data/usuarios.json"),
			BcryptCost:   utils.GetEnvInt("BCRYPT_COST", 10),
		},
		Discount: DiscountConfig{
			Domains: utils.GetEnvList("DISCOUNT_DOMAINS", nil),
		},
		Session: SessionConfig{
			CookieName:    utils.GetEnvVariable("SESSION_COOKIE_NAME", "session_id"),
			CookieDomain:  utils.GetEnvVariable("SESSION_COOKIE_DOMAIN", ""),
			CookieSecure:  utils.GetEnvBool("SESSION_COOKIE_SECURE", false),
			IdleTTL:       utils.GetEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval: utils.GetEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
			MaxSessions:   utils.GetEnvInt("SESSION_MAX", 10000),
		},
		Queue: QueueConfig{
			Enabled:          utils.GetEnvBool("QUEUE_ENABLED", false),
			Concurrency:      utils.GetEnvInt("QUEUE_CONCURRENCY", 10),
			MaxRetry:         utils.GetEnvInt("QUEUE_MAX_RETRY", 3),
			SalesSummaryCron: utils.GetEnvVariable("SALES_SUMMARY_CRON", "0 23 * * *"),
		},
		Email: EmailConfig{
			SMTPHost: utils.GetEnvVariable("SMTP_HOST", ""),
			SMTPPort: utils.GetEnvVariable("SMTP_PORT", "1025"),
			From:     utils.GetEnvVariable("EMAIL_FROM", "no-reply@tienda.cl"),
		},
		Orders: OrdersConfig{
			Timezone: utils.GetEnvVariable("ORDER_TIMEZONE", "America/Santiago"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := validation.Errors{
		"app": validation.ValidateStruct(&c.App,
			validation.Field(&c.App.Port, validation.Required),
			validation.Field(&c.App.Environment, validation.In("development", "staging", "production", "test")),
		),
		"storage": validation.ValidateStruct(&c.Storage,
			validation.Field(&c.Storage.Backend, validation.Required, validation.In(StorageMemory, StorageRedis, StoragePostgres)),
			validation.Field(&c.Storage.Timeout, validation.Min(time.Duration(0))),
		),
		"jwt": validation.ValidateStruct(&c.JWT,
			validation.Field(&c.JWT.Secret, validation.Required),
			validation.Field(&c.JWT.AccessTokenExpiry, validation.Required, validation.Min(time.Minute)),
		),
		"catalog": validation.ValidateStruct(&c.Catalog,
			validation.Field(&c.Catalog.ProductsFile, validation.Required),
			validation.Field(&c.Catalog.UsersFile, validation.Required),
			validation.Field(&c.Catalog.BcryptCost, validation.Min(4), validation.Max(31)),
		),
		"session": validation.ValidateStruct(&c.Session,
			validation.Field(&c.Session.CookieName, validation.Required),
			validation.Field(&c.Session.IdleTTL, validation.Required, validation.Min(time.Second)),
			validation.Field(&c.Session.MaxSessions, validation.Min(1)),
		),
		"queue": validation.ValidateStruct(&c.Queue,
			validation.Field(&c.Queue.Concurrency, validation.Min(1)),
			validation.Field(&c.Queue.MaxRetry, validation.Min(0)),
		),
		"orders": validation.ValidateStruct(&c.Orders,
			validation.Field(&c.Orders.Timezone, validation.Required, validation.By(knownTimezone)),
		),
	}.Filter()
	if err != nil {
		return err
	}

	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// Location is the time zone order dates are rendered in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Orders.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func knownTimezone(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return errors.New("unknown time zone")
	}
	return nil
}
