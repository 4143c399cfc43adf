package config

import (
	"time"

	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoadDatabaseConfig reads the PostgreSQL settings used by the postgres
// storage backend
func LoadDatabaseConfig() (*database.DBConfig, error) {
	cfg := &database.DBConfig{
		Host:              utils.GetEnvVariable("DB_HOST", "localhost"),
		Port:              utils.GetEnvInt("DB_PORT", 5432),
		Username:          utils.GetEnvVariable("DB_USER", "storefront"),
		Password:          utils.GetEnvVariable("DB_PASSWORD", "secret"),
		DBName:            utils.GetEnvVariable("DB_NAME", "storefront_dev"),
		SSLMode:           utils.GetEnvVariable("DB_SSLMODE", "disable"),
		MaxConns:          int32(utils.GetEnvInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(utils.GetEnvInt("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   utils.GetEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   utils.GetEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: utils.GetEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        utils.GetEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:        utils.GetEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    utils.GetEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.Host, validation.Required),
		validation.Field(&cfg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&cfg.Username, validation.Required),
		validation.Field(&cfg.DBName, validation.Required),
		validation.Field(&cfg.MaxConns, validation.Min(int32(1))),
		validation.Field(&cfg.MinConns, validation.Min(int32(0))),
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
