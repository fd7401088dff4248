package config_test

import (
	"testing"
	"time"

	"toko/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "storage/app/public", cfg.StorageRoot)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiration)
	assert.False(t, cfg.RabbitMQEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=toko dbname=toko sslmode=disable")
	t.Setenv("SESSION_EXPIRATION", "30m")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=db user=toko dbname=toko sslmode=disable", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.SessionExpiration)
	assert.True(t, cfg.RabbitMQEnabled)
}
