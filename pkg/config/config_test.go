package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Security.JWTSecret = "secret"
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = "./test.db"
	cfg.API.CastTimeout = 10 * time.Second
	return cfg
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validTestConfig()
	assert.Equal(t, "./test.db", cfg.GetDatabaseDSN())

	cfg.Database = DatabaseConfig{
		Type:     "postgres",
		Host:     "localhost",
		Port:     5432,
		User:     "campusvote",
		Password: "hunter2",
		DBName:   "campusvote",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=campusvote password=hunter2 dbname=campusvote sslmode=disable",
		cfg.GetDatabaseDSN())

	cfg.Database.SSLMode = "require"
	assert.Contains(t, cfg.GetDatabaseDSN(), "sslmode=require")
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))

	missingSecret := validTestConfig()
	missingSecret.Security.JWTSecret = ""
	assert.Error(t, validateConfig(missingSecret))

	badType := validTestConfig()
	badType.Database.Type = "oracle"
	assert.Error(t, validateConfig(badType))

	noTimeout := validTestConfig()
	noTimeout.API.CastTimeout = 0
	assert.Error(t, validateConfig(noTimeout))
}

func TestSanitizeForLogging(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Password = "hunter2"

	sanitized := cfg.SanitizeForLogging()
	assert.Equal(t, "[REDACTED]", sanitized.Security.JWTSecret)
	assert.Equal(t, "[REDACTED]", sanitized.Database.Password)

	// Original is untouched
	assert.Equal(t, "secret", cfg.Security.JWTSecret)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}
