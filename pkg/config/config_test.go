package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SessionTTL(t *testing.T) {
	os.Setenv("SESSION_TTL_SECONDS", "120")
	defer os.Unsetenv("SESSION_TTL_SECONDS")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SESSION_TTL_SECONDS")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "marcel_assistant", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "marcel", Password: "pw",
		Database: "marcel_assistant", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=marcel password=pw dbname=marcel_assistant sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}

func TestTwilioConfigured(t *testing.T) {
	assert.False(t, (&TwilioConfig{}).Configured())
	assert.False(t, (&TwilioConfig{AccountSID: "AC123", AuthToken: "tok"}).Configured())
	assert.True(t, (&TwilioConfig{AccountSID: "AC123", AuthToken: "tok", FromNumber: "+15145550000"}).Configured())
}
