package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenConfigTTL(t *testing.T) {
	tc := TokenConfig{TTLDays: 1, TTLHours: 2, TTLMinutes: 30}
	assert.Equal(t, 26*time.Hour+30*time.Minute, tc.TTL())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("RANDOM_SECRET", "shh")
	t.Setenv("ALGORITHM", "HS384")
	t.Setenv("ACCESS_TOKEN_EXPIRES_DAYS", "0")
	t.Setenv("ACCESS_TOKEN_EXPIRES_HOURS", "1")
	t.Setenv("ACCESS_TOKEN_EXPIRES_MINUTES", "15")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "shh", cfg.Token.Secret)
	assert.Equal(t, "HS384", cfg.Token.Algorithm)
	assert.Equal(t, 75*time.Minute, cfg.Token.TTL())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		StorageDriver: StorageMemory,
		DBMaxConns:    1,
		Token:         TokenConfig{Secret: "s", Algorithm: "HS256", TTLHours: 1},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }},
		{"empty secret", func(c *Config) { c.Token.Secret = "" }},
		{"empty algorithm", func(c *Config) { c.Token.Algorithm = "" }},
		{"zero ttl", func(c *Config) { c.Token.TTLHours = 0 }},
		{"negative part", func(c *Config) { c.Token.TTLMinutes = -90 }},
		{"no connections", func(c *Config) { c.DBMaxConns = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
