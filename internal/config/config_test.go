package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "mysecretkey", cfg.AccessSecret)
	assert.Equal(t, "myrefreshsecretkey", cfg.RefreshSecret)
	assert.Equal(t, "30m0s", cfg.AccessTTL.String())
	assert.Equal(t, "168h0m0s", cfg.RefreshTTL.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("SECRET_KEY", "real-access-secret")
	t.Setenv("REFRESH_SECRET_KEY", "real-refresh-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, "real-access-secret", cfg.AccessSecret)
	assert.Equal(t, "15m0s", cfg.AccessTTL.String())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "dbhost",
		DBPort:     "5433",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "notes",
		DBSSLMode:  "disable",
	}

	assert.Equal(t,
		"host=dbhost port=5433 user=u password=p dbname=notes sslmode=disable",
		cfg.DSN(),
	)
}

func TestInsecureDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SECRET_KEY", "REFRESH_SECRET_KEY"}, cfg.InsecureDefaults())

	t.Setenv("SECRET_KEY", "real-access-secret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"REFRESH_SECRET_KEY"}, cfg.InsecureDefaults())

	t.Setenv("REFRESH_SECRET_KEY", "real-refresh-secret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.InsecureDefaults())
}
