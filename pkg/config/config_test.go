package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "Cyclonet S.A.S.", cfg.Provider.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_IDLE_MINUTES", "10")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROVIDER_NIT", "900123456-8")
	t.Setenv("DB_MIGRATE_ON_START", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "900123456-8", cfg.Provider.NIT)
	assert.False(t, cfg.DB.MigrateOnStart)
}

func TestLoad_RechazaTimeoutInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_IDLE_MINUTES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "factonet", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/factonet?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
