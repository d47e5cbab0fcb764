package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/pkg/config"
)

// clearEnv vacía las variables usadas; viper trata una env vacía como no definida.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "STORE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "DB_MAX_CONNS", "JWT_SECRET",
		"HTTP_PORT", "AI_PROVIDER", "MATCHER_MIN_STOCK", "MATCHER_MAX_DISTANCE_KM",
		"MATCHER_LIMIT", "STATUS_WARNING_DAYS", "REORDER_HORIZON_DAYS", "SWAGGER_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, config.AIProviderLocal, cfg.AI.Provider)
	assert.Equal(t, config.MatcherConfig{MinStock: 100, MaxDistanceKm: 0, Limit: 3}, cfg.Matcher)
	assert.Equal(t, 7, cfg.Status.WarningDays)
	assert.Equal(t, config.ReorderConfig{HorizonDays: 14, CoverageDays: 30, UrgentDays: 7}, cfg.Reorder)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.True(t, cfg.Docs.SwaggerEnabled)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("MATCHER_MIN_STOCK", "250")
	t.Setenv("MATCHER_MAX_DISTANCE_KM", "42.5")
	t.Setenv("MATCHER_LIMIT", "5")
	t.Setenv("REORDER_HORIZON_DAYS", "21")
	t.Setenv("SWAGGER_ENABLED", "false")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, 250, cfg.Matcher.MinStock)
	assert.InDelta(t, 42.5, cfg.Matcher.MaxDistanceKm, 1e-9)
	assert.Equal(t, 5, cfg.Matcher.Limit)
	assert.Equal(t, 21, cfg.Reorder.HorizonDays)
	assert.False(t, cfg.Docs.SwaggerEnabled)
	assert.True(t, cfg.JWT.Enabled())
	assert.Equal(t, config.AIProviderGemini, cfg.AI.Provider)
}

func TestLoad_Invalido(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mysql")
	_, err := config.Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/stock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgresql://u:p@h/db"
	assert.Equal(t, "postgresql://u:p@h/db", c.ConnectionString())
}
