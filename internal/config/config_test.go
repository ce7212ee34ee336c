package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/plsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "postgres://postgres:@localhost:5432/plsync?sslmode=disable", cfg.DSN())
	assert.Nil(t, cfg.HeaderRow())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"docs.google.com"}, cfg.Sheets.CSVAllowedHosts)
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", "/tmp/pl.db")
	t.Setenv("SYNC_HEADER_ROW", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pl.db", cfg.DSN())
	require.NotNil(t, cfg.HeaderRow())
	assert.Equal(t, 2, *cfg.HeaderRow())
}
