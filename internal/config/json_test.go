package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_dsn":    "other.db",
		"api_delay":       "10ms",
		"accept_test_pin": false,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "other.db", cfg.DatabaseDSN)
		assert.Equal(t, 10*time.Millisecond, cfg.APIDelay)
		assert.False(t, cfg.AcceptTestPin)
		// untouched fields keep their defaults
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "123456", cfg.TestPin)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabaseDSN: "keep.db", APIDelay: 42 * time.Millisecond}
		parseJson(cfg)

		assert.Equal(t, "keep.db", cfg.DatabaseDSN)
		assert.Equal(t, 42*time.Millisecond, cfg.APIDelay)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-f", "flag.db", "-driver", "pgx", "-delay", "25"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "flag.db", cfg.DatabaseDSN)
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Equal(t, 25*time.Millisecond, cfg.APIDelay)
}
