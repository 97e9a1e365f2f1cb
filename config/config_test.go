package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coursegraph/coursegraph/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"DATABASE_CONNECTION_STRING", "CATALOG_URL", "ORACLE_URL", "ORACLE_API_KEY", "ORACLE_MODEL"} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("COURSEGRAPH_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1", cfg.OracleURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OracleModel)
	assert.Empty(t, cfg.DatabaseConnectionString)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "coursegraph.yaml")
	content := "database_connection_string: postgres://localhost/coursegraph\noracle_url: http://localhost:1234/v1\noracle_model: local-model\ncatalog_url: https://catalog.example.edu\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("COURSEGRAPH_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/coursegraph", cfg.DatabaseConnectionString)
	assert.Equal(t, "http://localhost:1234/v1", cfg.OracleURL)
	assert.Equal(t, "local-model", cfg.OracleModel)
	assert.Equal(t, "https://catalog.example.edu", cfg.CatalogURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "coursegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("oracle_model: local-model\n"), 0o644))
	t.Setenv("COURSEGRAPH_CONFIG", path)
	t.Setenv("ORACLE_MODEL", "gpt-4o")
	t.Setenv("DATABASE_CONNECTION_STRING", "postgres://db:5432/catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OracleModel)
	assert.Equal(t, "postgres://db:5432/catalog", cfg.DatabaseConnectionString)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "coursegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("oracle_model: [unterminated"), 0o644))
	t.Setenv("COURSEGRAPH_CONFIG", path)

	_, err := config.Load()
	assert.Error(t, err)
}
