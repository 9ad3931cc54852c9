package baymimic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testConfig = `
[log]
level = 0
format = "text"
add_source = false

[db]
host = "localhost"
port = 5432
user = "market"
password = "file-secret"
database = "baymimic"
pool_size = 10

[market]
sweep_interval_seconds = 30
snapshot_ttl_seconds = 300
seed_demo_data = true
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "market", cfg.DB.User)
	assert.Equal(t, "file-secret", cfg.DB.Password)
	assert.Equal(t, "baymimic", cfg.DB.Database)
	assert.Equal(t, 10, cfg.DB.PoolSize)
	assert.Equal(t, 30, cfg.Market.SweepIntervalSeconds)
	assert.Equal(t, 300, cfg.Market.SnapshotTTLSeconds)
	assert.True(t, cfg.Market.SeedDemoData)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("BAYMIMIC_DB_PASSWORD", "env-secret")
	t.Setenv("BAYMIMIC_DB_USER", "env-user")

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	assert.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.DB.Password)
	assert.Equal(t, "env-user", cfg.DB.User)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
