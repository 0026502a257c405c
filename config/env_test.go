package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	_ = Load()
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	reset(t)

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, ":memory:", DatabaseDSN())
	assert.Equal(t, "127.0.0.1:5000", Addr())
	assert.True(t, SeedOnBoot())
	assert.Equal(t, "data", SeedPath())
	assert.Equal(t, time.Minute, CacheTTL())
	assert.Equal(t, int64(4<<20), MaxBodyBytes())
	assert.Equal(t, []string{"*"}, CORSOrigins())
	assert.Zero(t, RateLimit())
	assert.Empty(t, GRPCPort())
}

func TestFileMergeOrder(t *testing.T) {
	reset(t)
	dir := t.TempDir()

	jsonFile := write(t, dir, "app.json", `{"app_port": 7000, "db_driver": "postgres", "seed_on_boot": false}`)
	yamlFile := write(t, dir, "app.yaml", "APP_PORT: \"7100\"\nCACHE_TTL: 30s\n")
	envFile := write(t, dir, ".env", "APP_PORT=7200\nCORS_ORIGINS=https://a.example, https://b.example\n")

	require.NoError(t, loadFromFiles([]string{jsonFile, yamlFile, filepath.Join(dir, "absent.yaml")}, envFile))

	assert.Equal(t, "7200", AppPort())
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Contains(t, DatabaseDSN(), "dbname=offerdesk")
	assert.False(t, SeedOnBoot())
	assert.Equal(t, 30*time.Second, CacheTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
}

func TestEnvironmentWins(t *testing.T) {
	reset(t)
	Set("APP_PORT", "7300")
	t.Setenv("APP_PORT", "7400")

	assert.Equal(t, "7400", AppPort())
}

func TestInvalidValuesFallBack(t *testing.T) {
	reset(t)
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("MAX_BODY_BYTES", "-5")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT", "many")

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, int64(4<<20), MaxBodyBytes())
	assert.Equal(t, time.Minute, CacheTTL())
	assert.Zero(t, RateLimit())
}

func TestMalformedConfigFile(t *testing.T) {
	reset(t)
	bad := write(t, t.TempDir(), "app.yaml", "APP_PORT: [unclosed")

	assert.Error(t, loadFromFiles([]string{bad}, ""))
}
