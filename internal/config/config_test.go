package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:54321", cfg.Backend.URL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, SourceBackend, cfg.Source)
	assert.Equal(t, "Samsung", cfg.Target.Brand)
	assert.Equal(t, "samsung.com", cfg.Target.Domain)
	assert.Equal(t, []string{"Samsung", "LG", "Sony", "TCL", "Hisense"}, cfg.Brands)
	assert.Contains(t, cfg.Sources.SocialDomains, "reddit.com")
	assert.Contains(t, cfg.Sources.CompetitorDomains, "lg.com")
	assert.Equal(t, "8990", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
backend:
  url: "https://example.supabase.co"
  api_key: "anon-key"
  timeout: 5s
target:
  brand: "LG"
  domain: "lg.com"
brands: ["LG", "Samsung"]
palette:
  brand_colors:
    Panasonic: "#123456"
log_level: debug
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "https://example.supabase.co", cfg.Backend.URL)
	assert.Equal(t, "anon-key", cfg.Backend.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "LG", cfg.Target.Brand)
	assert.Equal(t, []string{"LG", "Samsung"}, cfg.Brands)
	assert.Equal(t, "debug", cfg.LogLevel)

	// untouched keys keep defaults
	assert.Equal(t, float64(10), cfg.Backend.RequestsPerSecond)
	assert.Equal(t, "0 */6 * * *", cfg.Mirror.Schedule)

	p := cfg.BuildPalette()
	assert.Equal(t, "#123456", p.BrandColor("panasonic"))
	assert.Equal(t, "#1428A0", p.BrandColor("Samsung"))
}

func TestLoadAppliesEnvAPIKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend:\n  api_key: from-file\n"), 0644))

	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Backend.APIKey)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend: [unclosed"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Target.Brand = "Sony"
	require.NoError(t, cfg.Save(cfgPath))
	assert.True(t, Exists(cfgPath))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Sony", loaded.Target.Brand)
	assert.Equal(t, cfg.Backend.Timeout, loaded.Backend.Timeout)
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "cassandra"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Target.Brand = ""
	assert.Error(t, cfg.Validate())
}

func TestGetConfigPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/geodash-test.yaml")
	assert.Equal(t, "/tmp/geodash-test.yaml", GetConfigPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.geodash/mirror.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".geodash", "mirror.db"), got)

	got, err = ExpandPath("/var/lib/mirror.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/mirror.db", got)
}
