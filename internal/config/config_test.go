package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, Duration(30*time.Second), cfg.Cache.TTL)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9090"
store:
  backend: supabase
  supabase_url: https://example.supabase.co
  supabase_key: secret
cache:
  ttl: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, BackendSupabase, cfg.Store.Backend)
	assert.Equal(t, Duration(time.Minute), cfg.Cache.TTL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEASY_ADDR", ":7000")
	t.Setenv("DATABASE_DSN", "host=db user=keasy dbname=keasy")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "host=db user=keasy dbname=keasy", cfg.Store.PostgresDSN)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "oracle" }, true},
		{"postgres without dsn", func(c *Config) { c.Store.PostgresDSN = "" }, true},
		{"supabase without key", func(c *Config) {
			c.Store.Backend = BackendSupabase
			c.Store.SupabaseURL = "https://example.supabase.co"
		}, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL = Duration(-time.Second) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
