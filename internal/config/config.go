package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Duration lets YAML carry human-readable values like "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the application configuration, loaded from YAML with a
// handful of environment overrides for secrets.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Cache  CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig picks the record-store backend: a self-hosted Postgres
// or the hosted Supabase tables.
type StoreConfig struct {
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn"`
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
}

type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Backend:     BackendPostgres,
			PostgresDSN: "host=localhost user=postgres password=password dbname=keasy port=5432 sslmode=disable",
		},
		Cache: CacheConfig{TTL: Duration(30 * time.Second)},
	}
}

// Load reads the YAML file at path (missing file means defaults) and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("KEASY_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Store.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		cfg.Store.SupabaseKey = v
	}
	if v := os.Getenv("KEASY_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("postgres backend requires a DSN")
		}
	case BackendSupabase:
		if c.Store.SupabaseURL == "" || c.Store.SupabaseKey == "" {
			return fmt.Errorf("supabase backend requires SUPABASE_URL and SUPABASE_KEY")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	return nil
}
