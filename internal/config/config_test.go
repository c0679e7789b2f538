package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_DRIVER", "DATABASE_URL", "DB_SLOW_THRESHOLD", "PORT", "CORS_ORIGIN",
		"JWT_SECRET", "COOKIE_NAME", "ALLOW_DEV_IDENTITY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 1500*time.Millisecond, cfg.Database.SlowThreshold)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "fertitrack.yaml")
	yml := `
database:
  driver: sqlite
  url: file:dev.db
http:
  port: "9000"
  cors_origins: ["https://app.example.com"]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGIN", "https://a.example.com/, https://b.example.com")
	t.Setenv("DB_SLOW_THRESHOLD", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:dev.db", cfg.Database.URL)
	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ft_auth", cfg.Auth.CookieName)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_SLOW_THRESHOLD", "soon")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(c *Config) { c.Database.URL = "postgres://x"; c.Auth.JWTSecret = "s" }, false},
		{"missing url", func(c *Config) { c.Auth.JWTSecret = "s" }, true},
		{"missing secret", func(c *Config) { c.Database.URL = "postgres://x" }, true},
		{"dev identity without secret", func(c *Config) {
			c.Database.URL = "postgres://x"
			c.Auth.AllowDevIdentity = true
		}, false},
		{"bad driver", func(c *Config) {
			c.Database.Driver = "mysql"
			c.Database.URL = "x"
			c.Auth.JWTSecret = "s"
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
