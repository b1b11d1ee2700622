package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "data/social.db", cfg.Database.Path)
	require.Equal(t, []string{"png", "jpg", "jpeg"}, cfg.Uploads.AllowedExtensions)
	require.Equal(t, int64(8<<20), cfg.Uploads.MaxBytes)
	require.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, 720*time.Hour, cfg.Auth.RememberTTL)
	require.Equal(t, "local", cfg.Storage.Backend)
	require.Equal(t, "info", cfg.Log.Level)

	// No secret key configured.
	require.Error(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOCIAL_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("SOCIAL_AUTH_SECRETKEY", "s3cret")
	t.Setenv("SOCIAL_AUTH_SESSIONTTL", "2h")
	t.Setenv("SOCIAL_UPLOADS_ALLOWEDEXTENSIONS", "PNG, gif")
	t.Setenv("SOCIAL_UPLOADS_MAXBYTES", "1024")
	t.Setenv("SOCIAL_AUTH_COOKIESECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, "s3cret", cfg.Auth.SecretKey)
	require.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, []string{"png", "gif"}, cfg.Uploads.AllowedExtensions)
	require.Equal(t, int64(1024), cfg.Uploads.MaxBytes)
	require.True(t, cfg.Auth.CookieSecure)
	require.NoError(t, cfg.Validate())
}

func TestLoadDotEnvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SOCIAL_AUTH_SECRETKEY=from-dotenv\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  path: /tmp/other.db\nlog:\n  format: json\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SOCIAL_AUTH_SECRETKEY") })

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "from-dotenv", cfg.Auth.SecretKey)
	require.Equal(t, "/tmp/other.db", cfg.Database.Path)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Auth.SecretKey = "k"
		c.Uploads.MaxBytes = 1
		c.Uploads.AllowedExtensions = []string{"png"}
		c.Storage.Backend = "local"
		c.Log.Format = "text"
		return c
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"s3 without bucket": func(c *Config) { c.Storage.Backend = "s3" },
		"unknown backend":   func(c *Config) { c.Storage.Backend = "ftp" },
		"zero max bytes":    func(c *Config) { c.Uploads.MaxBytes = 0 },
		"no extensions":     func(c *Config) { c.Uploads.AllowedExtensions = nil },
		"bad log format":    func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
