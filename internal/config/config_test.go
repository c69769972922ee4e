package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() *Config {
	cfg := Default()
	cfg.Auth.Secret = "secret"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5100, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Jobs.PageLimit)
	assert.Equal(t, 0, cfg.Jobs.MaxClientLimit)
	assert.Equal(t, 6, cfg.Jobs.MonthlyWindow)
	assert.Equal(t, model.DefaultJobTypes, cfg.Jobs.Types)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  read_timeout: 5s
database:
  driver: mongo
  mongo_uri: mongodb://localhost:27017
jobs:
  page_limit: 20
  types: [full-time, contract]
auth:
  secret: from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Jobs.PageLimit)
	assert.Equal(t, []string{"full-time", "contract"}, cfg.Jobs.Types)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("ALLOW_ORIGIN", "http://a.test, http://b.test")
	t.Setenv("JOB_TYPES", "full-time,part-time")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins)
	assert.Equal(t, []string{"full-time", "part-time"}, cfg.Jobs.Types)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("USE_CONNECTION_STR", "maybe")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be an integer")
	assert.Contains(t, err.Error(), "USE_CONNECTION_STR must be a boolean")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"missing secret", func(c *Config) { c.Auth.Secret = "" }, "JWT secret is required"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "unknown database driver"},
		{"mongo without uri", func(c *Config) { c.Database.Driver = DriverMongo }, "mongo uri is required"},
		{"redis revocation without url", func(c *Config) { c.Auth.Revocation = DriverRedis }, "redis url is required"},
		{"zero page limit", func(c *Config) { c.Jobs.PageLimit = 0 }, "page limit"},
		{"no job types", func(c *Config) { c.Jobs.Types = nil }, "job type"},
		{"minio without endpoint", func(c *Config) { c.Storage.Driver = DriverMinio }, "minio endpoint"},
		{"amqp without url", func(c *Config) { c.Events.Driver = DriverAMQP }, "amqp url"},
		{"unknown events driver", func(c *Config) { c.Events.Driver = "kafka" }, "unknown events driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
