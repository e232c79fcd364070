package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Timezone)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "postgres", cfg.AuditSink)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SALON_TIMEZONE", "UTC")
	t.Setenv("S3_BUCKET", "salon-media")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "salon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: \"7000\"\nlog_format: console\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "0123456789abcdef", ServerPort: "80", TokenTTL: time.Hour, AuditSink: "postgres"}
	require.NoError(t, base.Validate())

	short := base
	short.JWTSecret = "short"
	assert.Error(t, short.Validate())

	sink := base
	sink.AuditSink = "kafka"
	assert.Error(t, sink.Validate())

	mongo := base
	mongo.AuditSink = "mongo"
	assert.Error(t, mongo.Validate())
	mongo.MongoURI = "mongodb://localhost:27017"
	assert.NoError(t, mongo.Validate())
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CORS_ORIGINS", "https://salon.example,https://admin.salon.example")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://salon.example", "https://admin.salon.example"}, cfg.CORSOrigins)
}
