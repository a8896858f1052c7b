package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vaishvijs13/kv-rs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_DefaultsWhenFileAbsent(t *testing.T) {
	os.Unsetenv("KV_ADDR")
	os.Unsetenv("KV_AOF")

	cfg, err := config.GetConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6379", cfg.Addr)
	assert.Equal(t, "kvstore.aof", cfg.AOFPath)
	assert.Equal(t, 1, cfg.Engine.Partitions)
	assert.Equal(t, 2, cfg.Sweeper.IntervalSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestGetConfig_EnvOverrides(t *testing.T) {
	t.Setenv("KV_ADDR", "0.0.0.0:7000")
	t.Setenv("KV_AOF", "/tmp/custom.aof")

	cfg, err := config.GetConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7000", cfg.Addr)
	assert.Equal(t, "/tmp/custom.aof", cfg.AOFPath)
}

func TestGetConfig_FromFile(t *testing.T) {
	os.Unsetenv("KV_ADDR")
	os.Unsetenv("KV_AOF")

	path := filepath.Join(t.TempDir(), "config.yml")
	doc := "engine:\n  partitions: 8\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.GetConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Engine.Partitions)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Sweeper.IntervalSeconds, "fields absent from the file keep their default")
}
