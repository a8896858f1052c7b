// Package config loads the process configuration. Two required
// environment variables (KV_ADDR, KV_AOF) select the address and the
// append-only log path; everything else is an optional ambient YAML
// document for tuning knobs with sane defaults.
package config

import (
	"os"
	"time"
)

const (
	defaultAddr    = "127.0.0.1:6379"
	defaultAOFPath = "kvstore.aof"

	envAddr = "KV_ADDR"
	envAOF  = "KV_AOF"
)

// Config is the fully resolved process configuration.
type Config struct {
	Addr    string `yaml:"-"`
	AOFPath string `yaml:"-"`

	Engine  EngineConfig  `yaml:"engine"`
	Sweeper SweeperConfig `yaml:"sweeper"`
	Network NetworkConfig `yaml:"network"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig configures the keyspace engine.
type EngineConfig struct {
	// Partitions shards the keyspace across this many independently
	// locked partitions. 1 gives the single-lock default.
	Partitions int `yaml:"partitions"`
}

// SweeperConfig configures the opportunistic background sweeper.
type SweeperConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// NetworkConfig configures the TCP listener.
type NetworkConfig struct {
	MaxConnections uint          `yaml:"max_connections"`
	MaxMessageSize string        `yaml:"max_message_size"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

// LoggingConfig configures the structured logging facade.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

// GetConfig resolves KV_ADDR and KV_AOF from the environment and loads
// the optional ambient YAML document at path (falling back to an
// embedded default document when path does not exist).
func GetConfig(path string) (Config, error) {
	reader, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := ParseConfig(reader)
	if err != nil {
		return Config{}, err
	}

	cfg.Addr = envOrDefault(envAddr, defaultAddr)
	cfg.AOFPath = envOrDefault(envAOF, defaultAOFPath)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
