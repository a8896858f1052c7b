package config

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultConfigDocument supplies every tuning knob's default value. A
// user-supplied file is decoded on top of it, so a file naming only
// one field still gets defaults for the rest.
const defaultConfigDocument = `
engine:
  partitions: 1
sweeper:
  interval_seconds: 2
network:
  max_connections: 1024
  max_message_size: 4MB
  idle_timeout: 5m
logging:
  level: info
  output: ""
`

// GetConfigReader opens path, or an empty reader when path does not
// exist (ParseConfig always starts from the embedded defaults).
func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return io.NopCloser(strings.NewReader("")), nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ParseConfig decodes the embedded default document, then decodes input
// on top of it so that any field input leaves unset keeps its default.
func ParseConfig(input io.ReadCloser) (Config, error) {
	defer input.Close()

	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigDocument), &cfg); err != nil {
		return Config{}, err
	}

	decoder := yaml.NewDecoder(input)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}

	return cfg, nil
}
