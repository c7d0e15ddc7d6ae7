package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Hive   HiveConfig   `yaml:"hive"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type HiveConfig struct {
	// MaxEvents bounds the in-memory event log; the oldest events are
	// evicted past this point.
	MaxEvents int `yaml:"max_events"`
	// InitEvents is how many recent events a new subscriber receives in
	// its init snapshot.
	InitEvents int `yaml:"init_events"`
	// SendBuffer is the per-subscriber outbound queue; subscribers that
	// fall this far behind are disconnected.
	SendBuffer int `yaml:"send_buffer"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4520,
		},
		Hive: HiveConfig{
			MaxEvents:  10000,
			InitEvents: 100,
			SendBuffer: 64,
		},
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
