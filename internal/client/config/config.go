package config

import "time"

// Config holds runtime settings for the todo CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
