package config

import (
	"github.com/cockroachdb/errors"
	"github.com/jinzhu/configor"
)

// Config - Application configuration
type Config struct {
	Supadata struct {
		APIKey    string `yaml:"api_key" env:"SUPADATA_API_KEY"`
		BaseURL   string `yaml:"base_url" default:"https://api.supadata.ai/v1" env:"SUPADATA_BASE_URL"`
		Timeout   int    `yaml:"timeout" default:"30" env:"SUPADATA_TIMEOUT"` // seconds
		UserAgent string `yaml:"user_agent" default:"mcp-supadata/1.0" env:"SUPADATA_USER_AGENT"`
	} `yaml:"supadata"`
	Node struct {
		Name           string `yaml:"name" default:"Supadata" env:"NODE_NAME"`
		ContinueOnFail bool   `yaml:"continue_on_fail" default:"false" env:"NODE_CONTINUE_ON_FAIL"`
	} `yaml:"node"`
	Scrape struct {
		Local     bool `yaml:"local" default:"false" env:"SCRAPE_LOCAL"` // serve web scrape without the remote API
		Timeout   int  `yaml:"timeout" default:"10" env:"SCRAPE_TIMEOUT"`
		MaxLength int  `yaml:"max_length" default:"0" env:"SCRAPE_MAX_LENGTH"`
	} `yaml:"scrape"`
	Log struct {
		Level string `yaml:"level" default:"info" env:"LOG_LEVEL"`
	} `yaml:"log"`
}

// LoadConfig - Load configuration file. Paths that do not exist are skipped,
// so environment variables alone are enough.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := &Config{}
	err := configor.New(&configor.Config{
		Debug:      false,
		Verbose:    false,
		Silent:     true,
		AutoReload: false,
	}).Load(cfg, paths...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// Validate checks the settings every run needs.
func (c *Config) Validate() error {
	if c.Supadata.APIKey == "" {
		return errors.New("supadata.api_key is required (or set SUPADATA_API_KEY)")
	}
	if c.Supadata.Timeout < 0 || c.Scrape.Timeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
