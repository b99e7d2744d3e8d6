// Package config handles configuration loading for mcp-server-requests.
//
// It provides functionality for:
//   - Loading configuration from .mcp-requests.yaml / .mcp-requests.json files
//   - Default configuration values
//   - Merging file values under command-line flags
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config represents the mcp-server-requests configuration.
type Config struct {
	UserAgent       string            `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	RandomUserAgent *bool             `json:"randomUserAgent,omitempty" yaml:"randomUserAgent,omitempty"`
	UABrowser       string            `json:"uaBrowser,omitempty" yaml:"uaBrowser,omitempty"`
	UAOS            string            `json:"uaOS,omitempty" yaml:"uaOS,omitempty"`
	ForceUserAgent  *bool             `json:"forceUserAgent,omitempty" yaml:"forceUserAgent,omitempty"`
	Timeout         int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty" yaml:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Headers         map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
	RateLimit       float64           `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"` // requests per second, 0 = unlimited
	LogLevel        string            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetRandomUserAgent returns the random user-agent setting, defaulting to false
func (c *Config) GetRandomUserAgent() bool {
	return getBool(c.RandomUserAgent, false)
}

// GetForceUserAgent returns the force user-agent setting, defaulting to false
func (c *Config) GetForceUserAgent() bool {
	return getBool(c.ForceUserAgent, false)
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Timeout:      30000, // 30 seconds
		MaxRedirects: 10,
		LogLevel:     "error",
	}
}

// ConfigFilenames contains the possible config file names, probed in order.
var ConfigFilenames = []string{
	".mcp-requests.yaml",
	".mcp-requests.yml",
	"mcp-requests.yaml",
	".mcp-requests.json",
	"mcp-requests.json",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory,
// returning defaults when none exists.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".json":
		err = json.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}

	return config, nil
}
