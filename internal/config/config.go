package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/saminightshift/redwood/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "redwood.toml"

	// DefaultWebPort is the default web-side dev server port.
	DefaultWebPort = 8910

	// DefaultHost is the default dev server host.
	DefaultHost = "localhost"

	// DefaultAPIURL is the default path the web side uses to reach functions.
	DefaultAPIURL = "/.redwood/functions"
)

// Config represents the complete redwood.toml configuration.
type Config struct {
	// Web contains web-side configuration.
	Web WebConfig `toml:"web"`

	// API contains api-side configuration.
	API APIConfig `toml:"api"`

	// Browser contains browser behavior for the dev server.
	Browser BrowserConfig `toml:"browser"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// WebConfig contains web-side configuration.
type WebConfig struct {
	// Title is the default document title.
	Title string `toml:"title"`

	// Port is the web dev server port.
	Port int `toml:"port"`

	// Host is the web dev server host.
	Host string `toml:"host"`

	// APIURL is the path or URL the web side uses to reach the api side.
	APIURL string `toml:"apiUrl"`

	// A11y enables accessibility route announcements in generated code.
	A11y bool `toml:"a11y"`
}

// APIConfig contains api-side configuration.
type APIConfig struct {
	// Port is the api dev server port.
	Port int `toml:"port"`
}

// BrowserConfig contains browser behavior for the dev server.
type BrowserConfig struct {
	// Open opens a browser window when the dev server starts.
	Open bool `toml:"open"`
}

// ConfigPath returns the path the config was loaded from.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// FindConfigPath walks up from startDir looking for redwood.toml.
func FindConfigPath(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E201").WithDetail(
				"Searched from " + startDir + " to the filesystem root.")
		}
		dir = parent
	}
}

// Load reads and decodes redwood.toml from the given path.
func Load(configPath string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, errors.New("E202").Wrap(err)
	}

	cfg.configPath = configPath
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromDir discovers redwood.toml starting at startDir and loads it.
func LoadFromDir(startDir string) (*Config, error) {
	configPath, err := FindConfigPath(startDir)
	if err != nil {
		return nil, err
	}
	return Load(configPath)
}

// defaultConfig returns a config populated with defaults.
func defaultConfig() *Config {
	return &Config{
		Web: WebConfig{
			Port:   DefaultWebPort,
			Host:   DefaultHost,
			APIURL: DefaultAPIURL,
		},
		API: APIConfig{
			Port: DefaultWebPort + 1,
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Web.Port == 0 {
		c.Web.Port = DefaultWebPort
	}
	if c.Web.Host == "" {
		c.Web.Host = DefaultHost
	}
	if c.Web.APIURL == "" {
		c.Web.APIURL = DefaultAPIURL
	}
	if c.API.Port == 0 {
		c.API.Port = DefaultWebPort + 1
	}
}
