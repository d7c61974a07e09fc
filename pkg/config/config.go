package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"sigs.k8s.io/yaml"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig
const EnvPrefix = "GUIJS"

// Config holds the configuration for the desktop launcher
type Config struct {
	// NodeBinary is the runtime used to start the bundled server
	NodeBinary string `json:"nodeBinary" envconfig:"NODE_BINARY"`

	// ServerPort is passed to the server as PORT
	ServerPort int `json:"serverPort" envconfig:"SERVER_PORT"`

	// ServerEntry is the server entry point, relative to the resource directory
	ServerEntry string `json:"serverEntry" envconfig:"SERVER_ENTRY"`

	// ResourceDir overrides the resource directory derived from the executable
	ResourceDir string `json:"resourceDir" envconfig:"RESOURCE_DIR"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel" envconfig:"LOG_LEVEL"`

	// LogFormat is one of auto, text, json
	LogFormat string `json:"logFormat" envconfig:"LOG_FORMAT"`

	// Window settings for the host shell
	WindowTitle  string `json:"windowTitle" envconfig:"WINDOW_TITLE"`
	WindowWidth  int    `json:"windowWidth" envconfig:"WINDOW_WIDTH"`
	WindowHeight int    `json:"windowHeight" envconfig:"WINDOW_HEIGHT"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		NodeBinary:   "node",
		ServerPort:   4000,
		ServerEntry:  "server/app.js",
		LogLevel:     "info",
		LogFormat:    "auto",
		WindowTitle:  "guijs",
		WindowWidth:  1280,
		WindowHeight: 800,
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file at path, then GUIJS_* environment variables
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ServerURL is the address the main surface loads once the server is ready
func (c *Config) ServerURL() string {
	return fmt.Sprintf("http://localhost:%d", c.ServerPort)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.NodeBinary == "" {
		return fmt.Errorf("node binary is required")
	}
	if c.ServerEntry == "" {
		return fmt.Errorf("server entry point is required")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server port %d is out of range", c.ServerPort)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	return nil
}
