// Package config handles the XDG configuration directory, the config file
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvFile is loaded from the working directory when present.
	EnvFile = ".env"
)

// Backends.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Defaults.
const (
	DefaultBackend = BackendREST
	DefaultURL     = "http://localhost:8000"
	DefaultTimeout = 10 * time.Second
)

// Environment overrides.
const (
	EnvBackend    = "TASKBOARD_BACKEND"
	EnvURL        = "TASKBOARD_URL"
	EnvTimeout    = "TASKBOARD_TIMEOUT"
	EnvPriorities = "TASKBOARD_PRIORITIES"
	EnvNoColor    = "NO_COLOR"
)

// Settings is the persisted part of the configuration.
type Settings struct {
	// Backend selects the task service implementation: rest or googletasks.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// URL is the base URL of the REST task service.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds each REST request. Zero disables it.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Priorities enables the priority attribute and priority sort.
	Priorities bool `yaml:"priorities" mapstructure:"priorities"`

	// Color enables ANSI styling of completed tasks.
	Color bool `yaml:"color" mapstructure:"color"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Backend:    DefaultBackend,
		URL:        DefaultURL,
		Timeout:    DefaultTimeout,
		Priorities: true,
		Color:      true,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	Settings

	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// Settings are layered: defaults, then config.yaml, then the environment
// (a .env file in the working directory is loaded first).
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges config.yaml over the current settings. A missing file is
// not an error.
func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := v.Unmarshal(&c.Settings); err != nil {
		return fmt.Errorf("invalid %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvBackend); ok && strings.TrimSpace(v) != "" {
		c.Backend = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvURL); ok && strings.TrimSpace(v) != "" {
		c.URL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvPriorities); ok && strings.TrimSpace(v) != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			c.Priorities = true
		case "0", "false", "no", "off":
			c.Priorities = false
		default:
			return fmt.Errorf("invalid %s: %s", EnvPriorities, v)
		}
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		c.Color = false
	}
	return nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST, BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if the settings file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// WriteSettings writes s to the settings file, creating the directory.
func (c *Config) WriteSettings(s Settings) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}

	body, err := yaml.Marshal(fileSettings{
		Backend:    s.Backend,
		URL:        s.URL,
		Timeout:    s.Timeout.String(),
		Priorities: s.Priorities,
		Color:      s.Color,
	})
	if err != nil {
		return err
	}

	content := "# taskboard configuration\n" + string(body)
	return os.WriteFile(c.ConfigPath(), []byte(content), 0600)
}

// fileSettings is the on-disk form; durations are written as text.
type fileSettings struct {
	Backend    string `yaml:"backend"`
	URL        string `yaml:"url"`
	Timeout    string `yaml:"timeout"`
	Priorities bool   `yaml:"priorities"`
	Color      bool   `yaml:"color"`
}
