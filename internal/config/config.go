package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the API credentials and runtime settings for the CLI.
type Config struct {
	BaseURL  string
	Key      string
	LampID   int
	Project  int
	Timeout  time.Duration
	LogLevel string
	LogFile  string
	// EnvFile is the .env file that was read, if any.
	EnvFile string
}

// ErrMissingCredentials is returned by Validate when key, lampid or project
// is not set.
var ErrMissingCredentials = errors.New("lamplight credentials are not configured")

// Environment variables that override the config file.
const (
	EnvKey     = "LAMPLIGHT_KEY"
	EnvLampID  = "LAMPLIGHT_ID"
	EnvProject = "LAMPLIGHT_PROJECT"
	EnvBaseURL = "LAMPLIGHT_BASE_URL"
)

const (
	defaultConfigPath = "~/.config/lamplight/config.toml"
	defaultBaseURL    = "https://lamplight.online/api/"
	defaultTimeout    = 30 * time.Second
	defaultLogLevel   = "warn"
)

// Load reads the config file at path (or the default location), then applies
// a .env file next to it and finally the process environment. A missing
// config file falls back to defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{BaseURL: defaultBaseURL, Timeout: defaultTimeout, LogLevel: defaultLogLevel}
	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}

	envPath := filepath.Join(filepath.Dir(resolved), ".env")
	dotenv, err := godotenv.Read(envPath)
	switch {
	case err == nil:
		cfg.EnvFile = envPath
	case errors.Is(err, os.ErrNotExist):
		dotenv = nil
	default:
		return Config{}, fmt.Errorf("read env file: %w", err)
	}
	if err := cfg.applyEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		Key            string `toml:"key"`
		LampID         int    `toml:"lampid"`
		Project        int    `toml:"project"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogLevel       string `toml:"log_level"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		c.BaseURL = v
	}
	c.Key = strings.TrimSpace(raw.Key)
	c.LampID = raw.LampID
	c.Project = raw.Project
	if raw.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	return nil
}

func (c *Config) applyEnv(get func(string) string) error {
	if v := strings.TrimSpace(get(EnvKey)); v != "" {
		c.Key = v
	}
	if v := strings.TrimSpace(get(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	for name, dest := range map[string]*int{EnvLampID: &c.LampID, EnvProject: &c.Project} {
		v := strings.TrimSpace(get(name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		*dest = n
	}
	return nil
}

// Validate reports missing credentials.
func (c Config) Validate() error {
	var missing []string
	if c.Key == "" {
		missing = append(missing, "key")
	}
	if c.LampID <= 0 {
		missing = append(missing, "lampid")
	}
	if c.Project <= 0 {
		missing = append(missing, "project")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
