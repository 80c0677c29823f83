package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 15 * time.Second
	fileName       = "config.yaml"
)

// Config is the resolved client configuration.
type Config struct {
	DataDir string    `yaml:"data_dir" env:"CLIMBLOG_DATA_DIR"`
	DBPath  string    `yaml:"db_path" env:"CLIMBLOG_DB_PATH"`
	API     APIConfig `yaml:"api"`
	Log     LogConfig `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"CLIMBLOG_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"CLIMBLOG_HTTP_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"CLIMBLOG_LOG_LEVEL"`
	Path  string `yaml:"path" env:"CLIMBLOG_LOG_PATH"`
}

// Options carries command-line overrides. Empty fields are ignored.
type Options struct {
	DataDir    string
	ConfigPath string
}

// New resolves configuration: defaults, then an optional YAML file, then
// CLIMBLOG_* environment variables, then command-line options.
func New(opts Options) (Config, error) {
	cfg := Config{
		API: APIConfig{BaseURL: defaultBaseURL, Timeout: defaultTimeout},
		Log: LogConfig{Level: "info"},
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = os.Getenv("CLIMBLOG_DATA_DIR")
	}
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "climblog")
	}

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv("CLIMBLOG_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, fileName)
	}
	if err := loadFromFile(path, &cfg, explicit); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "climblog.db")
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(cfg.DataDir, "climblog.log")
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api base url must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("http timeout must be non-negative")
	}
	return nil
}

func loadFromFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
