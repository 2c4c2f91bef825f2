package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Stockroom needs to reach its services.
type Config struct {
	InventoryURL   string
	LookupURL      string
	DefaultShelf   string
	RequestTimeout time.Duration
	LogDir         string
}

const (
	defaultConfigPath     = "~/.config/stockroom/config.toml"
	defaultLogDir         = "~/.local/share/stockroom"
	defaultInventoryURL   = "http://127.0.0.1:8000"
	defaultLookupURL      = "https://upc.skystuff.cc/api/"
	defaultRequestTimeout = 10 * time.Second
	defaultEnvFile        = ".env"
)

// Environment variables that override file values.
const (
	EnvInventoryURL = "STOCKROOM_INVENTORY_URL"
	EnvLookupURL    = "STOCKROOM_LOOKUP_URL"
	EnvDefaultShelf = "STOCKROOM_DEFAULT_SHELF"
)

// Load locates and parses the config, falling back to defaults when missing,
// then applies .env and environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InventoryURL:   defaultInventoryURL,
		LookupURL:      defaultLookupURL,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
	}

	if err := cfg.loadFile(resolved); err != nil {
		return Config{}, err
	}
	if err := loadEnvFile(defaultEnvFile); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
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
		InventoryURL   string `toml:"inventory_url"`
		LookupURL      string `toml:"lookup_url"`
		DefaultShelf   string `toml:"default_shelf"`
		RequestTimeout string `toml:"request_timeout"`
		LogDir         string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.InventoryURL); v != "" {
		c.InventoryURL = v
	}
	if v := strings.TrimSpace(raw.LookupURL); v != "" {
		c.LookupURL = v
	}
	c.DefaultShelf = strings.TrimSpace(raw.DefaultShelf)
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("parse config: request_timeout must be positive, got %s", v)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		c.LogDir = mustExpand(v)
	}
	return nil
}

// loadEnvFile exports values from a dotenv file without overriding variables
// already set in the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvInventoryURL)); v != "" {
		c.InventoryURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLookupURL)); v != "" {
		c.LookupURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultShelf)); v != "" {
		c.DefaultShelf = v
	}
}

// UILogPath returns the file the TUI writes its log to.
func (c Config) UILogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/stockroom.log")
	}
	return filepath.Join(c.LogDir, "stockroom.log")
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
