package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings shared by the TUI and the store server.
type Config struct {
	StoreAddr      string
	Listen         string
	DBPath         string
	Collection     string
	SubscribeDelay time.Duration
	RollbackDelay  time.Duration
	RetryInterval  time.Duration
	Locale         string
}

const (
	defaultConfigPath     = "~/.config/lexicon/config.toml"
	defaultStoreAddr      = "127.0.0.1:7490"
	defaultListen         = "127.0.0.1:7490"
	defaultDBPath         = "~/.local/share/lexicon/lexicon.db"
	defaultCollection     = "words"
	defaultSubscribeDelay = 600 * time.Millisecond
	defaultRollbackDelay  = 300 * time.Millisecond
	defaultRetryInterval  = 2 * time.Second
	defaultLocale         = "en"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StoreAddr:      defaultStoreAddr,
		Listen:         defaultListen,
		DBPath:         mustExpand(defaultDBPath),
		Collection:     defaultCollection,
		SubscribeDelay: defaultSubscribeDelay,
		RollbackDelay:  defaultRollbackDelay,
		RetryInterval:  defaultRetryInterval,
		Locale:         defaultLocale,
	}
}

// Load locates and parses the lexicon config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		StoreAddr        string `toml:"store_addr"`
		Listen           string `toml:"listen"`
		DBPath           string `toml:"db_path"`
		Collection       string `toml:"collection"`
		SubscribeDelayMS *int   `toml:"subscribe_delay_ms"`
		RollbackDelayMS  *int   `toml:"rollback_delay_ms"`
		RetryIntervalMS  *int   `toml:"retry_interval_ms"`
		Locale           string `toml:"locale"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.StoreAddr = orDefault(raw.StoreAddr, defaultStoreAddr)
	cfg.Listen = orDefault(raw.Listen, defaultListen)
	cfg.DBPath = mustExpand(orDefault(raw.DBPath, defaultDBPath))
	cfg.Collection = orDefault(raw.Collection, defaultCollection)
	cfg.Locale = orDefault(raw.Locale, defaultLocale)

	if cfg.SubscribeDelay, err = millis("subscribe_delay_ms", raw.SubscribeDelayMS, defaultSubscribeDelay); err != nil {
		return Config{}, err
	}
	if cfg.RollbackDelay, err = millis("rollback_delay_ms", raw.RollbackDelayMS, defaultRollbackDelay); err != nil {
		return Config{}, err
	}
	if cfg.RetryInterval, err = millis("retry_interval_ms", raw.RetryIntervalMS, defaultRetryInterval); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func millis(key string, value *int, fallback time.Duration) (time.Duration, error) {
	if value == nil {
		return fallback, nil
	}
	if *value < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", key)
	}
	return time.Duration(*value) * time.Millisecond, nil
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
	if trimmed == ":memory:" {
		return trimmed, nil
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
