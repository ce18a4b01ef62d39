// Package config loads the study-session YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/study-session/internal/model"
)

const (
	EnvConfig = "STUDY_SESSION_CONFIG"
	EnvDB     = "STUDY_SESSION_DB"

	DefaultNewCardsPerDay = 20
	DefaultLogMode        = "dev"
)

// Config is the on-disk configuration. Zero values are filled by Load.
type Config struct {
	DBPath         string     `yaml:"db_path"`
	Language       string     `yaml:"language"`
	Goal           model.Goal `yaml:"goal"`
	NewCardsPerDay *int       `yaml:"new_cards_per_day"` // nil → 20; 0 → no new cards
	LogMode        string     `yaml:"log_mode"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	n := DefaultNewCardsPerDay
	return Config{
		Language:       model.DefaultLanguage,
		Goal:           model.GoalCasual,
		NewCardsPerDay: &n,
		LogMode:        DefaultLogMode,
	}
}

// DefaultDir is ~/.study-session.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".study-session")
}

// Path resolves the config file location: explicit path, then $STUDY_SESSION_CONFIG,
// then ~/.study-session/config.yaml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads and validates the config at path. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = model.DefaultLanguage
	}
	if !model.ValidLanguages[c.Language] {
		return fmt.Errorf("unsupported language %q", c.Language)
	}

	goal, err := model.ParseGoal(string(c.Goal))
	if err != nil {
		return err
	}
	if goal == "" {
		goal = model.GoalCasual
	}
	c.Goal = goal

	if c.NewCardsPerDay == nil {
		n := DefaultNewCardsPerDay
		c.NewCardsPerDay = &n
	}
	if *c.NewCardsPerDay < 0 {
		return fmt.Errorf("new_cards_per_day must be >= 0, got %d", *c.NewCardsPerDay)
	}

	if c.LogMode == "" {
		c.LogMode = DefaultLogMode
	}
	return nil
}

// ResolveDBPath picks the database file: flag, $STUDY_SESSION_DB, config, default.
func (c Config) ResolveDBPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvDB); env != "" {
		return env
	}
	if c.DBPath != "" {
		return expandHome(c.DBPath)
	}
	return filepath.Join(DefaultDir(), "study.db")
}

// Write saves the config as YAML, creating the directory if needed.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func expandHome(p string) string {
	if len(p) > 1 && p[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}
