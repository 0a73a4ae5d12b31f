package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Supported completion providers.
const (
	ProviderAnthropic = "anthropic"
)

// Source kinds for the feeds we watch.
const (
	KindBlog        = "blog"
	KindReleaseFeed = "release-feed"
	KindCommitFeed  = "commit-feed"
)

// Config holds all application configuration
type Config struct {
	Version  int            `toml:"version"`
	Sources  []Source       `toml:"sources"`
	Collect  CollectConfig  `toml:"collect"`
	Store    StoreConfig    `toml:"store"`
	Analysis AnalysisConfig `toml:"analysis"`
	Email    EmailConfig    `toml:"email"`
}

// Source is one feed to watch. The list is fixed at process start.
type Source struct {
	URL  string `toml:"url"`
	Kind string `toml:"kind"`
}

type CollectConfig struct {
	MaxEntries     int    `toml:"max_entries"`
	ExcerptLength  int    `toml:"excerpt_length"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Schedule       string `toml:"schedule"` // cron expression for watch mode
	Timezone       string `toml:"timezone"`
}

type StoreConfig struct {
	DataDir string `toml:"data_dir"` // empty means <UserConfigDir>/sdkwatch/data
}

type AnalysisConfig struct {
	LLMProvider string `toml:"llm_provider"`
	APIKey      string `toml:"api_key"`
	Model       string `toml:"model"`
	MaxTokens   int    `toml:"max_tokens"`
}

type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	FromAddr string `toml:"from_address"`
	ToAddr   string `toml:"to_address"`
}

// Default returns a Config with sensible defaults. The default sources are
// the Anthropic developer surfaces: the blog for announcements, the Python
// SDK release feed for library changes, and the cookbook commit feed for
// new sample code.
func Default() *Config {
	return &Config{
		Version: 1,
		Sources: []Source{
			{URL: "https://www.anthropic.com/index.xml", Kind: KindBlog},
			{URL: "https://github.com/anthropics/anthropic-sdk-python/releases.atom", Kind: KindReleaseFeed},
			{URL: "https://github.com/anthropics/anthropic-cookbook/commits/main.atom", Kind: KindCommitFeed},
		},
		Collect: CollectConfig{
			MaxEntries:     10,
			ExcerptLength:  600,
			TimeoutSeconds: 15,
			Schedule:       "0 7 * * *",
			Timezone:       "UTC",
		},
		Analysis: AnalysisConfig{
			LLMProvider: ProviderAnthropic,
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
		},
		Email: EmailConfig{
			SMTPPort: 587,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sdkwatch"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the platform-appropriate cache directory
func CacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "sdkwatch"), nil
}

// DataDir resolves the directory snapshots and reports are written under.
func (c *Config) DataDir() (string, error) {
	if c.Store.DataDir != "" {
		return c.Store.DataDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
