// Package config loads bot configuration from YAML with environment
// overrides and validates required credentials before startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default configuration file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	DiscordToken  string `yaml:"discordToken"`
	GuildID       string `yaml:"guildId"` // empty registers commands globally
	LogLevel      string `yaml:"logLevel"`
	ESVAPIKey     string `yaml:"esvApiKey"`
	ESVBaseURL    string `yaml:"esvBaseURL"`
	APIBibleKey   string `yaml:"apiBibleKey"`
	APIBibleURL   string `yaml:"apiBibleURL"`
	DatabaseURL   string `yaml:"databaseURL"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	VotdPath      string `yaml:"votdPath"`
}

// Load reads config from path (defaults to config.yaml). A missing file is
// not fatal: every field can come from the environment.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to env-only configuration
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.DiscordToken = strings.TrimSpace(v)
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.GuildID = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ESV_API_KEY"); v != "" {
		cfg.ESVAPIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("ESV_BASE_URL"); v != "" {
		cfg.ESVBaseURL = v
	}
	if v := os.Getenv("API_BIBLE_KEY"); v != "" {
		cfg.APIBibleKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("API_BIBLE_URL"); v != "" {
		cfg.APIBibleURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("VOTD_PATH"); v != "" {
		cfg.VotdPath = v
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateConfig fails fast on the credentials the bot cannot run without.
// The API.Bible key is deliberately not required here: without it the bot
// serves ESV-only traffic and non-ESV requests fail on first use.
func validateConfig(cfg FileConfig) error {
	if cfg.DiscordToken == "" {
		return errors.New("config: discordToken is required (set in config.yaml or DISCORD_TOKEN)")
	}
	if cfg.ESVAPIKey == "" {
		return errors.New("config: esvApiKey is required (set in config.yaml or ESV_API_KEY)")
	}
	return nil
}
