package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	DefaultDirectory string `mapstructure:"default_directory"`
	ShowHiddenFiles  bool   `mapstructure:"show_hidden_files"`
	ShowFileSize     bool   `mapstructure:"show_file_size"`
	EnableLogging    bool   `mapstructure:"enable_logging"`
	LogLevel         string `mapstructure:"log_level"`

	ThumbnailWidth      int `mapstructure:"thumbnail_width"`
	MaxFullImages       int `mapstructure:"max_full_images"`
	CacheIdleTTLMinutes int `mapstructure:"cache_idle_ttl_minutes"`
	CacheSweepMinutes   int `mapstructure:"cache_sweep_minutes"`

	SlideshowIntervalSeconds int `mapstructure:"slideshow_interval_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultDirectory:         ".",
		ShowHiddenFiles:          false,
		ShowFileSize:             true,
		EnableLogging:            true,
		LogLevel:                 "info",
		ThumbnailWidth:           200,
		MaxFullImages:            30,
		CacheIdleTTLMinutes:      5,
		CacheSweepMinutes:        2,
		SlideshowIntervalSeconds: 5,
	}
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}

	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigName(".imageviewer")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if err := viper.Unmarshal(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("failed to find home directory: %w", err)
	}

	configDir := filepath.Join(home, ".imageviewer")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	viper.SetConfigFile(configFile)

	viper.Set("default_directory", config.DefaultDirectory)
	viper.Set("show_hidden_files", config.ShowHiddenFiles)
	viper.Set("show_file_size", config.ShowFileSize)
	viper.Set("enable_logging", config.EnableLogging)
	viper.Set("log_level", config.LogLevel)
	viper.Set("thumbnail_width", config.ThumbnailWidth)
	viper.Set("max_full_images", config.MaxFullImages)
	viper.Set("cache_idle_ttl_minutes", config.CacheIdleTTLMinutes)
	viper.Set("cache_sweep_minutes", config.CacheSweepMinutes)
	viper.Set("slideshow_interval_seconds", config.SlideshowIntervalSeconds)

	return viper.WriteConfig()
}

func GetConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".imageviewer", "config.yaml"), nil
}

func ValidateConfig(config *Config) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if config.LogLevel == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if config.ThumbnailWidth <= 0 {
		return fmt.Errorf("thumbnail width must be positive: %d", config.ThumbnailWidth)
	}

	if config.MaxFullImages <= 0 {
		return fmt.Errorf("max full images must be positive: %d", config.MaxFullImages)
	}

	if config.CacheIdleTTLMinutes <= 0 {
		return fmt.Errorf("cache idle TTL must be positive: %d", config.CacheIdleTTLMinutes)
	}

	if config.SlideshowIntervalSeconds <= 0 {
		return fmt.Errorf("slideshow interval must be positive: %d", config.SlideshowIntervalSeconds)
	}

	return nil
}
