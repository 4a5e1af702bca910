// Package config loads the application configuration from an optional
// YAML file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is consulted when KVS_CONFIG is unset.
const DefaultConfigFile = "kvs.yaml"

// Config holds all application configuration
type Config struct {
	API  APIConfig  `yaml:"api"`
	Data DataConfig `yaml:"data"`
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int `yaml:"port"`
}

// DataConfig holds data file and reminder settings
type DataConfig struct {
	File         string `yaml:"file"`
	ReminderDays int    `yaml:"reminder_days"`
}

// Load reads the config file if present, then applies environment
// overrides (API_PORT, DATA_FILE, REMINDER_DAYS).
func Load() (*Config, error) {
	cfg := &Config{
		API:  APIConfig{Port: 8080},
		Data: DataConfig{File: "kunden.json", ReminderDays: 7},
	}

	path := getEnv("KVS_CONFIG", DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid API_PORT: %w", err)
		}
		cfg.API.Port = port
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Data.File = v
	}
	if v := os.Getenv("REMINDER_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
		}
		cfg.Data.ReminderDays = days
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
