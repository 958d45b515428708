package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"contentdesk/internal/file"
)

var defaultConfig = Config{
	Database: "~/.config/contentdesk/contentdesk.db",

	Chat: &ChatConfig{
		ResponseDelayMilliseconds: 1500,
		RequestTimeout:            60,
	},

	Airtable: &AirtableConfig{
		APIHost:        "https://api.airtable.com",
		RequestTimeout: 30,
	},
}

// Config holds configuration for the contentdesk tool.
type Config struct {
	// Path of the sqlite file backing local persistence.
	Database string `json:"database"`

	Chat     *ChatConfig     `json:"chat"`
	Airtable *AirtableConfig `json:"airtable"`
}

// ChatConfig holds configuration for the chat surface.
type ChatConfig struct {
	// Delay of the simulated responder, in milliseconds.
	ResponseDelayMilliseconds int `json:"response_delay_milliseconds"`
	// Timeout for webhook calls, in seconds.
	RequestTimeout int `json:"request_timeout"`
}

// AirtableConfig holds configuration for the remote tabular-data service.
type AirtableConfig struct {
	APIHost string `json:"api_host"`
	// Timeout for API calls, in seconds.
	RequestTimeout int `json:"request_timeout"`
	// Credentials. Usually left empty here and supplied via the
	// AIRTABLE_ACCESS_TOKEN / AIRTABLE_BASE_ID environment variables.
	AccessToken string `json:"access_token"`
	BaseID      string `json:"base_id"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := file.ExpandPath(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Database = expandedDatabasePath

	applyEnvironment(config)
	return config, nil
}

// applyEnvironment overlays credentials from the environment, loading a .env
// file first if one is present in the working directory.
func applyEnvironment(config *Config) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if token := os.Getenv("AIRTABLE_ACCESS_TOKEN"); token != "" {
		config.Airtable.AccessToken = token
	}
	if baseID := os.Getenv("AIRTABLE_BASE_ID"); baseID != "" {
		config.Airtable.BaseID = baseID
	}
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
