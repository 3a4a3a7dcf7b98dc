package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Backend selects the record store persistence backend
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// Config holds all application configuration
type Config struct {
	// Server
	ServerPort string

	// Storage
	StoreBackend string // "file" or "bolt"
	DataDir      string // record set files / media database
	ProfileDB    string // $CONFIG_DIR/profiles.db
	MediaDB      string // $DATA_DIR/media.db (bolt backend only)

	// Metadata catalogs (optional; empty key disables that catalog)
	TMDBAPIKey string
	RAWGAPIKey string

	// Metadata lookup tuning
	MetadataCacheSize  int
	MetadataDebounceMS int

	// Backups
	BackupSchedule string // cron expression
	BackupDir      string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STORE_BACKEND", BackendFile)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("METADATA_CACHE_SIZE", 100)
	viper.SetDefault("METADATA_DEBOUNCE_MS", 300)
	viper.SetDefault("BACKUP_SCHEDULE", "0 3 * * *")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "collectarr")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	backupDir := viper.GetString("BACKUP_DIR")
	if backupDir == "" {
		backupDir = filepath.Join(configDir, "backups")
	}

	config := &Config{
		ServerPort: viper.GetString("SERVER_PORT"),

		StoreBackend: viper.GetString("STORE_BACKEND"),
		DataDir:      dataDir,
		ProfileDB:    filepath.Join(configDir, "profiles.db"),
		MediaDB:      filepath.Join(dataDir, "media.db"),

		TMDBAPIKey: viper.GetString("TMDB_API_KEY"),
		RAWGAPIKey: viper.GetString("RAWG_API_KEY"),

		MetadataCacheSize:  viper.GetInt("METADATA_CACHE_SIZE"),
		MetadataDebounceMS: viper.GetInt("METADATA_DEBOUNCE_MS"),

		BackupSchedule: viper.GetString("BACKUP_SCHEDULE"),
		BackupDir:      backupDir,

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.StoreBackend != BackendFile && config.StoreBackend != BackendBolt {
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendFile, BackendBolt, config.StoreBackend)
	}
	if config.MetadataCacheSize <= 0 {
		return nil, fmt.Errorf("METADATA_CACHE_SIZE must be positive")
	}

	return config, nil
}
