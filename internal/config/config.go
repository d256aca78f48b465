package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage drivers selectable via the STORAGE variable.
const (
	StoragePostgres = "postgres"
	StorageFile     = "file"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string

	// Storage picks the backend: postgres (default) or file.
	Storage string

	// FilePath is where the file backend keeps its snapshot.
	FilePath string

	// BackupDir enables the periodic CSV backup job when non-empty.
	BackupDir string

	Database DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Storage:     getEnv("STORAGE", StoragePostgres),
		FilePath:    getEnv("FILE_PATH", "wordbook.json"),
		BackupDir:   os.Getenv("BACKUP_DIR"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordbook"),
			User:     getEnv("DB_USER", "wordbook"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when STORAGE=postgres")
		}
	case StorageFile:
		// No credentials needed for the snapshot file.
	default:
		return nil, fmt.Errorf("unknown STORAGE %q (want %q or %q)", cfg.Storage, StoragePostgres, StorageFile)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
