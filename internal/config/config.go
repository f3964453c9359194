package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	ListenAddr string
	DataDir    string
	DBPath     string
	ConfigPath string
	LogLevel   string
	LogFormat  string

	// AdminToken replaces the generated token in the data dir when set.
	AdminToken string
}

func FromEnv() Config {
	listenAddr := getenv("QUEUE_LISTEN_ADDR", ":8080")
	dataDir := getenv("QUEUE_DATA_DIR", "./data")
	dbPath := getenv("QUEUE_DB_PATH", filepath.Join(dataDir, "matches.sqlite"))
	configPath := getenv("QUEUE_CONFIG_PATH", filepath.Join(dataDir, "config.json"))

	return Config{
		ListenAddr: listenAddr,
		DataDir:    dataDir,
		DBPath:     dbPath,
		ConfigPath: configPath,
		LogLevel:   getenv("QUEUE_LOG_LEVEL", "info"),
		LogFormat:  getenv("QUEUE_LOG_FORMAT", "text"),
		AdminToken: os.Getenv("QUEUE_ADMIN_TOKEN"),
	}
}

// ForDataDir derives the file paths from a data dir, for the CLI --data-dir flag.
func (c Config) ForDataDir(dir string) Config {
	c.DataDir = dir
	c.DBPath = filepath.Join(dir, "matches.sqlite")
	c.ConfigPath = filepath.Join(dir, "config.json")
	return c
}

func getenv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
