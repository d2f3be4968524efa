// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Scan defaults
const (
	DefaultMaxFiles      = 50
	DefaultMaxLines      = 500
	DefaultScanWorkers   = 4
	DefaultCacheMaxItems = 256
)

// Config holds all configuration for the scanner and the MCP server.
type Config struct {
	Root              string // JSONLSCAN_ROOT, default "~/.claude/projects"
	MaxFiles          int    // MAX_FILES, default 50
	MaxLinesPerFile   int    // MAX_LINES_PER_FILE, default 500
	ScanWorkers       int    // SCAN_WORKERS, default 4
	FileCacheMaxItems int    // FILE_CACHE_MAX_ITEMS, default 256

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Root:              getEnvString("JSONLSCAN_ROOT", DefaultRoot()),
		MaxFiles:          getEnvInt("MAX_FILES", DefaultMaxFiles),
		MaxLinesPerFile:   getEnvInt("MAX_LINES_PER_FILE", DefaultMaxLines),
		ScanWorkers:       getEnvInt("SCAN_WORKERS", DefaultScanWorkers),
		FileCacheMaxItems: getEnvInt("FILE_CACHE_MAX_ITEMS", DefaultCacheMaxItems),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// DefaultRoot returns ~/.claude/projects, or a relative path when the
// home directory is unknown.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "projects")
	}
	return filepath.Join(home, ".claude", "projects")
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
