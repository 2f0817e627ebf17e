// Package logger provides tagged, filterable logging on top of log/slog.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"level"`

	// LogFilePath is the output file. Empty or "-" means stderr.
	LogFilePath string `toml:"file"`

	// EnabledTags only logs messages carrying one of these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (directory name, e.g. "textarea").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these base file names (e.g. "deduce.go").
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these files. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files"`

	level        slog.Level
	enabledTags  map[string]struct{}
	disabledTags map[string]struct{}
	enabledPkgs  map[string]struct{}
	disabledPkgs map[string]struct{}
	enabledFiles map[string]struct{}
	disabledFile map[string]struct{}
}

// NewConfig creates a Config with default values.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process converts the string lists into lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.enabledTags = sliceToSet(c.EnabledTags)
	c.disabledTags = sliceToSet(c.DisabledTags)
	c.enabledPkgs = sliceToSet(c.EnabledPackages)
	c.disabledPkgs = sliceToSet(c.DisabledPackages)
	c.enabledFiles = sliceToSet(c.EnabledFiles)
	c.disabledFile = sliceToSet(c.DisabledFiles)
}

// sliceToSet lowercases items into a set; nil when nothing usable remains.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
