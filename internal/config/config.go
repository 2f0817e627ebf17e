// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tide-ime/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger        logger.Config       `toml:"logger"`
	Input         InputConfig         `toml:"input"`
	Accessibility AccessibilityConfig `toml:"accessibility"`
	Editor        EditorConfig        `toml:"editor"`
}

// InputConfig controls native surface reconciliation.
type InputConfig struct {
	EmojiHint string `toml:"emoji_hint"` // auto, always or never
}

// AccessibilityConfig controls the screen reader window.
type AccessibilityConfig struct {
	Enabled                 bool `toml:"enabled"`
	LinesPerPage            int  `toml:"lines_per_page"`
	MustIncludeAllSelection bool `toml:"must_include_all_selection"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Input: InputConfig{
			EmojiHint: EmojiHintAuto,
		},
		Accessibility: AccessibilityConfig{
			LinesPerPage: DefaultLinesPerPage,
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("Config file not found: %s", filePath)
			return nil
		}
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	switch strings.ToLower(c.Input.EmojiHint) {
	case EmojiHintAuto, EmojiHintAlways, EmojiHintNever:
		c.Input.EmojiHint = strings.ToLower(c.Input.EmojiHint)
	default:
		c.Input.EmojiHint = defaults.Input.EmojiHint
	}
	if c.Accessibility.LinesPerPage <= 0 {
		c.Accessibility.LinesPerPage = defaults.Accessibility.LinesPerPage
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds the configuration: defaults, then the file at configFilePath
// (DefaultPath when empty), then flag overrides, then validation.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}

// EmojiHint resolves the configured policy against the hint supplied by the
// surface for one change.
func (c *Config) EmojiHint(supplied bool) bool {
	switch c.Input.EmojiHint {
	case EmojiHintAlways:
		return true
	case EmojiHintNever:
		return false
	default:
		return supplied
	}
}
