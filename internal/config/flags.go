// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/tide-ime/internal/logger"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the configuration.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	LogTags        string
	DisableTags    string
	EmojiHint      string
	Accessibility  bool
	LinesPerPage   int
	IncludeAllSel  bool
	SystemClip     bool
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.set = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default <config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.StringVar(&f.LogTags, "log-tags", "", "Comma-separated list of tags to enable")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable")
	fs.StringVar(&f.EmojiHint, "emoji-hint", "", "Emoji heuristic policy (auto, always, never)")
	fs.BoolVar(&f.Accessibility, "a11y", false, "Expose a paged screen reader window through the input surface")
	fs.IntVar(&f.LinesPerPage, "lines-per-page", 0, "Lines per screen reader page")
	fs.BoolVar(&f.IncludeAllSel, "include-selection", false, "Slide the screen reader window to show short selections whole")
	fs.BoolVar(&f.SystemClip, "system-clipboard", false, "Use the system clipboard for paste")
}

// Parse defines the flags on fs, parses args and returns the remaining
// positional arguments.
func (f *Flags) Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides copies every explicitly set flag into cfg.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.LogTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "emoji-hint":
			cfg.Input.EmojiHint = f.EmojiHint
		case "a11y":
			cfg.Accessibility.Enabled = f.Accessibility
		case "lines-per-page":
			if f.LinesPerPage > 0 {
				cfg.Accessibility.LinesPerPage = f.LinesPerPage
			}
		case "include-selection":
			cfg.Accessibility.MustIncludeAllSelection = f.IncludeAllSel
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClip
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
