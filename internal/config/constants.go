package config

// Base application details
const AppName = "tide-ime"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tide-ime.log"

// Emoji hint policies for the input controller.
const (
	EmojiHintAuto   = "auto"   // trust the hint supplied with each surface change
	EmojiHintAlways = "always" // always allow the detached-emoji heuristic
	EmojiHintNever  = "never"  // never apply it
)

// Accessibility defaults
const DefaultLinesPerPage = 10

const DefaultTabWidth = 4
const SystemClipboard = true
