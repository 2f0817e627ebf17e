package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, EmojiHintAuto, cfg.Input.EmojiHint)
	assert.Equal(t, DefaultLinesPerPage, cfg.Accessibility.LinesPerPage)
	assert.False(t, cfg.Accessibility.Enabled)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
enabled_tags = ["ime"]

[input]
emoji_hint = "Never"

[accessibility]
enabled = true
lines_per_page = 25
must_include_all_selection = true
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"ime"}, cfg.Logger.EnabledTags)
	assert.Equal(t, EmojiHintNever, cfg.Input.EmojiHint)
	assert.True(t, cfg.Accessibility.Enabled)
	assert.Equal(t, 25, cfg.Accessibility.LinesPerPage)
	assert.True(t, cfg.Accessibility.MustIncludeAllSelection)
}

func TestLoad_InvalidValuesReset(t *testing.T) {
	path := writeConfig(t, `
[input]
emoji_hint = "sometimes"

[accessibility]
lines_per_page = -3
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, EmojiHintAuto, cfg.Input.EmojiHint)
	assert.Equal(t, DefaultLinesPerPage, cfg.Accessibility.LinesPerPage)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[input\nemoji_hint = ")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[accessibility]
lines_per_page = 25
`)
	var flags Flags
	rest, err := flags.Parse(flag.NewFlagSet("test", flag.ContinueOnError),
		[]string{"-lines-per-page", "5", "-a11y", "-emoji-hint", "always", "-log-tags", "ime, a11y", "doc.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc.txt"}, rest)

	cfg, err := Load(path, &flags)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Accessibility.LinesPerPage)
	assert.True(t, cfg.Accessibility.Enabled)
	assert.Equal(t, EmojiHintAlways, cfg.Input.EmojiHint)
	assert.Equal(t, []string{"ime", "a11y"}, cfg.Logger.EnabledTags)
}

func TestConfig_EmojiHint(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.True(t, cfg.EmojiHint(true))
	assert.False(t, cfg.EmojiHint(false))

	cfg.Input.EmojiHint = EmojiHintAlways
	assert.True(t, cfg.EmojiHint(false))

	cfg.Input.EmojiHint = EmojiHintNever
	assert.False(t, cfg.EmojiHint(true))
}
