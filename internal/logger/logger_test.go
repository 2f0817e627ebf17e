package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_LevelFilter(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "warn"}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)

	assert.NotContains(t, out.String(), "quiet 1")
	assert.Contains(t, out.String(), "loud 2")
	assert.Contains(t, out.String(), "source=logger_test.go")
}

func TestInit_TagFilters(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", EnabledTags: []string{"IME"}}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	DebugTagf("ime", "deduced")
	DebugTagf("a11y", "window")
	Debugf("untagged")

	assert.Contains(t, out.String(), "deduced")
	assert.Contains(t, out.String(), "tag=ime")
	assert.NotContains(t, out.String(), "window")
	assert.NotContains(t, out.String(), "untagged")
}

func TestInit_DisabledWins(t *testing.T) {
	var out bytes.Buffer
	Init(Config{
		LogLevel:     "debug",
		EnabledTags:  []string{"ime"},
		DisabledTags: []string{"ime"},
	}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	InfoTagf("ime", "dropped")
	assert.Empty(t, out.String())
}

func TestInit_PackageFilter(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Infof("from the logger package")
	assert.Empty(t, out.String())
}

func TestSetLevel(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "error"}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Infof("before")
	SetLevel(slog.LevelDebug)
	Infof("after")

	assert.NotContains(t, out.String(), "before")
	assert.Contains(t, out.String(), "after")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
