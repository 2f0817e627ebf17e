package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records by tag,
// package or file before they reach it.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.allowed(r) {
		return h.base.Handle(ctx, r)
	}
	return nil
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}

// allowed applies package, file and tag filters in that order.
func (h *filteringHandler) allowed(r slog.Record) bool {
	pkg, file := recordSource(r)
	if pkg != "" && !passes(strings.ToLower(pkg), h.cfg.enabledPkgs, h.cfg.disabledPkgs) {
		return false
	}
	if file != "" && !passes(strings.ToLower(file), h.cfg.enabledFiles, h.cfg.disabledFile) {
		return false
	}

	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})
	if tag == "" {
		// Untagged records are dropped only when an allow-list of tags exists.
		return h.cfg.enabledTags == nil
	}
	return passes(tag, h.cfg.enabledTags, h.cfg.disabledTags)
}

// passes: the disabled set wins, then a non-nil enabled set must contain key.
func passes(key string, enabled, disabled map[string]struct{}) bool {
	if _, found := disabled[key]; found {
		return false
	}
	if enabled != nil {
		_, found := enabled[key]
		return found
	}
	return true
}

// recordSource extracts the package directory and file name of the caller.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}
