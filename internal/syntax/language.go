// internal/syntax/language.go
package syntax

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/tide-ime/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
	tomlsrc "github.com/smacker/go-tree-sitter/toml"
)

// Language ties a tree-sitter grammar to the file extensions it parses.
type Language struct {
	Name       string
	Grammar    *sitter.Language
	Extensions []string
}

var (
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
	}
	registerOnce sync.Once
)

func registerBuiltins() {
	registerOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		for _, l := range []*Language{
			{Name: "Go", Grammar: gosrc.GetLanguage(), Extensions: []string{".go"}},
			{Name: "Python", Grammar: pythonsrc.GetLanguage(), Extensions: []string{".py", ".pyw"}},
			{Name: "JavaScript", Grammar: jssrc.GetLanguage(), Extensions: []string{".js", ".mjs", ".cjs"}},
			{Name: "Rust", Grammar: rustsrc.GetLanguage(), Extensions: []string{".rs"}},
			{Name: "TOML", Grammar: tomlsrc.GetLanguage(), Extensions: []string{".toml"}},
		} {
			register(l)
		}
		logger.DebugTagf(logTag, "registered %d languages", len(registry.languages))
	})
}

// register expects the registry lock not to be held.
func register(l *Language) {
	registry.Lock()
	defer registry.Unlock()
	registry.languages = append(registry.languages, l)
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[ext]; ok {
			logger.Warnf("syntax: extension %s already registered to %s, overriding with %s", ext, existing.Name, l.Name)
		}
		registry.extToLanguage[ext] = l
	}
}

// ForFile returns the language for filePath by extension, or nil.
func ForFile(filePath string) *Language {
	registerBuiltins()
	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}
