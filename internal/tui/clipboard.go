package tui

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is where the field copies to and pastes from.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard keeps the clipboard in process, for headless use.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *MemoryClipboard) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *MemoryClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// NewClipboard returns the system clipboard when asked for and available,
// otherwise an in-memory one.
func NewClipboard(system bool) Clipboard {
	if system && !clipboard.Unsupported {
		return SystemClipboard{}
	}
	return &MemoryClipboard{}
}
