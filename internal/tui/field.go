// internal/tui/field.go
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/tide-ime/internal/input"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/textarea"
)

// Field simulates a platform text field: it owns its text and selection,
// edits them on key actions, and only reports offsets in UTF-16 code units.
type Field struct {
	mu        sync.Mutex
	text      []rune
	anchor    int // rune index
	active    int // rune index, the caret end
	composing bool
	clipboard Clipboard

	lastPreserveFocus bool
}

// NewField creates an empty field. A nil clipboard uses an in-memory one.
func NewField(cb Clipboard) *Field {
	if cb == nil {
		cb = &MemoryClipboard{}
	}
	return &Field{clipboard: cb}
}

// Read implements reconcile.Surface.
func (f *Field) Read() textarea.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	text := string(f.text)
	return textarea.FromSurface(text, f.units(f.anchor), f.units(f.active))
}

// Write implements reconcile.Surface. A write ends any composition.
func (f *Field) Write(s textarea.Snapshot, preserveFocus bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = []rune(s.Text)
	f.anchor = f.runeIndex(s.SelectionStart)
	f.active = f.runeIndex(s.SelectionEnd)
	f.composing = false
	f.lastPreserveFocus = preserveFocus
	logger.DebugTagf("tui", "field written (preserveFocus=%v): %v", preserveFocus, s)
}

// Text returns the field content.
func (f *Field) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.text)
}

// Selection returns the selection as ordered rune indices.
func (f *Field) Selection() (start, end int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ordered()
}

// Caret returns the rune index of the caret end.
func (f *Field) Caret() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// IsComposing reports whether the selection is a live IME composition.
func (f *Field) IsComposing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.composing
}

// LastWritePreservedFocus reports the preserveFocus flag of the last Write.
func (f *Field) LastWritePreservedFocus() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPreserveFocus
}

// Compose replaces the selection with an IME candidate and leaves the
// candidate selected.
func (f *Field) Compose(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := f.replaceSelection(text)
	f.anchor = start
	f.active = start + len([]rune(text))
	f.composing = true
}

// Commit replaces the selection (usually a composition) with text and puts
// the caret after it.
func (f *Field) Commit(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceSelection(text)
	f.composing = false
}

// InsertAt inserts text at a UTF-16 offset without touching the caret, the
// way some OS emoji pickers do.
func (f *Field) InsertAt(offset int, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	at := f.runeIndex(offset)
	f.text = splice(f.text, at, at, []rune(text))
	f.composing = false
}

// HandleAction applies a key action. changed reports whether the text or
// selection changed; couldBeEmoji is the hint to pass on with the change.
func (f *Field) HandleAction(ev input.ActionEvent) (changed, couldBeEmoji bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	beforeText, beforeAnchor, beforeActive := string(f.text), f.anchor, f.active
	f.composing = false

	switch ev.Action {
	case input.ActionMoveLeft:
		if start, end := f.ordered(); start != end {
			f.collapse(start)
		} else {
			f.collapse(f.active - 1)
		}
	case input.ActionMoveRight:
		if start, end := f.ordered(); start != end {
			f.collapse(end)
		} else {
			f.collapse(f.active + 1)
		}
	case input.ActionMoveHome:
		f.collapse(f.lineStart(f.active))
	case input.ActionMoveEnd:
		f.collapse(f.lineEnd(f.active))
	case input.ActionSelectLeft:
		f.active = clampIndex(f.active-1, len(f.text))
	case input.ActionSelectRight:
		f.active = clampIndex(f.active+1, len(f.text))
	case input.ActionSelectHome:
		f.active = f.lineStart(f.active)
	case input.ActionSelectEnd:
		f.active = f.lineEnd(f.active)
	case input.ActionSelectAll:
		f.anchor, f.active = 0, len(f.text)
	case input.ActionInsertRune:
		f.replaceSelection(string(ev.Rune))
	case input.ActionInsertNewLine:
		f.replaceSelection("\n")
	case input.ActionDeleteCharBackward:
		if start, end := f.ordered(); start == end {
			f.anchor = clampIndex(f.active-1, len(f.text))
		}
		f.replaceSelection("")
	case input.ActionDeleteCharForward:
		if start, end := f.ordered(); start == end {
			f.anchor = clampIndex(f.active+1, len(f.text))
		}
		f.replaceSelection("")
	case input.ActionCopy:
		start, end := f.ordered()
		if start == end {
			return false, false, nil
		}
		if err := f.clipboard.WriteAll(string(f.text[start:end])); err != nil {
			return false, false, fmt.Errorf("copy to clipboard: %w", err)
		}
		return false, false, nil
	case input.ActionPaste:
		text, err := f.clipboard.ReadAll()
		if err != nil {
			return false, false, fmt.Errorf("paste from clipboard: %w", err)
		}
		f.replaceSelection(strings.ReplaceAll(text, "\r\n", "\n"))
	default:
		return false, false, nil
	}

	changed = string(f.text) != beforeText || f.anchor != beforeAnchor || f.active != beforeActive
	return changed, false, nil
}

// --- helpers, called with mu held ---

func (f *Field) ordered() (start, end int) {
	if f.active < f.anchor {
		return f.active, f.anchor
	}
	return f.anchor, f.active
}

func (f *Field) collapse(at int) {
	at = clampIndex(at, len(f.text))
	f.anchor, f.active = at, at
}

// replaceSelection replaces the selection with text, leaves the caret after
// it and returns the start of the replaced range.
func (f *Field) replaceSelection(text string) int {
	start, end := f.ordered()
	inserted := []rune(text)
	f.text = splice(f.text, start, end, inserted)
	f.collapse(start + len(inserted))
	return start
}

func (f *Field) lineStart(at int) int {
	for at > 0 && f.text[at-1] != '\n' {
		at--
	}
	return at
}

func (f *Field) lineEnd(at int) int {
	for at < len(f.text) && f.text[at] != '\n' {
		at++
	}
	return at
}

// units converts a rune index into a UTF-16 offset.
func (f *Field) units(index int) int {
	return textarea.UTF16Len(string(f.text[:clampIndex(index, len(f.text))]))
}

// runeIndex converts a UTF-16 offset into a rune index. An offset inside a
// surrogate pair rounds up to the rune after it.
func (f *Field) runeIndex(offset int) int {
	units := 0
	for i, r := range f.text {
		if units >= offset {
			return i
		}
		units += textarea.UTF16Len(string(r))
	}
	return len(f.text)
}

func splice(text []rune, start, end int, insert []rune) []rune {
	out := make([]rune, 0, len(text)-(end-start)+len(insert))
	out = append(out, text[:start]...)
	out = append(out, insert...)
	return append(out, text[end:]...)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
