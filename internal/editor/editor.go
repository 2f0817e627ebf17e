// internal/editor/editor.go
package editor

import (
	"bytes"
	"unicode/utf8"

	"github.com/bethropolis/tide-ime/internal/buffer"
	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/history"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/pager"
	"github.com/bethropolis/tide-ime/internal/types"
)

// Editor is the text model the native surface is reconciled against: a
// buffer, one cursor and an optional selection anchored elsewhere.
type Editor struct {
	buffer buffer.Buffer
	cursor types.Position

	// --- Selection State ---
	selecting bool
	anchor    types.Position

	eventManager   *event.Manager
	historyManager *history.Manager
}

// NewEditor creates an Editor over buf with the cursor at the start.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{buffer: buf}
	e.historyManager = history.NewManager(e, history.DefaultMaxHistory)
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// Text returns the whole document joined with '\n'.
func (e *Editor) Text() string {
	return string(e.buffer.Bytes())
}

// SetText replaces the document, resets cursor, selection and history.
func (e *Editor) SetText(text string) {
	e.buffer.SetText(text)
	e.historyManager.Clear()
	e.selecting = false
	e.cursor = types.Position{}
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: e.buffer.FilePath()})
	e.dispatchCursor()
}

// Load reads filePath into the buffer and resets editor state.
func (e *Editor) Load(filePath string) error {
	if err := e.buffer.Load(filePath); err != nil {
		return err
	}
	e.historyManager.Clear()
	e.selecting = false
	e.cursor = types.Position{}
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	return nil
}

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursor
}

// SetCursor moves the cursor, clamped into the document, keeping any
// selection anchor.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursor = e.clamp(pos)
	e.dispatchCursor()
}

// MoveCursor moves the cursor by a line/column delta, wrapping across line
// ends when moving horizontally.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	pos := e.cursor
	if deltaLine == 0 {
		switch {
		case deltaCol > 0 && pos.Col >= e.lineLen(pos.Line) && pos.Line < e.buffer.LineCount()-1:
			pos = types.Position{Line: pos.Line + 1}
			deltaCol = 0
		case deltaCol < 0 && pos.Col <= 0 && pos.Line > 0:
			pos = types.Position{Line: pos.Line - 1, Col: e.lineLen(pos.Line - 1)}
			deltaCol = 0
		}
	}
	pos.Line += deltaLine
	pos.Col += deltaCol
	e.SetCursor(pos)
}

// --- Selection ---

// SetSelection selects from anchor to active; the cursor moves to active.
func (e *Editor) SetSelection(anchor, active types.Position) {
	e.anchor = e.clamp(anchor)
	e.selecting = true
	e.SetCursor(active)
}

// HasSelection returns true if a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.anchor != e.cursor
}

// GetSelection returns the normalized selection range (start <= end).
func (e *Editor) GetSelection() (start types.Position, end types.Position, ok bool) {
	if !e.HasSelection() {
		return e.cursor, e.cursor, false
	}
	start, end = types.Order(e.anchor, e.cursor)
	return start, end, true
}

// ClearSelection drops the selection, keeping the cursor.
func (e *Editor) ClearSelection() {
	if !e.selecting {
		return
	}
	e.selecting = false
	logger.DebugTagf("editor", "selection cleared")
	e.dispatchCursor()
}

// PagerSelection describes the current selection (or caret) for the
// screen reader pager.
func (e *Editor) PagerSelection() pager.Selection {
	if !e.HasSelection() {
		return pager.Selection{Start: e.cursor, End: e.cursor}
	}
	return pager.NewSelection(e.anchor, e.cursor)
}

// --- Undo / Redo ---

func (e *Editor) Undo() (bool, error) {
	e.selecting = false
	return e.historyManager.Undo()
}

func (e *Editor) Redo() (bool, error) {
	e.selecting = false
	return e.historyManager.Redo()
}

// --- helpers ---

func (e *Editor) lineLen(line int) int {
	content, err := e.buffer.Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(content)
}

func (e *Editor) clamp(pos types.Position) types.Position {
	lineCount := e.buffer.LineCount()
	if pos.Line < 0 {
		return types.Position{}
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
		pos.Col = e.lineLen(pos.Line)
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if maxCol := e.lineLen(pos.Line); pos.Col > maxCol {
		pos.Col = maxCol
	}
	return pos
}

// textInRange extracts the text in [start, end) joined with '\n'.
func (e *Editor) textInRange(start, end types.Position) []byte {
	var out bytes.Buffer
	for line := start.Line; line <= end.Line; line++ {
		content, err := e.buffer.Line(line)
		if err != nil {
			break
		}
		from, to := 0, len(content)
		if line == start.Line {
			from = runeToByte(content, start.Col)
		}
		if line == end.Line {
			to = runeToByte(content, end.Col)
		}
		if from < to {
			out.Write(content[from:to])
		}
		if line < end.Line {
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

func (e *Editor) dispatchCursor() {
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{
		NewPosition: e.cursor,
		Anchor:      e.anchor,
		Selecting:   e.HasSelection(),
	})
}

func runeToByte(line []byte, col int) int {
	off := 0
	for i := 0; i < col && off < len(line); i++ {
		_, size := utf8.DecodeRune(line[off:])
		off += size
	}
	return off
}
