package editor

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/history"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/types"
)

// ApplyEdit applies a deduced edit at the model cursor: the selection (if
// any) and DeleteCount code units before it are replaced by edit.Text. The
// cursor ends up after the inserted text and the selection is cleared.
func (e *Editor) ApplyEdit(edit textarea.Edit) error {
	if edit.IsEmpty() {
		return nil
	}
	cursorBefore := e.cursor

	start, end, _ := e.GetSelection()
	start = e.walkBack(start, edit.DeleteCount)
	deleted := e.textInRange(start, end)
	inserted := []byte(edit.Text)

	delInfo, err := e.buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("apply edit: delete %v-%v: %w", start, end, err)
	}
	insInfo, err := e.buffer.Insert(start, inserted)
	if err != nil {
		return fmt.Errorf("apply edit: insert at %v: %w", start, err)
	}
	after := advance(start, edit.Text)

	change := history.Change{
		Type:          history.ReplaceAction,
		Text:          inserted,
		OldText:       deleted,
		StartPosition: start,
		EndPosition:   after,
		OldEnd:        end,
		CursorBefore:  cursorBefore,
	}
	switch {
	case len(deleted) == 0:
		change.Type = history.InsertAction
	case len(inserted) == 0:
		change.Type = history.DeleteAction
	}
	e.historyManager.RecordChange(change)

	logger.DebugTagf("editor", "applied %v: replaced %v-%v with %q", edit, start, end, edit.Text)

	e.selecting = false
	e.cursor = after
	for _, info := range []types.EditInfo{delInfo, insInfo} {
		if !info.IsEmpty() {
			e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info})
		}
	}
	e.dispatchCursor()
	return nil
}

// walkBack moves pos back by units UTF-16 code units, crossing line breaks
// (one unit each). A rune is never split: it is consumed whole.
func (e *Editor) walkBack(pos types.Position, units int) types.Position {
	for units > 0 {
		if pos.Col > 0 {
			content, err := e.buffer.Line(pos.Line)
			if err != nil {
				break
			}
			r, _ := utf8.DecodeLastRune(content[:runeToByte(content, pos.Col)])
			units -= utf16Width(r)
			pos.Col--
			continue
		}
		if pos.Line == 0 {
			break
		}
		pos.Line--
		pos.Col = e.lineLen(pos.Line)
		units--
	}
	return pos
}

// advance returns the position just after text inserted at pos.
func advance(pos types.Position, text string) types.Position {
	for _, r := range text {
		if r == '\n' {
			pos.Line++
			pos.Col = 0
			continue
		}
		pos.Col++
	}
	return pos
}

func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
