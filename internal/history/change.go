// Package history provides undo/redo of edits applied to the model.
package history

import "github.com/bethropolis/tide-ime/internal/types"

// ActionType indicates how a change modified the buffer.
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
	ReplaceAction // deleted OldText, then inserted Text at the same start
)

func (a ActionType) String() string {
	switch a {
	case InsertAction:
		return "insert"
	case DeleteAction:
		return "delete"
	case ReplaceAction:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single, reversible text operation.
type Change struct {
	Type          ActionType
	Text          []byte         // Inserted text (insert, replace)
	OldText       []byte         // Deleted text (delete, replace)
	StartPosition types.Position // Where the change began
	EndPosition   types.Position // End of the inserted text, or start for a pure delete
	OldEnd        types.Position // End of the deleted range before the change
	CursorBefore  types.Position // Cursor before the change was applied
}
