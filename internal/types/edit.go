package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo describes a buffer mutation in the shape tree-sitter's Tree.Edit
// expects, so syntax consumers can reparse incrementally.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, byte column)
	OldEndPosition sitter.Point
	NewEndPosition sitter.Point
}

// InputEdit converts the info into tree-sitter's own edit struct.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}

// IsEmpty reports whether the edit changed nothing.
func (e EditInfo) IsEmpty() bool {
	return e.StartIndex == e.OldEndIndex && e.StartIndex == e.NewEndIndex
}
