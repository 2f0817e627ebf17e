// internal/event/events.go
package event

import (
	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Model events
	TypeBufferModified // buffer content changed (insert/delete)
	TypeBufferLoaded   // buffer replaced wholesale (load, SetText)
	TypeCursorMoved    // cursor or selection changed

	// Reconciliation events
	TypeInputDeduced   // an edit was deduced from a native surface change
	TypeWindowComputed // a new accessibility window was written to the surface
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeInputDeduced:
		return "InputDeduced"
	case TypeWindowComputed:
		return "WindowComputed"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the edit for incremental consumers.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData names the loaded file, empty for in-memory text.
type BufferLoadedData struct {
	FilePath string
}

// CursorMovedData carries the new caret and, if any, the selection anchor.
type CursorMovedData struct {
	NewPosition types.Position
	Anchor      types.Position
	Selecting   bool
}

// InputDeducedData records one reconciliation step.
type InputDeducedData struct {
	Previous textarea.Snapshot
	Current  textarea.Snapshot
	Edit     textarea.Edit
}

// WindowComputedData carries the snapshot written back to the surface.
type WindowComputedData struct {
	Snapshot textarea.Snapshot
}
