package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tide-ime/internal/buffer"
	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines what the history manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetCursor(types.Position)
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // Index of the next change to redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}
	m.changes = append(m.changes, change)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "recorded %v, index %d of %d", change.Type, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change. It reports false when there is
// nothing to undo.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		return false, nil
	}
	change := m.changes[m.currentIndex-1]
	buf := m.editor.GetBuffer()

	var edits []types.EditInfo
	if change.Type != DeleteAction {
		info, err := buf.Delete(change.StartPosition, change.EndPosition)
		if err != nil {
			return false, fmt.Errorf("undo %v failed: %w", change.Type, err)
		}
		edits = append(edits, info)
	}
	if change.Type != InsertAction {
		info, err := buf.Insert(change.StartPosition, change.OldText)
		if err != nil {
			return false, fmt.Errorf("undo %v failed: %w", change.Type, err)
		}
		edits = append(edits, info)
	}

	m.currentIndex--
	m.editor.SetCursor(change.CursorBefore)
	m.dispatch(edits)
	logger.DebugTagf("history", "undid %v, index now %d", change.Type, m.currentIndex)
	return true, nil
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		return false, nil
	}
	change := m.changes[m.currentIndex]
	buf := m.editor.GetBuffer()

	var edits []types.EditInfo
	if change.Type != InsertAction {
		info, err := buf.Delete(change.StartPosition, change.OldEnd)
		if err != nil {
			return false, fmt.Errorf("redo %v failed: %w", change.Type, err)
		}
		edits = append(edits, info)
	}
	if change.Type != DeleteAction {
		info, err := buf.Insert(change.StartPosition, change.Text)
		if err != nil {
			return false, fmt.Errorf("redo %v failed: %w", change.Type, err)
		}
		edits = append(edits, info)
	}

	m.currentIndex++
	m.editor.SetCursor(change.EndPosition)
	m.dispatch(edits)
	logger.DebugTagf("history", "redid %v, index now %d", change.Type, m.currentIndex)
	return true, nil
}

func (m *Manager) dispatch(edits []types.EditInfo) {
	eventMgr := m.editor.GetEventManager()
	if eventMgr == nil {
		return
	}
	for _, info := range edits {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info})
	}
}

// Clear resets the history stack. Call this on load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
