package app

import (
	"context"

	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/logger"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeInputDeduced, a.handleInputDeducedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForSyntax)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForSyntax)
}

func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleInputDeducedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.InputDeducedData); ok {
		a.statusBar.SetLastEdit(data.Edit)
	}
	return false
}

func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok && data.FilePath != "" {
		a.statusBar.SetTemporaryMessage("loaded %s", data.FilePath)
	}
	return false
}

func (a *App) handleBufferLoadedForSyntax(e event.Event) bool {
	data, ok := e.Data.(event.BufferLoadedData)
	if !ok {
		return false
	}
	if err := a.syntax.Load(context.Background(), data.FilePath, a.editor.GetBuffer().Bytes()); err != nil {
		logger.Warnf("App: %v", err)
	}
	return false
}

// handleBufferModifiedForSyntax only moves the tree; the reparse waits for
// the next draw, when every edit of the change has arrived.
func (a *App) handleBufferModifiedForSyntax(e event.Event) bool {
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.syntax.Edit(data.Edit)
	}
	return false
}
