// Package reconcile keeps the editor model and a native input surface in
// step: surface changes are deduced into edits and applied to the model, and
// model changes are written back to the surface.
package reconcile

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tide-ime/internal/config"
	"github.com/bethropolis/tide-ime/internal/editor"
	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/pager"
	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/types"
)

const logTag = "ime"

// Surface is the platform text field the user (or an IME) types into.
type Surface interface {
	// Read returns the field's current text and selection.
	Read() textarea.Snapshot
	// Write replaces the field's text and selection. preserveFocus asks the
	// platform not to move focus or announce the change as user input.
	Write(s textarea.Snapshot, preserveFocus bool)
}

// Controller serialises read, deduce, apply and remember for one surface.
// Event handlers run while the controller is locked and must not call back
// into it.
type Controller struct {
	mu       sync.Mutex
	surface  Surface
	editor   *editor.Editor
	cfg      *config.Config
	previous textarea.Snapshot
	origin   int // model line shown at the start of the surface text
}

// NewController creates a controller. A nil cfg uses the defaults.
func NewController(surface Surface, ed *editor.Editor, cfg *config.Config) *Controller {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Controller{
		surface:  surface,
		editor:   ed,
		cfg:      cfg,
		previous: textarea.Empty,
	}
}

// Previous returns the snapshot the next surface read is diffed against.
func (c *Controller) Previous() textarea.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previous
}

// Reset forgets the remembered surface state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previous = textarea.Empty
	c.origin = 0
	logger.DebugTagf(logTag, "controller reset")
}

// HandleInput reconciles one surface change. couldBeEmoji is the platform's
// hint that the change may come from an emoji picker; the configured policy
// may override it.
func (c *Controller) HandleInput(couldBeEmoji bool) (textarea.Edit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.surface.Read()
	var edit textarea.Edit
	// Deduce assumes the change happened at the previous caret. A pure caret
	// or selection move would come back as a text-neutral rewrite around it
	// (or a duplicated run when the caret moved right), so only text changes
	// are deduced and moves are mirrored by selectModel.
	if current.Text != c.previous.Text {
		edit = textarea.Deduce(c.previous, current, c.cfg.EmojiHint(couldBeEmoji))
	}
	logger.DebugTagf(logTag, "input: %v -> %v = %v", c.previous, current, edit)

	if edit.IsEmpty() {
		// Caret or selection moved without changing text.
		c.selectModel(current)
	} else {
		c.placeModel(current)
		if err := c.editor.ApplyEdit(edit); err != nil {
			logger.Errorf("reconcile: applying %v: %v", edit, err)
			return edit, fmt.Errorf("reconcile: apply %v: %w", edit, err)
		}
		if mgr := c.editor.GetEventManager(); mgr != nil {
			mgr.Dispatch(event.TypeInputDeduced, event.InputDeducedData{
				Previous: c.previous,
				Current:  current,
				Edit:     edit,
			})
		}
	}

	if !current.IsCollapsed() {
		// Composition or a surface selection is live: keep it so the next
		// change can replace it.
		c.previous = current
		return edit, nil
	}
	c.previous = current.Collapse()
	c.syncLocked()
	return edit, nil
}

// SyncFromModel writes the model state to the surface if it differs from
// what the surface last showed. In accessibility mode only a page of lines
// around the caret is written.
func (c *Controller) SyncFromModel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
}

func (c *Controller) syncLocked() {
	buf := c.editor.GetBuffer()
	a11y := c.cfg.Accessibility
	linesPerPage, includeAll := a11y.LinesPerPage, a11y.MustIncludeAllSelection
	if !a11y.Enabled {
		linesPerPage, includeAll = buf.LineCount(), false
	}

	window := pager.Compute(c.previous, buf, c.editor.PagerSelection(), linesPerPage, includeAll)
	next := window.Snapshot
	c.origin = window.FirstLine
	if sameSurface(next, c.previous) {
		c.previous = next
		return
	}

	logger.DebugTagf(logTag, "sync: writing %v", next)
	c.surface.Write(next, a11y.Enabled)
	c.previous = next
	if mgr := c.editor.GetEventManager(); mgr != nil {
		mgr.Dispatch(event.TypeWindowComputed, event.WindowComputedData{Snapshot: next})
	}
}

// placeModel puts the model selection where the deduced edit expects it:
// on the previous selection when the change was committed, at the previous
// caret while a composition is live.
func (c *Controller) placeModel(current textarea.Snapshot) {
	start, end := c.previousPositions()
	if current.IsCollapsed() && start != end {
		c.editor.SetSelection(start, end)
		return
	}
	c.editor.ClearSelection()
	c.editor.SetCursor(end)
}

// selectModel mirrors the surface selection onto the model.
func (c *Controller) selectModel(current textarea.Snapshot) {
	start := c.positionAt(current.Text, current.SelectionStart)
	end := c.positionAt(current.Text, current.SelectionEnd)
	if start == end {
		c.editor.ClearSelection()
		c.editor.SetCursor(end)
		return
	}
	c.editor.SetSelection(start, end)
}

func (c *Controller) previousPositions() (types.Position, types.Position) {
	if p := c.previous.Positions; p != nil {
		return p.Start, p.End
	}
	return c.positionAt(c.previous.Text, c.previous.SelectionStart),
		c.positionAt(c.previous.Text, c.previous.SelectionEnd)
}

// positionAt maps a UTF-16 offset in surface text to a model position.
func (c *Controller) positionAt(text string, offset int) types.Position {
	pos := types.Position{Line: c.origin}
	units := 0
	for _, r := range text {
		if units >= offset {
			break
		}
		if r == '\n' {
			pos.Line++
			pos.Col = 0
		} else {
			pos.Col++
		}
		units += textarea.UTF16Len(string(r))
	}
	return pos
}

// sameSurface compares what the surface would display, ignoring positions.
func sameSurface(a, b textarea.Snapshot) bool {
	return a.Text == b.Text && a.SelectionStart == b.SelectionStart && a.SelectionEnd == b.SelectionEnd
}
