package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bethropolis/tide-ime/internal/buffer"
	"github.com/bethropolis/tide-ime/internal/config"
	"github.com/bethropolis/tide-ime/internal/editor"
	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	snap          textarea.Snapshot
	preserveFocus bool
}

type fakeSurface struct {
	snap   textarea.Snapshot
	writes []write
}

func (f *fakeSurface) Read() textarea.Snapshot { return f.snap }

func (f *fakeSurface) Write(s textarea.Snapshot, preserveFocus bool) {
	f.snap = textarea.FromSurface(s.Text, s.SelectionStart, s.SelectionEnd)
	f.writes = append(f.writes, write{snap: s, preserveFocus: preserveFocus})
}

func (f *fakeSurface) set(text string, start, end int) {
	f.snap = textarea.FromSurface(text, start, end)
}

func newController(t *testing.T, text string, cfg *config.Config) (*Controller, *editor.Editor, *fakeSurface) {
	t.Helper()
	ed := editor.NewEditor(buffer.NewFromString(text))
	ed.SetEventManager(event.NewManager())
	surface := &fakeSurface{}
	return NewController(surface, ed, cfg), ed, surface
}

func TestHandleInput_Typing(t *testing.T) {
	c, ed, surface := newController(t, "", nil)

	for _, step := range []struct {
		text  string
		caret int
		want  textarea.Edit
	}{
		{"a", 1, textarea.Edit{Text: "a"}},
		{"ab", 2, textarea.Edit{Text: "b"}},
		{"abc", 3, textarea.Edit{Text: "c"}},
		{"ab", 2, textarea.Edit{DeleteCount: 1}},
	} {
		surface.set(step.text, step.caret, step.caret)
		edit, err := c.HandleInput(false)
		require.NoError(t, err)
		assert.Equal(t, step.want, edit, "typing to %q", step.text)
		assert.Equal(t, step.text, ed.Text())
	}
	assert.Equal(t, types.Position{Col: 2}, ed.GetCursor())
	assert.Empty(t, surface.writes, "model matched the surface, nothing to write back")
}

func TestHandleInput_Composition(t *testing.T) {
	c, ed, surface := newController(t, "ab", nil)
	ed.SetCursor(types.Position{Col: 2})
	c.SyncFromModel()
	require.Len(t, surface.writes, 1)
	assert.False(t, surface.writes[0].preserveFocus)

	steps := []struct {
		text       string
		start, end int
		want       textarea.Edit
		model      string
	}{
		{"abか", 2, 3, textarea.Edit{Text: "か"}, "abか"},
		{"abかん", 2, 4, textarea.Edit{Text: "かん", DeleteCount: 1}, "abかん"},
		{"ab漢", 3, 3, textarea.Edit{Text: "漢"}, "ab漢"},
	}
	for _, step := range steps {
		surface.set(step.text, step.start, step.end)
		edit, err := c.HandleInput(false)
		require.NoError(t, err)
		assert.Equal(t, step.want, edit, "surface %q", step.text)
		assert.Equal(t, step.model, ed.Text())
	}
	assert.Equal(t, types.Position{Col: 3}, ed.GetCursor())
	assert.Len(t, surface.writes, 1, "composition must not be overwritten")
}

func TestHandleInput_CompositionAcceptedUnchanged(t *testing.T) {
	c, ed, surface := newController(t, "", nil)

	surface.set("かん", 0, 2)
	_, err := c.HandleInput(false)
	require.NoError(t, err)

	surface.set("かん", 2, 2)
	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	assert.Equal(t, "かん", ed.Text())
	assert.Equal(t, types.Position{Col: 2}, ed.GetCursor())
}

func TestHandleInput_ReplaceSurfaceSelection(t *testing.T) {
	c, ed, surface := newController(t, "hello world", nil)
	c.SyncFromModel()

	surface.set("hello world", 6, 11)
	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	start, end, ok := ed.GetSelection()
	require.True(t, ok)
	assert.Equal(t, types.Position{Col: 6}, start)
	assert.Equal(t, types.Position{Col: 11}, end)

	surface.set("hello there", 11, 11)
	edit, err = c.HandleInput(false)
	require.NoError(t, err)
	assert.Equal(t, textarea.Edit{Text: "there"}, edit)
	assert.Equal(t, "hello there", ed.Text())
	assert.False(t, ed.HasSelection())
}

func TestHandleInput_DetachedEmoji(t *testing.T) {
	c, ed, surface := newController(t, "hello", nil)
	ed.SetCursor(types.Position{Col: 5})
	c.SyncFromModel()

	// The picker put the emoji at the start but left the caret offset alone.
	surface.set("😀hello", 5, 5)
	edit, err := c.HandleInput(true)
	require.NoError(t, err)
	assert.Equal(t, textarea.Edit{Text: "😀"}, edit)
	assert.Equal(t, "hello😀", ed.Text())

	require.Len(t, surface.writes, 2)
	assert.Equal(t, "hello😀", surface.snap.Text)
	assert.Equal(t, 7, surface.snap.SelectionStart)
}

func TestHandleInput_EmojiHintNever(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Input.EmojiHint = config.EmojiHintNever
	c, ed, surface := newController(t, "hello", cfg)
	ed.SetCursor(types.Position{Col: 5})
	c.SyncFromModel()

	surface.set("😀hello", 5, 5)
	edit, err := c.HandleInput(true)
	require.NoError(t, err)
	assert.Equal(t, textarea.Edit{Text: "😀hello", DeleteCount: 5}, edit)
	assert.Equal(t, "😀hello", ed.Text())
}

func TestHandleInput_DispatchesDeduced(t *testing.T) {
	c, ed, surface := newController(t, "", nil)
	var got []event.InputDeducedData
	ed.GetEventManager().Subscribe(event.TypeInputDeduced, func(e event.Event) bool {
		got = append(got, e.Data.(event.InputDeducedData))
		return false
	})

	surface.set("x", 1, 1)
	_, err := c.HandleInput(false)
	require.NoError(t, err)

	surface.set("x", 0, 0)
	_, err = c.HandleInput(false)
	require.NoError(t, err)

	require.Len(t, got, 1, "caret moves are not edits")
	assert.Equal(t, textarea.Edit{Text: "x"}, got[0].Edit)
	assert.Equal(t, textarea.Empty, got[0].Previous)
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("L%d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestSyncFromModel_Accessibility(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Accessibility.Enabled = true
	c, ed, surface := newController(t, numberedLines(21), cfg)
	var windows int
	ed.GetEventManager().Subscribe(event.TypeWindowComputed, func(event.Event) bool {
		windows++
		return false
	})

	ed.SetCursor(types.Position{Line: 11})
	c.SyncFromModel()

	require.Len(t, surface.writes, 1)
	w := surface.writes[0]
	assert.True(t, w.preserveFocus)
	assert.Equal(t, "L11\nL12\nL13\nL14\nL15\nL16\nL17\nL18\nL19\nL20", w.snap.Text)
	assert.Equal(t, 4, w.snap.SelectionStart)
	assert.Equal(t, 4, w.snap.SelectionEnd)
	require.NotNil(t, w.snap.Positions)
	assert.Equal(t, types.Position{Line: 11}, w.snap.Positions.Start)
	assert.Equal(t, 1, windows)

	// Unchanged model: nothing rewritten.
	c.SyncFromModel()
	assert.Len(t, surface.writes, 1)

	// Typing inside the window lands on the right model line.
	surface.set("L11\nXL12\nL13\nL14\nL15\nL16\nL17\nL18\nL19\nL20", 5, 5)
	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.Equal(t, textarea.Edit{Text: "X"}, edit)
	line, err := ed.GetBuffer().Line(11)
	require.NoError(t, err)
	assert.Equal(t, "XL12", string(line))
	assert.Equal(t, types.Position{Line: 11, Col: 1}, ed.GetCursor())
	assert.Len(t, surface.writes, 1)

	// A caret move inside the window maps back through the window origin.
	surface.set(surface.snap.Text, 9, 9)
	_, err = c.HandleInput(false)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Line: 12, Col: 0}, ed.GetCursor())
}

func TestSyncFromModel_AccessibilityPageChange(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Accessibility.Enabled = true
	c, ed, surface := newController(t, numberedLines(21), cfg)

	ed.SetCursor(types.Position{Line: 9, Col: 2})
	c.SyncFromModel()
	require.Len(t, surface.writes, 1)
	assert.True(t, strings.HasPrefix(surface.snap.Text, "L1\n"))

	ed.SetCursor(types.Position{Line: 20})
	c.SyncFromModel()
	require.Len(t, surface.writes, 2)
	assert.Equal(t, "L21", surface.snap.Text)
}

func TestHandleInput_AccessibilitySelectionStartsBeforeWindow(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Accessibility.Enabled = true
	cfg.Accessibility.LinesPerPage = 2
	c, ed, surface := newController(t, "l0\nl1\nl2\nl3\nl4", cfg)

	ed.SetSelection(types.Position{}, types.Position{Line: 3, Col: 1})
	c.SyncFromModel()
	require.Len(t, surface.writes, 1)
	assert.Equal(t, "l2\nl3", surface.snap.Text)
	assert.Equal(t, 0, surface.snap.SelectionStart)
	assert.Equal(t, 4, surface.snap.SelectionEnd)

	// Collapsing the surface selection at its end keeps the caret where the
	// model has it, not on the anchor's line.
	surface.set(surface.snap.Text, 4, 4)
	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	assert.False(t, ed.HasSelection())
	assert.Equal(t, types.Position{Line: 3, Col: 1}, ed.GetCursor())

	surface.set("l2\nlX3", 5, 5)
	edit, err = c.HandleInput(false)
	require.NoError(t, err)
	assert.Equal(t, textarea.Edit{Text: "X"}, edit)
	assert.Equal(t, "l0\nl1\nl2\nlX3\nl4", ed.Text())
	assert.Equal(t, types.Position{Line: 3, Col: 2}, ed.GetCursor())
}

func TestHandleInput_CaretMoveIsNotDeduced(t *testing.T) {
	c, ed, surface := newController(t, "abc", nil)
	ed.SetCursor(types.Position{Col: 1})
	c.SyncFromModel()

	// Deduced on its own, a move to the right reads as a re-inserted run.
	surface.set("abc", 3, 3)
	assert.Equal(t, textarea.Edit{Text: "bc"}, textarea.Deduce(c.Previous(), surface.Read(), false))

	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	assert.Equal(t, "abc", ed.Text())
	assert.Equal(t, types.Position{Col: 3}, ed.GetCursor())
	assert.False(t, ed.GetHistoryManager().CanUndo())
}

func TestHandleInput_SelectionCollapseLeavesHistoryAlone(t *testing.T) {
	c, ed, surface := newController(t, "x x", nil)
	c.SyncFromModel()

	surface.set("x x", 0, 1)
	_, err := c.HandleInput(false)
	require.NoError(t, err)
	start, end, ok := ed.GetSelection()
	require.True(t, ok)
	assert.Equal(t, types.Position{}, start)
	assert.Equal(t, types.Position{Col: 1}, end)

	surface.set("x x", 1, 1)
	assert.Equal(t, textarea.Edit{Text: "x"}, textarea.Deduce(c.Previous(), surface.Read(), false))
	edit, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.True(t, edit.IsEmpty())
	assert.Equal(t, "x x", ed.Text())
	assert.False(t, ed.HasSelection())
	assert.Equal(t, types.Position{Col: 1}, ed.GetCursor())
	assert.False(t, ed.GetHistoryManager().CanUndo())
}

func TestReset(t *testing.T) {
	c, _, surface := newController(t, "", nil)
	surface.set("abc", 3, 3)
	_, err := c.HandleInput(false)
	require.NoError(t, err)
	assert.NotEqual(t, textarea.Empty, c.Previous())

	c.Reset()
	assert.Equal(t, textarea.Empty, c.Previous())
}
