package statusbar

import (
	"testing"
	"time"

	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/theme"
	"github.com/bethropolis/tide-ime/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBar_Text(t *testing.T) {
	sb := New(DefaultConfig(&theme.DevComfortDark))
	sb.SetCursorInfo(types.Position{Line: 2, Col: 4})
	sb.SetMode("a11y", true)

	text, isMessage := sb.Text()
	assert.False(t, isMessage)
	assert.Equal(t, "a11y [composing] -- Line: 3, Col: 5", text)

	edit := textarea.Edit{Text: "x", DeleteCount: 1}
	sb.SetLastEdit(edit)
	text, _ = sb.Text()
	assert.Contains(t, text, edit.String())
}

func TestStatusBar_Syntax(t *testing.T) {
	sb := New(DefaultConfig(&theme.DevComfortDark))

	sb.SetSyntax("Go", "identifier", false)
	text, _ := sb.Text()
	assert.Equal(t, "native -- Line: 1, Col: 1 -- Go: identifier", text)

	sb.SetSyntax("Go", "ERROR", true)
	text, _ = sb.Text()
	assert.Contains(t, text, "Go: ERROR (errors)")

	sb.SetSyntax("", "", false)
	text, _ = sb.Text()
	assert.Equal(t, "native -- Line: 1, Col: 1", text)
}

func TestStatusBar_TemporaryMessageExpires(t *testing.T) {
	sb := New(DefaultConfig(&theme.DevComfortDark))
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("pasted %d chars", 3)
	text, isMessage := sb.Text()
	assert.True(t, isMessage)
	assert.Equal(t, "pasted 3 chars", text)

	now = now.Add(5 * time.Second)
	text, isMessage = sb.Text()
	assert.False(t, isMessage)
	assert.Contains(t, text, "native")
}

func TestStatusBar_Draw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(12, 3)

	cfg := DefaultConfig(&theme.DevComfortDark)
	sb := New(cfg)
	sb.Draw(s, 12, 3)
	s.Show()

	r, _, style, _ := s.GetContent(0, 2)
	assert.Equal(t, 'n', r)
	assert.Equal(t, cfg.StyleDefault, style)
	r, _, _, _ = s.GetContent(11, 2)
	assert.Equal(t, 'i', r, "text is cut at the screen edge")
}
