// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/theme"
	"github.com/bethropolis/tide-ime/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleEdit      tcell.Style // Style for the last deduced edit
	StyleMessage   tcell.Style // Style for temporary messages
	MessageTimeout time.Duration
}

// DefaultConfig takes its styles from th.
func DefaultConfig(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle("StatusBar"),
		StyleEdit:      th.GetStyle("StatusBar.Edit"),
		StyleMessage:   th.GetStyle("StatusBarMessage"),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line of the playground.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	cursorPos types.Position
	mode      string
	composing bool
	lastEdit  textarea.Edit
	hasEdit   bool

	language    string
	syntaxNode  string
	syntaxError bool

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetCursorInfo updates the model cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetMode updates the displayed surface mode.
func (sb *StatusBar) SetMode(mode string, composing bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.mode = mode
	sb.composing = composing
}

// SetLastEdit records the most recent deduced edit.
func (sb *StatusBar) SetLastEdit(edit textarea.Edit) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.lastEdit = edit
	sb.hasEdit = true
}

// SetSyntax records the grammar and the node under the caret. An empty
// language hides the syntax section.
func (sb *StatusBar) SetSyntax(language, node string, hasError bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.language = language
	sb.syntaxNode = node
	sb.syntaxError = hasError
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns what Draw would display now and whether it is a message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.displayText()
}

// displayText expects mu to be held.
func (sb *StatusBar) displayText() (string, bool) {
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	mode := sb.mode
	if mode == "" {
		mode = "native"
	}
	if sb.composing {
		mode += " [composing]"
	}
	text := fmt.Sprintf("%s -- Line: %d, Col: %d", mode, sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	if sb.language != "" {
		text += fmt.Sprintf(" -- %s: %s", sb.language, sb.syntaxNode)
		if sb.syntaxError {
			text += " (errors)"
		}
	}
	if sb.hasEdit {
		text += " -- " + sb.lastEdit.String()
	}
	return text, false
}

// Draw renders the status bar onto the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	text, isMessage := sb.displayText()
	sb.mu.Unlock()

	style := sb.config.StyleDefault
	if isMessage {
		style = sb.config.StyleMessage
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
