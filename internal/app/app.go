// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"github.com/bethropolis/tide-ime/internal/buffer"
	"github.com/bethropolis/tide-ime/internal/config"
	"github.com/bethropolis/tide-ime/internal/editor"
	"github.com/bethropolis/tide-ime/internal/event"
	"github.com/bethropolis/tide-ime/internal/input"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/reconcile"
	"github.com/bethropolis/tide-ime/internal/statusbar"
	"github.com/bethropolis/tide-ime/internal/syntax"
	"github.com/bethropolis/tide-ime/internal/theme"
	"github.com/bethropolis/tide-ime/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// emojiCandidate is what the simulated OS picker inserts.
const emojiCandidate = "😀"

// Composition steps played by the simulated IME, then the committed text.
var (
	composeSteps  = []string{"に", "にほ", "にほん"}
	composeCommit = "日本"
)

// App is the interactive playground: a simulated native field on top, the
// reconciled editor model below.
type App struct {
	tuiManager     *tui.TUI
	editor         *editor.Editor
	field          *tui.Field
	controller     *reconcile.Controller
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	syntax         *syntax.Tracker
	eventManager   *event.Manager
	cfg            *config.Config
	activeTheme    *theme.Theme
	filePath       string

	composeStep int
}

// NewApp creates the playground on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return NewAppWithScreen(cfg, filePath, s)
}

// NewAppWithScreen creates the playground on s.
func NewAppWithScreen(cfg *config.Config, filePath string, s tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	activeTheme := &theme.DevComfortDark

	tuiManager, err := tui.NewWithScreen(s, activeTheme)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	ed := editor.NewEditor(buffer.NewSliceBuffer())
	ed.SetEventManager(eventManager)

	field := tui.NewField(tui.NewClipboard(cfg.Editor.SystemClipboard))

	a := &App{
		tuiManager:     tuiManager,
		editor:         ed,
		field:          field,
		controller:     reconcile.NewController(field, ed, cfg),
		inputProcessor: input.NewInputProcessor(),
		statusBar:      statusbar.New(statusbar.DefaultConfig(activeTheme)),
		syntax:         syntax.NewTracker(),
		eventManager:   eventManager,
		cfg:            cfg,
		activeTheme:    activeTheme,
		filePath:       filePath,
	}
	a.subscribe()

	if filePath != "" {
		if err := ed.Load(filePath); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("loading %s: %w", filePath, err)
		}
	}
	a.controller.SyncFromModel()
	return a, nil
}

// Run polls terminal events until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.syntax.Close()

	a.statusBar.SetTemporaryMessage("Ctrl+O compose | Ctrl+E emoji | Ctrl+T a11y | Esc quit")
	a.drawEditor()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
		case *tcell.EventKey:
			if a.HandleKey(eventData) {
				logger.Infof("App: quit requested")
				return nil
			}
		}
		a.drawEditor()
	}
}

// HandleKey applies one key event and reports whether the app should quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	action := a.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("app", "key %v -> %v", ev.Name(), action.Action)
	if action.Action != input.ActionCompose {
		a.composeStep = 0
	}

	switch action.Action {
	case input.ActionQuit:
		return true
	case input.ActionUndo, input.ActionRedo:
		op := a.editor.Undo
		if action.Action == input.ActionRedo {
			op = a.editor.Redo
		}
		if _, err := op(); err != nil {
			a.statusBar.SetTemporaryMessage("%v failed: %v", action.Action, err)
		}
		a.controller.SyncFromModel()
	case input.ActionToggleAccessibility:
		a.cfg.Accessibility.Enabled = !a.cfg.Accessibility.Enabled
		a.controller.Reset()
		a.controller.SyncFromModel()
	case input.ActionCompose:
		a.compose()
		a.reconcile(false)
	case input.ActionEmojiPicker:
		a.field.InsertAt(0, emojiCandidate)
		a.reconcile(true)
	default:
		changed, couldBeEmoji, err := a.field.HandleAction(action)
		if err != nil {
			logger.Warnf("App: %v: %v", action.Action, err)
			a.statusBar.SetTemporaryMessage("%v", err)
		}
		if changed {
			a.reconcile(couldBeEmoji)
		}
	}
	return false
}

// compose advances the simulated IME by one step.
func (a *App) compose() {
	if !a.field.IsComposing() {
		a.composeStep = 0
	}
	if a.composeStep < len(composeSteps) {
		a.field.Compose(composeSteps[a.composeStep])
		a.composeStep++
		return
	}
	a.field.Commit(composeCommit)
	a.composeStep = 0
}

func (a *App) reconcile(couldBeEmoji bool) {
	if _, err := a.controller.HandleInput(couldBeEmoji); err != nil {
		a.statusBar.SetTemporaryMessage("reconcile failed: %v", err)
	}
}

// --- Drawing ---

func (a *App) drawEditor() {
	mode := "native"
	if a.cfg.Accessibility.Enabled {
		mode = fmt.Sprintf("a11y (%d lines/page)", a.cfg.Accessibility.LinesPerPage)
	}
	a.statusBar.SetMode(mode, a.field.IsComposing())
	a.updateSyntax()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	a.tuiManager.Clear()

	if height >= 5 {
		fieldHeight := (height - 3) / 2
		modelTop := fieldHeight + 2
		tui.DrawLabel(a.tuiManager, a.activeTheme, 0, "native field")
		tui.DrawLabel(a.tuiManager, a.activeTheme, fieldHeight+1, "editor model")
		tui.DrawModel(a.tuiManager, a.editor, a.activeTheme, tui.Region{Top: modelTop, Height: height - 1 - modelTop})
		tui.DrawField(a.tuiManager, a.field, a.activeTheme, tui.Region{Top: 1, Height: fieldHeight})
	}
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateSyntax reparses the model if it changed and shows the node under
// the caret.
func (a *App) updateSyntax() {
	buf := a.editor.GetBuffer()
	if err := a.syntax.Sync(context.Background(), buf.Bytes()); err != nil {
		logger.Warnf("App: %v", err)
	}
	cursor := a.editor.GetCursor()
	line, err := buf.Line(cursor.Line)
	if err != nil {
		line = nil
	}
	a.statusBar.SetSyntax(a.syntax.Language(), a.syntax.NodeAt(cursor, line), a.syntax.HasError())
}
