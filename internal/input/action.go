// internal/input/action.go
package input

// Action is an operation on the simulated input field or the playground.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionToggleAccessibility
	ActionUndo
	ActionRedo

	// --- Caret Movement ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd

	// --- Selection (Shift + movement) ---
	ActionSelectLeft
	ActionSelectRight
	ActionSelectHome
	ActionSelectEnd
	ActionSelectAll

	// --- Text Manipulation ---
	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionCopy
	ActionPaste

	// --- Simulated platform input ---
	ActionEmojiPicker // OS picker inserting an emoji away from the caret
	ActionCompose     // IME composition step on the current selection
)

var actionNames = map[Action]string{
	ActionUnknown:             "Unknown",
	ActionQuit:                "Quit",
	ActionToggleAccessibility: "ToggleAccessibility",
	ActionUndo:                "Undo",
	ActionRedo:                "Redo",
	ActionMoveLeft:            "MoveLeft",
	ActionMoveRight:           "MoveRight",
	ActionMoveHome:            "MoveHome",
	ActionMoveEnd:             "MoveEnd",
	ActionSelectLeft:          "SelectLeft",
	ActionSelectRight:         "SelectRight",
	ActionSelectHome:          "SelectHome",
	ActionSelectEnd:           "SelectEnd",
	ActionSelectAll:           "SelectAll",
	ActionInsertRune:          "InsertRune",
	ActionInsertNewLine:       "InsertNewLine",
	ActionDeleteCharForward:   "DeleteCharForward",
	ActionDeleteCharBackward:  "DeleteCharBackward",
	ActionCopy:                "Copy",
	ActionPaste:               "Paste",
	ActionEmojiPicker:         "EmojiPicker",
	ActionCompose:             "Compose",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
