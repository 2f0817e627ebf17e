// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/bethropolis/tide-ime/internal/editor"
	"github.com/bethropolis/tide-ime/internal/theme"
	"github.com/bethropolis/tide-ime/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Region is a horizontal band of the screen.
type Region struct {
	Top    int
	Height int
}

// styleFunc picks the style of the character at pos.
type styleFunc func(pos types.Position) tcell.Style

func calculateVisualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		visualWidth += gr.Width()
		currentRuneIndex += len(gr.Runes())
	}
	return visualWidth
}

// isPositionWithin checks if pos is within [start, end).
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// firstVisibleLine scrolls so that line stays inside a view of height rows.
func firstVisibleLine(line, height int) int {
	if height <= 0 || line < height {
		return 0
	}
	return line - height + 1
}

func gutterWidthFor(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	gutter := int(math.Log10(float64(lineCount))) + 2
	if gutter >= width {
		return 0
	}
	return gutter
}

// drawLines renders lines into region starting at buffer line viewY, with
// an optional line-number gutter. It returns the gutter width used.
func drawLines(t *TUI, lines []string, viewY int, region Region, gutter bool, base, gutterStyle tcell.Style, styleAt styleFunc) int {
	width, _ := t.Size()
	gutterWidth := 0
	if gutter {
		gutterWidth = gutterWidthFor(len(lines), width)
	}

	for row := 0; row < region.Height; row++ {
		screenY := region.Top + row
		lineIdx := viewY + row

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, base)
		}
		if lineIdx >= len(lines) {
			continue
		}
		if gutterWidth > 0 {
			num := fmt.Sprintf("%*d", gutterWidth-1, lineIdx+1)
			for i, r := range num {
				t.screen.SetContent(i, screenY, r, nil, gutterStyle)
			}
		}

		gr := uniseg.NewGraphemes(lines[lineIdx])
		visualX := 0
		runeIndex := 0
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			screenX := gutterWidth + visualX
			if screenX+clusterWidth > width {
				break
			}
			style := styleAt(types.Position{Line: lineIdx, Col: runeIndex})
			if runes[0] == '\t' {
				t.screen.SetContent(screenX, screenY, ' ', nil, style)
			} else {
				t.screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
				for cw := 1; cw < clusterWidth; cw++ {
					t.screen.SetContent(screenX+cw, screenY, ' ', nil, style)
				}
			}
			visualX += clusterWidth
			runeIndex += len(runes)
		}
	}
	return gutterWidth
}

// fieldPosition converts a rune index in text into a line/column position.
func fieldPosition(text []rune, index int) types.Position {
	var pos types.Position
	for _, r := range text[:clampIndex(index, len(text))] {
		if r == '\n' {
			pos.Line++
			pos.Col = 0
			continue
		}
		pos.Col++
	}
	return pos
}

// DrawField renders the simulated native field and places the terminal
// cursor on its caret.
func DrawField(t *TUI, f *Field, th *theme.Theme, region Region) {
	text := []rune(f.Text())
	start, end := f.Selection()
	composing := f.IsComposing()
	selStart, selEnd := fieldPosition(text, start), fieldPosition(text, end)
	caret := fieldPosition(text, f.Caret())

	fieldStyle := th.GetStyle("Field")
	selStyle := th.GetStyle("Field.Selection")
	if composing {
		selStyle = th.GetStyle("Field.Composition")
	}

	lines := strings.Split(string(text), "\n")
	viewY := firstVisibleLine(caret.Line, region.Height)
	drawLines(t, lines, viewY, region, false, fieldStyle, fieldStyle, func(pos types.Position) tcell.Style {
		if start != end && isPositionWithin(pos, selStart, selEnd) {
			return selStyle
		}
		return fieldStyle
	})

	screenY := region.Top + caret.Line - viewY
	screenX := calculateVisualColumn(lines[caret.Line], caret.Col)
	width, _ := t.Size()
	if screenX >= width || screenY < region.Top || screenY >= region.Top+region.Height {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// DrawModel renders the editor model with line numbers and its selection.
func DrawModel(t *TUI, ed *editor.Editor, th *theme.Theme, region Region) {
	buf := ed.GetBuffer()
	lines := make([]string, buf.LineCount())
	for i := range lines {
		content, err := buf.Line(i)
		if err == nil {
			lines[i] = string(content)
		}
	}

	defaultStyle := th.GetStyle("Default")
	selectionStyle := th.GetStyle("Selection")
	cursor := ed.GetCursor()
	selStart, selEnd, selecting := ed.GetSelection()

	viewY := firstVisibleLine(cursor.Line, region.Height)
	drawLines(t, lines, viewY, region, true, defaultStyle, th.GetStyle("Gutter"), func(pos types.Position) tcell.Style {
		if selecting && isPositionWithin(pos, selStart, selEnd) {
			return selectionStyle
		}
		if pos == cursor {
			return defaultStyle.Underline(true)
		}
		return defaultStyle
	})
}

// DrawLabel writes a single-line caption.
func DrawLabel(t *TUI, th *theme.Theme, y int, text string) {
	style := th.GetStyle("Label")
	width, _ := t.Size()
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		runes := gr.Runes()
		if x+gr.Width() > width {
			break
		}
		t.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
}
