// Package pager builds the text window exposed to assistive technology
// through the native input surface.
//
// Writing a whole document into the surface is impractical on large files,
// so only one page of lines around the caret is exposed. The snapshot still
// reports the true model coordinates of the selection.
package pager

import (
	"strings"

	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/textarea"
	"github.com/bethropolis/tide-ime/internal/types"
)

const logTag = "a11y"

// Reader is the read-only view of the text buffer the pager needs.
// Columns of types.Position are rune indices into Line's content.
type Reader interface {
	LineCount() int
	Line(index int) ([]byte, error)
}

// Selection is an editor selection. Start is not after End; Reversed marks
// that the caret (active end) is at Start.
type Selection struct {
	Start    types.Position
	End      types.Position
	Reversed bool
}

// NewSelection orders anchor and active into a Selection.
func NewSelection(anchor, active types.Position) Selection {
	if active.Before(anchor) {
		return Selection{Start: active, End: anchor, Reversed: true}
	}
	return Selection{Start: anchor, End: active}
}

// Active returns the caret end of the selection.
func (s Selection) Active() types.Position {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// PageOfLine returns the 0-based page holding line.
func PageOfLine(line, linesPerPage int) int {
	if linesPerPage < 1 {
		linesPerPage = 1
	}
	if line < 0 {
		return 0
	}
	return line / linesPerPage
}

// Window is a page of the document as exposed to the surface.
type Window struct {
	Snapshot textarea.Snapshot
	// FirstLine is the model line the snapshot text starts with. Offsets in
	// the surface text map to model lines relative to it.
	FirstLine int
}

// ComputeWindow returns the snapshot to write into the native surface for
// sel. The window holds at most linesPerPage lines and always contains the
// caret's line. With mustIncludeAllSelection the window slides so that a
// selection short enough to fit is shown whole.
//
// If the result equals previous, previous is returned unchanged so callers
// can skip rewriting the surface.
func ComputeWindow(previous textarea.Snapshot, buf Reader, sel Selection, linesPerPage int, mustIncludeAllSelection bool) textarea.Snapshot {
	return Compute(previous, buf, sel, linesPerPage, mustIncludeAllSelection).Snapshot
}

// Compute is ComputeWindow that also reports where the window starts.
// Selection offsets are clamped to the window, so the model line of a
// surface offset can only be recovered through FirstLine.
func Compute(previous textarea.Snapshot, buf Reader, sel Selection, linesPerPage int, mustIncludeAllSelection bool) Window {
	if linesPerPage < 1 {
		linesPerPage = 1
	}
	lineCount := buf.LineCount()
	if lineCount < 1 {
		lineCount = 1
	}
	sel.Start = clampPosition(sel.Start, lineCount)
	sel.End = clampPosition(sel.End, lineCount)
	if sel.End.Before(sel.Start) {
		sel.Start, sel.End = sel.End, sel.Start
		sel.Reversed = !sel.Reversed
	}

	first, last := windowLines(sel, lineCount, linesPerPage, mustIncludeAllSelection)

	lines := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		content, err := buf.Line(i)
		if err != nil {
			logger.WarnTagf(logTag, "pager: reading line %d: %v", i, err)
			content = nil
		}
		lines = append(lines, string(content))
	}
	text := strings.Join(lines, "\n")

	start := offsetInWindow(lines, first, sel.Start)
	end := offsetInWindow(lines, first, sel.End)

	next := textarea.FromSelection(text, start, end, sel.Start, sel.End)
	logger.DebugTagf(logTag, "pager: lines %d-%d of %d, sel [%d, %d]", first, last, lineCount, start, end)
	if next.Equal(previous) {
		next = previous
	}
	return Window{Snapshot: next, FirstLine: first}
}

// windowLines picks the inclusive line range to expose.
func windowLines(sel Selection, lineCount, linesPerPage int, mustIncludeAllSelection bool) (first, last int) {
	caretLine := sel.Active().Line
	first = PageOfLine(caretLine, linesPerPage) * linesPerPage

	if mustIncludeAllSelection && sel.End.Line-sel.Start.Line+1 <= linesPerPage {
		if sel.Start.Line < first {
			first = sel.Start.Line
		} else if sel.End.Line > first+linesPerPage-1 {
			first = sel.End.Line - linesPerPage + 1
		}
	}

	last = first + linesPerPage - 1
	if last > lineCount-1 {
		last = lineCount - 1
	}
	return first, last
}

// offsetInWindow converts pos into a UTF-16 offset within the joined window
// text, clamping positions outside the window to its ends.
func offsetInWindow(lines []string, first int, pos types.Position) int {
	rel := pos.Line - first
	if rel < 0 {
		return 0
	}
	off := 0
	if rel >= len(lines) {
		for i, l := range lines {
			off += textarea.UTF16Len(l)
			if i < len(lines)-1 {
				off++
			}
		}
		return off
	}
	for i := 0; i < rel; i++ {
		off += textarea.UTF16Len(lines[i]) + 1
	}
	return off + textarea.UTF16Offset(lines[rel], pos.Col)
}

func clampPosition(pos types.Position, lineCount int) types.Position {
	if pos.Line < 0 {
		return types.Position{}
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	return pos
}
