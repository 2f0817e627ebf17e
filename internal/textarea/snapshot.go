package textarea

import (
	"fmt"

	"github.com/bethropolis/tide-ime/internal/types"
)

// SelectionPositions are the model coordinates a pager-built snapshot's
// selection corresponds to. Start and End are always set together.
type SelectionPositions struct {
	Start types.Position
	End   types.Position
}

// Snapshot is the observed state of the native input surface at one instant.
// It is a value: never mutate one after construction, build a new one.
type Snapshot struct {
	Text           string
	SelectionStart int // UTF-16 offset into Text
	SelectionEnd   int // UTF-16 offset into Text, >= SelectionStart

	// Positions is nil for snapshots read from the surface.
	Positions *SelectionPositions
}

// Empty is the state before any input has been observed.
var Empty = Snapshot{}

// FromSurface builds a snapshot from a raw read of the native surface.
// Offsets are clamped into the text and ordered.
func FromSurface(text string, selectionStart, selectionEnd int) Snapshot {
	return Snapshot{
		Text:           text,
		SelectionStart: selectionStart,
		SelectionEnd:   selectionEnd,
	}.normalized()
}

// FromSelection builds a snapshot that carries the model coordinates of its
// selection.
func FromSelection(text string, selectionStart, selectionEnd int, start, end types.Position) Snapshot {
	s := Snapshot{
		Text:           text,
		SelectionStart: selectionStart,
		SelectionEnd:   selectionEnd,
		Positions:      &SelectionPositions{Start: start, End: end},
	}
	return s.normalized()
}

// Len is the text length in UTF-16 code units.
func (s Snapshot) Len() int {
	return UTF16Len(s.Text)
}

// IsCollapsed reports whether the selection is a plain caret.
func (s Snapshot) IsCollapsed() bool {
	return s.SelectionStart == s.SelectionEnd
}

// Collapse returns the snapshot with its selection collapsed to the end and
// positions dropped.
func (s Snapshot) Collapse() Snapshot {
	return Snapshot{
		Text:           s.Text,
		SelectionStart: s.SelectionEnd,
		SelectionEnd:   s.SelectionEnd,
	}
}

// Equal compares text, both offsets and both positions.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Text != other.Text || s.SelectionStart != other.SelectionStart || s.SelectionEnd != other.SelectionEnd {
		return false
	}
	if s.Positions == nil || other.Positions == nil {
		return s.Positions == nil && other.Positions == nil
	}
	return *s.Positions == *other.Positions
}

func (s Snapshot) String() string {
	pos := "nil"
	if s.Positions != nil {
		pos = fmt.Sprintf("[%d:%d, %d:%d]",
			s.Positions.Start.Line, s.Positions.Start.Col,
			s.Positions.End.Line, s.Positions.End.Col)
	}
	return fmt.Sprintf("Snapshot{text: %q, sel: [%d, %d], pos: %s}", s.Text, s.SelectionStart, s.SelectionEnd, pos)
}

// normalized clamps the offsets into [0, Len()] with start <= end and copies
// the positions so callers cannot alias them.
func (s Snapshot) normalized() Snapshot {
	n := s.Len()
	s.SelectionStart = clamp(s.SelectionStart, 0, n)
	s.SelectionEnd = clamp(s.SelectionEnd, 0, n)
	if s.SelectionStart > s.SelectionEnd {
		s.SelectionStart, s.SelectionEnd = s.SelectionEnd, s.SelectionStart
	}
	if s.Positions != nil {
		p := *s.Positions
		s.Positions = &p
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
