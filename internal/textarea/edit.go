package textarea

import "fmt"

// Edit is what the model must do to catch up with the native surface:
// delete DeleteCount code units immediately before the model cursor, then
// insert Text there.
type Edit struct {
	Text        string
	DeleteCount int
}

// IsEmpty reports whether applying e changes nothing.
func (e Edit) IsEmpty() bool {
	return e.Text == "" && e.DeleteCount == 0
}

func (e Edit) String() string {
	return fmt.Sprintf("Edit{text: %q, delete: %d}", e.Text, e.DeleteCount)
}

// Apply performs e on text with the caret at cursor (a code-unit offset) and
// returns the new text and caret. The deletion is clamped at the start of
// text and never splits a surrogate pair.
func (e Edit) Apply(text string, cursor int) (string, int) {
	units := toUnits(text)
	cursor = clamp(cursor, 0, len(units))
	start := cursor - e.DeleteCount
	if start < 0 {
		start = 0
	}
	if start > 0 && start < len(units) && isLowSurrogate(units[start]) {
		start--
	}

	inserted := toUnits(e.Text)
	out := make([]uint16, 0, len(units)-(cursor-start)+len(inserted))
	out = append(out, units[:start]...)
	out = append(out, inserted...)
	out = append(out, units[cursor:]...)
	return fromUnits(out), start + len(inserted)
}
