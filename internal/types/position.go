// internal/types/position.go
package types

// Position is a location in the editor model.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line. Conversion to UTF-16 code
// units (the native surface's unit) happens at the textarea/pager boundary.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// Order returns a and b sorted so the first is not after the second.
func Order(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
