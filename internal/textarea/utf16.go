package textarea

import "unicode/utf16"

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UTF16Offset converts a rune index in s into a code-unit offset. Indexes past
// the end clamp to UTF16Len(s).
func UTF16Offset(s string, runeIndex int) int {
	off := 0
	i := 0
	for _, r := range s {
		if i >= runeIndex {
			break
		}
		if r >= 0x10000 {
			off += 2
		} else {
			off++
		}
		i++
	}
	return off
}

func toUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func fromUnits(u []uint16) string {
	return string(utf16.Decode(u))
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u < 0xE000 }

// commonPrefix counts the shared leading units of a and b, never ending
// between the two halves of a surrogate pair.
func commonPrefix(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	if i > 0 && isHighSurrogate(a[i-1]) {
		i--
	}
	return i
}

// commonSuffix counts the shared trailing units of a and b, never starting
// on the low half of a surrogate pair.
func commonSuffix(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	if i > 0 && isLowSurrogate(a[len(a)-i]) {
		i--
	}
	return i
}

func hasUnitPrefix(s, prefix []uint16) bool {
	return len(s) >= len(prefix) && unitsEqual(s[:len(prefix)], prefix)
}

func hasUnitSuffix(s, suffix []uint16) bool {
	return len(s) >= len(suffix) && unitsEqual(s[len(s)-len(suffix):], suffix)
}

func unitsEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsUnit(s []uint16, u uint16) bool {
	for _, c := range s {
		if c == u {
			return true
		}
	}
	return false
}
