package textarea

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// variationSelector16 requests emoji presentation of the preceding character.
const variationSelector16 = '\uFE0F'

// emojiTable covers the pictograph blocks the emoji pickers insert from.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231A, Hi: 0x231B, Stride: 1},
		{Lo: 0x23F0, Hi: 0x23F3, Stride: 3},
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0x2B50, Hi: 0x2B55, Stride: 5},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FC, Stride: 1},
		{Lo: 0x1F7E0, Hi: 0x1F7EB, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAD6, Stride: 1},
	},
}

// fullWidthTable is CJK and full-width forms, where IMEs accept compositions
// without touching the committed text.
var fullWidthTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2E80, Hi: 0xD7AF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFAFF, Stride: 1},
		{Lo: 0xFF01, Hi: 0xFF5E, Stride: 1},
	},
}

// IsEmojiCluster reports whether one grapheme cluster renders as an emoji:
// it carries VS16 or contains a pictograph code point.
func IsEmojiCluster(runes []rune) bool {
	for _, r := range runes {
		if r == variationSelector16 || unicode.Is(emojiTable, r) {
			return true
		}
	}
	return false
}

// ContainsEmoji reports whether any grapheme cluster of s is an emoji.
func ContainsEmoji(s string) bool {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if IsEmojiCluster(g.Runes()) {
			return true
		}
	}
	return false
}

// ContainsFullWidth reports whether s holds a full-width (CJK) character.
func ContainsFullWidth(s string) bool {
	for _, r := range s {
		if unicode.Is(fullWidthTable, r) {
			return true
		}
	}
	return false
}

// DisplayLen counts user-perceived characters (grapheme clusters).
func DisplayLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
