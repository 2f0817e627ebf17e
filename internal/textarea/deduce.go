package textarea

import "github.com/bethropolis/tide-ime/internal/logger"

const logTag = "ime"

// Deduce recovers the edit that turned previous into current.
//
// The diff is anchored on the selections: the common suffix is taken only
// from the text after each selection end and the common prefix only from the
// text before each selection start, so the two never overlap. What remains of
// current is the inserted text. With a collapsed current selection the
// characters between the common prefix and the previous selection start are
// the ones deleted before the cursor; with a live selection (composition in
// progress) the previous selection is what gets replaced.
//
// couldBeEmojiInput enables recognising emoji that the OS picker inserted
// away from the caret. Deduce never fails; malformed offsets are clamped.
func Deduce(previous, current Snapshot, couldBeEmojiInput bool) Edit {
	previous = previous.normalized()
	current = current.normalized()
	if previous.Equal(current) {
		return Edit{}
	}

	prevText := toUnits(previous.Text)
	curText := toUnits(current.Text)
	prevStart, prevEnd := previous.SelectionStart, previous.SelectionEnd
	curStart, curEnd := current.SelectionStart, current.SelectionEnd

	suffix := commonSuffix(prevText[prevEnd:], curText[curEnd:])
	prevText = prevText[:len(prevText)-suffix]
	curText = curText[:len(curText)-suffix]

	prefix := commonPrefix(prevText[:prevStart], curText[:curStart])
	prevText = prevText[prefix:]
	curText = curText[prefix:]
	prevStart -= prefix
	prevEnd -= prefix
	curStart -= prefix
	curEnd -= prefix

	logger.DebugTagf(logTag, "deduce: prefix=%d suffix=%d prev=%q cur=%q", prefix, suffix, fromUnits(prevText), fromUnits(curText))

	if couldBeEmojiInput && curStart == curEnd && len(prevText) > 0 {
		if emoji, ok := detachedEmoji(prevText, curText, curStart); ok {
			logger.DebugTagf(logTag, "deduce: emoji %q inserted away from caret (%d clusters)", emoji, DisplayLen(emoji))
			return Edit{Text: emoji}
		}
	}

	if curStart == curEnd {
		// Composition accepted without changing the committed text:
		// [blahblah] => blahblah|
		if unitsEqual(prevText, curText) &&
			prevStart == 0 && prevEnd == len(prevText) &&
			curStart == len(curText) &&
			!containsUnit(curText, '\n') &&
			ContainsFullWidth(fromUnits(curText)) {
			logger.DebugTagf(logTag, "deduce: composition accepted")
			return Edit{}
		}
		return Edit{Text: fromUnits(curText), DeleteCount: prevStart}
	}

	// A live selection on the surface means the IME is still composing and
	// replaces whatever the previous selection covered.
	return Edit{Text: fromUnits(curText), DeleteCount: prevEnd - prevStart}
}

// detachedEmoji looks for an emoji the OS inserted somewhere other than the
// reported selection. All of the previous text must still be present and the
// caret must sit right after the new run.
func detachedEmoji(prevText, curText []uint16, caret int) (string, bool) {
	var candidate []uint16
	switch {
	case caret == len(curText):
		// Inserted somewhere after the previous selection.
		if !hasUnitPrefix(curText, prevText) {
			return "", false
		}
		candidate = curText[len(prevText):]
	default:
		// Inserted somewhere before it.
		if !hasUnitSuffix(curText, prevText) {
			return "", false
		}
		candidate = curText[:len(curText)-len(prevText)]
	}
	if len(candidate) == 0 {
		return "", false
	}
	s := fromUnits(candidate)
	if !ContainsEmoji(s) {
		return "", false
	}
	return s, true
}

// CommonAffixes returns the shared leading and trailing code-unit runs of two
// texts, ignoring selections. prefix+suffix never exceeds the shorter length.
func CommonAffixes(previous, current string) (prefix, suffix int) {
	a, b := toUnits(previous), toUnits(current)
	prefix = commonPrefix(a, b)
	suffix = commonSuffix(a[prefix:], b[prefix:])
	return prefix, suffix
}
