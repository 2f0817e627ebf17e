// Package textarea reconciles the native text-input surface with the editor
// model.
//
// The operating system owns composition, autocorrect and emoji insertion, so
// the editor never sees the keystrokes behind those edits. It only sees the
// surface's content and selection before and after the change. A Snapshot is
// one such observation and Deduce turns a pair of them into an Edit that can
// be applied at the model cursor.
//
// All offsets in this package are UTF-16 code units, the unit the native
// surface reports selections in.
package textarea
