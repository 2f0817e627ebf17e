package syntax

import (
	"context"
	"testing"

	"github.com/bethropolis/tide-ime/internal/buffer"
	"github.com/bethropolis/tide-ime/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = "package main\n\nfunc main() {}\n"

func loadGo(t *testing.T, buf *buffer.SliceBuffer) *Tracker {
	t.Helper()
	tr := NewTracker()
	t.Cleanup(tr.Close)
	require.NoError(t, tr.Load(context.Background(), "main.go", buf.Bytes()))
	return tr
}

func nodeAt(t *testing.T, tr *Tracker, buf *buffer.SliceBuffer, pos types.Position) string {
	t.Helper()
	line, err := buf.Line(pos.Line)
	require.NoError(t, err)
	return tr.NodeAt(pos, line)
}

func TestForFile(t *testing.T) {
	for path, want := range map[string]string{
		"main.go":        "Go",
		"script.PY":      "Python",
		"app.mjs":        "JavaScript",
		"lib.rs":         "Rust",
		"scenarios.toml": "TOML",
	} {
		l := ForFile(path)
		require.NotNil(t, l, path)
		assert.Equal(t, want, l.Name, path)
	}
	assert.Nil(t, ForFile("notes.txt"))
	assert.Nil(t, ForFile(""))
}

func TestTracker_Load(t *testing.T) {
	buf := buffer.NewFromString(goSource)
	tr := loadGo(t, buf)

	assert.Equal(t, "Go", tr.Language())
	assert.False(t, tr.HasError())
	assert.Equal(t, "identifier", nodeAt(t, tr, buf, types.Position{Line: 2, Col: 5}))
}

func TestTracker_NoGrammar(t *testing.T) {
	tr := NewTracker()
	defer tr.Close()
	require.NoError(t, tr.Load(context.Background(), "notes.txt", []byte("hello")))

	tr.Edit(types.EditInfo{StartIndex: 0, OldEndIndex: 0, NewEndIndex: 1})
	require.NoError(t, tr.Sync(context.Background(), []byte("xhello")))
	assert.Empty(t, tr.Language())
	assert.Empty(t, tr.NodeAt(types.Position{}, []byte("xhello")))
	assert.False(t, tr.HasError())
}

func TestTracker_IncrementalEdits(t *testing.T) {
	buf := buffer.NewFromString(goSource)
	tr := loadGo(t, buf)
	ctx := context.Background()

	info, err := buf.Insert(types.Position{Line: 2, Col: 14}, []byte("("))
	require.NoError(t, err)
	tr.Edit(info)
	require.NoError(t, tr.Sync(ctx, buf.Bytes()))
	assert.True(t, tr.HasError(), "stray paren after the function")

	info, err = buf.Delete(types.Position{Line: 2, Col: 14}, types.Position{Line: 2, Col: 15})
	require.NoError(t, err)
	tr.Edit(info)
	require.NoError(t, tr.Sync(ctx, buf.Bytes()))
	assert.False(t, tr.HasError())

	info, err = buf.Insert(types.Position{Line: 1}, []byte("var x = 1\n"))
	require.NoError(t, err)
	tr.Edit(info)
	require.NoError(t, tr.Sync(ctx, buf.Bytes()))
	assert.Equal(t, "identifier", nodeAt(t, tr, buf, types.Position{Line: 1, Col: 4}))
	assert.Equal(t, "identifier", nodeAt(t, tr, buf, types.Position{Line: 3, Col: 5}), "function name moved down a line")
}

func TestTracker_SyncWithoutEditsKeepsTree(t *testing.T) {
	buf := buffer.NewFromString(goSource)
	tr := loadGo(t, buf)

	require.NoError(t, tr.Sync(context.Background(), []byte("not go at all (")))
	assert.False(t, tr.HasError(), "nothing pending, nothing reparsed")
}
