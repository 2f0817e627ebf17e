// Package syntax keeps a tree-sitter parse of the editor model in step with
// the edits the reconciler applies, so the playground can show which syntax
// node the caret sits in.
package syntax

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

const logTag = "syntax"

// Tracker owns one parser and the tree of the current document.
// Edits are applied to the tree as they happen; the reparse is deferred to
// Sync so that several edits from one change are folded into one parse.
type Tracker struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	lang    *Language
	tree    *sitter.Tree
	pending int
}

// NewTracker creates a tracker with no document.
func NewTracker() *Tracker {
	return &Tracker{parser: sitter.NewParser()}
}

// Load parses src from scratch with the grammar for filePath. Files with no
// known grammar leave the tracker empty.
func (t *Tracker) Load(ctx context.Context, filePath string, src []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeTree()
	t.lang = ForFile(filePath)
	if t.lang == nil {
		logger.DebugTagf(logTag, "no grammar for %q", filePath)
		return nil
	}
	t.parser.SetLanguage(t.lang.Grammar)
	tree, err := t.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("syntax: parse %s: %w", filePath, err)
	}
	t.tree = tree
	logger.DebugTagf(logTag, "parsed %s as %s (%d bytes)", filePath, t.lang.Name, len(src))
	return nil
}

// Edit records a buffer mutation on the tree. Call Sync before querying.
func (t *Tracker) Edit(info types.EditInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil || info.IsEmpty() {
		return
	}
	t.tree.Edit(info.InputEdit())
	t.pending++
}

// Sync reparses src incrementally if edits were recorded since the last
// parse. src must be the document after all of those edits.
func (t *Tracker) Sync(ctx context.Context, src []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil || t.pending == 0 {
		return nil
	}
	tree, err := t.parser.ParseCtx(ctx, t.tree, src)
	if err != nil {
		return fmt.Errorf("syntax: reparse: %w", err)
	}
	logger.DebugTagf(logTag, "reparsed after %d edits", t.pending)
	t.tree.Close()
	t.tree = tree
	t.pending = 0
	return nil
}

// Language returns the name of the active grammar, empty if none.
func (t *Tracker) Language() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lang == nil {
		return ""
	}
	return t.lang.Name
}

// NodeAt returns the type of the smallest named node at pos. line is the
// content of pos.Line, needed to turn the rune column into bytes.
func (t *Tracker) NodeAt(pos types.Position, line []byte) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil {
		return ""
	}
	point := sitter.Point{Row: uint32(pos.Line), Column: uint32(byteColumn(line, pos.Col))}
	node := t.tree.RootNode().NamedDescendantForPointRange(point, point)
	if node == nil {
		return ""
	}
	return node.Type()
}

// HasError reports whether the current tree contains syntax errors.
func (t *Tracker) HasError() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tree != nil && t.tree.RootNode().HasError()
}

// Close releases the tree and the parser.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeTree()
	t.parser.Close()
}

func (t *Tracker) closeTree() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
	t.pending = 0
}

func byteColumn(line []byte, col int) int {
	offset := 0
	for i := 0; i < col && offset < len(line); i++ {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}
