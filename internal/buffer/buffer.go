// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/tide-ime/internal/types"

// Buffer defines the text model the reconciliation layer edits.
// It also satisfies pager.Reader, which only needs the line accessors.
type Buffer interface {
	Load(filePath string) error
	SetText(text string)
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
