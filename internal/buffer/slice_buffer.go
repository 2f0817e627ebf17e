// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/tide-ime/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// SliceBuffer stores the document as one byte slice per line, without the
// line terminators.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// NewFromString creates a SliceBuffer holding text split on '\n'.
func NewFromString(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.SetText(text)
	return sb
}

// Load reads a file into the buffer, replacing existing content.
// A missing file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte{})
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// SetText replaces the whole content. The buffer is not marked modified.
func (sb *SliceBuffer) SetText(text string) {
	parts := bytes.Split([]byte(text), []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = append([]byte(nil), p...)
	}
	sb.modified = false
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins all lines with '\n' (no trailing newline).
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// Save writes the buffer to filePath, or to the loaded path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Buffer Modification Methods ---

// Insert inserts text at pos (clamped into the document). Text may span lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	validPos, byteOffset := sb.clampPosition(pos)
	startIndex := sb.docByteOffset(validPos.Line, byteOffset)
	startPoint := sitter.Point{Row: uint32(validPos.Line), Column: uint32(byteOffset)}
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    startIndex,
		NewEndIndex:    startIndex,
		StartPosition:  startPoint,
		OldEndPosition: startPoint,
		NewEndPosition: startPoint,
	}
	if len(text) == 0 {
		return info, nil
	}
	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := append([]byte(nil), currentLine[byteOffset:]...)
	head := append([]byte(nil), currentLine[:byteOffset]...)

	newLines := make([][]byte, len(insertLines))
	for i, l := range insertLines {
		newLines[i] = append([]byte(nil), l...)
	}
	newLines[0] = append(head, newLines[0]...)
	last := len(newLines) - 1
	endCol := len(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	rebuilt := make([][]byte, 0, len(sb.lines)+last)
	rebuilt = append(rebuilt, sb.lines[:validPos.Line]...)
	rebuilt = append(rebuilt, newLines...)
	rebuilt = append(rebuilt, sb.lines[validPos.Line+1:]...)
	sb.lines = rebuilt

	info.NewEndIndex = startIndex + uint32(len(text))
	info.NewEndPosition = sitter.Point{Row: uint32(validPos.Line + last), Column: uint32(endCol)}
	return info, nil
}

// Delete removes text within [start, end). Positions are ordered and clamped.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	start, end = types.Order(start, end)
	vStart, startOffset := sb.clampPosition(start)
	vEnd, endOffset := sb.clampPosition(end)

	startIndex := sb.docByteOffset(vStart.Line, startOffset)
	endIndex := sb.docByteOffset(vEnd.Line, endOffset)
	if endIndex < startIndex {
		return types.EditInfo{}, fmt.Errorf("invalid delete range %v-%v", start, end)
	}
	startPoint := sitter.Point{Row: uint32(vStart.Line), Column: uint32(startOffset)}
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    endIndex,
		NewEndIndex:    startIndex,
		StartPosition:  startPoint,
		OldEndPosition: sitter.Point{Row: uint32(vEnd.Line), Column: uint32(endOffset)},
		NewEndPosition: startPoint,
	}
	if startIndex == endIndex {
		return info, nil
	}
	sb.modified = true

	merged := append([]byte(nil), sb.lines[vStart.Line][:startOffset]...)
	merged = append(merged, sb.lines[vEnd.Line][endOffset:]...)

	rebuilt := make([][]byte, 0, len(sb.lines)-(vEnd.Line-vStart.Line))
	rebuilt = append(rebuilt, sb.lines[:vStart.Line]...)
	rebuilt = append(rebuilt, merged)
	rebuilt = append(rebuilt, sb.lines[vEnd.Line+1:]...)
	sb.lines = rebuilt
	return info, nil
}

// clampPosition clamps pos into the document and returns the byte offset
// of its column within the line.
func (sb *SliceBuffer) clampPosition(pos types.Position) (types.Position, int) {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{{}}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
		pos.Col = utf8.RuneCount(sb.lines[pos.Line])
	}
	if pos.Col < 0 {
		pos.Col = 0
	}

	line := sb.lines[pos.Line]
	byteOff := 0
	runeCount := 0
	for byteOff < len(line) && runeCount < pos.Col {
		_, size := utf8.DecodeRune(line[byteOff:])
		byteOff += size
		runeCount++
	}
	pos.Col = runeCount
	return pos, byteOff
}

// docByteOffset returns the document byte offset of (line, byteCol),
// counting one byte per line terminator.
func (sb *SliceBuffer) docByteOffset(line, byteCol int) uint32 {
	off := 0
	for i := 0; i < line; i++ {
		off += len(sb.lines[i]) + 1
	}
	return uint32(off + byteCol)
}

var _ Buffer = (*SliceBuffer)(nil)
