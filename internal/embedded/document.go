// Package embedded maps completion requests in multi-line text onto the
// single-line engine. It handles plain function files as well as command
// blocks embedded in another language as tagged template strings.
package embedded

import (
	"sort"
	"strings"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// Document indexes the lines of a text. Offsets and characters are bytes.
type Document struct {
	text       string
	lineStarts []int
}

// NewDocument indexes text
func NewDocument(text string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, lineStarts: starts}
}

// Text returns the whole document
func (d *Document) Text() string {
	return d.text
}

// LineCount returns the number of lines; an empty text has one
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineText returns a line without its terminator
func (d *Document) LineText(line int) string {
	if line < 0 || line >= len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[line]
	end := len(d.text)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1
	}
	return strings.TrimSuffix(d.text[start:end], "\r")
}

// OffsetAt converts a position to an offset, clamping to the document
func (d *Document) OffsetAt(pos engine.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.text)
	}
	character := pos.Character
	if character < 0 {
		character = 0
	}
	if n := len(d.LineText(pos.Line)); character > n {
		character = n
	}
	return d.lineStarts[pos.Line] + character
}

// PositionAt converts an offset to a position, clamping to the document
func (d *Document) PositionAt(offset int) engine.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	return engine.Position{Line: line, Character: offset - d.lineStarts[line]}
}

// Line returns the command typed on pos's line up to pos, without its
// indentation, and the column the command starts at.
func (d *Document) Line(pos engine.Position) (string, int) {
	text := d.LineText(pos.Line)
	if pos.Character < len(text) {
		text = text[:max(pos.Character, 0)]
	}
	command := strings.TrimLeft(text, " \t")
	return command, len(text) - len(command)
}
