package embedded

import (
	"regexp"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// A tag such as mc or api.run followed by a backtick string.
var blockPattern = regexp.MustCompile("(\\w+(?:\\.\\w+)*\\s*`)([^`]*)`")

// Snippet is the content of one embedded block, addressed as its own
// document. Start is the host offset of its first byte.
type Snippet struct {
	*Document
	Tag   string
	Start int
}

// End returns the host offset just past the content
func (s *Snippet) End() int {
	return s.Start + len(s.Text())
}

// Contains reports whether a host offset falls inside the content. The
// closing backtick position counts, so a cursor at the end of the content
// is inside.
func (s *Snippet) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End()
}

// FromHost converts a host offset to a position inside the snippet
func (s *Snippet) FromHost(offset int) engine.Position {
	return s.PositionAt(offset - s.Start)
}

// ToHost converts a snippet position to a host offset
func (s *Snippet) ToHost(pos engine.Position) int {
	return s.OffsetAt(pos) + s.Start
}

// TranslateRange maps a snippet range into host positions
func (s *Snippet) TranslateRange(host *Document, r engine.Range) engine.Range {
	return engine.Range{
		Start: host.PositionAt(s.ToHost(r.Start)),
		End:   host.PositionAt(s.ToHost(r.End)),
	}
}

// FindAll returns every embedded block of a host text, in order
func FindAll(text string) []*Snippet {
	matches := blockPattern.FindAllStringSubmatchIndex(text, -1)
	snippets := make([]*Snippet, 0, len(matches))
	for _, m := range matches {
		prefixEnd, contentStart, contentEnd := m[3], m[4], m[5]
		tagEnd := prefixEnd - 1
		for tagEnd > m[2] && isBlank(text[tagEnd-1]) {
			tagEnd--
		}
		snippets = append(snippets, &Snippet{
			Document: NewDocument(text[contentStart:contentEnd]),
			Tag:      text[m[2]:tagEnd],
			Start:    contentStart,
		})
	}
	return snippets
}

// Find returns the block whose content holds a host offset
func Find(text string, offset int) (*Snippet, bool) {
	for _, s := range FindAll(text) {
		if s.Start > offset {
			break
		}
		if s.Contains(offset) {
			return s, true
		}
	}
	return nil, false
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
