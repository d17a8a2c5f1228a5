package embedded

import (
	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// Completer answers position-based requests with an engine
type Completer struct {
	engine *engine.Engine
}

// NewCompleter creates a completer
func NewCompleter(e *engine.Engine) *Completer {
	return &Completer{engine: e}
}

// CompleteDocument completes at pos in a function file. Each line holds
// one command. Candidate ranges are in document coordinates.
func (c *Completer) CompleteDocument(doc *Document, pos engine.Position) ([]engine.Candidate, error) {
	line, column := doc.Line(pos)
	candidates, err := c.engine.Complete(line)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if r := candidates[i].Range; r != nil {
			candidates[i].Range = &engine.Range{
				Start: engine.Position{Line: pos.Line, Character: r.Start.Character + column},
				End:   engine.Position{Line: pos.Line, Character: r.End.Character + column},
			}
		}
	}
	return candidates, nil
}

// CompleteAt completes at a byte offset of a host file with embedded
// blocks. Outside of any block it returns no candidates. Candidate ranges
// are in host coordinates.
func (c *Completer) CompleteAt(text string, offset int) ([]engine.Candidate, error) {
	snippet, ok := Find(text, offset)
	if !ok {
		return nil, nil
	}

	candidates, err := c.CompleteDocument(snippet.Document, snippet.FromHost(offset))
	if err != nil {
		return nil, err
	}

	host := NewDocument(text)
	for i := range candidates {
		if r := candidates[i].Range; r != nil {
			translated := snippet.TranslateRange(host, *r)
			candidates[i].Range = &translated
		}
	}
	return candidates, nil
}
