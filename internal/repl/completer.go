package repl

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// Completer feeds engine candidates to readline's tab completion
type Completer struct {
	engine *engine.Engine
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a tab completer
func NewCompleter(e *engine.Engine) *Completer {
	return &Completer{engine: e}
}

// Do implements readline.AutoCompleter. It returns the text each candidate
// adds after the cursor and the length of the token being completed. A
// single candidate is closed with the commit character.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	result, err := c.engine.Parse(text)
	if err != nil {
		return nil, 0
	}
	candidates, err := c.engine.Candidates(result)
	if err != nil || len(candidates) == 0 {
		return nil, 0
	}

	partial := result.Remainder
	out := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		suffix, ok := completionSuffix(cand.Label, partial)
		if !ok {
			continue
		}
		if len(candidates) == 1 {
			suffix += engine.CommitCharacter
		}
		out = append(out, []rune(suffix))
	}
	return out, len([]rune(partial))
}

// completionSuffix returns what label adds to partial. A namespaced label
// matched on its path completes the path only.
func completionSuffix(label, partial string) (string, bool) {
	if strings.HasPrefix(label, partial) {
		return label[len(partial):], true
	}
	if i := strings.IndexByte(label, ':'); i > 0 && strings.HasPrefix(label[i+1:], partial) {
		return label[i+1+len(partial):], true
	}
	return "", false
}
