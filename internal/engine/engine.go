// Package engine walks a partially typed command line through a grammar
// tree and produces the completions that may follow it.
package engine

import (
	"strings"

	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/registry"
)

// CommitCharacter accepts a candidate and starts the next token
const CommitCharacter = " "

// ParseResult is the outcome of walking a line as far as the grammar allows
type ParseResult struct {
	// Properties binds argument names to the text they consumed
	Properties map[string]string
	// Remainder is the unconsumed suffix of the line
	Remainder string
	// Tip is the deepest node reached; its children are the candidate space
	Tip *grammar.Node
	// Consumed is the byte offset in the input line where Remainder starts
	Consumed int
}

// Engine completes lines against one grammar and one set of registries.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	tree       *grammar.Tree
	registries registry.Registries
}

// New creates an engine
func New(tree *grammar.Tree, regs registry.Registries) *Engine {
	return &Engine{tree: tree, registries: regs}
}

// Tree returns the grammar the engine walks
func (e *Engine) Tree() *grammar.Tree {
	return e.tree
}

// Registries returns the identifier lists the engine draws from
func (e *Engine) Registries() registry.Registries {
	return e.registries
}

// Parse walks line from the grammar root. Leading whitespace is skipped.
// The only error is a grammar error raised while resolving redirects.
func (e *Engine) Parse(line string) (*ParseResult, error) {
	trimmed := trimSpace(line)
	return e.tryParse(e.tree.Root(), trimmed, len(line)-len(trimmed))
}

func (e *Engine) tryParse(node *grammar.Node, line string, consumed int) (*ParseResult, error) {
	children, err := e.tree.EffectiveChildren(node)
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		if _, err := e.tree.Resolve(child); err != nil {
			return nil, err
		}

		rest, value, ok := match(child, line)
		if !ok {
			continue
		}

		result, err := e.tryParse(child, rest, consumed+len(line)-len(rest))
		if err != nil {
			return nil, err
		}
		if child.Kind() == grammar.KindArgument {
			if _, bound := result.Properties[child.Name()]; !bound {
				result.Properties[child.Name()] = value
			}
		}
		return result, nil
	}

	return &ParseResult{
		Properties: make(map[string]string),
		Remainder:  line,
		Tip:        node,
		Consumed:   consumed,
	}, nil
}

// match tries to consume child from the start of line. It returns the rest
// of the line past the following whitespace and the consumed text.
func match(child *grammar.Node, line string) (rest, value string, ok bool) {
	switch child.Kind() {
	case grammar.KindLiteral:
		return matchLiteral(child.Name(), line)
	case grammar.KindArgument:
		return matchArgument(child.Parser().Width(), line)
	default:
		return "", "", false
	}
}

// A literal matches when it is followed by whitespace or ends the line.
func matchLiteral(name, line string) (string, string, bool) {
	if name == "" || !strings.HasPrefix(line, name) {
		return "", "", false
	}
	rest := line[len(name):]
	if rest != "" && !isSpace(rest[0]) {
		return "", "", false
	}
	return trimSpace(rest), name, true
}

// An argument consumes width tokens, each closed by whitespace. A token
// still running into the end of the line is being typed and is left for
// completion.
func matchArgument(width int, line string) (string, string, bool) {
	rest := line
	tokens := make([]string, 0, width)
	for i := 0; i < width; i++ {
		end := strings.IndexFunc(rest, isSpaceRune)
		if end <= 0 {
			return "", "", false
		}
		tokens = append(tokens, rest[:end])
		rest = trimSpace(rest[end:])
	}
	return rest, strings.Join(tokens, " "), true
}

// Candidates lists what may follow a parse result, filtered by its
// remainder. Ranges cover the remainder on line 0.
func (e *Engine) Candidates(result *ParseResult) ([]Candidate, error) {
	children, err := e.tree.EffectiveChildren(result.Tip)
	if err != nil {
		return nil, err
	}

	end := result.Consumed + len(result.Remainder)
	replace := &Range{
		Start: Position{Character: result.Consumed},
		End:   Position{Character: end},
	}

	var out []Candidate
	for _, child := range children {
		if _, err := e.tree.Resolve(child); err != nil {
			return nil, err
		}
		for _, c := range e.expand(child) {
			if !c.Matches(result.Remainder) {
				continue
			}
			c = c.WithCommitCharacters(CommitCharacter)
			r := *replace
			c.Range = &r
			out = append(out, c)
		}
	}
	return out, nil
}

func (e *Engine) expand(child *grammar.Node) []Candidate {
	switch child.Kind() {
	case grammar.KindLiteral:
		return []Candidate{{Label: child.Name(), Kind: KindKeyword}}
	case grammar.KindArgument:
		if strategy := StrategyFor(child.Parser()); strategy != nil {
			return strategy(child, e.registries)
		}
	}
	return nil
}

// Complete parses line and returns its candidates
func (e *Engine) Complete(line string) ([]Candidate, error) {
	result, err := e.Parse(line)
	if err != nil {
		return nil, err
	}
	return e.Candidates(result)
}

// Complete is a one-shot helper for callers without an engine
func Complete(tree *grammar.Tree, regs registry.Registries, line string) ([]Candidate, error) {
	return New(tree, regs).Complete(line)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}

func trimSpace(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}
