// Package grammar holds the in-memory command dispatch tree. A Tree is
// built once from its declarative JSON form and never mutated afterwards,
// so a single *Tree can be shared by any number of concurrent queries.
package grammar

import (
	"fmt"
	"strings"
)

// Kind is the type of a grammar node
type Kind int

// Node kinds
const (
	KindRoot Kind = iota
	KindLiteral
	KindArgument
)

// String returns the name used for the kind in grammar documents
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a node type as written in grammar documents
func ParseKind(s string) (Kind, error) {
	switch s {
	case "root":
		return KindRoot, nil
	case "literal":
		return KindLiteral, nil
	case "argument":
		return KindArgument, nil
	default:
		return 0, fmt.Errorf("unknown node type %q (expected root, literal or argument)", s)
	}
}

// Node is a single node of the command tree
type Node struct {
	name        string
	path        []string
	kind        Kind
	executable  bool
	parser      Parser
	parserID    string
	redirect    []string
	hasRedirect bool
	children    []*Node
	index       map[string]int
}

// Name returns the key of the node inside its parent. The root has an empty name.
func (n *Node) Name() string {
	return n.name
}

// Path returns the names leading from the root to this node
func (n *Node) Path() []string {
	return append([]string(nil), n.path...)
}

// PathString returns the path joined by spaces, "<root>" for the root
func (n *Node) PathString() string {
	if len(n.path) == 0 {
		return "<root>"
	}
	return strings.Join(n.path, " ")
}

// Kind returns the node kind
func (n *Node) Kind() Kind {
	return n.kind
}

// Executable reports whether a command ending at this node is complete
func (n *Node) Executable() bool {
	return n.executable
}

// Parser returns the argument parser (ParserUnknown for non-argument nodes)
func (n *Node) Parser() Parser {
	return n.parser
}

// ParserID returns the parser identifier as written in the grammar document
func (n *Node) ParserID() string {
	return n.parserID
}

// Redirect returns the redirect target path and whether the node redirects.
// An empty path with ok=true redirects to the root.
func (n *Node) Redirect() ([]string, bool) {
	if !n.hasRedirect {
		return nil, false
	}
	return append([]string(nil), n.redirect...), true
}

// Children returns the children in declaration order
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// NumChildren returns the number of children
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child looks up a direct child by name
func (n *Node) Child(name string) (*Node, bool) {
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// Tree is an immutable command tree
type Tree struct {
	root *Node
	size int
}

// Root returns the root node
func (t *Tree) Root() *Node {
	return t.root
}

// Size returns the total number of nodes, root included
func (t *Tree) Size() int {
	return t.size
}

// Lookup walks a path of child names from the root. An empty path
// returns the root. Redirects along the way are not followed.
func (t *Tree) Lookup(path []string) (*Node, bool) {
	current := t.root
	for _, name := range path {
		next, ok := current.Child(name)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Walk visits every node depth-first in declaration order
func (t *Tree) Walk(fn func(n *Node) bool) {
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		if !fn(n) {
			return false
		}
		for _, child := range n.children {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	visit(t.root)
}
