package grammar

import (
	"encoding/json"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
)

// Document is the declarative form of a grammar node, as found in a
// commands.json file. Children keep the key order of the source document;
// when a line could match several siblings the first declared one wins.
type Document struct {
	Type       string                                    `json:"type"`
	Children   *orderedmap.OrderedMap[string, *Document] `json:"children,omitempty"`
	Executable bool                                      `json:"executable,omitempty"`
	Redirect   *[]string                                 `json:"redirect,omitempty"`
	Parser     string                                    `json:"parser,omitempty"`
	Properties map[string]interface{}                    `json:"properties,omitempty"`
}

// Decode parses a grammar document without building the tree
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid grammar JSON: %w", err)
	}
	return &doc, nil
}

// Parse decodes and builds a grammar tree from JSON
func Parse(data []byte) (*Tree, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Load reads a commands.json file and builds its tree
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.NewLoadError(path, "grammar file not found", err)
		}
		return nil, derrors.NewLoadError(path, "failed to read grammar", err)
	}

	tree, err := Parse(data)
	if err != nil {
		return nil, derrors.NewLoadError(path, "failed to build grammar", err)
	}
	return tree, nil
}

// Build turns a document into an immutable tree. The top-level document
// must be of type root; no other node may be.
func Build(doc *Document) (*Tree, error) {
	if doc == nil {
		return nil, derrors.NewValidationError("type", "grammar document is empty", nil)
	}
	kind, err := ParseKind(doc.Type)
	if err != nil {
		return nil, derrors.NewValidationError("type", "invalid root node", err)
	}
	if kind != KindRoot {
		return nil, derrors.NewValidationError("type", fmt.Sprintf("top-level node must be of type root, got %s", kind), nil)
	}

	b := &builder{}
	root, err := b.node("", nil, kind, doc)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root, size: b.count}, nil
}

type builder struct {
	count int
}

func (b *builder) node(name string, path []string, kind Kind, doc *Document) (*Node, error) {
	b.count++
	n := &Node{
		name:       name,
		path:       path,
		kind:       kind,
		executable: doc.Executable,
		index:      map[string]int{},
	}

	if kind == KindArgument {
		n.parserID = doc.Parser
		n.parser = ParseParser(doc.Parser)
	}

	if doc.Redirect != nil {
		n.hasRedirect = true
		n.redirect = append([]string{}, (*doc.Redirect)...)
	}

	if doc.Children == nil {
		return n, nil
	}

	n.children = make([]*Node, 0, doc.Children.Len())
	for pair := doc.Children.Oldest(); pair != nil; pair = pair.Next() {
		field := fieldPath(path, pair.Key)
		if pair.Value == nil {
			return nil, derrors.NewValidationError(field, "child node is null", nil)
		}

		childKind, err := ParseKind(pair.Value.Type)
		if err != nil {
			return nil, derrors.NewValidationError(field, "invalid child node", err)
		}
		if childKind == KindRoot {
			return nil, derrors.NewValidationError(field, "only the top-level node may be of type root", nil)
		}

		childPath := append(append([]string{}, path...), pair.Key)
		child, err := b.node(pair.Key, childPath, childKind, pair.Value)
		if err != nil {
			return nil, err
		}
		n.index[pair.Key] = len(n.children)
		n.children = append(n.children, child)
	}

	return n, nil
}

func fieldPath(path []string, name string) string {
	field := "children"
	for _, p := range path {
		field += "." + p + ".children"
	}
	return field + "." + name
}
