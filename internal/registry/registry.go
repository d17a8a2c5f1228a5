// Package registry holds the identifier lists (items, blocks, ...) that
// some argument types expand into completions.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
)

// Well-known registry names
const (
	Item  = "item"
	Block = "block"
)

// Registries maps a registry name to its ordered identifiers. It is
// read-only once built; the zero value is an empty table.
type Registries struct {
	entries map[string][]string
}

// New builds registries from a plain map. Names may carry the minecraft:
// namespace. The input is copied.
func New(m map[string][]string) Registries {
	entries := make(map[string][]string, len(m))
	for name, ids := range m {
		entries[normalizeName(name)] = append([]string(nil), ids...)
	}
	return Registries{entries: entries}
}

// Get returns the identifiers of a registry. A missing registry is empty.
func (r Registries) Get(name string) []string {
	return append([]string(nil), r.entries[normalizeName(name)]...)
}

// Len returns the number of identifiers in a registry
func (r Registries) Len(name string) int {
	return len(r.entries[normalizeName(name)])
}

// Names returns the registry names, sorted
func (r Registries) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.TrimPrefix(name, grammar.DefaultNamespace)
}

// Load reads a registries file. The format follows the extension
// (.json, .yml/.yaml, .toml).
func Load(path string) (Registries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Registries{}, derrors.NewLoadError(path, "registries file not found", err)
		}
		return Registries{}, derrors.NewLoadError(path, "failed to read registries", err)
	}

	regs, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Registries{}, derrors.NewLoadError(path, "failed to parse registries", err)
	}
	return regs, nil
}

// Parse decodes registries from raw bytes. ext selects the parser and
// defaults to JSON.
//
// Each top-level key is a registry. Its value is either a list of
// identifiers, or an object with an "entries" object as produced by the
// vanilla data generator, in which case entries are ordered by their
// protocol_id.
func Parse(data []byte, ext string) (Registries, error) {
	var parser koanf.Parser
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yml", "yaml":
		parser = yaml.Parser()
	case "toml":
		parser = toml.Parser()
	case "json", "":
		parser = json.Parser()
	default:
		return Registries{}, fmt.Errorf("unsupported registries format: %s", ext)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Registries{}, err
	}

	raw := k.Raw()
	m := make(map[string][]string, len(raw))
	for name, value := range raw {
		ids, err := identifiers(value)
		if err != nil {
			return Registries{}, fmt.Errorf("registry %q: %w", name, err)
		}
		m[name] = ids
	}
	return New(m), nil
}

func identifiers(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []interface{}:
		ids := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d is %T, expected string", i, item)
			}
			ids = append(ids, s)
		}
		return ids, nil
	case map[string]interface{}:
		entries, ok := v["entries"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a list or an object with entries")
		}
		return orderedEntries(entries), nil
	default:
		return nil, fmt.Errorf("expected a list of identifiers, got %T", value)
	}
}

func orderedEntries(entries map[string]interface{}) []string {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		pi, iok := protocolID(entries[ids[i]])
		pj, jok := protocolID(entries[ids[j]])
		if iok && jok && pi != pj {
			return pi < pj
		}
		if iok != jok {
			return iok
		}
		return ids[i] < ids[j]
	})
	return ids
}

func protocolID(entry interface{}) (int64, bool) {
	m, ok := entry.(map[string]interface{})
	if !ok {
		return 0, false
	}
	switch id := m["protocol_id"].(type) {
	case float64:
		return int64(id), true
	case int:
		return int64(id), true
	case int64:
		return id, true
	default:
		return 0, false
	}
}
