// Package status summarizes the grammar, registries and configuration a
// mcfcomplete invocation runs with.
package status

import (
	"os"

	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/registry"
	"github.com/NikitaCOEUR/mcfcomplete/pkg/version"
)

// Sources are the inputs status reports on. A nil tree or a load error
// is reported instead of failing.
type Sources struct {
	ConfigFiles    []string
	GrammarPath    string
	Tree           *grammar.Tree
	GrammarErr     error
	RegistriesPath string
	Registries     registry.Registries
	RegistriesErr  error
}

// Collect gathers status information
func Collect(src Sources) *Data {
	return &Data{
		Version:     version.Version,
		ConfigFiles: append([]string(nil), src.ConfigFiles...),
		Grammar:     collectGrammar(src),
		Registries:  collectRegistries(src),
	}
}

func collectGrammar(src Sources) *GrammarInfo {
	info := &GrammarInfo{
		Path:    src.GrammarPath,
		Size:    fileSize(src.GrammarPath),
		Parsers: make(map[string]int),
	}
	if src.GrammarErr != nil {
		info.LoadErr = src.GrammarErr.Error()
	}
	if src.Tree == nil {
		return info
	}

	info.Nodes = src.Tree.Size()
	src.Tree.Walk(func(n *grammar.Node) bool {
		switch n.Kind() {
		case grammar.KindLiteral:
			info.Literals++
		case grammar.KindArgument:
			info.Arguments++
			info.Parsers[n.ParserID()]++
		}
		if _, ok := n.Redirect(); ok {
			info.Redirects++
		}
		return true
	})

	for _, issue := range src.Tree.Check() {
		if issue.Severity == grammar.SeverityError {
			info.Errors++
		} else {
			info.Warnings++
		}
	}
	return info
}

func collectRegistries(src Sources) *RegistriesInfo {
	info := &RegistriesInfo{
		Path:    src.RegistriesPath,
		Size:    fileSize(src.RegistriesPath),
		Entries: make(map[string]int),
	}
	if src.RegistriesErr != nil {
		info.LoadErr = src.RegistriesErr.Error()
	}
	for _, name := range src.Registries.Names() {
		info.Entries[name] = src.Registries.Len(name)
	}
	return info
}

func fileSize(path string) int64 {
	if path == "" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
