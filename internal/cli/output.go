package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"

	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
)

// Output formats of the complete, parse and embedded commands
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTemplate = "template"
)

// outputSpec tells how to print a command's result
type outputSpec struct {
	Format   string
	MaxItems int
	Template string
}

// candidateView is the serialized form of a candidate
type candidateView struct {
	Label            string        `json:"label" yaml:"label"`
	Kind             string        `json:"kind" yaml:"kind"`
	Documentation    string        `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	CommitCharacters []string      `json:"commitCharacters,omitempty" yaml:"commitCharacters,omitempty"`
	Range            *engine.Range `json:"range,omitempty" yaml:"range,omitempty"`
}

func toViews(candidates []engine.Candidate) []candidateView {
	views := make([]candidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, candidateView{
			Label:            c.Label,
			Kind:             c.Kind.String(),
			Documentation:    c.Documentation,
			CommitCharacters: c.CommitCharacters,
			Range:            c.Range,
		})
	}
	return views
}

// writeStructured prints v as JSON or YAML
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeCandidates prints candidates in the requested format. The text
// format is rendered by render; the template format runs once per
// candidate.
func writeCandidates(w io.Writer, out outputSpec, candidates []engine.Candidate, render func([]engine.Candidate, int) string) error {
	switch out.Format {
	case "", FormatText:
		_, err := fmt.Fprintln(w, render(candidates, out.MaxItems))
		return err

	case FormatJSON, FormatYAML:
		return writeStructured(w, out.Format, toViews(limit(candidates, out.MaxItems)))

	case FormatTemplate:
		if out.Template == "" {
			return fmt.Errorf("template output needs a template")
		}
		tmpl, err := template.New("candidate").Funcs(sprig.TxtFuncMap()).Parse(out.Template)
		if err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
		for _, c := range limit(candidates, out.MaxItems) {
			var b strings.Builder
			if err := tmpl.Execute(&b, c); err != nil {
				return fmt.Errorf("failed to render %q: %w", c.Label, err)
			}
			if _, err := fmt.Fprintln(w, b.String()); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format %q", out.Format)
	}
}

func limit(candidates []engine.Candidate, max int) []engine.Candidate {
	if max > 0 && len(candidates) > max {
		return candidates[:max]
	}
	return candidates
}
