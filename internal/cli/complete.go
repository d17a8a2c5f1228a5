package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/NikitaCOEUR/mcfcomplete/internal/embedded"
	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/server"
	"github.com/NikitaCOEUR/mcfcomplete/internal/trace"
	"github.com/NikitaCOEUR/mcfcomplete/internal/view"
)

// OutputParams override the configured output settings
type OutputParams struct {
	Format   string
	MaxItems int // -1 keeps the configured value
	Template string
}

func (p OutputParams) resolve(s *settings) outputSpec {
	out := outputSpec{
		Format:   s.cfg.Output.Format,
		MaxItems: s.cfg.Output.MaxItems,
		Template: s.cfg.Output.Template,
	}
	if p.Format != "" {
		out.Format = p.Format
	}
	if p.MaxItems >= 0 {
		out.MaxItems = p.MaxItems
	}
	if p.Template != "" {
		out.Template = p.Template
	}
	return out
}

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Options
	Output OutputParams
	Line   string
}

// Complete prints the candidates that may follow a partial command line
func Complete(ctx context.Context, params CompleteParams) error {
	c, err := initializeComponents(ctx, params.Options)
	if err != nil {
		return err
	}

	var candidates []engine.Candidate
	trace.WithRegion(ctx, "complete", func() {
		candidates, err = c.engine.Complete(params.Line)
	})
	if err != nil {
		return err
	}

	c.log.Debug().Str("line", params.Line).Int("candidates", len(candidates)).Msg("line completed")

	return writeCandidates(params.stdout(), params.Output.resolve(&c.settings), candidates,
		func(cands []engine.Candidate, max int) string {
			return view.RenderCandidates(params.Line, cands, max)
		})
}

// ParseParams contains parameters for the Parse command
type ParseParams struct {
	Options
	Format string
	Line   string
}

// Parse prints how far a command line gets through the grammar
func Parse(ctx context.Context, params ParseParams) error {
	c, err := initializeComponents(ctx, params.Options)
	if err != nil {
		return err
	}

	var result *engine.ParseResult
	trace.WithRegion(ctx, "parse", func() {
		result, err = c.engine.Parse(params.Line)
	})
	if err != nil {
		return err
	}

	format := params.Format
	if format == "" {
		format = c.cfg.Output.Format
	}

	w := params.stdout()
	switch format {
	case FormatJSON, FormatYAML:
		return writeStructured(w, format, server.NewParseResponse(result))
	case "", FormatText, FormatTemplate:
		_, err := fmt.Fprintln(w, view.RenderParse(params.Line, result))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// EmbeddedParams contains parameters for the Embedded command
type EmbeddedParams struct {
	Options
	Output OutputParams
	File   string
	Offset int
}

// Embedded completes at a byte offset of a source file carrying
// embedded command blocks such as mc`...`
func Embedded(ctx context.Context, params EmbeddedParams) error {
	content, err := os.ReadFile(params.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", params.File, err)
	}
	text := string(content)
	if params.Offset < 0 || params.Offset > len(text) {
		return fmt.Errorf("offset %d is outside %s (%d bytes)", params.Offset, params.File, len(text))
	}

	c, err := initializeComponents(ctx, params.Options)
	if err != nil {
		return err
	}

	var candidates []engine.Candidate
	trace.WithRegion(ctx, "complete_embedded", func() {
		candidates, err = embedded.NewCompleter(c.engine).CompleteAt(text, params.Offset)
	})
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%s:%d", params.File, params.Offset)
	if snippet, ok := embedded.Find(text, params.Offset); ok {
		pos := snippet.FromHost(params.Offset)
		line, _ := snippet.Line(pos)
		label = line
	} else {
		c.log.Info().Int("offset", params.Offset).Msg("offset is not inside an embedded block")
	}

	return writeCandidates(params.stdout(), params.Output.resolve(&c.settings), candidates,
		func(cands []engine.Candidate, max int) string {
			return view.RenderCandidates(label, cands, max)
		})
}
