package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/mcfcomplete/internal/config"
	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
)

// Schema kinds
const (
	SchemaGrammar = "grammar"
	SchemaConfig  = "config"
)

// SchemaParams contains parameters for the Schema command
type SchemaParams struct {
	Options
	Kind       string
	OutputPath string
}

// Schema displays or exports the JSON Schema of grammar or configuration files
func Schema(params SchemaParams) error {
	var schemaJSON string
	switch params.Kind {
	case "", SchemaGrammar:
		schemaJSON = grammar.GetSchemaJSON()
	case SchemaConfig:
		schemaJSON = config.GetSchemaJSON()
	default:
		return fmt.Errorf("unknown schema %q (expected %s or %s)", params.Kind, SchemaGrammar, SchemaConfig)
	}

	// If output path is provided, write to file
	if params.OutputPath != "" {
		if err := os.WriteFile(params.OutputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", params.OutputPath, err)
		}
		fmt.Fprintf(params.stdout(), "JSON Schema written to: %s\n", params.OutputPath)
		return nil
	}

	fmt.Fprintln(params.stdout(), schemaJSON)
	return nil
}
