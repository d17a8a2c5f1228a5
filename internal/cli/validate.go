package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/mcfcomplete/internal/config"
	"github.com/NikitaCOEUR/mcfcomplete/internal/grammar"
	"github.com/NikitaCOEUR/mcfcomplete/internal/view"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Options
	// Path of the file to validate. Empty means the configured grammar,
	// or the config file of the current directory with Config set.
	Path   string
	Config bool
}

// Validate checks a grammar file, or a configuration file with Config set
func Validate(params ValidateParams) error {
	if params.Config {
		return validateConfig(params.stdout(), params.Path)
	}

	path := params.Path
	if path == "" {
		s, err := loadSettings(params.Options)
		if err != nil {
			return err
		}
		path = s.cfg.Grammar
	}
	return validateGrammar(params.stdout(), path)
}

func validateGrammar(w io.Writer, path string) error {
	fmt.Fprintf(w, "Validating grammar: %s\n\n", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read grammar file: %w", err)
	}

	// Shape first: the builder's errors are less precise than the schema's
	result, err := grammar.ValidateJSON(content)
	if err != nil {
		return err
	}
	if !result.Valid {
		fmt.Fprintln(w, view.ErrorStyle.Render("❌ Grammar does not match the schema:"))
		for i, validationErr := range result.Errors {
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
		}
		fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))
		return fmt.Errorf("validation failed")
	}

	tree, err := grammar.Parse(content)
	if err != nil {
		fmt.Fprintln(w, view.ErrorStyle.Render("❌ "+err.Error()))
		return fmt.Errorf("validation failed")
	}

	issues := tree.Check()
	fmt.Fprintln(w, view.RenderIssues(issues))
	if grammar.HasErrors(issues) {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func validateConfig(w io.Writer, configPath string) error {
	// If no path provided, look for config in current directory
	if configPath == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		for _, name := range config.SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			return fmt.Errorf("no config file found in current directory")
		}
	}

	fmt.Fprintf(w, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(w, view.SuccessStyle.Render("✅ Configuration is valid!"))
		return nil
	}

	fmt.Fprintln(w, view.ErrorStyle.Render("❌ Configuration has errors:"))
	for i, validationErr := range result.Errors {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
